package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobkit-backend/config"
	_ "jobkit-backend/docs" // Important for Swagger
	"jobkit-backend/internal/delivery/http/middleware"
	v1 "jobkit-backend/internal/delivery/http/v1"
	"jobkit-backend/internal/domain"
	"jobkit-backend/internal/notification"
	"jobkit-backend/internal/repository/postgres"
	"jobkit-backend/internal/usecase"
	"jobkit-backend/migrations"
	"jobkit-backend/pkg/database"
	"jobkit-backend/pkg/email"
	"jobkit-backend/pkg/logger"
	"jobkit-backend/pkg/otpcode"
	"jobkit-backend/pkg/queue"
	pkgredis "jobkit-backend/pkg/redis"
	"jobkit-backend/pkg/security"
	"jobkit-backend/pkg/telemetry"
	"jobkit-backend/pkg/token"
	"jobkit-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title           JobKit API
// @version         1.0
// @description     Job board backend: accounts with email OTP verification, employee and company profiles, job postings.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Env)
	defer logger.Sync()
	logger.Log.Info("Starting jobkit backend", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	if err := run(cfg); err != nil {
		logger.Log.Error("Server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Log.Info("Server exiting")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Tracing
	tp, err := telemetry.New(ctx, telemetry.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Insecure:    cfg.OTLPInsecure,
	}, logger.Log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	// 4. Setup Database
	if cfg.AutoMigrate {
		if err := migrateUp(cfg.DBUrl); err != nil {
			return err
		}
	}

	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	// 5. Redis is optional; rate limiting and login tracking fall back to memory
	rdb, err := pkgredis.New(ctx, pkgredis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, pkgredis.ErrNotConfigured):
		rdb = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", zap.Error(err))
		rdb = nil
	default:
		defer rdb.Close()
	}

	// 6. Notifier
	notifier, closeNotifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}
	defer closeNotifier()

	// 7. Setup Repositories
	tx := postgres.NewTransactor(dbPool)
	accountRepo := postgres.NewAccountRepository(dbPool)
	codeRepo := postgres.NewOneTimeCodeRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)
	orgRepo := postgres.NewOrganizationRepository(dbPool)
	categoryRepo := postgres.NewJobCategoryRepository(dbPool)
	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	educationRepo := postgres.NewEducationRepository(dbPool)
	experienceRepo := postgres.NewExperienceRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	sectorRepo := postgres.NewSectorRepository(dbPool)
	departmentRepo := postgres.NewDepartmentRepository(dbPool)
	companyEmployeeRepo := postgres.NewCompanyEmployeeRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)

	// 8. Setup UseCases
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Configure(v)
	}
	validate := validation.New()
	audit := security.NewSecurityLogger(logger.Log, cfg.ServiceName, cfg.Env)
	sessions := usecase.NewSessionIssuer(token.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL))

	authUC := usecase.NewAuthUsecase(accountRepo, codeRepo, tx, otpcode.NewGenerator(cfg.JWTIssuer), sessions, notifier, validate, audit)
	employeeUC := usecase.NewEmployeeUsecase(employeeRepo, educationRepo, experienceRepo, skillRepo, orgRepo, companyRepo, categoryRepo, tx, validate)
	companyUC := usecase.NewCompanyUsecase(companyRepo, sectorRepo, departmentRepo, companyEmployeeRepo, orgRepo, tx, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, skillRepo, categoryRepo, tx, validate)
	catalogUC := usecase.NewCatalogUsecase(skillRepo, categoryRepo, validate)

	healthDeps := map[string]usecase.Pinger{"database": dbPool}
	if rdb != nil {
		healthDeps["redis"] = usecase.PingFunc(func(ctx context.Context) error {
			return pkgredis.HealthCheck(ctx, rdb)
		})
	}
	healthUC := usecase.NewHealthUsecase(healthDeps)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		EmployeeUC:   employeeUC,
		CompanyUC:    companyUC,
		JobUC:        jobUC,
		CatalogUC:    catalogUC,
		HealthUC:     healthUC,
		LoginTracker: security.NewLoginTracker(rdb, loginTrackerConfig(cfg), audit),
		RateLimiter:  middleware.NewRateLimiter(rdb, audit),
		Config:       cfg,
		Logger:       logger.Log,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.OTPRetention > 0 && cfg.OTPPurgeInterval > 0 {
		g.Go(func() error {
			purgeCodes(gctx, authUC, cfg.OTPRetention, cfg.OTPPurgeInterval)
			return nil
		})
	}

	return g.Wait()
}

func migrateUp(databaseURL string) error {
	runner, err := migrations.NewRunner(databaseURL, logger.Log)
	if err != nil {
		return err
	}
	defer runner.Close()
	return runner.Up()
}

// newNotifier picks the OTP delivery path from MAIL_TRANSPORT.
func newNotifier(cfg *config.Config) (domain.OTPNotifier, func(), error) {
	noop := func() {}
	switch cfg.MailTransport {
	case config.MailTransportRabbitMQ:
		client, err := queue.New(cfg.RabbitMQURL, cfg.RabbitMQOTPQueue)
		if err != nil {
			return nil, noop, err
		}
		logger.Log.Info("OTP mail goes through RabbitMQ", zap.String("queue", cfg.RabbitMQOTPQueue))
		return notification.NewQueueNotifier(client), client.Close, nil
	case config.MailTransportLog:
		logger.Log.Warn("OTP codes are written to the log; do not use in production")
		return notification.NewLogNotifier(logger.Log), noop, nil
	default:
		mailer := email.NewEmailService(cfg)
		if !mailer.IsConfigured() {
			logger.Log.Warn("Email service not fully configured - OTP emails will fail")
		}
		return notification.NewSMTPNotifier(mailer), noop, nil
	}
}

func loginTrackerConfig(cfg *config.Config) security.LoginTrackerConfig {
	tc := security.DefaultLoginTrackerConfig()
	if cfg.FailedLoginMaxAttempts > 0 {
		tc.MaxAttempts = cfg.FailedLoginMaxAttempts
	}
	if cfg.FailedLoginBlockMinutes > 0 {
		tc.BlockDuration = time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute
		tc.AttemptWindow = tc.BlockDuration
	}
	return tc
}

func purgeCodes(ctx context.Context, authUC domain.AuthUsecase, retention, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authUC.PurgeStaleCodes(ctx, time.Now().Add(-retention))
			if err != nil {
				logger.Log.Warn("OTP purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Log.Info("Purged stale OTP codes", zap.Int64("count", n))
			}
		}
	}
}
