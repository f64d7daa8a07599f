package v1

import (
	"time"

	"jobkit-backend/config"
	"jobkit-backend/internal/delivery/http/middleware"
	"jobkit-backend/internal/domain"
	"jobkit-backend/internal/usecase"
	"jobkit-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	AuthUC     domain.AuthUsecase
	EmployeeUC domain.EmployeeUsecase
	CompanyUC  domain.CompanyUsecase
	JobUC      domain.JobUsecase
	CatalogUC  domain.CatalogUsecase
	HealthUC   usecase.HealthUsecase

	LoginTracker *security.LoginTracker
	RateLimiter  *middleware.RateLimiter
	Config       *config.Config
	Logger       *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.ErrorHandler(logger))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	v1 := r.Group("/v1")
	v1.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	strict := deps.RateLimiter.Middleware(middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window))

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes see the caller when a valid token is sent
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(deps.AuthUC))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	{
		NewAuthHandler(public, protected, strict, deps.AuthUC, deps.LoginTracker)
		NewEmployeeHandler(protected, deps.EmployeeUC)
		NewCompanyHandler(protected, deps.CompanyUC)
		NewJobHandler(public, protected, deps.JobUC)
		NewDirectoryHandler(public, protected, middleware.RequireRole(domain.RoleAdmin), deps.CompanyUC, deps.CatalogUC)
	}

	return r
}
