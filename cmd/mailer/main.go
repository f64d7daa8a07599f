// Command mailer drains the OTP queue and sends each code by SMTP.
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
	"jobkit-backend/internal/notification"
	"jobkit-backend/pkg/email"
	"jobkit-backend/pkg/logger"
	"jobkit-backend/pkg/queue"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Env)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("Mailer exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Log.Info("Mailer exiting")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mailer := email.NewEmailService(cfg)
	if !mailer.IsConfigured() {
		return notification.ErrMailNotConfigured
	}

	client, err := queue.New(cfg.RabbitMQURL, cfg.RabbitMQOTPQueue)
	if err != nil {
		return err
	}
	defer client.Close()

	handler := notification.NewOTPMailHandler(mailer, logger.Log)

	// Metrics only; the worker has no other HTTP surface.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("Consuming OTP queue", zap.String("queue", cfg.RabbitMQOTPQueue))
		return client.Consume(gctx, "jobkit-mailer", handler.Handle)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
