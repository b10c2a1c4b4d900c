package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-partnership-inquiry/config"
	_ "go-partnership-inquiry/docs" // Important for Swagger
	v1 "go-partnership-inquiry/internal/delivery/http/v1"
	"go-partnership-inquiry/internal/usecase"
	"go-partnership-inquiry/pkg/email"
	"go-partnership-inquiry/pkg/logger"
	"go-partnership-inquiry/pkg/security"
	"go-partnership-inquiry/pkg/validation"
	"go-partnership-inquiry/pkg/webhook"
)

// @title           Partnership Inquiry API
// @version         1.0
// @description     Forwards partnership inquiry form submissions by email.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(logger.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		SentryDSN:   cfg.SentryDSN,
	})
	defer logger.Flush(2 * time.Second)

	events := security.InitEventLogger("partnership-inquiry", cfg.Environment)
	defer func() { _ = events.Sync() }()

	logger.Log.Info("Starting partnership inquiry API", "port", cfg.Port, "env", cfg.Environment)

	// 3. Setup UseCase
	inquiryUC := usecase.NewInquiryUsecase(usecase.InquiryDeps{
		Config:   config.LoadInquiryConfig,
		Senders:  email.ResendFactory(email.WithTimeout(cfg.EmailTimeout)),
		Sheet:    webhook.NewClient(cfg.WebhookTimeout),
		Validate: validation.New(),
		Events:   events,
	})

	// 4. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		InquiryUC: inquiryUC,
		Events:    events,
		Config:    cfg,
	})

	// 5. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Sheet posts run detached from requests; give them the rest of the grace period
	if err := inquiryUC.Drain(ctx); err != nil {
		logger.Log.Warn("Abandoned pending sheet webhook posts", "error", err)
	}

	logger.Log.Info("Server exiting")
}
