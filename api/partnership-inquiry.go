// Package handler is the Vercel serverless entry point. Vercel routes
// /api/partnership-inquiry to Handler.
package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go-partnership-inquiry/config"
	v1 "go-partnership-inquiry/internal/delivery/http/v1"
	"go-partnership-inquiry/internal/usecase"
	"go-partnership-inquiry/pkg/email"
	"go-partnership-inquiry/pkg/logger"
	"go-partnership-inquiry/pkg/security"
	"go-partnership-inquiry/pkg/webhook"

	"github.com/gin-gonic/gin"
)

var (
	router       http.Handler
	inquiryUC    *usecase.InquiryUsecase
	drainTimeout time.Duration
	once         sync.Once
)

// setup runs once per cold start
func setup() {
	cfg, _ := config.LoadConfig()
	gin.SetMode(gin.ReleaseMode)

	logger.Init(logger.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		SentryDSN:   cfg.SentryDSN,
	})
	events := security.InitEventLogger("partnership-inquiry", cfg.Environment)

	inquiryUC = usecase.NewInquiryUsecase(usecase.InquiryDeps{
		Config:  config.LoadInquiryConfig,
		Senders: email.ResendFactory(email.WithTimeout(cfg.EmailTimeout)),
		Sheet:   webhook.NewClient(cfg.WebhookTimeout),
		Events:  events,
	})
	drainTimeout = cfg.WebhookTimeout

	// Only the inquiry route is deployed as a function
	cfg.SwaggerEnabled = false
	router = v1.NewRouter(v1.RouterDeps{
		InquiryUC: inquiryUC,
		Events:    events,
		Config:    cfg,
	})
}

// Handler is the entry point for Vercel serverless functions
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	router.ServeHTTP(w, r)

	// The instance may be frozen once Handler returns, so the sheet post
	// has to finish first. Its outcome is still ignored.
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := inquiryUC.Drain(ctx); err != nil {
		logger.Log.Warn("Abandoned pending sheet webhook post", "error", err)
	}
}
