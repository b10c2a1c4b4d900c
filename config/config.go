package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultPartnershipToEmail receives inquiries when PARTNERSHIP_TO_EMAIL is unset.
	DefaultPartnershipToEmail = "mgmt@sturdyoff.com"
	// DefaultResendFromEmail is the sender identity when RESEND_FROM_EMAIL is unset.
	DefaultResendFromEmail = "Broke Baby Website <onboarding@resend.dev>"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	SentryDSN   string
	// Swagger UI is off by default so serverless deployments only expose the inquiry route
	SwaggerEnabled bool
	// Outbound timeouts
	EmailTimeout   time.Duration
	WebhookTimeout time.Duration
}

// InquiryConfig is resolved from the process environment on every request.
type InquiryConfig struct {
	ToEmail         string
	ResendAPIKey    string
	FromEmail       string
	SheetWebhookURL string
}

// HasEmailProvider reports whether the Resend API key is present.
func (c InquiryConfig) HasEmailProvider() bool {
	return c.ResendAPIKey != ""
}

// HasSheetWebhook reports whether spreadsheet logging is enabled.
func (c InquiryConfig) HasSheetWebhook() bool {
	return c.SheetWebhookURL != ""
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; production reads the real environment
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("APP_ENV", "development"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", false),
		EmailTimeout:   time.Duration(getEnvInt("EMAIL_TIMEOUT_SECONDS", 15)) * time.Second,
		WebhookTimeout: time.Duration(getEnvInt("WEBHOOK_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if getEnvNonEmpty("RESEND_API_KEY", "") == "" {
		log.Println("WARNING: RESEND_API_KEY is missing. Inquiries will be rejected with missing_email_provider.")
	}

	return cfg, nil
}

// LoadInquiryConfig reads the inquiry settings. Empty values fall back the same way unset ones do.
func LoadInquiryConfig() InquiryConfig {
	return InquiryConfig{
		ToEmail:         getEnvNonEmpty("PARTNERSHIP_TO_EMAIL", DefaultPartnershipToEmail),
		ResendAPIKey:    getEnvNonEmpty("RESEND_API_KEY", ""),
		FromEmail:       getEnvNonEmpty("RESEND_FROM_EMAIL", DefaultResendFromEmail),
		SheetWebhookURL: getEnvNonEmpty("GSHEET_WEBHOOK_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvNonEmpty treats a variable set to "" as unset
func getEnvNonEmpty(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
