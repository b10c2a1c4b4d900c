package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of inquiry event
type EventType string

const (
	EventMethodNotAllowed      EventType = "method_not_allowed"
	EventHoneypotTriggered     EventType = "honeypot_triggered"
	EventValidationFailed      EventType = "validation_failed"
	EventProviderMisconfigured EventType = "provider_misconfigured"
	EventEmailSendFailed       EventType = "email_send_failed"
	EventInquiryForwarded      EventType = "inquiry_forwarded"
	EventSheetLogFailed        EventType = "sheet_log_failed"
)

// Event represents an inquiry outcome to be logged
type Event struct {
	Event        EventType
	SubjectType  string // "email", "company"
	SubjectValue string // Masked or hashed for PII
	Source       string
	UserAgent    string
	RequestID    string
	Details      map[string]interface{}
}

// EventLogger provides structured logging for inquiry events
type EventLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewEventLogger wraps an existing zap logger.
func NewEventLogger(zl *zap.Logger, serviceName, environment string) *EventLogger {
	return &EventLogger{
		zapLogger:   zl,
		serviceName: serviceName,
		environment: environment,
	}
}

// InitEventLogger builds a production event logger writing JSON to stdout
func InitEventLogger(serviceName, environment string) *EventLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	// stdout is what Vercel and container platforms collect
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return NewEventLogger(logger, serviceName, environment)
}

// Log logs an inquiry event
func (l *EventLogger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	severity := GetSeverity(event.Event)

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
	}
	if IsHighOrAbove(event.Event) {
		fields = append(fields, zap.Bool("alert", true))
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.Source != "" {
		fields = append(fields, zap.String("source", event.Source))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(severity.zapLevel(), string(event.Event), fields...)
}

// LogMethodNotAllowed logs a request that used a verb other than POST
func (l *EventLogger) LogMethodNotAllowed(ctx context.Context, method, userAgent, requestID string) {
	l.Log(ctx, Event{
		Event:     EventMethodNotAllowed,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]interface{}{"method": method},
	})
}

// LogHoneypotTriggered logs a submission silently discarded as spam
func (l *EventLogger) LogHoneypotTriggered(ctx context.Context, email, source, userAgent, requestID string) {
	l.Log(ctx, Event{
		Event:        EventHoneypotTriggered,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Source:       source,
		UserAgent:    userAgent,
		RequestID:    requestID,
	})
}

// LogValidationFailed logs a submission missing required fields
func (l *EventLogger) LogValidationFailed(ctx context.Context, fields []string, source, requestID string) {
	l.Log(ctx, Event{
		Event:     EventValidationFailed,
		Source:    source,
		RequestID: requestID,
		Details:   map[string]interface{}{"missing_fields": fields},
	})
}

// LogProviderMisconfigured logs a submission rejected because no API key is configured
func (l *EventLogger) LogProviderMisconfigured(ctx context.Context, requestID string) {
	l.Log(ctx, Event{
		Event:     EventProviderMisconfigured,
		RequestID: requestID,
		Details:   map[string]interface{}{"missing": "RESEND_API_KEY"},
	})
}

// LogEmailSendFailed logs a provider rejection
func (l *EventLogger) LogEmailSendFailed(ctx context.Context, email, requestID string, statusCode int) {
	l.Log(ctx, Event{
		Event:        EventEmailSendFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		RequestID:    requestID,
		Details:      map[string]interface{}{"status_code": statusCode},
	})
}

// LogInquiryForwarded logs a successful hand-off to the email provider
func (l *EventLogger) LogInquiryForwarded(ctx context.Context, company, email, source, requestID string) {
	l.Log(ctx, Event{
		Event:        EventInquiryForwarded,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Source:       source,
		RequestID:    requestID,
		Details:      map[string]interface{}{"company_hash": HashValue(company)},
	})
}

// LogSheetLogFailed logs a failed best-effort webhook post
func (l *EventLogger) LogSheetLogFailed(ctx context.Context, requestID, reason string) {
	l.Log(ctx, Event{
		Event:     EventSheetLogFailed,
		RequestID: requestID,
		Details:   map[string]interface{}{"reason": reason},
	})
}

// Sync flushes any buffered log entries
func (l *EventLogger) Sync() error {
	if l == nil {
		return nil
	}
	return l.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex < 0 {
		return HashValue(email)
	}
	if atIndex <= 1 {
		return "***" + email[atIndex:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8]) // First 16 chars of hex
}
