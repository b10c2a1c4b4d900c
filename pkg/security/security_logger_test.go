package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*EventLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewEventLogger(zap.New(core), "partnership-inquiry", "test"), logs
}

func TestEventLevels(t *testing.T) {
	tests := []struct {
		event EventType
		level zapcore.Level
	}{
		{EventInquiryForwarded, zapcore.InfoLevel},
		{EventHoneypotTriggered, zapcore.WarnLevel},
		{EventValidationFailed, zapcore.WarnLevel},
		{EventMethodNotAllowed, zapcore.WarnLevel},
		{EventSheetLogFailed, zapcore.WarnLevel},
		{EventProviderMisconfigured, zapcore.ErrorLevel},
		{EventEmailSendFailed, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.event), func(t *testing.T) {
			l, logs := newObservedLogger()
			l.Log(context.Background(), Event{Event: tt.event})

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, string(tt.event), entry.Message)
			assert.Equal(t, "partnership-inquiry", entry.ContextMap()["service"])
			assert.Equal(t, "test", entry.ContextMap()["env"])
		})
	}
}

func TestLogHoneypotTriggeredMasksEmail(t *testing.T) {
	l, logs := newObservedLogger()
	l.LogHoneypotTriggered(context.Background(), "bot@spam.example", "https://site/partners", "curl/8", "req-1")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "b***@spam.example", fields["subject_value"])
	assert.Equal(t, "https://site/partners", fields["source"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestLogValidationFailedDetails(t *testing.T) {
	l, logs := newObservedLogger()
	l.LogValidationFailed(context.Background(), []string{"company", "message"}, "", "req-2")

	fields := logs.All()[0].ContextMap()
	assert.JSONEq(t, `{"missing_fields":["company","message"]}`, fields["details"].(string))
}

func TestNilLoggerIsNoop(t *testing.T) {
	var l *EventLogger
	assert.NotPanics(t, func() {
		l.LogInquiryForwarded(context.Background(), "Acme", "jo@acme.com", "", "")
		_ = l.Sync()
	})
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@acme.com", MaskEmail("jo@acme.com"))
	assert.Equal(t, "***@acme.com", MaskEmail("j@acme.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, HashValue("not-an-email"), MaskEmail("not-an-email"))
}

func TestHashValue(t *testing.T) {
	assert.Len(t, HashValue("Acme"), 16)
	assert.Equal(t, HashValue("Acme"), HashValue("Acme"))
	assert.NotEqual(t, HashValue("Acme"), HashValue("Other"))
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, SeverityINFO, GetSeverity(EventInquiryForwarded))
	assert.Equal(t, SeverityCRITICAL, GetSeverity(EventProviderMisconfigured))
	assert.Equal(t, SeverityMEDIUM, GetSeverity(EventType("unknown")))

	assert.True(t, IsHighOrAbove(EventEmailSendFailed))
	assert.False(t, IsHighOrAbove(EventSheetLogFailed))
}

func TestLogMarksAlerts(t *testing.T) {
	l, logs := newObservedLogger()
	l.LogEmailSendFailed(context.Background(), "jo@acme.com", "req-3", 422)
	l.LogInquiryForwarded(context.Background(), "Acme", "jo@acme.com", "", "req-4")

	require.Equal(t, 2, logs.Len())
	failed := logs.All()[0].ContextMap()
	assert.Equal(t, "HIGH", failed["severity"])
	assert.Equal(t, true, failed["alert"])

	forwarded := logs.All()[1].ContextMap()
	assert.Equal(t, "INFO", forwarded["severity"])
	assert.NotContains(t, forwarded, "alert")
}

func TestInitEventLogger(t *testing.T) {
	l := InitEventLogger("partnership-inquiry", "test")
	require.NotNil(t, l)
	assert.Equal(t, "partnership-inquiry", l.serviceName)
	assert.Equal(t, "test", l.environment)
}
