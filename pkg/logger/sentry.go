package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// withSentry fans records out to Sentry when a DSN is configured.
// Without a DSN, or if the SDK fails to start, base is returned unchanged.
func withSentry(base slog.Handler, opts Options) slog.Handler {
	if opts.SentryDSN == "" {
		return base
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.SentryDSN,
		Environment: opts.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return base
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return newMultiHandler(base, sentryHandler)
}

// Flush waits for buffered Sentry events. It is a no-op when Sentry is not initialized.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
