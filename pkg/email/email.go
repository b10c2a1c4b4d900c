package email

import (
	"context"
	"fmt"
)

// Message is a fully composed plain-text email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Sender delivers a composed message through a provider.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SenderFactory builds a Sender bound to an API key. Keys are resolved per request,
// so senders are cheap and short lived.
type SenderFactory func(apiKey string) Sender

// ProviderError is returned when the provider answered with a non-2xx status.
// Body holds the raw response body as the provider sent it.
type ProviderError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("email provider responded %d: %v", e.StatusCode, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
