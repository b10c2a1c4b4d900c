package email

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/resend/resend-go/v3"
)

// maxErrorBody caps how much of a failed provider response is buffered.
const maxErrorBody = 64 << 10

// ResendOption configures a ResendSender.
type ResendOption func(*ResendSender)

// WithTimeout bounds each send. Zero leaves the http.Client default.
func WithTimeout(d time.Duration) ResendOption {
	return func(s *ResendSender) {
		s.timeout = d
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(u *url.URL) ResendOption {
	return func(s *ResendSender) {
		s.baseURL = u
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) ResendOption {
	return func(s *ResendSender) {
		s.transport = rt
	}
}

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	apiKey    string
	timeout   time.Duration
	baseURL   *url.URL
	transport http.RoundTripper
}

// NewResendSender creates a sender authenticated with apiKey.
func NewResendSender(apiKey string, opts ...ResendOption) *ResendSender {
	s := &ResendSender{
		apiKey:    apiKey,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResendFactory returns a SenderFactory sharing opts across all keys.
func ResendFactory(opts ...ResendOption) SenderFactory {
	return func(apiKey string) Sender {
		return NewResendSender(apiKey, opts...)
	}
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	capture := &errorBodyCapture{next: s.transport}
	client := resend.NewCustomClient(&http.Client{
		Transport: capture,
		Timeout:   s.timeout,
	}, s.apiKey)
	if s.baseURL != nil {
		client.BaseURL = s.baseURL
	}

	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
	}

	_, err := client.Emails.SendWithContext(ctx, req)
	if err == nil || capture.accepted() {
		// A 2xx with an undecodable body still means the provider took the message.
		return nil
	}

	if capture.status != 0 {
		return &ProviderError{
			StatusCode: capture.status,
			Body:       string(capture.body),
			Err:        err,
		}
	}
	return fmt.Errorf("resend: failed to send email: %w", err)
}

// errorBodyCapture keeps a copy of non-2xx response bodies. The resend client
// decodes error bodies into a message and drops the rest.
type errorBodyCapture struct {
	next   http.RoundTripper
	status int
	body   []byte
}

func (t *errorBodyCapture) accepted() bool {
	return t.status >= 200 && t.status < 300
}

func (t *errorBodyCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		t.status = resp.StatusCode
		return resp, nil
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read provider error body: %w", readErr)
	}

	t.status = resp.StatusCode
	t.body = body
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
