package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"go-partnership-inquiry/config"
	"go-partnership-inquiry/internal/domain"
	"go-partnership-inquiry/pkg/apperror"
	"go-partnership-inquiry/pkg/email"
	"go-partnership-inquiry/pkg/logger"
	"go-partnership-inquiry/pkg/security"
	"go-partnership-inquiry/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// maxDetailLength caps the provider diagnostic echoed back to the client.
const maxDetailLength = 500

// SheetPoster posts the inquiry record to the spreadsheet webhook.
type SheetPoster interface {
	PostJSON(ctx context.Context, url string, payload any) error
}

// InquiryDeps holds the collaborators of InquiryUsecase. Nil fields get defaults.
type InquiryDeps struct {
	Config   func() config.InquiryConfig
	Senders  email.SenderFactory
	Sheet    SheetPoster
	Validate *validator.Validate
	Events   *security.EventLogger
	Now      func() time.Time
}

type InquiryUsecase struct {
	resolveConfig func() config.InquiryConfig
	senders       email.SenderFactory
	sheet         SheetPoster
	validate      *validator.Validate
	events        *security.EventLogger
	now           func() time.Time

	// in-flight best-effort webhook posts
	pending pendingPosts
}

var _ domain.InquiryUsecase = (*InquiryUsecase)(nil)

// NewInquiryUsecase creates a new inquiry usecase
func NewInquiryUsecase(deps InquiryDeps) *InquiryUsecase {
	uc := &InquiryUsecase{
		resolveConfig: deps.Config,
		senders:       deps.Senders,
		sheet:         deps.Sheet,
		validate:      deps.Validate,
		events:        deps.Events,
		now:           deps.Now,
	}
	if uc.resolveConfig == nil {
		uc.resolveConfig = config.LoadInquiryConfig
	}
	if uc.senders == nil {
		uc.senders = email.ResendFactory()
	}
	if uc.validate == nil {
		uc.validate = validation.New()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// Submit validates the inquiry, emails it and mirrors it to the sheet webhook when configured.
func (uc *InquiryUsecase) Submit(ctx context.Context, req *domain.InquiryRequest) error {
	requestID := logger.RequestID(ctx)

	if req.IsSpam() {
		uc.events.LogHoneypotTriggered(ctx, req.Email, req.Source, req.UA, requestID)
		return nil
	}

	if err := uc.validate.Struct(req); err != nil {
		if !validation.IsValidationError(err) {
			return apperror.ServerError(fmt.Errorf("validate inquiry: %w", err))
		}
		fields := validation.MissingFields(err)
		uc.events.LogValidationFailed(ctx, fields, req.Source, requestID)
		logger.Log.InfoContext(ctx, "inquiry rejected", "missing_fields", fields)
		return apperror.MissingFields()
	}

	cfg := uc.resolveConfig()
	if !cfg.HasEmailProvider() {
		uc.events.LogProviderMisconfigured(ctx, requestID)
		logger.Log.ErrorContext(ctx, "RESEND_API_KEY is not configured")
		return apperror.MissingEmailProvider()
	}

	now := uc.now().UTC()
	msg, err := composeInquiryEmail(cfg, req, now)
	if err != nil {
		return apperror.ServerError(err)
	}

	if err := uc.senders(cfg.ResendAPIKey).Send(ctx, msg); err != nil {
		var providerErr *email.ProviderError
		if errors.As(err, &providerErr) {
			uc.events.LogEmailSendFailed(ctx, req.Email, requestID, providerErr.StatusCode)
			logger.Log.ErrorContext(ctx, "email provider rejected inquiry",
				"status", providerErr.StatusCode,
				"error", err,
			)
			return apperror.EmailSendFailed(truncate(providerErr.Body, maxDetailLength), err)
		}
		return apperror.ServerError(fmt.Errorf("send inquiry email: %w", err))
	}

	if cfg.HasSheetWebhook() && uc.sheet != nil {
		uc.logToSheet(ctx, cfg.SheetWebhookURL, newInquiryRecord(req, now))
	}

	uc.events.LogInquiryForwarded(ctx, req.Company, req.Email, req.Source, requestID)
	return nil
}

// logToSheet posts rec in the background. Its outcome never reaches the caller.
func (uc *InquiryUsecase) logToSheet(ctx context.Context, url string, rec domain.InquiryRecord) {
	requestID := logger.RequestID(ctx)
	// the response may be written before the post finishes
	ctx = context.WithoutCancel(ctx)

	uc.pending.add()
	go func() {
		defer uc.pending.done()
		defer func() {
			if r := recover(); r != nil {
				logger.Log.ErrorContext(ctx, "sheet webhook panicked", "panic", fmt.Sprint(r))
			}
		}()

		if err := uc.sheet.PostJSON(ctx, url, rec); err != nil {
			uc.events.LogSheetLogFailed(ctx, requestID, err.Error())
			logger.Log.WarnContext(ctx, "sheet webhook failed", "error", err)
		}
	}()
}

// Drain waits for in-flight webhook posts or until ctx is done.
// It is safe to call while new inquiries are being submitted.
func (uc *InquiryUsecase) Drain(ctx context.Context) error {
	return uc.pending.wait(ctx)
}

// pendingPosts counts detached posts. Unlike sync.WaitGroup it allows
// waiting while new posts are being added.
type pendingPosts struct {
	mu   sync.Mutex
	n    int
	idle chan struct{} // closed when n drops to zero
}

func (p *pendingPosts) add() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.n == 0 {
		p.idle = make(chan struct{})
	}
	p.n++
}

func (p *pendingPosts) done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n--
	if p.n == 0 {
		close(p.idle)
	}
}

func (p *pendingPosts) wait(ctx context.Context) error {
	p.mu.Lock()
	if p.n == 0 {
		p.mu.Unlock()
		return nil
	}
	idle := p.idle
	p.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newInquiryRecord(req *domain.InquiryRequest, now time.Time) domain.InquiryRecord {
	return domain.InquiryRecord{
		Company:   req.Company,
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Source:    req.Source,
		UA:        req.UA,
		CreatedAt: formatTimestamp(now),
	}
}

// truncate keeps at most n characters of s
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
