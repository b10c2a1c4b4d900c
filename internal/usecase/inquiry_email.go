package usecase

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"go-partnership-inquiry/config"
	"go-partnership-inquiry/internal/domain"
	"go-partnership-inquiry/pkg/email"
)

const (
	inquirySubjectPrefix = "Partnership Inquiry | Broke Baby Website | "
	timestampLayout      = "2006-01-02T15:04:05.000Z07:00"
)

// inquiryEmailTemplate is the plain text body, one field per line
var inquiryEmailTemplate = template.Must(template.New("inquiry").Parse(`Company: {{.Company}}
Name: {{.Name}}
Email: {{.Email}}
Message: {{.Message}}
Source URL: {{.Source}}
User-Agent: {{.UA}}
Timestamp: {{.Timestamp}}`))

type inquiryEmailData struct {
	*domain.InquiryRequest
	Timestamp string
}

func composeInquiryEmail(cfg config.InquiryConfig, req *domain.InquiryRequest, now time.Time) (*email.Message, error) {
	var body bytes.Buffer
	if err := inquiryEmailTemplate.Execute(&body, inquiryEmailData{
		InquiryRequest: req,
		Timestamp:      formatTimestamp(now),
	}); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	return &email.Message{
		From:    cfg.FromEmail,
		To:      []string{cfg.ToEmail},
		ReplyTo: req.Email,
		Subject: inquirySubjectPrefix + req.Company,
		Text:    body.String(),
	}, nil
}

// formatTimestamp renders t as UTC ISO-8601 with millisecond precision
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
