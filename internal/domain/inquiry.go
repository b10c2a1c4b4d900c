package domain

import "context"

// InquiryRequest represents a partnership inquiry form submission.
// Every field defaults to "" when absent from the body.
type InquiryRequest struct {
	Company string `json:"company" form:"company" validate:"required"`
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required"`
	Message string `json:"message" form:"message" validate:"required"`
	// Website is the honeypot field; humans never see it
	Website string `json:"website" form:"website"`
	Source  string `json:"source" form:"source"`
	UA      string `json:"ua" form:"ua"`
}

// IsSpam reports whether the honeypot field was filled in.
func (r *InquiryRequest) IsSpam() bool {
	return r.Website != ""
}

// InquiryRecord is the payload mirrored to the spreadsheet webhook.
type InquiryRecord struct {
	Company   string `json:"company"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	UA        string `json:"ua"`
	CreatedAt string `json:"createdAt"`
}

// InquiryUsecase defines the interface for partnership inquiry operations
type InquiryUsecase interface {
	// Submit validates the inquiry and forwards it by email.
	// A spam submission returns nil without sending anything.
	Submit(ctx context.Context, req *InquiryRequest) error
}
