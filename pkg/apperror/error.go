package apperror

import "net/http"

// Error codes returned in the "error" field of the response body.
const (
	CodeMethodNotAllowed     = "method_not_allowed"
	CodeNotFound             = "not_found"
	CodeMissingFields        = "missing_fields"
	CodeMissingEmailProvider = "missing_email_provider"
	CodeEmailSendFailed      = "email_send_failed"
	CodeServerError          = "server_error"
)

type AppError struct {
	Status int    `json:"-"`
	Code   string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Err    error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code string, err error) *AppError {
	return &AppError{
		Status: status,
		Code:   code,
		Err:    err,
	}
}

func MethodNotAllowed() *AppError {
	return New(http.StatusMethodNotAllowed, CodeMethodNotAllowed, nil)
}

func NotFound() *AppError {
	return New(http.StatusNotFound, CodeNotFound, nil)
}

func MissingFields() *AppError {
	return New(http.StatusBadRequest, CodeMissingFields, nil)
}

// MissingEmailProvider is a deployment fault, not a client fault.
func MissingEmailProvider() *AppError {
	return New(http.StatusInternalServerError, CodeMissingEmailProvider, nil)
}

// EmailSendFailed carries the provider's diagnostic back to the caller.
func EmailSendFailed(detail string, err error) *AppError {
	e := New(http.StatusBadGateway, CodeEmailSendFailed, err)
	e.Detail = detail
	return e
}

func ServerError(err error) *AppError {
	return New(http.StatusInternalServerError, CodeServerError, err)
}
