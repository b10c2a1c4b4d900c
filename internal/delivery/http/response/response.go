package response

import (
	"go-partnership-inquiry/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	OK     bool    `json:"ok"`
	Error  string  `json:"error,omitempty"`
	Detail *string `json:"detail,omitempty"`
}

// Success sends {"ok":true}
func Success(c *gin.Context, code int) {
	c.JSON(code, Response{OK: true})
}

// Error sends an error response built from appErr.
// Detail is only present for email_send_failed, even when empty.
func Error(c *gin.Context, appErr *apperror.AppError) {
	resp := Response{
		OK:    false,
		Error: appErr.Code,
	}
	if appErr.Code == apperror.CodeEmailSendFailed {
		detail := appErr.Detail
		resp.Detail = &detail
	}
	c.JSON(appErr.Status, resp)
}
