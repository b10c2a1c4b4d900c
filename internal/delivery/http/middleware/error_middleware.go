package middleware

import (
	"errors"
	"fmt"

	"go-partnership-inquiry/internal/delivery/http/response"
	"go-partnership-inquiry/pkg/apperror"
	"go-partnership-inquiry/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.ServerError(err)
		}

		// Causes stay server side; the client only sees the code
		if appErr.Code == apperror.CodeServerError {
			logger.Log.ErrorContext(c.Request.Context(), "request failed",
				"path", c.Request.URL.Path,
				"error", fmt.Sprint(err),
			)
		}

		response.Error(c, appErr)
	}
}

// Recovery maps panics to a server_error response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.ErrorContext(c.Request.Context(), "panic recovered",
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)
		response.Error(c, apperror.ServerError(nil))
		c.Abort()
	})
}
