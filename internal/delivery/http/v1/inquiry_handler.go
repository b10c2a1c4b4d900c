package v1

import (
	"net/http"

	"go-partnership-inquiry/internal/delivery/http/middleware"
	"go-partnership-inquiry/internal/delivery/http/response"
	"go-partnership-inquiry/internal/domain"
	"go-partnership-inquiry/pkg/apperror"
	"go-partnership-inquiry/pkg/security"

	"github.com/gin-gonic/gin"
)

// InquiryPath is the public route of the partnership inquiry form.
const InquiryPath = "/api/partnership-inquiry"

type InquiryHandler struct {
	inquiryUC domain.InquiryUsecase
	events    *security.EventLogger
}

// NewInquiryHandler registers the inquiry route (public, no auth required)
func NewInquiryHandler(r gin.IRoutes, inquiryUC domain.InquiryUsecase, events *security.EventLogger) *InquiryHandler {
	handler := &InquiryHandler{
		inquiryUC: inquiryUC,
		events:    events,
	}

	r.POST(InquiryPath, handler.SubmitInquiry)
	return handler
}

// SubmitInquiry godoc
// @Summary      Submit Partnership Inquiry
// @Description  Validates a partnership inquiry and forwards it by email. Honeypot submissions are accepted and dropped.
// @Tags         inquiry
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        inquiry  body      domain.InquiryRequest  true  "Inquiry Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      405      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /api/partnership-inquiry [post]
func (h *InquiryHandler) SubmitInquiry(c *gin.Context) {
	req, err := bindInquiry(c)
	if err != nil {
		c.Error(apperror.ServerError(err))
		return
	}

	if err := h.inquiryUC.Submit(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK)
}

// MethodNotAllowed answers every non-POST request on the inquiry route.
func (h *InquiryHandler) MethodNotAllowed(c *gin.Context) {
	h.events.LogMethodNotAllowed(c.Request.Context(), c.Request.Method, c.GetHeader("User-Agent"), c.GetString(middleware.RequestIDKey))
	c.Error(apperror.MethodNotAllowed())
}
