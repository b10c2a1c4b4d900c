package v1

import (
	"net/http"

	"go-partnership-inquiry/config"
	"go-partnership-inquiry/internal/delivery/http/middleware"
	"go-partnership-inquiry/internal/delivery/http/response"
	"go-partnership-inquiry/internal/domain"
	"go-partnership-inquiry/pkg/apperror"
	"go-partnership-inquiry/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	InquiryUC domain.InquiryUsecase
	Events    *security.EventLogger
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	// Wrong verbs on a known route reach NoMethod instead of NoRoute
	r.HandleMethodNotAllowed = true
	// Trailing slash variants are unknown routes, not redirects
	r.RedirectTrailingSlash = false

	// Global Middlewares
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK)
	})

	if deps.Config != nil && deps.Config.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public routes
	inquiry := NewInquiryHandler(r, deps.InquiryUC, deps.Events)

	notFound := func(c *gin.Context) {
		c.Error(apperror.NotFound())
	}
	// Only the inquiry route answers 405; other routes keep 404 for unknown verbs
	r.NoMethod(func(c *gin.Context) {
		if c.Request.URL.Path == InquiryPath {
			inquiry.MethodNotAllowed(c)
			return
		}
		notFound(c)
	})
	r.NoRoute(notFound)

	return r
}
