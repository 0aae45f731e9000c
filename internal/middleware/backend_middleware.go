package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models/dto"
)

// BackendRequired guards routes that need the database. Without a
// configured backend the process still serves the session and live
// surfaces, but every data route answers 503 here instead of reaching
// a repository with no pool behind it.
func BackendRequired(configured bool) gin.HandlerFunc {
	if configured {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Backend not configured")
		errorDetail = errorDetail.WithDetails("Data endpoints are unavailable until a database backend is configured")

		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
	}
}
