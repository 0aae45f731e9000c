package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBackendTestRouter(configured bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/jobs", BackendRequired(configured), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestBackendRequiredBlocksWithoutBackend(t *testing.T) {
	router := newBackendTestRouter(false)

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "SRV_003")
	assert.Contains(t, w.Body.String(), "Backend not configured")
}

func TestBackendRequiredPassesWhenConfigured(t *testing.T) {
	router := newBackendTestRouter(true)

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
