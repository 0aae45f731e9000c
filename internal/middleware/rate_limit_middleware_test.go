package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(t *testing.T, limit int, window time.Duration) *gin.Engine {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter := NewRateLimiter(client, limit, window, zerolog.Nop())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", limiter.Limit("auth"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doLogin(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:52100"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterAllowsWithinQuota(t *testing.T) {
	router := newRateLimitedRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doLogin(router))
	}
}

func TestRateLimiterRejectsOverQuota(t *testing.T) {
	router := newRateLimitedRouter(t, 2, time.Minute)

	assert.Equal(t, http.StatusOK, doLogin(router))
	assert.Equal(t, http.StatusOK, doLogin(router))
	assert.Equal(t, http.StatusTooManyRequests, doLogin(router))
}

func TestRateLimiterSeparatesClients(t *testing.T) {
	router := newRateLimitedRouter(t, 1, time.Minute)

	require.Equal(t, http.StatusOK, doLogin(router))
	require.Equal(t, http.StatusTooManyRequests, doLogin(router))

	// A different client IP gets its own counter
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "198.51.100.4:40200"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, 1, time.Minute, zerolog.Nop())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", limiter.Limit("auth"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doLogin(router))
	}
}
