package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/internlink/internlink/internal/app/models/dto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimiter throttles requests per client IP using a Redis-backed
// fixed window. A nil Redis client disables limiting entirely, so the
// server still runs when no Redis is configured.
type RateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	logger zerolog.Logger
}

// NewRateLimiter creates a rate limiter over the given Redis client
func NewRateLimiter(client *redis.Client, limit int, window time.Duration, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: "internlink:ratelimit",
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Limit returns a middleware enforcing the window on one route group.
// The scope keeps auth endpoints and API endpoints on separate counters.
func (r *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil || r.client == nil || r.limit <= 0 {
			c.Next()
			return
		}

		if !r.allow(c.Request.Context(), scope, c.ClientIP()) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Too many requests")
			errorDetail = errorDetail.WithDetails("Rate limit exceeded, try again later")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

func (r *RateLimiter) allow(ctx context.Context, scope, clientIP string) bool {
	windowMs := r.window.Milliseconds()
	if windowMs <= 0 {
		return true
	}

	windowSlot := time.Now().UTC().UnixMilli() / windowMs
	key := fmt.Sprintf("%s:%s:%s:%d", r.prefix, scope, clientIP, windowSlot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	count, err := fixedWindowScript.Run(ctx, r.client, []string{key}, windowMs).Int64()
	if err != nil {
		// Redis being down should not take the API with it
		r.logger.Warn().Err(err).Str("scope", scope).Msg("Rate limit check failed, allowing request")
		return true
	}

	return count <= int64(r.limit)
}
