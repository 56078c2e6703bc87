package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimitKey derives the bucket a request counts against.
type RateLimitKey func(c *gin.Context) string

// ClientIPPerRoute buckets by client IP and matched route, so each limited endpoint has its own budget.
func ClientIPPerRoute(c *gin.Context) string {
	return c.ClientIP() + "|" + c.FullPath()
}

// RateLimit rejects requests over the limiter's rate with 429 and a Retry-After header.
// A failing limiter store rejects the request with 503 instead of letting it through.
func RateLimit(limiterInstance *limiter.Limiter, key RateLimitKey) gin.HandlerFunc {
	if key == nil {
		key = ClientIPPerRoute
	}
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		bucket := key(c)

		lctx, err := limiterInstance.Get(c.Request.Context(), bucket)
		if err != nil {
			logger.Error("Failed to get rate limit context", slog.String("bucket", bucket), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Rate limiter unavailable"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			wait := time.Until(time.Unix(lctx.Reset, 0))
			if wait < time.Second {
				wait = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(wait.Seconds())))
			logger.Warn("Rate limit exceeded", slog.String("bucket", bucket), slog.Int64("limit", lctx.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
