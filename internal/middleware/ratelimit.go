package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
)

// NewRateLimiter builds an in-memory per-key limiter from a formatted rate
// such as "300-M" (300 requests per minute).
func NewRateLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit returns a Gin middleware that limits requests per client IP.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		lctx, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			// Fail open.
			logger.Get().Warnw("rate limit check failed", "ip", ip, "error", err.Error())
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			logger.Get().Warnw("rate limit exceeded", "ip", ip, "limit", lctx.Limit)
			writeError(c, apperrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
