package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serenoapp/sereno-api/pkg/ratelimit"
	"go.uber.org/zap"
)

// RateLimitMiddleware limita requisições por IP usando o limitador Redis
type RateLimitMiddleware struct {
	limiter *ratelimit.RedisLimiter
	logger  *zap.Logger
	limit   int
	period  time.Duration
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting
func NewRateLimitMiddleware(limiter *ratelimit.RedisLimiter, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
		limit:   100,
		period:  time.Minute,
	}
}

// IPRateLimit limita requisições por IP
func (m *RateLimitMiddleware) IPRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		config := ratelimit.LimitConfig{
			Key:    c.ClientIP(),
			Limit:  m.limit,
			Period: m.period,
		}

		allowed, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			// Fail-open: sem Redis, a requisição passa
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(m.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			m.logger.Warn("rate limit excedido",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path))
			c.Header("Retry-After", strconv.Itoa(int(resetAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Muitas requisições. Tente novamente em instantes.",
			})
			return
		}

		c.Next()
	}
}
