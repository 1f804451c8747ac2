package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muhammad-yeasin/wave2-attendance/pkg/redis"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/response"
)

// RateLimit per-IP sliding-window limit backed by Redis.
// A nil client or a non-positive limit disables it, and Redis errors let the
// request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limit check failed, allowing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			response.AbortWithError(c, http.StatusTooManyRequests, 10004, "Too many requests. Please slow down.")
			return
		}

		c.Next()
	}
}
