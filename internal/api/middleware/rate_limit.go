package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/metrics"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/redis"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// RateLimit sliding-window limit per client IP and route, backed by Redis.
// A nil rdb, or a Redis error, lets the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitHits.WithLabelValues(c.FullPath()).Inc()
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
