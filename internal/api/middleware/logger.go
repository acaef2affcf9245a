package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// quietPaths are polled by orchestrators and scrapers; successes log at debug.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Logger writes one access line per request.
//
// The level follows the status class: 5xx is an error, 4xx a warning and the
// rest info, except successful health and metrics hits which drop to debug so
// polling does not drown the room availability traffic. Lines carry the
// matched route template next to the raw path, so /api/rooms/7 and
// /api/rooms/9 group under /api/rooms/:id.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := append([]zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}, requestFields(c)...)

		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("client error", fields...)
		case quietPaths[path]:
			logger.Debug("health check", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}
