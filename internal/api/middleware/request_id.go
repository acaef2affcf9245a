package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	// requestIDMaxLen bounds client-supplied ids before they reach the logs.
	requestIDMaxLen = 64
)

// RequestID propagates X-Request-ID, generating a UUID when absent or too long.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "" outside that middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// requestFields tags log lines with the request id and, after JWTAuth, the caller.
func requestFields(c *gin.Context) []zap.Field {
	var fields []zap.Field
	if rid := GetRequestID(c); rid != "" {
		fields = append(fields, zap.String(requestIDKey, rid))
	}
	if uid, ok := c.Get("user_id"); ok {
		fields = append(fields, zap.Any("user_id", uid))
	}
	return fields
}
