package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/response"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over the
// cap is refused up front; chunked bodies are cut by MaxBytesReader and the
// JSON binders report the overflow with the same 413.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, pkgerrors.ErrBodyTooLarge.Code, pkgerrors.ErrBodyTooLarge.Message)
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
