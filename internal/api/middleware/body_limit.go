package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammad-yeasin/wave2-attendance/pkg/response"
)

// BodyLimit caps request bodies at maxBytes. Oversized JSON bodies then fail
// to bind and are answered by the handler as invalid input.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.AbortWithError(c, http.StatusRequestEntityTooLarge, 10005, "Request body is too large.")
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
