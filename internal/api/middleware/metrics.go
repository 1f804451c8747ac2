package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammad-yeasin/wave2-attendance/pkg/metrics"
)

// Metrics records request latency by matched route.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
