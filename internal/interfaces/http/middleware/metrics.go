package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"riverdeals.backend/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route. The
// route template (not the raw URL) keys the series so path parameters
// do not explode cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
