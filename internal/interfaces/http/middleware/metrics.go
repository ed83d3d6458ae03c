package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/isletme/backend/internal/infrastructure/telemetry"
)

// HTTPMetrics records count and latency of every request by route pattern.
// Unmatched routes are grouped under "unmatched" to bound cardinality.
func HTTPMetrics(metrics *telemetry.Metrics) gin.HandlerFunc {
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
