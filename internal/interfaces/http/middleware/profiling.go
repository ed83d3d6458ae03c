package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling labels CPU samples taken while serving a request with the
// route pattern and method, so Pyroscope can break profiles down per
// endpoint. Tenant is left out to keep label cardinality low.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || route == "/health" {
			c.Next()
			return
		}
		labels := pyroscope.Labels("route", route, "method", c.Request.Method)
		pyroscope.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
