// Package middleware holds the gin middleware of the HTTP API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultServiceName names the HTTP server span source
const DefaultServiceName = "isletme-backend"

// Tracing starts a server span per request. Place SpanAttributes after the
// auth middleware to tag the span with tenant and user.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	return otelgin.Middleware(serviceName)
}

// SpanAttributes tags the current span with request, tenant and user ids
// and marks it failed for 5xx responses.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		attrs := make([]attribute.KeyValue, 0, 3)
		if id := c.GetString(RequestIDKey); id != "" {
			attrs = append(attrs, attribute.String("request_id", id))
		}
		if id := GetTenantID(c); id != "" {
			attrs = append(attrs, attribute.String("tenant_id", id))
		}
		if id := GetJWTUserID(c); id != "" {
			attrs = append(attrs, attribute.String("user_id", id))
		}
		span.SetAttributes(attrs...)

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
