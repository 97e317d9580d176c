package middleware

import (
	"net/http"

	"github.com/costview/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds settings for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing wraps every request in a server span named after its route
// pattern. Pair it with TraceAttributes further down the chain; attributes
// added after the wrapped handlers return would land on an ended span.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// TraceAttributes enriches the current span with the request id, the caller
// resolved by JWTAuth, and the response status. Must be registered after
// Tracing and after JWTAuth.
func TraceAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if requestID := c.GetString(RequestIDHeader); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if principal, ok := identity.PrincipalFrom(c.Request.Context()); ok {
			span.SetAttributes(
				attribute.String("user_id", principal.UserID.String()),
				attribute.String("user_role", string(principal.Role)),
			)
		}
		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
			span.SetAttributes(attribute.Int("http.status_code", status))
		}
	}
}
