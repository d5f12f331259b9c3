package middleware

import (
	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware returns the otelgin server span middleware followed by a
// handler that tags that span with the caller and request id.
func TracingMiddleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{otelgin.Middleware(serviceName), annotateSpan}
}

// annotateSpan must run inside otelgin: the server span only lives in the
// request context while the chain is executing.
func annotateSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	c.Next()

	if !span.IsRecording() {
		return
	}
	if userID := c.GetString(util.UserIDKey); userID != "" {
		span.SetAttributes(attribute.String("user.id", userID))
	}
	if requestID := c.GetString(util.RequestIDKey); requestID != "" {
		span.SetAttributes(attribute.String("request.id", requestID))
	}
	for _, ginErr := range c.Errors {
		if ginErr.Err != nil {
			span.RecordError(ginErr.Err)
			span.SetStatus(codes.Error, ginErr.Error())
		}
	}
}
