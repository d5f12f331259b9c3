package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devfinds/devfinds/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingMiddlewareTagsServerSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(TracingMiddleware("devfinds-test")...)
	r.GET("/friends", func(c *gin.Context) {
		c.Set(util.UserIDKey, "user-1")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/friends", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.String("user.id", "user-1"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("request.id", "req-42"))
}
