package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// installTestTracer swaps the global tracer provider for a recording one and
// restores the previous provider when the test ends.
func installTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(t.Context())
	})

	return recorder
}

func newTracedRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(
		Tracing(TracingConfig{ServiceName: "costview-test", Enabled: enabled}),
		RequestID(),
		TraceAttributes(),
	)
	engine.GET("/billing/:source", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"source": c.Param("source")})
	})
	engine.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{})
	})
	return engine
}

func TestTracing_Disabled(t *testing.T) {
	recorder := installTestTracer(t)
	engine := newTracedRouter(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/billing/suite", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.Ended())
}

func TestTracing_RecordsServerSpan(t *testing.T) {
	recorder := installTestTracer(t)
	engine := newTracedRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/billing/suite", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /billing/:source", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("request_id", "req-42"))
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTraceAttributes_MarksErrorResponses(t *testing.T) {
	recorder := installTestTracer(t)
	engine := newTracedRouter(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.status_code", http.StatusNotFound))
}
