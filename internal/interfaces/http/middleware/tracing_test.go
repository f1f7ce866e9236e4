package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/propmanager/backend/internal/domain/identity"
)

func tracedRouter(t *testing.T, enabled bool) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	router := gin.New()
	router.Use(RequestID(), Tracing(TracingConfig{
		ServiceName: "propmanager-test",
		Enabled:     enabled,
		Options:     []otelgin.Option{otelgin.WithTracerProvider(tp)},
	}))
	router.Use(func(c *gin.Context) {
		c.Set(JWTUserIDKey, "user-1")
		c.Set(JWTRoleKey, identity.RoleAdmin)
		c.Next()
	}, TracingAttributeInjector())

	router.GET("/api/properties/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/reports/occupancy", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router, recorder
}

func TestTracing_RecordsServerSpan(t *testing.T) {
	router, recorder := tracedRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/properties/42", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("r", 200))
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := spans[0].Attributes()
	assert.Contains(t, attrs, attribute.String("user_id", "user-1"))
	assert.Contains(t, attrs, attribute.String("user_role", "admin"))
	assert.Contains(t, attrs, attribute.String("request_id", strings.Repeat("r", MaxRequestIDLength)))
	assert.Contains(t, attrs, attribute.String("http.route", "/api/properties/:id"))
}

func TestTracing_ServerErrorStatus(t *testing.T) {
	router, recorder := tracedRouter(t, true)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/reports/occupancy", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_SkipsHealth(t *testing.T) {
	router, recorder := tracedRouter(t, true)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Empty(t, recorder.Ended())
}

func TestTracing_Disabled(t *testing.T) {
	router, recorder := tracedRouter(t, false)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.Ended())
}
