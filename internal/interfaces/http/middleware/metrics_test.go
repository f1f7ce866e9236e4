package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/propmanager/backend/internal/infrastructure/telemetry"
)

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	m := telemetry.NewMetrics()

	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/api/properties/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/properties/1", "/api/properties/2", "/nope", "/metrics"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP propmanager_http_requests_total Total number of HTTP requests handled.
# TYPE propmanager_http_requests_total counter
propmanager_http_requests_total{method="GET",route="/api/properties/:id",status="2xx"} 2
propmanager_http_requests_total{method="GET",route="unmatched",status="4xx"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "propmanager_http_requests_total"))
}
