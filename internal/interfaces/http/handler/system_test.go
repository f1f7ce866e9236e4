package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propmanager/backend/internal/interfaces/http/dto"
)

type countFunc func(ctx context.Context) (int64, error)

func (f countFunc) Count(ctx context.Context) (int64, error) { return f(ctx) }

var (
	pingOK   = PingFunc(func(context.Context) error { return nil })
	pingFail = PingFunc(func(context.Context) error { return errors.New("connection refused") })
)

func serveSystem(h *SystemHandler, method, path string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/db-check", h.DBCheck)
	r.GET("/system/info", h.GetSystemInfo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestSystemHandler_Root(t *testing.T) {
	h := NewSystemHandler(pingOK, nil, countFunc(func(context.Context) (int64, error) { return 0, nil }), "test")

	w := serveSystem(h, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"PropManager API is running"}`, w.Body.String())
}

func TestSystemHandler_Health(t *testing.T) {
	noCount := countFunc(func(context.Context) (int64, error) { return 0, nil })

	tests := []struct {
		name       string
		db         Pinger
		redis      Pinger
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{"all up", pingOK, pingOK, http.StatusOK, "ok", map[string]string{"database": "up", "redis": "up"}},
		{"without redis", pingOK, nil, http.StatusOK, "ok", map[string]string{"database": "up"}},
		{"redis down", pingOK, pingFail, http.StatusOK, "degraded", map[string]string{"database": "up", "redis": "down"}},
		{"database down", pingFail, pingOK, http.StatusServiceUnavailable, "unavailable", map[string]string{"database": "down", "redis": "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveSystem(NewSystemHandler(tt.db, tt.redis, noCount, "test"), http.MethodGet, "/health")
			require.Equal(t, tt.wantCode, w.Code)

			var health HealthResponse
			resp := decode(t, w, &health)
			assert.Equal(t, tt.wantCode == http.StatusOK, resp.Success)
			assert.Equal(t, tt.wantStatus, health.Status)
			assert.Equal(t, tt.wantChecks, health.Checks)
		})
	}
}

func TestSystemHandler_DBCheck(t *testing.T) {
	t.Run("reports the property count", func(t *testing.T) {
		h := NewSystemHandler(pingOK, nil, countFunc(func(context.Context) (int64, error) { return 12, nil }), "test")
		w := serveSystem(h, http.MethodGet, "/db-check")
		require.Equal(t, http.StatusOK, w.Code)

		var check DBCheckResponse
		decode(t, w, &check)
		assert.True(t, check.Connected)
		assert.Equal(t, int64(12), check.PropertyCount)
	})

	t.Run("fails when the query fails", func(t *testing.T) {
		h := NewSystemHandler(pingOK, nil, countFunc(func(context.Context) (int64, error) {
			return 0, errors.New("relation does not exist")
		}), "test")
		w := serveSystem(h, http.MethodGet, "/db-check")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeServiceUnavailable, errorCode(t, w))
	})
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler(pingOK, nil, countFunc(func(context.Context) (int64, error) { return 0, nil }), "1.2.3")

	w := serveSystem(h, http.MethodGet, "/system/info")
	require.Equal(t, http.StatusOK, w.Code)

	var info SystemInfoResponse
	decode(t, w, &info)
	assert.Equal(t, "PropManager API", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.NotEmpty(t, info.Uptime)
}
