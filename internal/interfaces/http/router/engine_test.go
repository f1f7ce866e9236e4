package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/infrastructure/auth"
	"github.com/propmanager/backend/internal/infrastructure/config"
	"github.com/propmanager/backend/internal/infrastructure/telemetry"
	"github.com/propmanager/backend/internal/interfaces/http/handler"
	"github.com/propmanager/backend/internal/interfaces/http/middleware"
)

type mockRoles struct {
	mock.Mock
}

func (m *mockRoles) GetRole(ctx context.Context, id uuid.UUID) (identity.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(identity.Role), args.Error(1)
}

type fixedCount int64

func (f fixedCount) Count(context.Context) (int64, error) { return int64(f), nil }

type testEngine struct {
	engine *gin.Engine
	jwt    *auth.JWTService
	roles  *mockRoles
}

func newTestEngine(t *testing.T, mutate func(*EngineConfig)) *testEngine {
	t.Helper()

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "propmanager-test",
		MaxRefreshCount:        5,
	})
	roles := new(mockRoles)
	up := handler.PingFunc(func(context.Context) error { return nil })

	cfg := EngineConfig{
		CORS:               middleware.DefaultCORSConfig(),
		MaxBodySize:        1 << 20,
		JWT:                middleware.DefaultJWTConfig(jwtService, auth.NewInMemoryTokenBlacklist(), nil),
		Roles:              roles,
		Swagger:            middleware.SwaggerConfig{Enabled: false},
		CompatibilityMount: true,
		Handlers: Handlers{
			Auth:          handler.NewAuthHandler(nil),
			Property:      handler.NewPropertyHandler(nil),
			Tenant:        handler.NewTenantHandler(nil),
			Payment:       handler.NewPaymentHandler(nil),
			Maintenance:   handler.NewMaintenanceHandler(nil),
			Notice:        handler.NewNoticeHandler(nil),
			Event:         handler.NewEventHandler(nil),
			Report:        handler.NewReportHandler(nil),
			Communication: handler.NewCommunicationHandler(nil),
			System:        handler.NewSystemHandler(up, nil, fixedCount(7), "test"),
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}

	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	return &testEngine{engine: engine, jwt: jwtService, roles: roles}
}

func (te *testEngine) token(t *testing.T, userID uuid.UUID, role identity.Role) string {
	t.Helper()
	pair, err := te.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID, Email: "u@example.com", Role: string(role)})
	require.NoError(t, err)
	return pair.AccessToken
}

func (te *testEngine) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	te.engine.ServeHTTP(w, req)
	return w
}

func TestEngine_PublicEndpoints(t *testing.T) {
	te := newTestEngine(t, nil)

	w := te.do(http.MethodGet, "/api", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"PropManager API is running"}`, w.Body.String())

	w = te.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	w = te.do(http.MethodGet, "/api/db-check", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"propertyCount":7`)

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestEngine_HealthDatabaseDown(t *testing.T) {
	te := newTestEngine(t, func(cfg *EngineConfig) {
		down := handler.PingFunc(func(context.Context) error { return errors.New("connection refused") })
		cfg.Handlers.System = handler.NewSystemHandler(down, nil, fixedCount(0), "test")
	})

	w := te.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"down"`)
}

func TestEngine_RequiresToken(t *testing.T) {
	te := newTestEngine(t, nil)

	for _, path := range []string{"/api/v1/properties", "/api/properties", "/api/v1/notices"} {
		w := te.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Contains(t, w.Body.String(), "MISSING_TOKEN")
	}
}

func TestEngine_AdminGuard(t *testing.T) {
	te := newTestEngine(t, nil)
	userID := uuid.New()
	te.roles.On("GetRole", mock.Anything, userID).Return(identity.RoleTenant, nil)

	token := te.token(t, userID, identity.RoleTenant)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/tenants"},
		{http.MethodGet, "/api/reports/occupancy"},
		{http.MethodPost, "/api/v1/properties"},
		{http.MethodPut, "/api/v1/payments/" + uuid.NewString() + "/confirm"},
	} {
		w := te.do(tc.method, tc.path, token, "")
		assert.Equal(t, http.StatusForbidden, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), "Required role(s): admin. Your role: tenant")
	}
}

func TestEngine_AuthRateLimit(t *testing.T) {
	te := newTestEngine(t, func(cfg *EngineConfig) {
		cfg.AuthRateLimiter = middleware.NewRateLimiter(1, time.Minute)
	})

	w := te.do(http.MethodPost, "/api/v1/auth/login", "", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = te.do(http.MethodPost, "/api/v1/auth/login", "", "{")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
}

func TestEngine_Metrics(t *testing.T) {
	metrics := telemetry.NewMetrics()
	te := newTestEngine(t, func(cfg *EngineConfig) {
		cfg.Metrics = metrics
	})

	te.do(http.MethodGet, "/api", "", "")
	w := te.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `propmanager_http_requests_total{method="GET",route="/api",status="2xx"} 1`)
}

func TestEngine_SwaggerDisabled(t *testing.T) {
	te := newTestEngine(t, nil)

	w := te.do(http.MethodGet, "/swagger/index.html", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEngine_Routes(t *testing.T) {
	te := newTestEngine(t, nil)

	registered := map[string]bool{}
	for _, r := range te.engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/signup",
		"GET /api/v1/auth/verify",
		"POST /api/v1/auth/change-password",
		"GET /api/v1/properties/:id",
		"POST /api/v1/tenants/:id/assign-property",
		"GET /api/v1/payments/history/:tenantId",
		"PUT /api/v1/maintenance/:id",
		"GET /api/v1/notices/read-status",
		"PUT /api/v1/events/:id/complete",
		"GET /api/v1/reports/:kind/export",
		"POST /api/v1/reports/:kind/archive",
		"PUT /api/v1/communication/:id/read",
		"GET /api/properties",
	} {
		assert.True(t, registered[want], want)
	}
	assert.False(t, registered["GET /metrics"], "metrics are off unless a provider is set")
}
