package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	calendarapp "github.com/propmanager/backend/internal/application/calendar"
	"github.com/propmanager/backend/internal/application/communication"
	appidentity "github.com/propmanager/backend/internal/application/identity"
	maintenanceapp "github.com/propmanager/backend/internal/application/maintenance"
	noticeapp "github.com/propmanager/backend/internal/application/notice"
	paymentapp "github.com/propmanager/backend/internal/application/payment"
	propertyapp "github.com/propmanager/backend/internal/application/property"
	reportapp "github.com/propmanager/backend/internal/application/report"
	tenantapp "github.com/propmanager/backend/internal/application/tenant"
	"github.com/propmanager/backend/internal/domain/identity"
	"github.com/propmanager/backend/internal/domain/property"
	"github.com/propmanager/backend/internal/infrastructure/auth"
	"github.com/propmanager/backend/internal/infrastructure/config"
	"github.com/propmanager/backend/internal/infrastructure/export"
	"github.com/propmanager/backend/internal/infrastructure/persistence"
	"github.com/propmanager/backend/internal/infrastructure/persistence/models"
	"github.com/propmanager/backend/internal/infrastructure/storage"
	"github.com/propmanager/backend/internal/interfaces/http/dto"
	"github.com/propmanager/backend/internal/interfaces/http/middleware"
)

const testPassword = "Sup3rSecret"

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// testEnv wires every handler to real services over an in-memory database.
// Requests carry real access tokens so the JWT middleware runs as in production.
type testEnv struct {
	t          *testing.T
	db         *gorm.DB
	jwt        *auth.JWTService
	users      *persistence.GormUserRepository
	properties *persistence.GormPropertyRepository
	storage    *storage.StubObjectStorage
	engine     *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	log := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "propmanager-test",
		MaxRefreshCount:        5,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	users := persistence.NewGormUserRepository(db)
	properties := persistence.NewGormPropertyRepository(db)
	objects := storage.NewStubObjectStorage()

	env := &testEnv{
		t:          t,
		db:         db,
		jwt:        jwtService,
		users:      users,
		properties: properties,
		storage:    objects,
	}

	authHandler := NewAuthHandler(appidentity.NewAuthService(users, jwtService, blacklist, log))
	propertyHandler := NewPropertyHandler(propertyapp.NewPropertyService(properties, nil, log))
	tenantHandler := NewTenantHandler(tenantapp.NewTenantService(
		users, properties, persistence.NewGormTransactionScope(db), nil, log))
	paymentHandler := NewPaymentHandler(paymentapp.NewPaymentService(
		persistence.NewGormPaymentRepository(db), users, properties, log))
	maintenanceHandler := NewMaintenanceHandler(maintenanceapp.NewMaintenanceService(
		persistence.NewGormMaintenanceRepository(db), properties, nil, log))
	noticeHandler := NewNoticeHandler(noticeapp.NewNoticeService(persistence.NewGormNoticeRepository(db), log))
	eventHandler := NewEventHandler(calendarapp.NewCalendarService(
		persistence.NewGormEventRepository(db), properties, users, log))
	communicationHandler := NewCommunicationHandler(communication.NewMessageService(
		persistence.NewGormMessageRepository(db), users, log))
	reportHandler := NewReportHandler(reportapp.NewReportService(
		properties, users, persistence.NewGormReportArchiveRepository(db), export.NewExcelRenderer(), log,
		reportapp.WithStorage(objects, 10*time.Minute),
		reportapp.WithClock(func() time.Time { return time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC) }),
	))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("", middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		Validator:      jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      []string{"/auth/signup", "/auth/login", "/auth/refresh", "/auth/verify"},
	}))

	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.RefreshToken)
	api.GET("/auth/verify", authHandler.Verify)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.GetCurrentUser)
	api.PUT("/auth/profile", authHandler.UpdateProfile)
	api.POST("/auth/change-password", authHandler.ChangePassword)

	api.GET("/properties", propertyHandler.List)
	api.GET("/properties/:id", propertyHandler.Get)
	api.POST("/properties", propertyHandler.Create)
	api.PUT("/properties/:id", propertyHandler.Update)
	api.DELETE("/properties/:id", propertyHandler.Delete)

	api.GET("/tenants", tenantHandler.List)
	api.GET("/tenants/:id", tenantHandler.Get)
	api.POST("/tenants", tenantHandler.Create)
	api.PUT("/tenants/:id", tenantHandler.Update)
	api.DELETE("/tenants/:id", tenantHandler.Delete)
	api.POST("/tenants/:id/assign-property", tenantHandler.AssignProperty)

	api.POST("/payments", paymentHandler.Record)
	api.POST("/payments/submit", paymentHandler.Submit)
	api.GET("/payments", paymentHandler.List)
	api.GET("/payments/history/:tenantId", paymentHandler.History)
	api.PUT("/payments/:id/confirm", paymentHandler.Confirm)
	api.PUT("/payments/:id/reject", paymentHandler.Reject)

	api.POST("/maintenance", maintenanceHandler.Create)
	api.GET("/maintenance", maintenanceHandler.List)
	api.GET("/maintenance/:id", maintenanceHandler.Get)
	api.PUT("/maintenance/:id", maintenanceHandler.UpdateStatus)

	api.GET("/notices", noticeHandler.List)
	api.GET("/notices/read-status", noticeHandler.ReadStatus)
	api.POST("/notices", noticeHandler.Create)
	api.DELETE("/notices/:id", noticeHandler.Delete)
	api.POST("/notices/:id/read", noticeHandler.MarkRead)

	api.GET("/events", eventHandler.List)
	api.POST("/events", eventHandler.Create)
	api.PUT("/events/:id", eventHandler.Update)
	api.DELETE("/events/:id", eventHandler.Delete)
	api.PUT("/events/:id/confirm", eventHandler.Confirm)
	api.PUT("/events/:id/complete", eventHandler.Complete)

	api.POST("/communication", communicationHandler.Send)
	api.GET("/communication", communicationHandler.List)
	api.PUT("/communication/:id/read", communicationHandler.MarkRead)

	api.GET("/reports/occupancy", reportHandler.Occupancy)
	api.GET("/reports/revenue", reportHandler.Revenue)
	api.GET("/reports/properties-summary", reportHandler.PropertiesSummary)
	api.GET("/reports/archives", reportHandler.ListArchives)
	api.GET("/reports/:kind/export", reportHandler.Export)
	api.POST("/reports/:kind/archive", reportHandler.Archive)

	env.engine = engine
	return env
}

// createUser stores a user with testPassword
func (e *testEnv) createUser(email string, role identity.Role) *identity.User {
	e.t.Helper()
	u, err := identity.NewUser(email, testPassword, "Test", "User", role)
	require.NoError(e.t, err)
	require.NoError(e.t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) createProperty(name string, rent string) *property.Property {
	e.t.Helper()
	p, err := property.NewProperty(property.Details{
		Name:      name,
		Address:   "1 Test Street",
		Type:      property.TypeApartment,
		Units:     1,
		Bedrooms:  2,
		Bathrooms: 1,
		Rent:      decimal.RequireFromString(rent),
	})
	require.NoError(e.t, err)
	require.NoError(e.t, e.properties.Create(context.Background(), p))
	return p
}

func (e *testEnv) letProperty(p *property.Property, tenant *identity.User) {
	e.t.Helper()
	require.NoError(e.t, p.AssignTenant(tenant.ID))
	require.NoError(e.t, e.properties.Update(context.Background(), p))
}

func (e *testEnv) tokenFor(u *identity.User) string {
	e.t.Helper()
	pair, err := e.jwt.GenerateTokenPair(auth.GenerateTokenInput{UserID: u.ID, Email: u.Email, Role: u.Role.String()})
	require.NoError(e.t, err)
	return pair.AccessToken
}

// request sends body (marshalled to JSON unless it is a string) as u.
// A nil user sends no Authorization header.
func (e *testEnv) request(method, path string, u *identity.User, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+e.tokenFor(u))
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the envelope and its data into data
func decode(t *testing.T, w *httptest.ResponseRecorder, data any) dto.Response {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *dto.ErrorInfo  `json:"error"`
		Meta    *dto.Meta       `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return dto.Response{Success: raw.Success, Error: raw.Error, Meta: raw.Meta}
}

// errorCode returns the error code of a failed envelope
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decode(t, w, nil)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}

// rawData returns the undecoded data member of the envelope
func rawData(t *testing.T, w *httptest.ResponseRecorder) json.RawMessage {
	t.Helper()
	var raw struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	return raw.Data
}
