package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/propmanager/backend/internal/infrastructure/logger"
	"github.com/propmanager/backend/internal/interfaces/http/dto"
)

const (
	apiName       = "PropManager API"
	healthTimeout = 3 * time.Second
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// PropertyCounter counts stored properties
type PropertyCounter interface {
	Count(ctx context.Context) (int64, error)
}

// SystemHandler handles liveness, health and build information
type SystemHandler struct {
	BaseHandler
	db         Pinger
	redis      Pinger
	properties PropertyCounter
	version    string
	startTime  time.Time
}

// NewSystemHandler creates a new SystemHandler. redis may be nil.
func NewSystemHandler(db Pinger, redis Pinger, properties PropertyCounter, version string) *SystemHandler {
	return &SystemHandler{
		db:         db,
		redis:      redis,
		properties: properties,
		version:    version,
		startTime:  time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"PropManager API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// HealthResponse reports the status of each dependency
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// DBCheckResponse is returned by the connectivity probe
type DBCheckResponse struct {
	Connected     bool  `json:"connected"`
	PropertyCount int64 `json:"propertyCount"`
}

// Root godoc
// @Summary      API liveness message
// @Tags         system
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: apiName + " is running"})
}

// Health godoc
// @Summary      Dependency health
// @Description  503 when the database is unreachable; redis failures degrade the status only
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: map[string]string{}, Timestamp: time.Now().UTC()}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Error("Database health check failed", zap.Error(err))
		resp.Checks["database"] = "down"
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		resp.Checks["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Redis health check failed", zap.Error(err))
			resp.Checks["redis"] = "down"
			if status == http.StatusOK {
				resp.Status = "degraded"
			}
		} else {
			resp.Checks["redis"] = "up"
		}
	}

	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}

// DBCheck godoc
// @Summary      Database connectivity probe
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=DBCheckResponse}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /db-check [get]
func (h *SystemHandler) DBCheck(c *gin.Context) {
	count, err := h.properties.Count(c.Request.Context())
	if err != nil {
		logger.GetGinLogger(c).Error("Database check failed", zap.Error(err))
		h.ServiceUnavailable(c, "Database connection failed")
		return
	}
	h.Success(c, DBCheckResponse{Connected: true, PropertyCount: count})
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Security     BearerAuth
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      apiName,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
