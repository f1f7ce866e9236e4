package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/propmanager/backend/internal/infrastructure/logger"
	"github.com/propmanager/backend/internal/interfaces/http/middleware"
)

// MetricsProvider records request metrics and serves the exposition endpoint
type MetricsProvider interface {
	middleware.RequestRecorder
	Handler() http.Handler
}

// EngineConfig holds everything NewEngine wires together
type EngineConfig struct {
	Logger         *zap.Logger
	TrustedProxies []string
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	Tracing        middleware.TracingConfig
	// Metrics is optional; nil disables /metrics
	Metrics MetricsProvider
	// RateLimiter and AuthRateLimiter are optional
	RateLimiter     *middleware.RateLimiter
	AuthRateLimiter *middleware.RateLimiter
	JWT             middleware.JWTMiddlewareConfig
	Roles           middleware.RoleLookup
	Swagger         middleware.SwaggerConfig
	// Profiling labels API requests for the continuous profiler
	Profiling bool
	// CompatibilityMount also serves the API under the unversioned /api prefix
	CompatibilityMount bool
	Handlers           Handlers
}

// NewEngine builds the gin engine with the global middleware chain and
// every route mounted.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			return nil, err
		}
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security headers, CORS and body limit
	// 5. Tracing and metrics
	// 6. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.CORS))
	engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	engine.Use(middleware.Tracing(cfg.Tracing))
	if cfg.Metrics != nil {
		engine.Use(middleware.Metrics(cfg.Metrics))
		engine.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter, middleware.ClientIPKey, log))
	}

	h := cfg.Handlers
	engine.GET("/health", h.System.Health)
	engine.GET("/api", h.System.Root)
	engine.GET("/api/v1", h.System.Root)
	engine.GET("/api/db-check", h.System.DBCheck)
	engine.GET("/api/v1/db-check", h.System.DBCheck)

	docs := engine.Group("/swagger", middleware.SwaggerProtection(cfg.Swagger))
	docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var authLimit gin.HandlerFunc
	if cfg.AuthRateLimiter != nil {
		authLimit = middleware.RateLimit(cfg.AuthRateLimiter, middleware.ClientIPKey, log)
	}

	r := NewRouter(engine, WithAPIVersion("v1"), WithCompatibilityMount(cfg.CompatibilityMount))
	r.Use(middleware.JWTAuth(cfg.JWT), middleware.TracingAttributeInjector())
	if cfg.Profiling {
		r.Use(middleware.Profiling())
	}
	RegisterAPI(r, h, middleware.RequireAdmin(cfg.Roles), authLimit)
	r.Setup()

	return engine, nil
}
