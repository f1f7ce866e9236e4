package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/propmanager/backend/docs"
	calendarapp "github.com/propmanager/backend/internal/application/calendar"
	"github.com/propmanager/backend/internal/application/communication"
	identityapp "github.com/propmanager/backend/internal/application/identity"
	maintenanceapp "github.com/propmanager/backend/internal/application/maintenance"
	noticeapp "github.com/propmanager/backend/internal/application/notice"
	paymentapp "github.com/propmanager/backend/internal/application/payment"
	propertyapp "github.com/propmanager/backend/internal/application/property"
	reportapp "github.com/propmanager/backend/internal/application/report"
	tenantapp "github.com/propmanager/backend/internal/application/tenant"
	"github.com/propmanager/backend/internal/infrastructure/auth"
	"github.com/propmanager/backend/internal/infrastructure/cache"
	"github.com/propmanager/backend/internal/infrastructure/config"
	"github.com/propmanager/backend/internal/infrastructure/event"
	"github.com/propmanager/backend/internal/infrastructure/export"
	"github.com/propmanager/backend/internal/infrastructure/logger"
	"github.com/propmanager/backend/internal/infrastructure/migration"
	"github.com/propmanager/backend/internal/infrastructure/persistence"
	"github.com/propmanager/backend/internal/infrastructure/scheduler"
	"github.com/propmanager/backend/internal/infrastructure/storage"
	"github.com/propmanager/backend/internal/infrastructure/telemetry"
	"github.com/propmanager/backend/internal/interfaces/http/handler"
	"github.com/propmanager/backend/internal/interfaces/http/middleware"
	"github.com/propmanager/backend/internal/interfaces/http/router"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

//	@title			PropManager API
//	@version		1.0
//	@description	Property management backend: properties, tenants, rent payments, maintenance, notices, calendar and reports.

//	@contact.name	API Support
//	@contact.url	https://github.com/propmanager/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:3000
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry: traces and logs share the collector settings
	telCfg := telemetry.ConfigFromSettings(cfg.Telemetry)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, telCfg, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log := logProvider.Bridge(baseLog, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PropManager backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFromSettings(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}

	var metrics *telemetry.Metrics
	if cfg.Telemetry.MetricsEnabled {
		metrics = telemetry.NewMetrics()
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = !cfg.App.IsProduction()
	if err := telemetry.NewDBTracingPlugin(dbTracing, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if metrics != nil {
		if err := metrics.RegisterDBStats(sqlDB, cfg.Database.DBName); err != nil {
			log.Warn("Failed to register database pool metrics", zap.Error(err))
		}
	}

	if cfg.Migration.AutoMigrate {
		if err := runMigrations(sqlDB, cfg.Migration.Path, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Redis backs the token blacklist and the report cache when enabled
	var (
		blacklist   auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
		redisPinger handler.Pinger
		reportOpts  []reportapp.Option
		closeRedis  = func() error { return nil }
	)
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
		closeRedis = rdb.Close
		blacklist = auth.NewRedisTokenBlacklist(rdb)
		redisPinger = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		reportOpts = append(reportOpts, reportapp.WithCache(cache.NewRedisReportCache(rdb, cfg.Cache.ReportTTL)))
	} else {
		log.Warn("Redis disabled; token revocation is kept in memory")
	}

	objects, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	reportOpts = append(reportOpts, reportapp.WithStorage(objects, cfg.Storage.PresignExpiration))

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	maintenanceRepo := persistence.NewGormMaintenanceRepository(db.DB)
	noticeRepo := persistence.NewGormNoticeRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	archiveRepo := persistence.NewGormReportArchiveRepository(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	maintenanceStatusHandler := communication.NewMaintenanceStatusHandler(messageRepo, log)
	eventBus.Subscribe(maintenanceStatusHandler)
	if metrics != nil {
		eventBus.Subscribe(metrics.EventHandler())
	}
	log.Info("Event handlers registered",
		zap.Strings("maintenance_status_events", maintenanceStatusHandler.EventTypes()),
	)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	reportService := reportapp.NewReportService(propertyRepo, userRepo, archiveRepo, export.NewExcelRenderer(), log, reportOpts...)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	propertyService := propertyapp.NewPropertyService(propertyRepo, reportService, log)
	tenantService := tenantapp.NewTenantService(userRepo, propertyRepo, persistence.NewGormTransactionScope(db.DB), reportService, log)
	paymentService := paymentapp.NewPaymentService(paymentRepo, userRepo, propertyRepo, log)
	maintenanceService := maintenanceapp.NewMaintenanceService(maintenanceRepo, propertyRepo, eventBus, log)
	noticeService := noticeapp.NewNoticeService(noticeRepo, log)
	calendarService := calendarapp.NewCalendarService(eventRepo, propertyRepo, userRepo, log)
	messageService := communication.NewMessageService(messageRepo, userRepo, log)

	// Report snapshot scheduler
	var snapshotScheduler *scheduler.ReportSnapshotScheduler
	if cfg.Scheduler.Enabled {
		schedCfg, err := scheduler.ConfigFromSettings(cfg.Scheduler)
		if err != nil {
			log.Fatal("Invalid scheduler configuration", zap.Error(err))
		}
		var opts []scheduler.Option
		if metrics != nil {
			opts = append(opts, scheduler.WithResultHook(metrics.RecordReportSnapshot))
		}
		snapshotScheduler, err = scheduler.NewReportSnapshotScheduler(schedCfg, reportService, log, opts...)
		if err != nil {
			log.Fatal("Failed to create report scheduler", zap.Error(err))
		}
		if err := snapshotScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start report scheduler", zap.Error(err))
		}
		log.Info("Report scheduler started",
			zap.String("schedule", schedCfg.Schedule),
			zap.Duration("job_timeout", schedCfg.JobTimeout),
		)
	}

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()

	var rateLimiter, authRateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		rateLimiter.StartCleanup(cleanupCtx, 5*time.Minute)
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authRateLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRateLimiter.StartCleanup(cleanupCtx, 5*time.Minute)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engineCfg := router.EngineConfig{
		Logger:         log,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		CORS:           cors,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		Tracing: middleware.TracingConfig{
			ServiceName: telCfg.ServiceName,
			Enabled:     telCfg.Enabled,
		},
		RateLimiter:     rateLimiter,
		AuthRateLimiter: authRateLimiter,
		JWT:             middleware.DefaultJWTConfig(jwtService, blacklist, log),
		Roles:           userRepo,
		Swagger: middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		},
		Profiling:          profiler.IsEnabled(),
		CompatibilityMount: true,
		Handlers: router.Handlers{
			Auth:          handler.NewAuthHandler(authService),
			Property:      handler.NewPropertyHandler(propertyService),
			Tenant:        handler.NewTenantHandler(tenantService),
			Payment:       handler.NewPaymentHandler(paymentService),
			Maintenance:   handler.NewMaintenanceHandler(maintenanceService),
			Notice:        handler.NewNoticeHandler(noticeService),
			Event:         handler.NewEventHandler(calendarService),
			Report:        handler.NewReportHandler(reportService),
			Communication: handler.NewCommunicationHandler(messageService),
			System:        handler.NewSystemHandler(db, redisPinger, propertyRepo, version),
		},
	}
	if metrics != nil {
		engineCfg.Metrics = metrics
	}

	engine, err := router.NewEngine(engineCfg)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if snapshotScheduler != nil {
		if err := snapshotScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping report scheduler", zap.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := closeRedis(); err != nil {
		log.Error("Error closing Redis", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runMigrations applies pending schema migrations at boot. The migrator is
// not closed: closing it would also close sqlDB.
func runMigrations(sqlDB *sql.DB, path string, log *zap.Logger) error {
	src, err := migration.ResolveSource(path)
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, src, log)
	if err != nil {
		return err
	}
	return m.Up()
}
