package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/hirehub/backend/internal/application/catalog"
	hiringapp "github.com/hirehub/backend/internal/application/hiring"
	identityapp "github.com/hirehub/backend/internal/application/identity"
	"github.com/hirehub/backend/internal/infrastructure/auth"
	"github.com/hirehub/backend/internal/infrastructure/cache"
	"github.com/hirehub/backend/internal/infrastructure/config"
	"github.com/hirehub/backend/internal/infrastructure/event"
	"github.com/hirehub/backend/internal/infrastructure/logger"
	"github.com/hirehub/backend/internal/infrastructure/persistence"
	"github.com/hirehub/backend/internal/infrastructure/storage"
	"github.com/hirehub/backend/internal/infrastructure/telemetry"
	"github.com/hirehub/backend/internal/interfaces/http/handler"
	"github.com/hirehub/backend/internal/interfaces/http/middleware"
	"github.com/hirehub/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//	@title			HireHub Backend API
//	@version		1.0
//	@description	Catalog of hireable AI employees with an idempotent hiring subsystem

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is injected at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Export zap output to the OTEL Collector when log shipping is enabled.
	// The bridged logger still writes to the configured local output.
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logs provider", zap.Error(err))
	}
	defer shutdownWithTimeout(logsProvider.Shutdown, "logger provider", log)

	if logsProvider.IsEnabled() {
		bridged, err := telemetry.CreateBridgedLoggerFromConfig(logCfg, logsProvider, cfg.Telemetry.ServiceName)
		if err != nil {
			log.Warn("Failed to bridge logs to OTEL, keeping local output only", zap.Error(err))
		} else {
			log = bridged
		}
	}

	log.Info("Starting HireHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// OpenTelemetry providers (no-op when telemetry is disabled)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdownWithTimeout(tracerProvider.Shutdown, "tracer provider", log)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdownWithTimeout(meterProvider.Shutdown, "meter provider", log)

	// Continuous profiling (no-op profiler when disabled)
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Telemetry.ProfilerEnabled,
		ServerAddress:       cfg.Telemetry.ProfilerServerAddress,
		ApplicationName:     cfg.Telemetry.ServiceName,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// With both tracing and profiling running, label CPU profiles by span
	if profiler.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	if cfg.Telemetry.DBTraceEnabled {
		dbTracingCfg := telemetry.DefaultDBTracingConfig()
		dbTracingCfg.Enabled = true
		dbTracing := telemetry.NewDBTracingPlugin(dbTracingCfg, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories and stores
	userRepo := persistence.NewGormUserRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	hireStore := persistence.NewGormHireStore(db.DB)

	// Holdings cache (Redis, with in-memory fallback)
	cacheFactory := cache.NewHoldingsCacheFactory(cfg.Cache, cfg.Redis, cache.WithLogger(log))
	holdingsCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create holdings cache", zap.Error(err))
	}

	// Token blacklist follows the cache backend choice
	var blacklist auth.TokenBlacklist
	if cfg.Cache.Backend == config.CacheBackendRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pingErr := redisClient.Ping(pingCtx).Err()
		cancel()
		if pingErr != nil {
			log.Warn("Redis unavailable for token blacklist, revoked tokens are tracked in memory only",
				zap.Error(pingErr))
			blacklist = auth.NewInMemoryTokenBlacklist()
		} else {
			blacklist = auth.NewRedisTokenBlacklist(redisClient)
		}
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Event bus feeds hire events back into the catalog (hire counters)
	eventBus := event.NewInMemoryEventBus(log)
	employeeHiredHandler := catalogapp.NewEmployeeHiredHandler(employeeRepo, log)
	eventBus.Subscribe(employeeHiredHandler)
	log.Info("Event handlers registered",
		zap.Strings("employee_hired_events", employeeHiredHandler.EventTypes()),
	)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)

	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	}
	employeeService := catalogapp.NewEmployeeService(employeeRepo, objectStorage)
	hireService := hiringapp.NewHireService(hireStore, holdingsCache, employeeRepo, eventBus, log)

	// Hiring metrics (catalog gauges collected in the background)
	var hiringMetrics *telemetry.HiringMetrics
	if meterProvider.IsEnabled() {
		hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
			Meter:           meterProvider.Meter("hirehub.hiring"),
			Logger:          log,
			CatalogProvider: telemetry.NewGormCatalogMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize hiring metrics", zap.Error(err))
		} else {
			hiringMetrics = hm
			hiringMetrics.StartPeriodicCollection(ctx, 5*time.Minute)
			defer hiringMetrics.Stop()
		}
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Observability middleware
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Profiling())

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(version).
		WithChecker("database", db.Ping)
	authHandler := handler.NewAuthHandler(authService, hireService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	hiringHandler := handler.NewHiringHandler(hireService, hiringMetrics)

	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	// Liveness and readiness endpoints outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Auth domain: registration and login are public, session management
	// requires a valid token
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)

	sessionRoutes := router.NewDomainGroup("auth-session", "/auth")
	sessionRoutes.Use(jwtAuth)
	sessionRoutes.POST("/logout", authHandler.Logout)
	sessionRoutes.GET("/me", authHandler.GetCurrentUser)
	sessionRoutes.PUT("/password", authHandler.ChangePassword)

	// Catalog domain: browsing is public, curation requires a token
	catalogRoutes := router.NewDomainGroup("catalog", "/employees")
	catalogRoutes.GET("", employeeHandler.List)
	catalogRoutes.GET("/:id", employeeHandler.Get)
	catalogRoutes.GET("/:id/avatar", employeeHandler.GetAvatarURL)

	curationRoutes := router.NewDomainGroup("catalog-curation", "/employees")
	curationRoutes.Use(jwtAuth)
	curationRoutes.POST("", employeeHandler.Create)
	curationRoutes.DELETE("/:id", employeeHandler.Retire)
	curationRoutes.POST("/:id/avatar/upload-url", employeeHandler.GenerateAvatarUploadURL)

	// Hiring domain: every operation acts on the authenticated user's roster
	hiringRoutes := router.NewDomainGroup("hiring", "/hires")
	hiringRoutes.Use(jwtAuth)
	hiringRoutes.POST("", hiringHandler.Hire)
	hiringRoutes.GET("", hiringHandler.ListHires)
	hiringRoutes.GET("/:employee_id", hiringHandler.CheckHolding)

	// Register all domain groups; the system handler registers its own routes
	r.Register(authRoutes).
		Register(sessionRoutes).
		Register(catalogRoutes).
		Register(curationRoutes).
		Register(hiringRoutes).
		Register(systemHandler)

	// Setup routes
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// shutdownWithTimeout shuts down a telemetry provider with a bounded wait
func shutdownWithTimeout(shutdown func(context.Context) error, name string, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
