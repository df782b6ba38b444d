package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/nounthanith/localbrand-frontend/internal/application/catalog"
	"github.com/nounthanith/localbrand-frontend/internal/application/checkout"
	"github.com/nounthanith/localbrand-frontend/internal/application/storefront"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/cache"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/config"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/event"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/logger"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/migration"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/persistence"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/shopapi"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/storage"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/telemetry"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/handler"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/middleware"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 30 * time.Second
	slowQuery       = 200 * time.Millisecond
)

//	@title			LocalBrand Storefront API
//	@version		1.0
//	@description	Cart, checkout and order lookup for the LocalBrand shop

//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("api", cfg.API.BaseURL),
	)

	// Background loops stop when the server shuts down
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	tracerProvider, err := telemetry.NewTracerProvider(bgCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(bgCtx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	loggerProvider, err := telemetry.NewLoggerProvider(bgCtx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = logger.Tee(log, loggerProvider.Core(logger.ParseLevel(cfg.Log.Level)))

	metrics, err := telemetry.NewStorefrontMetrics(meterProvider.Meter("storefront"))
	if err != nil {
		log.Fatal("Failed to create storefront metrics", zap.Error(err))
	}

	healthHandler := handler.NewHealthHandler(cfg.App.Name, version)

	backend, closeBackend, err := openStorage(bgCtx, cfg, log, healthHandler)
	if err != nil {
		log.Fatal("Failed to open slot storage", zap.Error(err))
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Error("Error closing slot storage", zap.Error(err))
		}
	}()

	hub := event.NewHub(log)
	if cfg.Broadcast.Enabled {
		closeBroadcast, err := startBroadcast(bgCtx, cfg, hub, log)
		if err != nil {
			log.Fatal("Failed to start cart change broadcast", zap.Error(err))
		}
		defer closeBroadcast()
	}

	shop, err := shopapi.NewClient(shopapi.Config{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.API.Timeout,
		MaxResponseSize: cfg.API.MaxResponseSize,
	}, shopapi.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create shop API client", zap.Error(err))
	}

	catalogService := appcatalog.NewLookupService(shop,
		appcatalog.WithWorkers(cfg.API.LookupWorkers),
		appcatalog.WithImageBase(cfg.Images.BaseURL),
		appcatalog.WithMetrics(metrics),
	)

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to set up request validator", zap.Error(err))
	}

	service := storefront.NewService(storefront.Config{
		Slots:    storage.NewSessionSlots(backend),
		Events:   hub,
		Catalog:  catalogService,
		Gateway:  shop,
		Validate: checkout.NewFormValidator(),
		Metrics:  metrics,
		Logger:   log,
		IdleTTL:  cfg.Session.IdleTTL,
	})
	go service.RunJanitor(bgCtx, cfg.Session.IdleTTL/2)

	cartStream := handler.NewCartStreamHandler(service,
		handler.WithSSELogger(log),
		handler.WithSSEHeartbeat(cfg.HTTP.SSEHeartbeat),
		handler.WithSSEMaxClients(cfg.HTTP.SSEMaxClients),
		handler.WithSSEMetrics(metrics),
	)
	if err := cartStream.Start(); err != nil {
		log.Fatal("Failed to start cart stream", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	// Order matters: ids first so logs, spans and errors can carry them
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Session(middleware.SessionConfig{
		CookieName: cfg.Session.CookieName,
		HeaderName: cfg.Session.HeaderName,
		TTL:        cfg.Session.CookieTTL,
		Secure:     cfg.Session.Secure,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(middleware.DefaultBodyLimit))

	router.NewRouter(engine).RegisterDocs(middleware.DocsAccess(middleware.DocsConfig{
		Enabled:    cfg.Docs.Enabled,
		AllowedIPs: cfg.Docs.AllowedIPs,
	})).RegisterStorefront(router.Handlers{
		Health:     healthHandler,
		Products:   handler.NewProductHandler(catalogService),
		Cart:       handler.NewCartHandler(service),
		CartStream: cartStream,
		Checkout:   handler.NewCheckoutHandler(service),
		Orders:     handler.NewOrdersHandler(service),
	}).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Streams never finish on their own; end them before draining requests
	cartStream.Stop()
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// openStorage opens the slot backend selected by storage.driver and registers
// its health check. The returned function releases the backend.
func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger, health *handler.HealthHandler) (storage.Backend, func() error, error) {
	driver := cfg.Storage.Driver
	switch driver {
	case config.StorageSQLite, config.StoragePostgres:
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), slowQuery)
		db, err := persistence.NewDatabaseWithLogger(driver, &cfg.Database, gormLog)
		if err != nil {
			return nil, nil, err
		}

		tracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			SlowQueryThresh: slowQuery,
			DBSystem:        driver,
		}, log)
		if err := tracing.Register(db.DB); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to register database tracing: %w", err)
		}

		if err := migrateSchema(db, cfg, log); err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		repo := persistence.NewGormSlotRepository(db.DB)
		go purgeSlots(ctx, repo, cfg.Storage.SlotTTL, cfg.Storage.PurgeInterval, log)

		health.AddCheck("database", func(context.Context) error { return db.Ping() })
		log.Info("Using SQL slot storage", zap.String("driver", driver))
		return repo, db.Close, nil

	default:
		factory := cache.NewSlotBackendFactory(cfg.Redis, cfg.Storage.KeyPrefix,
			cache.WithLogger(log),
			cache.WithSlotTTL(cfg.Storage.SlotTTL),
		)
		backend, closeFn, err := factory.Create(driver)
		if err != nil {
			return nil, nil, err
		}
		if pinger, ok := backend.(interface{ Ping(context.Context) error }); ok {
			health.AddCheck("redis", pinger.Ping)
		}
		return backend, closeFn, nil
	}
}

// migrateSchema creates the slot table. SQLite always uses GORM's
// AutoMigrate; PostgreSQL runs the embedded migrations only when
// database.auto_migrate is set and otherwise expects cmd/migrate.
func migrateSchema(db *persistence.Database, cfg *config.Config, log *zap.Logger) error {
	if db.Driver == config.StorageSQLite {
		if err := db.AutoMigrate(); err != nil {
			return fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		return nil
	}
	if !cfg.Database.AutoMigrate {
		return nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close sqlDB, which GORM still uses
	return m.Up()
}

// purgeSlots deletes slots idle for longer than ttl every interval
func purgeSlots(ctx context.Context, repo *persistence.GormSlotRepository, ttl, interval time.Duration, log *zap.Logger) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeBefore(ctx, time.Now().Add(-ttl))
			if err != nil {
				log.Warn("Failed to purge idle slots", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("Purged idle slots", zap.Int64("count", n))
			}
		}
	}
}

// startBroadcast relays cart changes between replicas over Redis Pub/Sub.
// The returned function stops the relay and closes its connection.
func startBroadcast(ctx context.Context, cfg *config.Config, hub *event.Hub, log *zap.Logger) (func(), error) {
	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	broadcaster := cache.NewRedisCartBroadcasterWithClient(client,
		cache.WithBroadcastChannel(cfg.Broadcast.Channel),
		cache.WithBroadcastLogger(log),
	)
	sub := hub.Subscribe(broadcaster)

	go func() {
		if err := broadcaster.Subscribe(ctx, hub); err != nil && ctx.Err() == nil {
			log.Error("Cart change broadcast stopped", zap.Error(err))
		}
	}()

	return func() {
		sub.Unsubscribe()
		if err := broadcaster.Close(); err != nil {
			log.Warn("Error closing cart change broadcast", zap.Error(err))
		}
		if err := client.Close(); err != nil {
			log.Warn("Error closing broadcast redis client", zap.Error(err))
		}
	}, nil
}
