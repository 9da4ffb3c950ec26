package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/application/admin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	customerapp "github.com/storefront/backend/internal/application/customer"
	eventapp "github.com/storefront/backend/internal/application/event"
	identityapp "github.com/storefront/backend/internal/application/identity"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
	taggingapp "github.com/storefront/backend/internal/application/tagging"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"github.com/storefront/backend/migrations"
	"go.uber.org/zap"

	_ "github.com/storefront/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Storefront API
//	@version		1.0
//	@description	Store catalog, customers, carts and orders. Deleting a product that appears in an order, or a collection that still has products, is refused.

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Bootstrap logger, replaced once the log exporter is up
	bootLog, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	telCfg := telemetry.FromConfig(cfg.Telemetry)
	if telCfg.ServiceName == "" {
		telCfg.ServiceName = cfg.App.Name
	}
	providers, err := telemetry.Setup(context.Background(), telCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	log, err := logger.New(
		&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output},
		telemetry.NewZapOTELCore(telCfg.ServiceName, providers.Logs, logger.ParseLevel(cfg.Log.Level)),
	)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.Open(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telCfg, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if err := applyMigrations(db, log); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Domain events are written to the outbox in the same transaction as the change
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)
	outboxPublisher := event.NewOutboxPublisher(eventSerializer, log)
	productRepo.SetOutboxEventSaver(outboxPublisher)
	collectionRepo.SetOutboxEventSaver(outboxPublisher)
	orderRepo.SetOutboxEventSaver(outboxPublisher)

	// Object storage for product images
	imageStorage, err := newImageStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// Token revocation and delivery dedup share Redis when it is enabled
	redisClient, err := newRedisClient(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	var (
		blacklist  auth.TokenBlacklist
		deliveries shared.IdempotencyStore
		redisPing  handler.Pinger
	)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		deliveries = cache.NewRedisIdempotencyStore(redisClient, "")
		redisPing = handler.PingerFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	} else {
		log.Warn("Redis disabled, revoked tokens and delivered events are tracked in process only")
		blacklist = auth.NewInMemoryTokenBlacklist()
		memoryDeliveries := cache.NewMemoryIdempotencyStore()
		defer func() { _ = memoryDeliveries.Close() }()
		deliveries = memoryDeliveries
	}

	// Metrics
	storeMetrics, err := telemetry.NewStoreMetrics(providers.Meter.Meter("storefront"))
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}

	// Application services
	pageLimits := shared.PageLimits{Default: cfg.Store.DefaultPageSize, Max: cfg.Store.MaxPageSize}

	productService := catalogapp.NewProductService(productRepo, collectionRepo, decimal.NewFromFloat(cfg.Store.TaxRate))
	productService.SetPageLimits(pageLimits)
	collectionService := catalogapp.NewCollectionService(collectionRepo, productRepo)
	collectionService.SetPageLimits(pageLimits)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	imageService := catalogapp.NewImageService(imageRepo, productRepo, imageStorage, log)
	deletionGuard := catalogapp.NewDeletionGuard(productRepo, collectionRepo, log)
	deletionGuard.SetMetrics(storeMetrics)

	customerService := customerapp.NewService(customerRepo)
	customerService.SetPageLimits(pageLimits)
	orderService := orderingapp.NewOrderService(orderRepo, cartRepo, log)
	orderService.SetPageLimits(pageLimits)
	orderService.SetMetrics(storeMetrics)
	cartService := orderingapp.NewCartService(cartRepo)
	tagService := taggingapp.NewService(tagRepo, productRepo)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	adminService := admin.NewService(productService, collectionService, customerService, orderService, customerRepo, log)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	// Event bus and subscribers
	eventBus := event.NewInMemoryEventBus(log)
	once := func(name string, h shared.EventHandler) shared.EventHandler {
		return event.NewIdempotentHandler(name, h, deliveries, cfg.Event.DedupTTL, log)
	}
	eventBus.Subscribe(once("audit", event.NewAuditLogHandler(log)))
	eventBus.Subscribe(once("image-cleanup", event.NewProductImageCleanupHandler(imageStorage, log)))

	if cfg.Kafka.Enabled {
		producer, err := event.NewSyncProducer(event.KafkaConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.Topic,
			ClientID: cfg.Kafka.ClientID,
		})
		if err != nil {
			log.Fatal("Failed to connect to Kafka", zap.Error(err))
		}
		forwarder := event.NewKafkaForwarder(producer, eventSerializer, cfg.Kafka.Topic, log)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Error("Error closing Kafka producer", zap.Error(err))
			}
		}()
		eventBus.Subscribe(once("kafka", forwarder))
		log.Info("Kafka forwarding enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	if cfg.Event.ProcessorEnabled {
		processorConfig := event.DefaultOutboxProcessorConfig()
		processorConfig.BatchSize = cfg.Event.BatchSize
		processorConfig.PollInterval = cfg.Event.PollInterval
		processorConfig.MaxRetries = cfg.Event.MaxRetries
		processorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		processorConfig.CleanupRetention = cfg.Event.CleanupRetention

		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, processorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
	}

	healthChecks := map[string]handler.Pinger{
		"database": db,
	}
	if redisPing != nil {
		healthChecks["redis"] = redisPing
	}

	// HTTP handlers
	rejectedStatus := cfg.Store.DeleteRejectedStatus
	handlers := router.Handlers{
		Product:    handler.NewProductHandler(productService, deletionGuard, rejectedStatus),
		Collection: handler.NewCollectionHandler(collectionService, deletionGuard, rejectedStatus),
		Review:     handler.NewReviewHandler(reviewService),
		Image:      handler.NewImageHandler(imageService),
		Tag:        handler.NewTagHandler(tagService),
		Customer:   handler.NewCustomerHandler(customerService),
		Order:      handler.NewOrderHandler(orderService),
		Cart:       handler.NewCartHandler(cartService),
		Auth:       handler.NewAuthHandler(authService),
		Admin:      handler.NewAdminHandler(adminService),
		Outbox:     handler.NewOutboxHandler(outboxService),
		System:     handler.NewSystemHandler(cfg.App.Name, version, healthChecks),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. Recovery and RequestID first so every later step has an id to log
	// 2. Logger, tracing and metrics
	// 3. CORS, security headers, rate limit, body limit
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{ServiceName: telCfg.ServiceName, Enabled: telCfg.Enabled}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.HTTPMetrics(providers.Meter.Meter("storefront/http"), log))
	engine.Use(middleware.Profiling(telCfg.ProfilingEnabled))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.Secure())
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	authenticated := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	engine.GET("/health", handlers.System.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, authenticated),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		RegisterGroups(router.StoreGroups(handlers, router.Guards{
			Authenticated: authenticated,
			Staff:         middleware.RequireStaffWithConfig(middleware.StaffConfig{Logger: log}),
		})...).
		Setup()

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

// applyMigrations brings the schema up to date from the embedded migrations
func applyMigrations(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.NewFromFS(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	// Close is not called: it would close the shared *sql.DB
	return m.Up()
}

// newImageStorage returns S3-backed storage when enabled, otherwise an in-process store
func newImageStorage(cfg *config.Config, log *zap.Logger) (catalogapp.ImageStorage, error) {
	if !cfg.Storage.Enabled {
		log.Warn("Object storage disabled, image uploads are kept in memory")
		return storage.NewMemoryImageStorage("http://localhost:" + cfg.App.Port + "/media"), nil
	}
	s3, err := storage.NewS3ImageStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Object storage ready", zap.String("bucket", s3.Bucket()))
	return s3, nil
}

// newRedisClient connects to Redis when it is enabled and returns nil otherwise
func newRedisClient(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	client, err := auth.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	return client, nil
}
