package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/erico-tech-world/personal-portfolio/internal/cache"
	"github.com/erico-tech-world/personal-portfolio/internal/config"
	"github.com/erico-tech-world/personal-portfolio/internal/event"
	handler "github.com/erico-tech-world/personal-portfolio/internal/handler/http"
	"github.com/erico-tech-world/personal-portfolio/internal/repository/postgres"
	"github.com/erico-tech-world/personal-portfolio/internal/service"
	"github.com/erico-tech-world/personal-portfolio/internal/storage"
	"github.com/erico-tech-world/personal-portfolio/internal/storage/cloudinary"
	"github.com/erico-tech-world/personal-portfolio/internal/storage/memory"
	"github.com/erico-tech-world/personal-portfolio/internal/storage/s3"
	"github.com/erico-tech-world/personal-portfolio/migrations"
	"github.com/erico-tech-world/personal-portfolio/pkg/database"
	"github.com/erico-tech-world/personal-portfolio/pkg/health"
	"github.com/erico-tech-world/personal-portfolio/pkg/httpclient"
	pkgkafka "github.com/erico-tech-world/personal-portfolio/pkg/kafka"
	"github.com/erico-tech-world/personal-portfolio/pkg/tracing"
)

// App wires together all dependencies and runs the portfolio backend.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	redisClient     *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing.
	tracingCfg := tracing.DefaultConfig("portfolio-backend")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.TracingEndpoint
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "portfolio")

	// Configure slow query logging.
	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
	}

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Redis for the public read cache.
	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("host", cfg.RedisHost))

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Media storage backend.
	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		redisClient.Close()
		pool.Close()
		return nil, err
	}
	logger.Info("media storage initialized", slog.String("backend", cfg.StorageBackend))

	// Build the dependency graph.
	galleryRepo := postgres.NewGalleryRepository(pool)
	offeringRepo := postgres.NewOfferingRepository(pool)
	socialRepo := postgres.NewSocialRepository(pool)
	contentRepo := postgres.NewContentRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)

	readCache := cache.New(redisClient, cache.DefaultTTL)
	eventProducer := event.NewProducer(producer, logger)

	gallerySvc := service.NewGalleryService(galleryRepo, store, readCache, eventProducer, logger, cfg.CloudinaryFolder)
	offeringSvc := service.NewOfferingService(offeringRepo, readCache, logger)
	socialSvc := service.NewSocialService(socialRepo, readCache, logger)
	contentSvc := service.NewContentService(contentRepo, store, readCache, eventProducer, logger, cfg.CloudinaryFolder)
	contactSvc := service.NewContactService(contactRepo, eventProducer, logger)

	// Health checks. Postgres is the system of record, so its failure makes
	// the instance not ready. Redis and Kafka only degrade: reads fall back
	// to the database and events are dropped with a log line.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(
		gallerySvc, offeringSvc, socialSvc, contentSvc, contactSvc,
		healthHandler, logger,
		handler.RouterConfig{
			AdminAPIKey:    cfg.AdminAPIKey,
			AllowedOrigins: cfg.AllowedOrigins,
			Environment:    cfg.Environment,
			CacheMaxAge:    cfg.CacheMaxAge,
			PprofCIDRs:     cfg.PprofCIDRs,
		},
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		redisClient:     redisClient,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// newStorage builds the media storage backend selected by configuration.
func newStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case "cloudinary":
		client := httpclient.New(httpclient.DefaultConfig())
		cbClient := httpclient.NewCircuitBreakerClient(
			client,
			httpclient.DefaultCircuitBreakerConfig("cloudinary"),
			logger,
		)
		return cloudinary.New(cloudinary.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		}, cbClient, logger), nil

	case "s3":
		return s3.New(ctx, s3.Config{
			Bucket: cfg.S3Bucket,
			Region: cfg.S3Region,
		}, logger)

	default:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
		}
		return memory.New(baseURL), nil
	}
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.redisClient.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
