package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muyuda/khaya/internal/application/usecase"
	"github.com/muyuda/khaya/internal/domain/port"
	"github.com/muyuda/khaya/internal/domain/service"
	"github.com/muyuda/khaya/internal/infrastructure/cache"
	"github.com/muyuda/khaya/internal/infrastructure/config"
	"github.com/muyuda/khaya/internal/infrastructure/kafka"
	"github.com/muyuda/khaya/internal/infrastructure/persistence/memory"
	pgRepo "github.com/muyuda/khaya/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/muyuda/khaya/internal/presentation/grpc"
	"github.com/muyuda/khaya/internal/presentation/rest"
	"github.com/muyuda/khaya/pkg/auth"
	pkgkafka "github.com/muyuda/khaya/pkg/kafka"
	"github.com/muyuda/khaya/pkg/observability"
	pkgpostgres "github.com/muyuda/khaya/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting kprd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"catalog_backend", cfg.CatalogBackend,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort

	engineMetrics, err := observability.NewEngineMetrics(meterProvider)
	if err != nil {
		logger.Error("failed to register engine metrics", "error", err)
		os.Exit(1)
	}

	checks := make(map[string]rest.Check)

	// Catalog storage.
	var repo port.BankCatalogRepository
	switch cfg.CatalogBackend {
	case config.BackendPostgres:
		pgCfg := pkgpostgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
		}

		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		pool, poolErr := pkgpostgres.NewPool(dbCtx, pgCfg)
		dbCancel()
		if poolErr != nil {
			logger.Error("failed to connect to database", "error", poolErr)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("connected to database")

		if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); migErr != nil {
			logger.Error("failed to run migrations", "error", migErr)
			os.Exit(1)
		}

		repo = pgRepo.NewBankCatalogRepo(pool)
		checks["postgres"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) }
	default:
		seeded, seedErr := memory.NewSeededCatalogRepo()
		if seedErr != nil {
			logger.Error("failed to load seed catalog", "error", seedErr)
			os.Exit(1)
		}
		repo = seeded
	}

	// Catalog cache.
	var catalogCache port.CatalogCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() { _ = redisCache.Close() }() //nolint:errcheck // best-effort
		catalogCache = redisCache
		checks["redis"] = redisCache.Ping
		logger.Info("catalog cache backed by redis", "addr", cfg.Redis.Addr)
	} else {
		catalogCache = cache.NewMemoryCache()
	}
	catalog := cache.NewCachedCatalog(repo, catalogCache, cfg.Redis.CacheTTL, logger)

	// Events.
	var publisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaCfg := pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.ServiceName,
			ConsumerGroup: cfg.Kafka.CatalogGroupID,
		}

		producer, prodErr := pkgkafka.NewProducer(kafkaCfg)
		if prodErr != nil {
			logger.Error("failed to create kafka producer", "error", prodErr)
			os.Exit(1)
		}
		defer func() { _ = producer.Close() }() //nolint:errcheck // best-effort
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)

		consumer, consErr := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.Topic,
			kafka.NewCatalogUpdateHandler(catalog, logger), logger)
		if consErr != nil {
			logger.Error("failed to create kafka consumer", "error", consErr)
			os.Exit(1)
		}
		defer func() { _ = consumer.Close() }() //nolint:errcheck // best-effort
		go func() {
			if startErr := kafka.KeepConsuming(ctx, consumer.Start, kafka.NewRestartBackOff(), logger); startErr != nil {
				logger.Error("catalog consumer stopped", "error", startErr)
			}
		}()
	} else {
		logger.Info("no kafka brokers configured, events are logged only")
		publisher = kafka.NewLogPublisher(logger)
	}

	// Wire use cases.
	settings := usecase.EngineSettings{
		FloatingRate:      cfg.Engine.FloatingRate,
		GroupingTolerance: cfg.Engine.GroupingTolerance,
		MaxTenureYears:    cfg.Engine.MaxTenureYears,
	}
	simulateUC := usecase.NewSimulateLoanUseCase(catalog, publisher, engineMetrics, settings, logger)
	summarizeUC := usecase.NewSummarizeScheduleUseCase(settings)
	compareUC := usecase.NewCompareProductsUseCase(catalog, service.NewComparisonEngine(), engineMetrics, settings)
	editPlanUC := usecase.NewEditCustomPlanUseCase(settings)
	listBanksUC := usecase.NewListBanksUseCase(catalog)
	getBankUC := usecase.NewGetBankUseCase(catalog)
	upsertBankUC := usecase.NewUpsertBankUseCase(catalog, publisher, logger)

	// JWT service guards catalog writes. Public key preferred, secret as
	// fallback; with neither, catalog writes are refused.
	jwtSvc, err := newJWTService(cfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}
	if jwtSvc == nil {
		logger.Warn("no JWT key configured, catalog administration is disabled")
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewKPRHandler(simulateUC, summarizeUC, compareUC, editPlanUC,
		listBanksUC, getBankUC, upsertBankUC, logger)
	grpcServer, err := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc, grpcPresentation.ServerOptions{
		ServiceName: cfg.ServiceName,
		Reflection:  cfg.GRPCReflection,
	})
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, checks, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	var admin func(http.Handler) http.Handler
	if jwtSvc != nil {
		admin = auth.RequireRoleHTTP(jwtSvc, auth.RoleAdmin)
	}
	rest.NewKPRHandler(simulateUC, summarizeUC, compareUC, editPlanUC,
		listBanksUC, getBankUC, upsertBankUC, logger).RegisterRoutes(mux, admin)

	middlewares := []rest.Middleware{
		rest.TracingMiddleware(cfg.ServiceName),
		rest.LoggingMiddleware(logger),
	}
	if cfg.RateLimit > 0 {
		limiter := rest.NewPerClientRateLimiter(cfg.RateLimit)
		go sweepLimiter(ctx, limiter)
		middlewares = append(middlewares, rest.RateLimitMiddleware(limiter))
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.Chain(mux, middlewares...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}
	cancel()

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("kprd stopped")
}

// newJWTService returns nil when no key material is configured.
func newJWTService(cfg config.Config) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.ServiceName, Expiration: time.Hour}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, err := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	case cfg.JWTSecret != "":
		jwtCfg.Secret = cfg.JWTSecret
	default:
		return nil, nil
	}
	return auth.NewJWTService(jwtCfg)
}

func sweepLimiter(ctx context.Context, limiter *rest.PerClientRateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Sweep(5 * time.Minute)
		}
	}
}
