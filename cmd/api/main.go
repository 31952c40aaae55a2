package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gamelib/internal/cache"
	"gamelib/internal/catalog"
	"gamelib/internal/config"
	"gamelib/internal/ingest"
	"gamelib/internal/library"
	"gamelib/internal/logging"
	"gamelib/internal/platform/postgres"
	"gamelib/internal/platform/rawg"
	"gamelib/internal/platform/steam"
	"gamelib/internal/platform/throttle"
	"gamelib/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.JWTSecret == "" {
		logger.Fatal("missing required environment variable", zap.String("key", "JWT_SECRET"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.Open(ctx, cfg.DSN, 2*time.Second)
	if err != nil {
		logger.Fatal("cannot open database", zap.Error(err))
	}
	defer dbPool.Close()
	logger.Info("database connection OK")

	store, closeStore := openCacheStore(cfg, dbPool, logger)
	defer closeStore()

	h := buildHandlers(cfg, dbPool, store, logger)

	router := newRouter(ctx, cfg, logger, h, dbPool.Ping)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openCacheStore returns the configured response cache and a close func.
func openCacheStore(cfg config.Config, db *pgxpool.Pool, logger *zap.Logger) (cache.Store, func()) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		logger.Info("using redis response cache", zap.String("addr", cfg.Cache.RedisAddr))
		return cache.NewRedisStore(client), func() { _ = client.Close() }
	case config.CacheBackendMemory:
		logger.Info("using in-memory response cache")
		return cache.NewMemoryStore(), func() {}
	default:
		return cache.NewPostgresStore(db, cfg.DBTimeout), func() {}
	}
}

func buildHandlers(cfg config.Config, db *pgxpool.Pool, store cache.Store, logger *zap.Logger) handlers {
	rawgClient := rawg.NewClient(rawg.Config{
		BaseURL:    cfg.RAWG.BaseURL,
		APIKey:     cfg.RAWG.APIKey,
		SearchTTL:  cfg.RAWG.SearchTTL,
		DetailTTL:  cfg.RAWG.DetailTTL,
		Timeout:    cfg.UpstreamTimeout,
		MaxRetries: cfg.UpstreamMaxRetries,
	}, store, logger)
	steamClient := steam.NewClient(steam.Config{
		BaseURL:    cfg.Steam.BaseURL,
		APIKey:     cfg.Steam.APIKey,
		Timeout:    cfg.UpstreamTimeout,
		MaxRetries: cfg.UpstreamMaxRetries,
	})

	gameRepo := catalog.NewPostgresRepo(db, cfg.DBTimeout)
	entryRepo := library.NewPostgresRepo(db, cfg.DBTimeout)

	matcher := catalog.NewMatcher(gameRepo, rawgClient, logger)
	catalogService := catalog.NewService(gameRepo, matcher)
	libraryService := library.NewService(entryRepo, entryRepo, gameRepo)

	importService := ingest.NewService(ingest.Config{
		DefaultLimit: cfg.Import.DefaultLimit,
		MaxLimit:     cfg.Import.MaxLimit,
		ItemTimeout:  cfg.Import.ItemTimeout,
	}, ingest.Deps{
		Ownership: steamClient,
		Metadata:  rawgClient,
		Matcher:   matcher,
		Library:   library.NewReconciler(entryRepo, logger),
		Throttle:  throttle.New(cfg.Import.EnrichInterval),
		Runs:      ingest.NewPostgresRepo(db, cfg.DBTimeout),
	}, logger)

	return handlers{
		catalog: catalog.NewHTTPHandler(catalogService, logger),
		library: library.NewHTTPHandler(libraryService, logger),
		ingest:  ingest.NewHTTPHandler(importService, logger),
		usecase: usecase.NewHTTPHandler(
			usecase.NewLibraryUsecase(catalogService, rawgClient, libraryService, logger),
			usecase.NewSearchUsecase(catalogService, rawgClient),
			logger,
		),
	}
}
