package main

import (
	"context"
	"fmt"
	"time"

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
)

func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	db, err := postgres.Open(ctx, cfg.DSN, 5*time.Second)
	if err != nil {
		return nil, err
	}
	closers := []func(){db.Close, func() { _ = logger.Sync() }}

	var store cache.Store
	var pruner cache.Pruner
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		closers = append(closers, func() { _ = client.Close() })
		store = cache.NewRedisStore(client)
	case config.CacheBackendMemory:
		mem := cache.NewMemoryStore()
		store, pruner = mem, mem
	default:
		pg := cache.NewPostgresStore(db, cfg.DBTimeout)
		store, pruner = pg, pg
	}

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

	games := catalog.NewPostgresRepo(db, cfg.DBTimeout)
	entries := library.NewPostgresRepo(db, cfg.DBTimeout)
	matcher := catalog.NewMatcher(games, rawgClient, logger)

	importService := ingest.NewService(ingest.Config{
		DefaultLimit: cfg.Import.DefaultLimit,
		MaxLimit:     cfg.Import.MaxLimit,
		ItemTimeout:  cfg.Import.ItemTimeout,
	}, ingest.Deps{
		Ownership: steamClient,
		Metadata:  rawgClient,
		Matcher:   matcher,
		Library:   library.NewReconciler(entries, logger),
		Throttle:  throttle.New(cfg.Import.EnrichInterval),
		Runs:      ingest.NewPostgresRepo(db, cfg.DBTimeout),
	}, logger)

	logger.Debug("cli wired", zap.String("cache_backend", cfg.Cache.Backend))

	return &app{
		importer: importService,
		resolver: matcher,
		pruner:   pruner,
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}
