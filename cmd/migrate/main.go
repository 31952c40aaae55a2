package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"gamelib/internal/config"
	"gamelib/internal/logging"
	"gamelib/internal/platform/postgres"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := validateCommand(*command, *name); err != nil {
		logger.Fatal("invalid arguments", zap.Error(err))
	}

	if *command == "create" {
		if err := goose.Create(nil, cfg.MigrationsDir, *name, "sql"); err != nil {
			logger.Fatal("failed to create migration", zap.Error(err))
		}
		logger.Info("migration created", zap.String("name", *name), zap.String("dir", cfg.MigrationsDir))
		return
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.DSN, 5*time.Second)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrationSource(cfg.MigrationsDir))
	if err != nil {
		logger.Fatal("failed to load migrations", zap.Error(err))
	}

	switch *command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		logger.Info("migrations applied", zap.Int("count", len(results)))
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			logger.Fatal("failed to roll back migration", zap.Error(err))
		}
		if result != nil && result.Source != nil {
			logger.Info("migration rolled back", zap.Int64("version", result.Source.Version))
		}
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			logger.Fatal("failed to check migration status", zap.Error(err))
		}
		for _, s := range statuses {
			logger.Info("migration",
				zap.Int64("version", s.Source.Version),
				zap.String("path", s.Source.Path),
				zap.String("state", string(s.State)),
				zap.Time("applied_at", s.AppliedAt),
			)
		}
	}
}
