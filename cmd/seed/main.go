package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gamelib/internal/catalog"
	"gamelib/internal/config"
	"gamelib/internal/library"
	"gamelib/internal/logging"
	"gamelib/internal/platform/postgres"
)

func main() {
	var (
		count  = flag.Int("count", 500, "Number of catalog games to generate")
		userID = flag.String("user", "", "Also add every generated game to this user's library")
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

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.DSN, 5*time.Second)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	games := catalog.NewPostgresRepo(pool, cfg.DBTimeout)
	matcher := catalog.NewMatcher(games, nil, logger)
	reconciler := library.NewReconciler(library.NewPostgresRepo(pool, cfg.DBTimeout), logger)

	logger.Info("generating games", zap.Int("count", *count))
	var created, added int
	for i, c := range seedCandidates(*count, rand.New(rand.NewPCG(42, 1))) {
		game, err := matcher.Resolve(ctx, c)
		if err != nil {
			logger.Fatal("failed to resolve seed game", zap.String("title", c.Title), zap.Error(err))
		}
		created++

		if *userID != "" {
			hours := decimal.NewFromInt(int64((i * 37) % 400)).Div(decimal.NewFromInt(3))
			if _, err := reconciler.Reconcile(ctx, *userID, game, library.Hints{HoursPlayed: hours}); err != nil {
				logger.Fatal("failed to add seed game to library", zap.String("game_id", game.ID), zap.Error(err))
			}
			added++
		}

		if (i+1)%100 == 0 {
			logger.Info("progress", zap.Int("done", i+1), zap.Int("total", *count))
		}
	}

	logger.Info("seed complete", zap.Int("games", created), zap.Int("library_entries", added))
}

// seedCandidates builds count deterministic catalog candidates. Every third
// game is Steam-only, the rest carry a RAWG id and metadata.
func seedCandidates(count int, rng *rand.Rand) []catalog.Candidate {
	genres := []string{"Action", "Adventure", "RPG", "Strategy", "Puzzle", "Indie", "Shooter", "Simulation", "Platformer", "Racing"}

	out := make([]catalog.Candidate, 0, count)
	for i := range count {
		c := catalog.Candidate{
			Title:  fmt.Sprintf("%s of %s %d", randomWord(rng), randomWord(rng), i+1),
			Genres: []string{genres[rng.IntN(len(genres))]},
		}
		if i%3 == 0 {
			c.SteamAppID = strconv.Itoa(900000 + i)
		} else {
			c.RAWGID = strconv.Itoa(5000000 + i)
			released := time.Date(1995+rng.IntN(30), time.Month(1+rng.IntN(12)), 1, 0, 0, 0, 0, time.UTC)
			c.Released = &released
			score := 50 + rng.IntN(50)
			c.Metacritic = &score
		}
		out = append(out, c)
	}
	return out
}

func randomWord(rng *rand.Rand) string {
	words := []string{
		"Legend", "Shadows", "Echoes", "Kingdom", "Frontier", "Dawn", "Ashes",
		"Crown", "Storm", "Void", "Empire", "Hollow", "Star", "Iron", "Tides",
		"Ruins", "Dream", "Forge", "Night", "Circuit",
	}
	return words[rng.IntN(len(words))]
}
