package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gamelib/internal/apperr"
	"gamelib/internal/catalog"
	"gamelib/internal/library"
	"gamelib/internal/logging"
)

type LibraryUsecase struct {
	games    GameCatalog
	metadata MetadataSource
	library  LibraryAdder
	logger   *zap.Logger
}

func NewLibraryUsecase(games GameCatalog, metadata MetadataSource, lib LibraryAdder, logger *zap.Logger) *LibraryUsecase {
	return &LibraryUsecase{
		games:    games,
		metadata: metadata,
		library:  lib,
		logger:   logging.OrNop(logger).Named("usecase"),
	}
}

// AddByRAWGID adds the game RAWG knows as rawgID to the user's library,
// creating the catalog record first when the game has never been seen.
func (u *LibraryUsecase) AddByRAWGID(ctx context.Context, userID, rawgID string, in library.AddInput) (library.Entry, error) {
	rawgID = strings.TrimSpace(rawgID)
	if rawgID == "" {
		return library.Entry{}, apperr.Validation("rawg_id", "rawg_id is required")
	}
	id, err := strconv.ParseInt(rawgID, 10, 64)
	if err != nil || id <= 0 {
		return library.Entry{}, apperr.Validation("rawg_id", "rawg_id must be a positive integer")
	}

	game, err := u.games.GetByRAWGID(ctx, rawgID)
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrNotFound):
		details, err := u.metadata.GetByID(ctx, id)
		if err != nil {
			return library.Entry{}, fmt.Errorf("fetch rawg game %d: %w", id, err)
		}
		game, err = u.games.Resolve(ctx, catalog.CandidateFromDetails(details))
		if err != nil {
			return library.Entry{}, fmt.Errorf("resolve rawg game %d: %w", id, err)
		}
		u.logger.Debug("catalog game created from rawg", zap.String("rawg_id", rawgID), zap.String("game_id", game.ID))
	default:
		return library.Entry{}, err
	}

	return u.library.Add(ctx, userID, game.ID, in)
}
