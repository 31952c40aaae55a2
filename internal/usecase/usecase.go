// Package usecase holds flows that span more than one feature package.
package usecase

import (
	"context"

	"gamelib/internal/catalog"
	"gamelib/internal/library"
	"gamelib/internal/platform/rawg"
)

//go:generate mockgen -source=usecase.go -destination=mock_ports_test.go -package=usecase

// GameCatalog is the local catalog surface the flows need.
type GameCatalog interface {
	GetByRAWGID(ctx context.Context, rawgID string) (catalog.Game, error)
	Resolve(ctx context.Context, c catalog.Candidate) (catalog.Game, error)
	Search(ctx context.Context, q catalog.SearchQuery) ([]catalog.Game, int, error)
}

// MetadataSource is the remote metadata catalog.
type MetadataSource interface {
	GetByID(ctx context.Context, rawgID int64) (rawg.GameDetails, error)
	Search(ctx context.Context, query string, page, pageSize int) (rawg.SearchPage, error)
}

// LibraryAdder adds a catalog game to a user's library.
type LibraryAdder interface {
	Add(ctx context.Context, userID, gameID string, in library.AddInput) (library.Entry, error)
}
