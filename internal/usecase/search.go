package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"gamelib/internal/apperr"
	"gamelib/internal/catalog"
	"gamelib/internal/platform/rawg"
)

const (
	SourceAll   = "all"
	SourceLocal = "local"
	SourceRAWG  = "rawg"

	minQueryLength = 2
	searchPageSize = 20
)

// SearchResults groups matches by where they came from. A source that was
// not queried is an empty list.
type SearchResults struct {
	Local []catalog.Game     `json:"local"`
	RAWG  []rawg.GameSummary `json:"rawg"`
}

type SearchUsecase struct {
	games    GameCatalog
	metadata MetadataSource
}

func NewSearchUsecase(games GameCatalog, metadata MetadataSource) *SearchUsecase {
	return &SearchUsecase{games: games, metadata: metadata}
}

// Games searches the local catalog, RAWG or both.
func (u *SearchUsecase) Games(ctx context.Context, q, source string) (SearchResults, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < minQueryLength {
		return SearchResults{}, apperr.Validation("q", "query must be at least %d characters", minQueryLength)
	}
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		source = SourceAll
	}
	if source != SourceAll && source != SourceLocal && source != SourceRAWG {
		return SearchResults{}, apperr.Validation("source", "source must be one of all, local, rawg")
	}

	res := SearchResults{Local: []catalog.Game{}, RAWG: []rawg.GameSummary{}}

	if source == SourceAll || source == SourceLocal {
		games, _, err := u.games.Search(ctx, catalog.SearchQuery{Q: q, Limit: searchPageSize})
		if err != nil {
			return SearchResults{}, err
		}
		res.Local = games
	}

	if source == SourceAll || source == SourceRAWG {
		page, err := u.metadata.Search(ctx, q, 1, searchPageSize)
		if err != nil {
			return SearchResults{}, err
		}
		if page.Results != nil {
			res.RAWG = page.Results
		}
	}
	return res, nil
}
