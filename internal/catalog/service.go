package catalog

import (
	"context"
	"strings"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type Service struct {
	repo    Repository
	matcher *Matcher
}

func NewService(repo Repository, matcher *Matcher) *Service {
	return &Service{repo: repo, matcher: matcher}
}

// Search queries the local catalog. Limits outside 1..100 fall back to 20.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Game, int, error) {
	q.Q = strings.TrimSpace(q.Q)
	if q.Limit <= 0 || q.Limit > maxSearchLimit {
		q.Limit = defaultSearchLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.repo.Search(ctx, q)
}

func (s *Service) Get(ctx context.Context, id string) (Game, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByRAWGID(ctx context.Context, rawgID string) (Game, error) {
	return s.repo.GetByRAWGID(ctx, rawgID)
}

func (s *Service) Resolve(ctx context.Context, c Candidate) (Game, error) {
	return s.matcher.Resolve(ctx, c)
}
