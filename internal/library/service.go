package library

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"gamelib/internal/apperr"
	"gamelib/internal/catalog"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("library_status", func(fl validator.FieldLevel) bool {
		_, err := ParseStatus(fl.Field().String())
		return err == nil
	})
}

// validateInput reports the first failing field as an apperr.ValidationError.
func validateInput(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := verrs[0]
	field := fe.Field()
	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "min", "max":
		if fe.Kind() == reflect.String {
			message = fmt.Sprintf("must be at most %s characters", fe.Param())
		} else {
			message = "must be between 1 and 10"
		}
	case "library_status":
		message = fmt.Sprintf("invalid status: %v", fe.Value())
	default:
		message = "is invalid"
	}
	return apperr.Validation(field, "%s", message)
}

type AddInput struct {
	Status string `json:"status" validate:"omitempty,library_status"`
	Rating *int   `json:"rating" validate:"omitempty,min=1,max=10"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// UpdateInput holds a partial edit. Nil fields are left unchanged.
type UpdateInput struct {
	Status      *string          `json:"status" validate:"omitempty,library_status"`
	Rating      *int             `json:"rating" validate:"omitempty,min=1,max=10"`
	Notes       *string          `json:"notes" validate:"omitempty,max=2000"`
	HoursPlayed *decimal.Decimal `json:"hours_played" validate:"-"`
}

func (in UpdateInput) empty() bool {
	return in.Status == nil && in.Rating == nil && in.Notes == nil && in.HoursPlayed == nil
}

// GameGetter looks up catalog games by id.
type GameGetter interface {
	GetByID(ctx context.Context, id string) (catalog.Game, error)
}

type Service struct {
	repo  Repository
	stats StatsRepository
	games GameGetter
	now   func() time.Time
}

func NewService(repo Repository, stats StatsRepository, games GameGetter) *Service {
	return &Service{repo: repo, stats: stats, games: games, now: time.Now}
}

// Add puts a catalog game in the user's library. Adding a game twice is a
// conflict; imports go through the Reconciler instead.
func (s *Service) Add(ctx context.Context, userID, gameID string, in AddInput) (Entry, error) {
	if err := validateInput(in); err != nil {
		return Entry{}, err
	}
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return Entry{}, err
	}

	status := StatusOwned
	if in.Status != "" {
		status, _ = ParseStatus(in.Status)
	}
	e := Entry{
		UserID: userID,
		GameID: game.ID,
		Rating: in.Rating,
		Notes:  strings.TrimSpace(in.Notes),
		Game:   gameInfo(game),
	}
	e.ApplyStatus(status, s.now())

	if err := s.repo.Insert(ctx, &e); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return Entry{}, fmt.Errorf("game %s is already in the library: %w", gameID, apperr.ErrConflict)
		}
		return Entry{}, err
	}
	return e, nil
}

// Update applies a direct edit. Unlike imports, a user may lower their
// tracked hours.
func (s *Service) Update(ctx context.Context, userID, gameID string, in UpdateInput) (Entry, error) {
	if in.empty() {
		return Entry{}, apperr.Validation("", "at least one field must be provided")
	}
	if err := validateInput(in); err != nil {
		return Entry{}, err
	}
	if in.HoursPlayed != nil && in.HoursPlayed.IsNegative() {
		return Entry{}, apperr.Validation("hours_played", "must not be negative")
	}

	e, err := s.repo.Get(ctx, userID, gameID)
	if err != nil {
		return Entry{}, err
	}
	if in.Status != nil {
		status, _ := ParseStatus(*in.Status)
		e.ApplyStatus(status, s.now())
	}
	if in.Rating != nil {
		e.Rating = in.Rating
	}
	if in.Notes != nil {
		e.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.HoursPlayed != nil {
		e.HoursPlayed = in.HoursPlayed.Round(1)
	}

	if err := s.repo.Update(ctx, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, userID, gameID string) (Entry, error) {
	return s.repo.Get(ctx, userID, gameID)
}

func (s *Service) Remove(ctx context.Context, userID, gameID string) error {
	return s.repo.Delete(ctx, userID, gameID)
}

// List returns one page of the user's library. An unknown sort column is a
// validation error; the default order is most recently updated first.
func (s *Service) List(ctx context.Context, userID string, q ListQuery) ([]Entry, int, error) {
	if q.Sort == "" {
		q.Sort = SortUpdatedAt
	}
	if !validSort(q.Sort) {
		return nil, 0, apperr.Validation("sort", "unsupported sort column: %s", q.Sort)
	}
	q.Order = strings.ToLower(q.Order)
	switch q.Order {
	case "":
		q.Order = "desc"
	case "asc", "desc":
	default:
		return nil, 0, apperr.Validation("order", "must be asc or desc")
	}
	if q.Status != "" {
		st, err := ParseStatus(string(q.Status))
		if err != nil {
			return nil, 0, err
		}
		q.Status = st
	}
	if q.Limit <= 0 || q.Limit > maxListLimit {
		q.Limit = defaultListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.repo.List(ctx, userID, q)
}

func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	return s.stats.Stats(ctx, userID)
}

func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	return s.stats.Dashboard(ctx, userID, s.now().UTC())
}
