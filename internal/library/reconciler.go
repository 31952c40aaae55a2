package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gamelib/internal/apperr"
	"gamelib/internal/catalog"
	"gamelib/internal/logging"
)

type OutcomeKind string

const (
	OutcomeCreated OutcomeKind = "created"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeSkipped OutcomeKind = "skipped"
)

// ReasonUpToDate is reported when the stored playtime is already at least the
// incoming value.
const ReasonUpToDate = "already up to date"

// Hints carries what an import knows about a title. A zero Status means
// owned.
type Hints struct {
	HoursPlayed decimal.Decimal
	Status      Status
}

type Outcome struct {
	Kind   OutcomeKind
	Entry  Entry
	Reason string
}

// Reconciler folds imported ownership data into a user's library. Tracked
// hours only ever grow, and an existing entry's status is left to the user.
type Reconciler struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewReconciler(repo Repository, logger *zap.Logger) *Reconciler {
	return &Reconciler{repo: repo, now: time.Now, logger: logging.OrNop(logger).Named("reconciler")}
}

// Existing returns the user's entry for gameID, if any.
func (r *Reconciler) Existing(ctx context.Context, userID, gameID string) (Entry, bool, error) {
	e, err := r.repo.Get(ctx, userID, gameID)
	switch {
	case err == nil:
		return e, true, nil
	case errors.Is(err, apperr.ErrNotFound):
		return Entry{}, false, nil
	default:
		return Entry{}, false, err
	}
}

func (r *Reconciler) Reconcile(ctx context.Context, userID string, game catalog.Game, h Hints) (Outcome, error) {
	if userID == "" {
		return Outcome{}, apperr.Validation("user_id", "user id is required")
	}
	if game.ID == "" {
		return Outcome{}, apperr.Validation("game_id", "catalog game has no id")
	}
	if h.HoursPlayed.IsNegative() {
		return Outcome{}, apperr.Validation("hours_played", "must not be negative")
	}
	if h.Status == "" {
		h.Status = StatusOwned
	}
	if !h.Status.Valid() {
		return Outcome{}, apperr.Validation("status", "invalid status: %s", h.Status)
	}
	hours := h.HoursPlayed.Round(1)

	existing, found, err := r.Existing(ctx, userID, game.ID)
	if err != nil {
		return Outcome{}, fmt.Errorf("reconcile %s: %w", game.ID, err)
	}
	if found {
		return r.merge(ctx, existing, hours)
	}

	e := Entry{UserID: userID, GameID: game.ID, HoursPlayed: hours, Game: gameInfo(game)}
	e.ApplyStatus(h.Status, r.now())
	err = r.repo.Insert(ctx, &e)
	switch {
	case err == nil:
		return Outcome{Kind: OutcomeCreated, Entry: e}, nil
	case errors.Is(err, apperr.ErrConflict):
		// Lost a race with a concurrent import for the same user.
		r.logger.Debug("library entry created concurrently", zap.String("user_id", userID), zap.String("game_id", game.ID))
		existing, err := r.repo.Get(ctx, userID, game.ID)
		if err != nil {
			return Outcome{}, fmt.Errorf("reconcile %s after conflict: %w", game.ID, err)
		}
		return r.merge(ctx, existing, hours)
	default:
		return Outcome{}, fmt.Errorf("reconcile %s: %w", game.ID, err)
	}
}

func (r *Reconciler) merge(ctx context.Context, existing Entry, hours decimal.Decimal) (Outcome, error) {
	if !hours.GreaterThan(existing.HoursPlayed) {
		return Outcome{Kind: OutcomeSkipped, Entry: existing, Reason: ReasonUpToDate}, nil
	}
	existing.HoursPlayed = hours
	if err := r.repo.Update(ctx, &existing); err != nil {
		return Outcome{}, fmt.Errorf("update hours for %s: %w", existing.GameID, err)
	}
	return Outcome{Kind: OutcomeUpdated, Entry: existing}, nil
}
