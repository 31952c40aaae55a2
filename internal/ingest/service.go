package ingest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gamelib/internal/apperr"
	"gamelib/internal/catalog"
	"gamelib/internal/library"
	"gamelib/internal/logging"
	"gamelib/internal/metrics"
	"gamelib/internal/platform/rawg"
	"gamelib/internal/platform/steam"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
}

type Config struct {
	DefaultLimit int
	MaxLimit     int
	ItemTimeout  time.Duration
}

type OwnershipClient interface {
	ResolveHandle(ctx context.Context, handle string) (string, error)
	GetProfile(ctx context.Context, steamID string) (steam.Profile, error)
	ListOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedTitle, error)
}

type MetadataClient interface {
	LookupByName(ctx context.Context, name string) (rawg.GameDetails, bool, error)
}

type CatalogMatcher interface {
	Resolve(ctx context.Context, c catalog.Candidate) (catalog.Game, error)
	Enrich(ctx context.Context, g catalog.Game, c catalog.Candidate) (catalog.Game, error)
}

type LibraryReconciler interface {
	Existing(ctx context.Context, userID, gameID string) (library.Entry, bool, error)
	Reconcile(ctx context.Context, userID string, game catalog.Game, h library.Hints) (library.Outcome, error)
}

// Throttle spaces out metadata calls. It is shared across imports.
type Throttle interface {
	Wait(ctx context.Context) (time.Duration, error)
}

// Deps are the collaborators of an import. Runs may be nil, in which case
// no audit record is written.
type Deps struct {
	Ownership OwnershipClient
	Metadata  MetadataClient
	Matcher   CatalogMatcher
	Library   LibraryReconciler
	Throttle  Throttle
	Runs      RunRepository
}

type Service struct {
	cfg    Config
	deps   Deps
	logger *zap.Logger
	now    func() time.Time
}

func NewService(cfg Config, deps Deps, logger *zap.Logger) *Service {
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	if cfg.DefaultLimit <= 0 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(50, cfg.MaxLimit)
	}
	if cfg.ItemTimeout <= 0 {
		cfg.ItemTimeout = 10 * time.Second
	}
	return &Service{cfg: cfg, deps: deps, logger: logging.OrNop(logger).Named("ingest"), now: time.Now}
}

// Profile resolves handle and returns the account's public summary.
func (s *Service) Profile(ctx context.Context, handle string) (steam.Profile, error) {
	steamID, err := s.deps.Ownership.ResolveHandle(ctx, handle)
	if err != nil {
		return steam.Profile{}, err
	}
	return s.deps.Ownership.GetProfile(ctx, steamID)
}

// Runs lists the user's most recent imports.
func (s *Service) Runs(ctx context.Context, userID string, limit int) ([]Run, error) {
	if s.deps.Runs == nil {
		return []Run{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.deps.Runs.ListRuns(ctx, userID, limit)
}

func (s *Service) normalize(opts Options) (Options, error) {
	if err := validate.Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return opts, apperr.Validation(verrs[0].Field(), "must not be negative")
		}
		return opts, fmt.Errorf("validate options: %w", err)
	}
	if opts.Limit == 0 {
		opts.Limit = s.cfg.DefaultLimit
	}
	opts.Limit = min(opts.Limit, s.cfg.MaxLimit)
	return opts, nil
}

// Run imports the owned games of the Steam account behind handle into
// userID's library. Only resolving the handle and listing the library can
// fail the whole run; every per-title failure is reported in the Failed
// bucket, and a failure to record the run audit is only logged. Cancelling
// ctx stops the run between titles and returns the context error instead of
// a partial report, including when the last title was interrupted.
func (s *Service) Run(ctx context.Context, userID, handle string, opts Options) (rep Report, err error) {
	if userID == "" {
		return Report{}, apperr.Validation("user_id", "user id is required")
	}
	opts, err = s.normalize(opts)
	if err != nil {
		return Report{}, err
	}

	run := &Run{
		UserID:             userID,
		Handle:             handle,
		Status:             RunStatusRunning,
		Limit:              opts.Limit,
		MinPlaytimeMinutes: opts.MinPlaytimeMinutes,
		Enrich:             opts.Enrich,
		StartedAt:          s.now().UTC(),
	}
	if s.deps.Runs != nil {
		id, err := s.deps.Runs.CreateRun(ctx, run)
		if err != nil {
			s.logger.Warn("failed to record import run", zap.String("user_id", userID), zap.String("handle", handle), zap.Error(err))
		}
		run.ID = id
	}
	defer func() { s.finish(ctx, run, rep, err) }()

	steamID, err := s.deps.Ownership.ResolveHandle(ctx, handle)
	if err != nil {
		return Report{}, fmt.Errorf("resolve steam handle: %w", err)
	}
	owned, err := s.deps.Ownership.ListOwnedGames(ctx, steamID)
	if err != nil {
		return Report{}, fmt.Errorf("list owned games: %w", err)
	}

	rep = newReport(steamID)
	rep.RunID = run.ID
	rep.TotalInSteam = len(owned)

	items := selectTitles(owned, opts.MinPlaytimeMinutes, opts.Limit)
	rep.Eligible = len(items)

	for _, title := range items {
		if err := ctx.Err(); err != nil {
			run.record(rep)
			return Report{}, err
		}
		s.importTitle(ctx, userID, title, opts.Enrich, &rep)
		rep.Processed++
	}
	if err := ctx.Err(); err != nil {
		run.record(rep)
		return Report{}, err
	}
	return rep, nil
}

// selectTitles keeps titles played at least minMinutes, most played first,
// truncated to limit.
func selectTitles(owned []steam.OwnedTitle, minMinutes, limit int) []steam.OwnedTitle {
	out := make([]steam.OwnedTitle, 0, len(owned))
	for _, t := range owned {
		if t.MinutesPlayed >= minMinutes {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MinutesPlayed > out[j].MinutesPlayed })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Service) finish(ctx context.Context, run *Run, rep Report, err error) {
	result := RunStatusCompleted
	switch {
	case err != nil && ctx.Err() != nil:
		result = RunStatusCanceled
	case err != nil:
		result = RunStatusFailed
	}
	metrics.ImportRuns.WithLabelValues(result).Inc()

	if err == nil {
		s.logger.Info("import finished",
			zap.String("user_id", run.UserID),
			zap.String("steam_id", rep.SteamID),
			zap.Int("total_in_steam", rep.TotalInSteam),
			zap.Int("processed", rep.Processed),
			zap.Int("imported", len(rep.Imported)),
			zap.Int("updated", len(rep.Updated)),
			zap.Int("skipped", len(rep.Skipped)),
			zap.Int("failed", len(rep.Failed)),
		)
	} else {
		s.logger.Warn("import aborted", zap.String("user_id", run.UserID), zap.String("handle", run.Handle), zap.Error(err))
	}

	if s.deps.Runs == nil || run.ID == "" {
		return
	}
	now := s.now().UTC()
	run.FinishedAt = &now
	run.Status = result
	if err == nil {
		run.record(rep)
	} else {
		run.Error = err.Error()
	}
	if updateErr := s.deps.Runs.UpdateRun(context.WithoutCancel(ctx), run); updateErr != nil {
		s.logger.Error("failed to update import run", zap.String("run_id", run.ID), zap.Error(updateErr))
	}
}

type bucket int

const (
	bucketImported bucket = iota
	bucketUpdated
	bucketSkipped
	bucketFailed
)

var bucketNames = [...]string{"imported", "updated", "skipped", "failed"}

func (b bucket) String() string { return bucketNames[b] }

func (rep *Report) add(b bucket, it Item) {
	switch b {
	case bucketImported:
		rep.Imported = append(rep.Imported, it)
	case bucketUpdated:
		rep.Updated = append(rep.Updated, it)
	case bucketSkipped:
		rep.Skipped = append(rep.Skipped, it)
	default:
		rep.Failed = append(rep.Failed, it)
	}
	metrics.ImportItems.WithLabelValues(b.String()).Inc()
}

// importTitle processes one title under its own deadline. Errors and panics
// are recorded in the Failed bucket and never escape.
func (s *Service) importTitle(ctx context.Context, userID string, t steam.OwnedTitle, enrich bool, rep *Report) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ItemTimeout)
	defer cancel()

	it := Item{SteamAppID: t.AppID, Name: t.Name, HoursPlayed: t.HoursPlayed()}
	b, err := s.reconcileTitle(ctx, userID, t, enrich, &it)
	if err != nil {
		it.Error = err.Error()
		b = bucketFailed
		s.logger.Warn("import item failed",
			zap.String("user_id", userID),
			zap.String("steam_app_id", t.AppID),
			zap.String("name", t.Name),
			zap.Error(err),
		)
	}
	rep.add(b, it)
}

func (s *Service) reconcileTitle(ctx context.Context, userID string, t steam.OwnedTitle, enrich bool, it *Item) (b bucket, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during import item",
				zap.String("steam_app_id", t.AppID),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	game, err := s.deps.Matcher.Resolve(ctx, catalog.Candidate{SteamAppID: t.AppID, Title: t.Name, ImageURL: t.IconURL})
	if err != nil {
		return bucketFailed, fmt.Errorf("resolve catalog game: %w", err)
	}
	it.GameID = game.ID
	it.Enriched = game.HasMetadata()

	hints := library.Hints{HoursPlayed: t.HoursPlayed()}
	_, found, err := s.deps.Library.Existing(ctx, userID, game.ID)
	if err != nil {
		return bucketFailed, fmt.Errorf("look up library entry: %w", err)
	}
	if !found {
		e := s.enrichment(ctx, game, t.Name, enrich)
		game = e.Game
		it.Enriched, it.Reason = e.Enriched, e.Reason
	}

	out, err := s.deps.Library.Reconcile(ctx, userID, game, hints)
	if err != nil {
		return bucketFailed, fmt.Errorf("reconcile library entry: %w", err)
	}
	switch out.Kind {
	case library.OutcomeCreated:
		return bucketImported, nil
	case library.OutcomeUpdated:
		return bucketUpdated, nil
	default:
		it.Reason = out.Reason
		return bucketSkipped, nil
	}
}

// enrichment runs the best-effort metadata step for a title that is new to
// the library. It never fails: problems are reported in the result.
func (s *Service) enrichment(ctx context.Context, game catalog.Game, name string, enabled bool) Enrichment {
	switch {
	case game.HasMetadata():
		return Enrichment{Game: game, Enriched: true}
	case !enabled:
		return Enrichment{Game: game, Reason: "enrichment disabled"}
	}

	waited, err := s.deps.Throttle.Wait(ctx)
	metrics.EnrichmentWait.Observe(waited.Seconds())
	if err != nil {
		return Enrichment{Game: game, Reason: fmt.Sprintf("throttle: %v", err)}
	}

	details, found, err := s.deps.Metadata.LookupByName(ctx, name)
	if err != nil {
		s.logger.Warn("metadata lookup failed", zap.String("name", name), zap.Error(err))
		return Enrichment{Game: game, Reason: "metadata lookup failed"}
	}
	if !found {
		return Enrichment{Game: game, Reason: "no metadata match"}
	}

	enriched, err := s.deps.Matcher.Enrich(ctx, game, catalog.CandidateFromDetails(details))
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return Enrichment{Game: game, Reason: "metadata already linked to another game"}
		}
		s.logger.Warn("metadata enrichment failed", zap.String("game_id", game.ID), zap.Error(err))
		return Enrichment{Game: game, Reason: "metadata enrichment failed"}
	}
	return Enrichment{Game: enriched, Enriched: true}
}
