// Package rawg is the metadata catalog client. Every call goes through the
// response cache before reaching the RAWG API.
package rawg

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"gamelib/internal/apperr"
	"gamelib/internal/cache"
	"gamelib/internal/logging"
	"gamelib/internal/platform/upstream"
)

const (
	searchNamespace = "rawg:search"
	gameNamespace   = "rawg:game"

	maxPageSize      = 40
	nameCandidates   = 5
	defaultBaseURL   = "https://api.rawg.io/api"
	defaultSearchTTL = time.Hour
	defaultDetailTTL = 24 * time.Hour
)

type Config struct {
	BaseURL    string
	APIKey     string
	SearchTTL  time.Duration
	DetailTTL  time.Duration
	Timeout    time.Duration
	MaxRetries int
}

type Client struct {
	apiKey    string
	searchTTL time.Duration
	detailTTL time.Duration
	getter    *upstream.Getter
	responses *cache.Responses
	logger    *zap.Logger
}

func NewClient(cfg Config, store cache.Store, logger *zap.Logger, opts ...upstream.Option) *Client {
	logger = logging.OrNop(logger)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.SearchTTL <= 0 {
		cfg.SearchTTL = defaultSearchTTL
	}
	if cfg.DetailTTL <= 0 {
		cfg.DetailTTL = defaultDetailTTL
	}
	return &Client{
		apiKey:    strings.TrimSpace(cfg.APIKey),
		searchTTL: cfg.SearchTTL,
		detailTTL: cfg.DetailTTL,
		getter: upstream.New(upstream.Config{
			Provider:   "rawg",
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}, opts...),
		responses: cache.NewResponses(store, logger),
		logger:    logger.Named("rawg"),
	}
}

func (c *Client) ensureAPIKey() error {
	if c.apiKey == "" {
		return apperr.Validation("RAWG_API_KEY", "rawg api key not configured")
	}
	return nil
}

// Search returns one page of RAWG search results for query.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchPage{}, apperr.Validation("query", "must not be empty")
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > maxPageSize {
		return SearchPage{}, apperr.Validation("page_size", "must be between 1 and %d", maxPageSize)
	}

	key := cache.Key(searchNamespace, query, page, pageSize)
	var cached SearchPage
	if c.responses.Load(ctx, searchNamespace, key, &cached) {
		return cached, nil
	}

	if err := c.ensureAPIKey(); err != nil {
		return SearchPage{}, err
	}
	params := url.Values{
		"key":            {c.apiKey},
		"search":         {query},
		"page":           {strconv.Itoa(page)},
		"page_size":      {strconv.Itoa(pageSize)},
		"search_precise": {"true"},
	}
	var raw searchJSON
	if err := c.getter.GetJSON(ctx, "/games", params, &raw); err != nil {
		return SearchPage{}, fmt.Errorf("rawg search %q: %w", query, err)
	}

	out := SearchPage{
		Count:   raw.Count,
		Results: make([]GameSummary, 0, len(raw.Results)),
	}
	if raw.Next != nil {
		out.Next = *raw.Next
	}
	if raw.Previous != nil {
		out.Previous = *raw.Previous
	}
	for _, g := range raw.Results {
		out.Results = append(out.Results, summaryFrom(g))
	}

	c.responses.Save(ctx, searchNamespace, key, out, c.searchTTL)
	return out, nil
}

// GetByID returns full details for one RAWG game.
func (c *Client) GetByID(ctx context.Context, rawgID int64) (GameDetails, error) {
	if rawgID <= 0 {
		return GameDetails{}, apperr.Validation("rawg_id", "must be a positive integer")
	}

	key := cache.Key(gameNamespace, rawgID)
	var cached GameDetails
	if c.responses.Load(ctx, gameNamespace, key, &cached) {
		return cached, nil
	}

	if err := c.ensureAPIKey(); err != nil {
		return GameDetails{}, err
	}
	var raw gameJSON
	path := "/games/" + strconv.FormatInt(rawgID, 10)
	if err := c.getter.GetJSON(ctx, path, url.Values{"key": {c.apiKey}}, &raw); err != nil {
		return GameDetails{}, fmt.Errorf("rawg game %d: %w", rawgID, err)
	}

	out := detailsFrom(raw)
	c.responses.Save(ctx, gameNamespace, key, out, c.detailTTL)
	return out, nil
}

// LookupByName picks the best of the top search candidates for name: an
// exact case-insensitive title match, else the first hit. found is false
// when RAWG has no candidates at all.
func (c *Client) LookupByName(ctx context.Context, name string) (GameDetails, bool, error) {
	page, err := c.Search(ctx, name, 1, nameCandidates)
	if err != nil {
		return GameDetails{}, false, err
	}
	if len(page.Results) == 0 {
		return GameDetails{}, false, nil
	}

	chosen := page.Results[0]
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	for _, r := range page.Results {
		if fold.String(r.Title) == want {
			chosen = r
			break
		}
	}

	details, err := c.GetByID(ctx, chosen.RAWGID)
	if err != nil {
		return GameDetails{}, false, err
	}
	return details, true, nil
}

// FindByName is the best-effort form of LookupByName: provider errors are
// logged and reported as no match.
func (c *Client) FindByName(ctx context.Context, name string) (GameDetails, bool) {
	details, found, err := c.LookupByName(ctx, name)
	if err != nil {
		c.logger.Warn("rawg lookup by name failed", zap.String("name", name), zap.Error(err))
		return GameDetails{}, false
	}
	return details, found
}
