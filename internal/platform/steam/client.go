// Package steam is the ownership client: it resolves account handles and
// lists the games an account owns together with lifetime playtime.
package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gamelib/internal/apperr"
	"gamelib/internal/platform/upstream"
)

const defaultBaseURL = "https://api.steampowered.com"

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

type Client struct {
	apiKey string
	getter *upstream.Getter
}

func NewClient(cfg Config, opts ...upstream.Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		apiKey: strings.TrimSpace(cfg.APIKey),
		getter: upstream.New(upstream.Config{
			Provider:   "steam",
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		}, opts...),
	}
}

func (c *Client) ensureAPIKey() error {
	if c.apiKey == "" {
		return apperr.Validation("STEAM_API_KEY", "steam api key not configured")
	}
	return nil
}

// ResolveHandle turns user input into a 17-digit Steam ID. A Steam ID is
// returned unchanged; anything else is resolved as a vanity name. Community
// profile URLs of either form are accepted.
func (c *Client) ResolveHandle(ctx context.Context, input string) (string, error) {
	handle := trimProfileURL(strings.TrimSpace(input))
	if handle == "" {
		return "", apperr.Validation("steam_id", "must not be empty")
	}
	if IsSteamID(handle) {
		return handle, nil
	}
	if err := c.ensureAPIKey(); err != nil {
		return "", err
	}

	var out vanityResponse
	params := url.Values{"key": {c.apiKey}, "vanityurl": {handle}}
	if err := c.getter.GetJSON(ctx, "/ISteamUser/ResolveVanityURL/v1/", params, &out); err != nil {
		return "", fmt.Errorf("resolve steam vanity %q: %w", handle, err)
	}
	if out.Response.Success != 1 || out.Response.SteamID == "" {
		return "", apperr.NotFoundf("steam user %q", handle)
	}
	return out.Response.SteamID, nil
}

func trimProfileURL(s string) string {
	for _, prefix := range []string{"https://", "http://"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimPrefix(s, "steamcommunity.com")
	s = strings.Trim(s, "/")
	for _, prefix := range []string{"id/", "profiles/"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			return strings.Trim(rest, "/")
		}
	}
	return s
}

// GetProfile returns the account summary for a Steam ID.
func (c *Client) GetProfile(ctx context.Context, steamID string) (Profile, error) {
	if !IsSteamID(steamID) {
		return Profile{}, apperr.Validation("steam_id", "must be a 17-digit steam id")
	}
	if err := c.ensureAPIKey(); err != nil {
		return Profile{}, err
	}

	var out playerSummariesResponse
	params := url.Values{"key": {c.apiKey}, "steamids": {steamID}}
	if err := c.getter.GetJSON(ctx, "/ISteamUser/GetPlayerSummaries/v2/", params, &out); err != nil {
		return Profile{}, fmt.Errorf("steam player summary %s: %w", steamID, err)
	}
	if len(out.Response.Players) == 0 {
		return Profile{}, apperr.NotFoundf("steam user %s", steamID)
	}

	p := out.Response.Players[0]
	return Profile{
		SteamID:     p.SteamID,
		PersonaName: p.PersonaName,
		AvatarURL:   p.AvatarFull,
		ProfileURL:  p.ProfileURL,
		IsPublic:    p.CommunityVisibilityState == visibilityPublic,
	}, nil
}

// ListOwnedGames returns every title the account owns, free-to-play titles
// with recorded playtime included. A hidden game list fails with
// apperr.ErrPrivateProfile; a visible empty library returns no titles.
func (c *Client) ListOwnedGames(ctx context.Context, steamID string) ([]OwnedTitle, error) {
	if !IsSteamID(steamID) {
		return nil, apperr.Validation("steam_id", "must be a 17-digit steam id")
	}
	if err := c.ensureAPIKey(); err != nil {
		return nil, err
	}

	var out ownedGamesResponse
	params := url.Values{
		"key":                       {c.apiKey},
		"steamid":                   {steamID},
		"include_appinfo":           {"true"},
		"include_played_free_games": {"true"},
		"format":                    {"json"},
	}
	if err := c.getter.GetJSON(ctx, "/IPlayerService/GetOwnedGames/v1/", params, &out); err != nil {
		return nil, fmt.Errorf("steam owned games %s: %w", steamID, err)
	}

	if out.Response.Games == nil {
		if out.Response.GameCount == nil {
			return nil, fmt.Errorf("steam owned games %s: set game details to public: %w", steamID, apperr.ErrPrivateProfile)
		}
		return []OwnedTitle{}, nil
	}

	games := *out.Response.Games
	titles := make([]OwnedTitle, 0, len(games))
	for _, g := range games {
		minutes := g.PlaytimeForever
		if minutes < 0 {
			minutes = 0
		}
		titles = append(titles, OwnedTitle{
			AppID:         strconv.FormatInt(g.AppID, 10),
			Name:          g.Name,
			MinutesPlayed: minutes,
			IconURL:       iconURL(g.AppID, g.ImgIconURL),
		})
	}
	return titles, nil
}
