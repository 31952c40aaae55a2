// Package upstream performs JSON GET requests against external providers
// with a bounded timeout and exponential-backoff retries.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"gamelib/internal/apperr"
	"gamelib/internal/metrics"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultBaseDelay = 500 * time.Millisecond
	defaultMaxDelay  = 5 * time.Second
)

type Config struct {
	Provider   string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
}

// Getter issues GET requests relative to a provider base URL.
type Getter struct {
	provider   string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

type Option func(*Getter)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Getter) {
		if client != nil {
			g.httpClient = client
		}
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(g *Getter) {
		g.baseDelay = baseDelay
		g.maxDelay = maxDelay
	}
}

func New(cfg Config, opts ...Option) *Getter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	g := &Getter{
		provider:   cfg.Provider,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
	}
	if g.userAgent == "" {
		g.userAgent = "gamelib/1.0"
	}
	if g.maxRetries < 0 {
		g.maxRetries = 0
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GetJSON requests path with params and decodes a 200 response into target.
// A 404 maps to apperr.ErrNotFound; 429, 5xx and network failures are retried
// and finally reported as *apperr.TransportError.
func (g *Getter) GetJSON(ctx context.Context, path string, params url.Values, target any) error {
	op := fmt.Sprintf("%s GET %s", g.provider, path)
	u := g.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	attempt := func() error {
		err := g.do(ctx, op, u, target)
		var te *apperr.TransportError
		if err != nil && (!errors.As(err, &te) || !te.Retryable()) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(attempt, backoff.WithContext(g.policy(), ctx))
}

func (g *Getter) policy() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = g.baseDelay
	exp.MaxInterval = g.maxDelay
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithMaxRetries(exp, uint64(g.maxRetries))
}

func (g *Getter) do(ctx context.Context, op, u string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &apperr.TransportError{Op: op, Err: err}
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(g.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(g.provider, "error").Inc()
		// url.Error repeats the full URL, which carries the API key.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return &apperr.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	metrics.UpstreamRequests.WithLabelValues(g.provider, strconv.Itoa(resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return apperr.NotFoundf("%s", op)
	default:
		return &apperr.TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return backoff.Permanent(&apperr.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)})
	}
	return nil
}
