// Package throttle spaces out calls to a rate-limited provider.
package throttle

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Clock abstracts time so tests can observe waits without sleeping.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Throttle admits at most one call per interval. A single Throttle is shared
// by every caller that talks to the same provider.
type Throttle struct {
	limiter *rate.Limiter
	clock   Clock
}

type Option func(*Throttle)

// WithClock overrides the time source (useful for tests).
func WithClock(c Clock) Option {
	return func(t *Throttle) {
		if c != nil {
			t.clock = c
		}
	}
}

// New returns a throttle with one call per interval. A non-positive interval
// disables throttling.
func New(interval time.Duration, opts ...Option) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	t := &Throttle{
		limiter: rate.NewLimiter(limit, 1),
		clock:   realClock{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Wait blocks until the next call is admitted and returns how long it waited.
func (t *Throttle) Wait(ctx context.Context) (time.Duration, error) {
	now := t.clock.Now()
	r := t.limiter.ReserveN(now, 1)
	if !r.OK() {
		return 0, fmt.Errorf("throttle: reservation refused")
	}
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return 0, nil
	}
	if err := t.clock.Sleep(ctx, delay); err != nil {
		r.CancelAt(now)
		return 0, err
	}
	return delay, nil
}
