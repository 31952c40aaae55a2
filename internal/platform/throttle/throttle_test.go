package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func TestThrottle_SpacesCalls(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	th := New(200*time.Millisecond, WithClock(clock))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := th.Wait(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, []time.Duration{200 * time.Millisecond, 200 * time.Millisecond}, clock.sleeps)
}

func TestThrottle_NoWaitAfterIdle(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	th := New(200*time.Millisecond, WithClock(clock))
	ctx := context.Background()

	_, err := th.Wait(ctx)
	require.NoError(t, err)
	clock.now = clock.now.Add(time.Second)

	waited, err := th.Wait(ctx)
	require.NoError(t, err)
	assert.Zero(t, waited)
	assert.Empty(t, clock.sleeps)
}

func TestThrottle_Disabled(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	th := New(0, WithClock(clock))

	for i := 0; i < 5; i++ {
		_, err := th.Wait(context.Background())
		require.NoError(t, err)
	}
	assert.Empty(t, clock.sleeps)
}

func TestThrottle_CanceledContext(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	th := New(time.Second, WithClock(clock))

	_, err := th.Wait(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = th.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
