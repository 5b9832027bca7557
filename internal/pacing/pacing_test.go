package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Waits(t *testing.T) {
	p := Interval(20 * time.Millisecond)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestInterval_Cancelled(t *testing.T) {
	p := Interval(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}

func TestToken_FirstCallWaits(t *testing.T) {
	p := Token(40*time.Millisecond, 1)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestToken_SpacesConsecutiveCalls(t *testing.T) {
	p := Token(30*time.Millisecond, 1)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestToken_Cancelled(t *testing.T) {
	p := Token(time.Hour, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, p.Wait(ctx))
}

func TestToken_ZeroIntervalNeverWaits(t *testing.T) {
	p := Token(0, 1)

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestNone(t *testing.T) {
	require.NoError(t, None().Wait(context.Background()))
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"", ModeInterval, ModeToken, ModeNone} {
		p, err := New(mode, time.Millisecond)
		require.NoError(t, err, mode)
		assert.NotNil(t, p)
	}

	_, err := New("jitter", time.Second)
	assert.EqualError(t, err, `pacing: unknown mode "jitter"`)
}
