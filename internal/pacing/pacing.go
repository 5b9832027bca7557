// Package pacing spaces out consecutive requests against the same site or API.
package pacing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Pacer blocks until the next unit of work may start.
type Pacer interface {
	Wait(ctx context.Context) error
}

const (
	ModeInterval = "interval"
	ModeToken    = "token"
	ModeNone     = "none"
)

type interval struct {
	d time.Duration
}

// Interval sleeps a fixed duration on every call.
func Interval(d time.Duration) Pacer {
	return interval{d: d}
}

func (p interval) Wait(ctx context.Context) error {
	if p.d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(p.d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type token struct {
	limiter *rate.Limiter
}

// Token caps how often rows may start: one per d on average, with the given
// burst. The initial tokens are drained so the first Wait already blocks.
// Unlike Interval this is a rate cap, not a pause after each row: when a row
// takes longer than d the next token is already available and Wait returns
// at once.
func Token(d time.Duration, burst int) Pacer {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if d > 0 {
		limit = rate.Every(d)
	}
	l := rate.NewLimiter(limit, burst)
	if d > 0 {
		l.AllowN(time.Now(), burst)
	}
	return token{limiter: l}
}

func (p token) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type none struct{}

// None never waits. Useful in tests.
func None() Pacer {
	return none{}
}

func (none) Wait(ctx context.Context) error {
	return ctx.Err()
}

// New picks a pacer by mode name.
func New(mode string, d time.Duration) (Pacer, error) {
	switch mode {
	case "", ModeInterval:
		return Interval(d), nil
	case ModeToken:
		return Token(d, 1), nil
	case ModeNone:
		return None(), nil
	default:
		return nil, fmt.Errorf("pacing: unknown mode %q", mode)
	}
}
