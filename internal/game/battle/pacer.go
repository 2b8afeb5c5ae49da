package battle

import (
	"context"
	"time"
)

// Driver plays out a submitted turn cycle.
type Driver interface {
	Play(ctx context.Context, s *Session) error
}

// Pacer drives turn cycles in real time: it sleeps through each pending
// delay and advances the session by the time waited.
//
// A cycle is never abandoned half way. When ctx is cancelled the rest of
// the cycle is fast-forwarded and ctx.Err() is returned.
type Pacer struct {
	// Scale multiplies every delay. Zero means 1.
	Scale float64
}

// NewPacer returns a pacer that waits the configured delays as-is.
func NewPacer() *Pacer {
	return &Pacer{Scale: 1}
}

// Play blocks until the current cycle finishes.
func (p *Pacer) Play(ctx context.Context, s *Session) error {
	for s.Busy() {
		d := s.PendingDelay()
		timer := time.NewTimer(p.scaled(d))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.FastForward()
			return ctx.Err()
		case <-timer.C:
			s.Advance(d)
		}
	}
	return nil
}

func (p *Pacer) scaled(d time.Duration) time.Duration {
	if p.Scale <= 0 || p.Scale == 1 {
		return d
	}
	return time.Duration(float64(d) * p.Scale)
}

// Instant finishes every cycle immediately. Used for batch simulation.
type Instant struct{}

// Play fast-forwards the current cycle.
func (Instant) Play(_ context.Context, s *Session) error {
	s.FastForward()
	return nil
}
