package transport

import (
	"context"
	"math"
	"time"
)

// Backoff returns the delay to wait before retry number attempt (zero-based):
// base doubled once per attempt. Negative attempts yield sub-base delays;
// the formula is intentionally unclamped.
func Backoff(attempt int, base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	return time.Duration(float64(base) * math.Pow(2, float64(attempt)))
}

// Sleep blocks for d or until ctx is done, whichever comes first, returning
// the context error when interrupted. A zero or negative duration yields
// without waiting.
func Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
