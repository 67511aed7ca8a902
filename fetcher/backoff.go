package fetcher

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// NextDelay computes the next retry delay: a linear one-second ramp with a
// hard ceiling at max and no jitter. Idempotent once the ceiling is reached.
func NextDelay(current, max time.Duration) time.Duration {
	if current < max {
		return current + time.Second
	}
	return max
}

// linearBackOff adapts NextDelay to the backoff.BackOff interface. Reset is
// called only when a proxy rotation occurs, never on a plain delay-mode
// retry.
type linearBackOff struct {
	current time.Duration
	max     time.Duration
}

var _ backoff.BackOff = (*linearBackOff)(nil)

func newLinearBackOff(max time.Duration) *linearBackOff {
	return &linearBackOff{max: max}
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.current = NextDelay(b.current, b.max)
	return b.current
}

func (b *linearBackOff) Reset() {
	b.current = 0
}
