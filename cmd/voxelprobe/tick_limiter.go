package main

import "time"

// TickLimiter paces probe ticks to a fixed rate.
type TickLimiter struct {
	rate int
	next time.Time
}

// NewTickLimiter creates a limiter for rate ticks per second. A rate of 0
// or less disables pacing.
func NewTickLimiter(rate int) *TickLimiter {
	return &TickLimiter{rate: rate}
}

// Wait blocks until the next tick is due. Sleeps most of the interval and
// spins for the last stretch.
func (l *TickLimiter) Wait() {
	if l.rate <= 0 {
		return
	}
	interval := time.Second / time.Duration(l.rate)
	if l.next.IsZero() {
		l.next = time.Now().Add(interval)
	} else {
		l.next = l.next.Add(interval)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// After a hitch, resync instead of bursting to catch up
	if late := -time.Until(l.next); late > interval {
		l.next = time.Now().Add(interval)
	}
}
