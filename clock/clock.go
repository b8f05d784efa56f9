package clock

import "time"

// Clock provides the current time in whole seconds since a fixed reference
// point. Implementations must be monotonic non-decreasing; expiration
// comparisons rely on it. The capability is infallible by contract: an
// implementation that cannot read time should return a fixed fallback value
// instead of failing.
type Clock interface {
	// NowSeconds returns the elapsed time in seconds
	NowSeconds() uint64
}

// SystemClock is the default Clock for hosted environments. It anchors the
// wall-clock epoch reading once at construction and advances it using Go's
// monotonic reading, so the result never decreases even if the wall clock is
// adjusted.
type SystemClock struct {
	start time.Time
	base  uint64
}

func NewSystemClock() *SystemClock {
	now := time.Now()

	return &SystemClock{
		start: now,
		base:  uint64(now.Unix()),
	}
}

func (c *SystemClock) NowSeconds() uint64 {
	return c.base + uint64(time.Since(c.start)/time.Second)
}

// ManualClock is a caller-driven Clock. On constrained targets the caller
// ticks it from whatever time source is available (e.g. a hardware timer
// interrupt); in tests it makes expiration deterministic. The caller is
// responsible for monotonicity.
type ManualClock struct {
	seconds uint64
}

func NewManualClock(seconds uint64) *ManualClock {
	return &ManualClock{seconds: seconds}
}

func (c *ManualClock) NowSeconds() uint64 {
	return c.seconds
}

// Set moves the clock to an absolute reading
func (c *ManualClock) Set(seconds uint64) {
	c.seconds = seconds
}

// Advance moves the clock forward by d, truncated to whole seconds
func (c *ManualClock) Advance(d time.Duration) {
	c.seconds += uint64(d / time.Second)
}
