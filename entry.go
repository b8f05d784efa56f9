package timedmap

import (
	"math"
	"time"
)

// entry is the stored representation of a value: either constant (never
// expires) or expirable with an absolute expiration reading in clock seconds.
type entry[V any] struct {
	val       V
	expiresAt uint64
	constant  bool
}

func newConstantEntry[V any](val V) entry[V] {
	return entry[V]{val: val, constant: true}
}

func newExpirableEntry[V any](now uint64, val V, duration time.Duration) entry[V] {
	return entry[V]{val: val, expiresAt: expirationOf(now, duration)}
}

// expirationOf computes now + duration in whole seconds, saturating at the
// maximum reading instead of wrapping around.
func expirationOf(now uint64, duration time.Duration) uint64 {
	if duration <= 0 {
		return now
	}

	seconds := uint64(duration / time.Second)
	if now > math.MaxUint64-seconds {
		return math.MaxUint64
	}

	return now + seconds
}

// isExpired reports logical expiration: the expiration reading has passed,
// whether or not the entry was physically removed yet.
func (e entry[V]) isExpired(now uint64) bool {
	return !e.constant && e.expiresAt <= now
}

func (e entry[V]) remainingSeconds(now uint64) uint64 {
	if e.expiresAt <= now {
		return 0
	}

	return e.expiresAt - now
}
