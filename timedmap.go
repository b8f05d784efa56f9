// Package timedmap implements a generic associative container where every
// entry is either constant or expires after a caller-specified duration.
// Expiration is lazy: readers stop seeing an entry once its time has passed,
// while physical removal happens in batched sweeps, either triggered manually
// or automatically every few insertions.
//
// A TimedMap is single-owner: it performs no internal synchronization and
// must be wrapped by the caller for use across goroutines.
package timedmap

import (
	"cmp"
	"time"

	"github.com/0xERR0R/timedmap/clock"
	"github.com/0xERR0R/timedmap/log"
	"github.com/0xERR0R/timedmap/store"

	"github.com/hako/durafmt"
	"github.com/sirupsen/logrus"
)

// OnExpirationCallback is called during a sweep for each expired entry, just
// before it gets removed. It can return a new value and TTL to refresh the
// entry instead, keeping it in the map.
type OnExpirationCallback[K cmp.Ordered, V any] func(key K) (val V, ttl time.Duration, refresh bool)

// TimedMap owns all entries, the expiry index and the clock. The zero value
// is not usable; create instances with New or NewFromConfig.
type TimedMap[K cmp.Ordered, V any] struct {
	clock    clock.Clock
	entries  store.Map[K, entry[V]]
	expiries *expiryIndex[K]

	storeKind store.Kind
	maxSize   uint

	tick    uint
	tickCap uint

	onExpiredFn OnExpirationCallback[K, V]
	logger      *logrus.Entry
}

type Option[K cmp.Ordered, V any] func(m *TimedMap[K, V])

// WithClock replaces the default system clock, e.g. on constrained targets
// where the caller drives time from a hardware timer
func WithClock[K cmp.Ordered, V any](c clock.Clock) Option[K, V] {
	return func(m *TimedMap[K, V]) {
		m.clock = c
	}
}

// WithStoreKind selects the backing store strategy
func WithStoreKind[K cmp.Ordered, V any](kind store.Kind) Option[K, V] {
	return func(m *TimedMap[K, V]) {
		m.storeKind = kind
	}
}

// WithMaxSize bounds the map (lru store kind only)
func WithMaxSize[K cmp.Ordered, V any](size uint) Option[K, V] {
	return func(m *TimedMap[K, V]) {
		m.maxSize = size
	}
}

// WithOnExpiredFn installs a refresh callback consulted during sweeps
func WithOnExpiredFn[K cmp.Ordered, V any](fn OnExpirationCallback[K, V]) Option[K, V] {
	return func(m *TimedMap[K, V]) {
		m.onExpiredFn = fn
	}
}

// WithLogger replaces the logger used for sweep reporting
func WithLogger[K cmp.Ordered, V any](logger *logrus.Entry) Option[K, V] {
	return func(m *TimedMap[K, V]) {
		m.logger = logger
	}
}

// New creates an empty map with the system clock and the ordered-tree
// backing store, unless configured otherwise.
func New[K cmp.Ordered, V any](options ...Option[K, V]) *TimedMap[K, V] {
	m := &TimedMap[K, V]{
		clock:    clock.NewSystemClock(),
		expiries: newExpiryIndex[K](),
		logger:   log.PrefixedLog("timedmap"),
	}

	for _, opt := range options {
		opt(m)
	}

	m.entries = store.New(store.Config[K, entry[V]]{
		Kind:    m.storeKind,
		MaxSize: m.maxSize,
		// a bounded store drops entries on its own; keep the index in sync
		OnEvict: func(key K, e entry[V]) {
			if !e.constant {
				m.expiries.forget(e.expiresAt, key)
			}
		},
	})

	return m
}

// ExpirationTickCap configures the automatic cleanup cadence: every n checked
// insertions one sweep runs. n = 0 (the default) disables automatic sweeps,
// leaving physical cleanup entirely to DropExpiredEntries.
func (m *TimedMap[K, V]) ExpirationTickCap(n uint) *TimedMap[K, V] {
	m.tickCap = n

	return m
}

// InsertConstant stores a value with no expiration, clearing any prior
// expiry-index pairing for the key. It returns the previous physically
// stored value, if any.
func (m *TimedMap[K, V]) InsertConstant(key K, val V) (V, bool) {
	prev, ok := m.put(key, newConstantEntry[V](val))
	m.tickAndMaybeSweep()

	return prev, ok
}

// InsertExpirable stores a value expiring after the given duration, counted
// from the clock's current reading. It returns the previous physically
// stored value, if any.
func (m *TimedMap[K, V]) InsertExpirable(key K, val V, duration time.Duration) (V, bool) {
	prev, ok := m.put(key, newExpirableEntry(m.clock.NowSeconds(), val, duration))
	m.tickAndMaybeSweep()

	return prev, ok
}

// InsertConstantUnchecked behaves like InsertConstant but performs no tick
// accounting and never triggers a sweep. Intended for insertion bursts where
// the caller runs DropExpiredEntries itself.
func (m *TimedMap[K, V]) InsertConstantUnchecked(key K, val V) (V, bool) {
	return m.put(key, newConstantEntry[V](val))
}

// InsertExpirableUnchecked behaves like InsertExpirable but performs no tick
// accounting and never triggers a sweep.
func (m *TimedMap[K, V]) InsertExpirableUnchecked(key K, val V, duration time.Duration) (V, bool) {
	return m.put(key, newExpirableEntry(m.clock.NowSeconds(), val, duration))
}

// Get returns the value stored under key if it is present and not logically
// expired. It never mutates the map: an observed-expired entry stays stored
// until the next sweep.
func (m *TimedMap[K, V]) Get(key K) (V, bool) {
	var zero V

	e, ok := m.entries.Get(key)
	if !ok || e.isExpired(m.clock.NowSeconds()) {
		return zero, false
	}

	return e.val, true
}

// GetUnchecked returns the value stored under key regardless of its
// expiration state, skipping the clock read. Useful right after
// DropExpiredEntries when repeated time checks would be wasted work.
func (m *TimedMap[K, V]) GetUnchecked(key K) (V, bool) {
	var zero V

	e, ok := m.entries.Get(key)
	if !ok {
		return zero, false
	}

	return e.val, true
}

// GetRemainingDuration returns the time left until the entry under key
// expires. There is nothing to return for constant, absent or logically
// expired entries.
func (m *TimedMap[K, V]) GetRemainingDuration(key K) (time.Duration, bool) {
	e, ok := m.entries.Get(key)
	if !ok || e.constant {
		return 0, false
	}

	now := m.clock.NowSeconds()
	if e.isExpired(now) {
		return 0, false
	}

	return time.Duration(e.remainingSeconds(now)) * time.Second, true
}

// ContainsKey reports whether a live (non logically expired) entry is stored
// under key
func (m *TimedMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)

	return ok
}

// Remove deletes the entry under key from the primary store and the expiry
// index and returns its value, regardless of expiration state.
func (m *TimedMap[K, V]) Remove(key K) (V, bool) {
	var zero V

	e, ok := m.entries.Delete(key)
	if !ok {
		return zero, false
	}

	if !e.constant {
		m.expiries.forget(e.expiresAt, key)
	}

	return e.val, true
}

// DropExpiredEntries removes all logically expired entries. Calling it with
// nothing expired is a no-op.
func (m *TimedMap[K, V]) DropExpiredEntries() {
	start := time.Now()

	expired := m.expiries.sweep(m.clock.NowSeconds())
	if len(expired) == 0 {
		return
	}

	dropped := 0

	for _, ex := range expired {
		if m.onExpiredFn != nil {
			if newVal, ttl, refresh := m.onExpiredFn(ex.key); refresh {
				m.InsertExpirableUnchecked(ex.key, newVal, ttl)

				continue
			}
		}

		m.entries.Delete(ex.key)
		dropped++
	}

	m.logger.Debugf("dropped %d expired entries in %s",
		dropped, durafmt.Parse(time.Since(start)).String())
}

// Len returns the number of physically stored entries, including logically
// expired ones that were not swept yet
func (m *TimedMap[K, V]) Len() int {
	return m.entries.Len()
}

// Clear removes all entries and resets the tick counter
func (m *TimedMap[K, V]) Clear() {
	m.entries.Clear()
	m.expiries.clear()
	m.tick = 0
}

// ForEach visits every live (non logically expired) entry until fn returns
// false. Iteration order follows the backing store; only the ordered-tree
// kind is stable.
func (m *TimedMap[K, V]) ForEach(fn func(key K, val V) bool) {
	now := m.clock.NowSeconds()

	m.entries.ForEach(func(key K, e entry[V]) bool {
		if e.isExpired(now) {
			return true
		}

		return fn(key, e.val)
	})
}

// put installs the entry, reconciling the expiry index: any stale pairing of
// a previous expirable value is removed first, then the new pairing is
// recorded if the entry expires at all.
func (m *TimedMap[K, V]) put(key K, e entry[V]) (V, bool) {
	prev, existed := m.entries.Get(key)
	if existed && !prev.constant {
		m.expiries.forget(prev.expiresAt, key)
	}

	if !e.constant {
		m.expiries.record(e.expiresAt, key)
	}

	m.entries.Put(key, e)

	return prev.val, existed
}

func (m *TimedMap[K, V]) tickAndMaybeSweep() {
	if m.tickCap == 0 {
		return
	}

	m.tick++
	if m.tick >= m.tickCap {
		m.DropExpiredEntries()
		m.tick = 0
	}
}
