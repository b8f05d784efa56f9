// Package store provides the backing storage capability: a minimal
// associative map contract with interchangeable implementations. The
// implementation is selected once at construction and only affects
// performance characteristics and iteration order.
package store

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

import "cmp"

// Kind backing store strategy ENUM(
// btree // ordered B-tree, stable iteration order
// hash // Go map
// fast-hash // xxhash-sharded maps
// lru // bounded LRU
// )
type Kind int

// Map is the backing store contract. Implementations are not synchronized;
// the owner is responsible for serializing access.
type Map[K cmp.Ordered, V any] interface {
	// Get returns the value stored under key
	Get(key K) (V, bool)

	// Put stores the value under key, overwriting any previous value
	Put(key K, val V)

	// Delete removes the value stored under key and returns it
	Delete(key K) (V, bool)

	// Len returns the number of stored entries
	Len() int

	// ForEach calls fn for every entry until fn returns false. Iteration
	// order is implementation-defined; only the btree kind is stable.
	ForEach(fn func(key K, val V) bool)

	// Clear removes all entries
	Clear()
}

type Config[K cmp.Ordered, V any] struct {
	Kind    Kind
	MaxSize uint

	// OnEvict is called when the store drops an entry on its own (bounded
	// kinds only), so the owner can keep auxiliary indexes consistent.
	OnEvict func(key K, val V)
}

const defaultMaxSize = 10_000

// New creates a backing store of the configured kind
func New[K cmp.Ordered, V any](cfg Config[K, V]) Map[K, V] {
	switch cfg.Kind {
	case KindHash:
		return newHashMap[K, V]()
	case KindFastHash:
		return newFastHashMap[K, V]()
	case KindLru:
		return newLruMap(cfg)
	case KindBtree:
		return newBTreeMap[K, V]()
	default:
		return newBTreeMap[K, V]()
	}
}
