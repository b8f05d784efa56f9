package store

import (
	"cmp"

	lru "github.com/hashicorp/golang-lru"
)

// lruMap is the bounded kind: once MaxSize entries are stored, the least
// recently used one is dropped to make room. Owners that keep auxiliary
// indexes should set Config.OnEvict to observe those drops.
type lruMap[K cmp.Ordered, V any] struct {
	lru *lru.Cache
}

func newLruMap[K cmp.Ordered, V any](cfg Config[K, V]) *lruMap[K, V] {
	size := int(cfg.MaxSize)
	if size <= 0 {
		size = defaultMaxSize
	}

	l, _ := lru.NewWithEvict(size, func(key, val interface{}) {
		if cfg.OnEvict != nil {
			cfg.OnEvict(key.(K), val.(V))
		}
	})

	return &lruMap[K, V]{lru: l}
}

func (m *lruMap[K, V]) Get(key K) (V, bool) {
	var zero V

	val, ok := m.lru.Get(key)
	if !ok {
		return zero, false
	}

	return val.(V), true
}

func (m *lruMap[K, V]) Put(key K, val V) {
	m.lru.Add(key, val)
}

func (m *lruMap[K, V]) Delete(key K) (V, bool) {
	var zero V

	// Peek first: Remove reports presence but not the value
	val, ok := m.lru.Peek(key)
	if !ok {
		return zero, false
	}

	m.lru.Remove(key)

	return val.(V), true
}

func (m *lruMap[K, V]) Len() int {
	return m.lru.Len()
}

func (m *lruMap[K, V]) ForEach(fn func(key K, val V) bool) {
	for _, key := range m.lru.Keys() {
		if val, ok := m.lru.Peek(key); ok {
			if !fn(key.(K), val.(V)) {
				return
			}
		}
	}
}

func (m *lruMap[K, V]) Clear() {
	m.lru.Purge()
}
