package store

import "cmp"

// hashMap is the plain Go map kind: O(1) amortized operations, random
// iteration order.
type hashMap[K cmp.Ordered, V any] map[K]V

func newHashMap[K cmp.Ordered, V any]() hashMap[K, V] {
	return make(hashMap[K, V])
}

func (m hashMap[K, V]) Get(key K) (V, bool) {
	val, ok := m[key]

	return val, ok
}

func (m hashMap[K, V]) Put(key K, val V) {
	m[key] = val
}

func (m hashMap[K, V]) Delete(key K) (V, bool) {
	val, ok := m[key]
	delete(m, key)

	return val, ok
}

func (m hashMap[K, V]) Len() int {
	return len(m)
}

func (m hashMap[K, V]) ForEach(fn func(key K, val V) bool) {
	for k, v := range m {
		if !fn(k, v) {
			return
		}
	}
}

func (m hashMap[K, V]) Clear() {
	for k := range m {
		delete(m, k)
	}
}
