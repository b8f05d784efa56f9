package store

import (
	"cmp"

	"github.com/google/btree"
)

const btreeDegree = 32

type kv[K cmp.Ordered, V any] struct {
	key K
	val V
}

// btreeMap is the ordered-tree kind: O(log n) operations, ascending key
// iteration order, no sizing knobs.
type btreeMap[K cmp.Ordered, V any] struct {
	tree *btree.BTreeG[kv[K, V]]
}

func newBTreeMap[K cmp.Ordered, V any]() *btreeMap[K, V] {
	return &btreeMap[K, V]{
		tree: btree.NewG(btreeDegree, func(a, b kv[K, V]) bool {
			return a.key < b.key
		}),
	}
}

func (m *btreeMap[K, V]) Get(key K) (V, bool) {
	item, ok := m.tree.Get(kv[K, V]{key: key})

	return item.val, ok
}

func (m *btreeMap[K, V]) Put(key K, val V) {
	m.tree.ReplaceOrInsert(kv[K, V]{key: key, val: val})
}

func (m *btreeMap[K, V]) Delete(key K) (V, bool) {
	item, ok := m.tree.Delete(kv[K, V]{key: key})

	return item.val, ok
}

func (m *btreeMap[K, V]) Len() int {
	return m.tree.Len()
}

func (m *btreeMap[K, V]) ForEach(fn func(key K, val V) bool) {
	m.tree.Ascend(func(item kv[K, V]) bool {
		return fn(item.key, item.val)
	})
}

func (m *btreeMap[K, V]) Clear() {
	m.tree.Clear(false)
}
