package store

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

const fastHashShardCount = 32

// fastHashMap is the fast non-cryptographic hash kind: keys are distributed
// over fixed map shards by their xxhash digest. Keeping the individual maps
// small makes growth rehashing cheaper for large, non-adversarial key sets.
type fastHashMap[K cmp.Ordered, V any] struct {
	shards [fastHashShardCount]map[K]V
}

func newFastHashMap[K cmp.Ordered, V any]() *fastHashMap[K, V] {
	m := &fastHashMap[K, V]{}
	for i := range m.shards {
		m.shards[i] = make(map[K]V)
	}

	return m
}

func (m *fastHashMap[K, V]) shard(key K) map[K]V {
	return m.shards[hashKey(key)%fastHashShardCount]
}

func (m *fastHashMap[K, V]) Get(key K) (V, bool) {
	val, ok := m.shard(key)[key]

	return val, ok
}

func (m *fastHashMap[K, V]) Put(key K, val V) {
	m.shard(key)[key] = val
}

func (m *fastHashMap[K, V]) Delete(key K) (V, bool) {
	shard := m.shard(key)
	val, ok := shard[key]
	delete(shard, key)

	return val, ok
}

func (m *fastHashMap[K, V]) Len() int {
	count := 0
	for _, shard := range m.shards {
		count += len(shard)
	}

	return count
}

func (m *fastHashMap[K, V]) ForEach(fn func(key K, val V) bool) {
	for _, shard := range m.shards {
		for k, v := range shard {
			if !fn(k, v) {
				return
			}
		}
	}
}

func (m *fastHashMap[K, V]) Clear() {
	for i := range m.shards {
		m.shards[i] = make(map[K]V)
	}
}

// hashKey digests a key with xxhash. Strings and the common integer widths
// are hashed from their raw bytes, everything else falls back to the printed
// representation.
func hashKey[K cmp.Ordered](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return xxhash.Sum64String(k)
	case int:
		return sum64Uint(uint64(k))
	case int32:
		return sum64Uint(uint64(k))
	case int64:
		return sum64Uint(uint64(k))
	case uint:
		return sum64Uint(uint64(k))
	case uint32:
		return sum64Uint(uint64(k))
	case uint64:
		return sum64Uint(k)
	case float64:
		return sum64Uint(math.Float64bits(k))
	default:
		return xxhash.Sum64String(fmt.Sprint(key))
	}
}

func sum64Uint(v uint64) uint64 {
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], v)

	return xxhash.Sum64(buf[:])
}
