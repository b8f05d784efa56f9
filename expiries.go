package timedmap

import (
	"cmp"

	"github.com/google/btree"
)

const indexDegree = 32

// expiry is one index pairing: the expiration reading of an expirable entry
// and the key it is stored under.
type expiry[K cmp.Ordered] struct {
	at  uint64
	key K
}

// expiryIndex tracks (expiration, key) pairs of all expirable entries in
// ascending expiration order, keys breaking ties. It must stay in exact
// correspondence with the expirable entries of the primary store: sweeping
// then only walks the expired prefix instead of scanning the whole map.
type expiryIndex[K cmp.Ordered] struct {
	tree *btree.BTreeG[expiry[K]]
}

func newExpiryIndex[K cmp.Ordered]() *expiryIndex[K] {
	return &expiryIndex[K]{
		tree: btree.NewG(indexDegree, func(a, b expiry[K]) bool {
			if a.at != b.at {
				return a.at < b.at
			}

			return a.key < b.key
		}),
	}
}

func (x *expiryIndex[K]) record(at uint64, key K) {
	x.tree.ReplaceOrInsert(expiry[K]{at: at, key: key})
}

func (x *expiryIndex[K]) forget(at uint64, key K) {
	x.tree.Delete(expiry[K]{at: at, key: key})
}

// sweep removes and returns all pairings expired as of now, in ascending
// expiration order. The walk stops at the first live pairing.
func (x *expiryIndex[K]) sweep(now uint64) []expiry[K] {
	var expired []expiry[K]

	x.tree.Ascend(func(e expiry[K]) bool {
		if e.at > now {
			return false
		}

		expired = append(expired, e)

		return true
	})

	for _, e := range expired {
		x.tree.Delete(e)
	}

	return expired
}

func (x *expiryIndex[K]) len() int {
	return x.tree.Len()
}

func (x *expiryIndex[K]) clear() {
	x.tree.Clear(false)
}
