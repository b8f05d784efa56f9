package timedmap

import (
	"cmp"
	"encoding/json"
)

// Item is the serializable view of one live entry. RemainingSeconds is nil
// for constant entries.
type Item[K cmp.Ordered, V any] struct {
	Key              K       `yaml:"key" json:"key"`
	Value            V       `yaml:"value" json:"value"`
	RemainingSeconds *uint64 `yaml:"remainingSeconds,omitempty" json:"remainingSeconds,omitempty"`
}

// Snapshot returns the map's logical contents: every live entry with its key,
// value and, for expirable entries, the remaining time in seconds. Logically
// expired entries are excluded even when not swept yet.
func (m *TimedMap[K, V]) Snapshot() []Item[K, V] {
	now := m.clock.NowSeconds()
	items := make([]Item[K, V], 0, m.entries.Len())

	m.entries.ForEach(func(key K, e entry[V]) bool {
		if e.isExpired(now) {
			return true
		}

		item := Item[K, V]{Key: key, Value: e.val}

		if !e.constant {
			remaining := e.remainingSeconds(now)
			item.RemainingSeconds = &remaining
		}

		items = append(items, item)

		return true
	})

	return items
}

// MarshalJSON implements `json.Marshaler`.
func (m *TimedMap[K, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Snapshot())
}

// MarshalYAML implements `yaml.Marshaler`.
func (m *TimedMap[K, V]) MarshalYAML() (interface{}, error) {
	return m.Snapshot(), nil
}
