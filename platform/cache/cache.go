// Package cache provides bounded in-process memoization for upstream
// lookup results. This is part of the platform layer and contains no
// business logic.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Memo is a size-bounded, process-lifetime memoization cache. Concurrent
// misses for the same key collapse into a single compute call; errors are
// never cached, so a failed compute can be retried on the next lookup.
type Memo[V any] struct {
	entries *lru.Cache[string, V]
	group   singleflight.Group
}

// NewMemo creates a Memo with the given capacity. Capacities below 1 are
// raised to 1.
func NewMemo[V any](capacity int) (*Memo[V], error) {
	if capacity < 1 {
		capacity = 1
	}
	entries, err := lru.New[string, V](capacity)
	if err != nil {
		return nil, err
	}
	return &Memo[V]{entries: entries}, nil
}

// Get returns the cached value for key, if present.
func (m *Memo[V]) Get(key string) (V, bool) {
	return m.entries.Get(key)
}

// GetOrCompute returns the cached value for key, computing and caching it on
// a miss. At most one compute runs per key at a time; concurrent callers for
// the same missing key share the one result.
func (m *Memo[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := m.entries.Get(key); ok {
		return v, nil
	}

	result, err, _ := m.group.Do(key, func() (interface{}, error) {
		// Re-check: another caller may have populated the entry while we
		// waited for the flight slot.
		if v, ok := m.entries.Get(key); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return v, err
		}
		m.entries.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Add stores a value without going through a compute function.
func (m *Memo[V]) Add(key string, value V) {
	m.entries.Add(key, value)
}

// Len returns the number of cached entries.
func (m *Memo[V]) Len() int {
	return m.entries.Len()
}

// Purge removes every entry. Intended for tests.
func (m *Memo[V]) Purge() {
	m.entries.Purge()
}
