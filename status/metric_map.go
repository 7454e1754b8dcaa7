package status

import (
	"sort"
	"sync"
)

// MetricMap maps metric names to stable pointers of T
// Lookups take a read lock; callers cache the pointer and update it lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty map
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the metric under key, creating a zero T on first use
func (m *MetricMap[T]) Get(key string) *T {
	return m.GetOr(key, func() *T { return new(T) })
}

// GetOr returns the metric under key, creating it with build on first use
// build runs under the write lock and at most once per key
func (m *MetricMap[T]) GetOr(key string, build func() *T) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = build()
	m.items[key] = ptr
	return ptr
}

// Keys returns registered names in sorted order
func (m *MetricMap[T]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn for every metric in sorted key order, outside the lock
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	keys := make([]string, 0, len(m.items))
	ptrs := make(map[string]*T, len(m.items))
	for k, p := range m.items {
		keys = append(keys, k)
		ptrs[k] = p
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		fn(k, ptrs[k])
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
