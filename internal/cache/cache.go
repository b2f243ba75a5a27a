// Package cache provides the process-wide, never-evicting caches used for binding plans.
package cache

import "sync"

// Map is a thread-safe map
type Map[K comparable, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

// Get returns a value from the map
func (m *Map[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

// GetOrPut returns the existing value for k, or stores and returns the one produced by fn.
// fn runs under the write lock, so it must be cheap; expensive construction belongs in a Once.
func (m *Map[K, V]) GetOrPut(k K, fn func() V) V {
	if v, ok := m.Get(k); ok {
		return v
	}
	m.mux.Lock()
	defer m.mux.Unlock()
	if v, ok := m.m[k]; ok {
		return v
	}
	v := fn()
	m.m[k] = v
	return v
}

// NewMap creates a map
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

// Once holds a value built exactly once; concurrent callers wait for the first build.
type Once[V any] struct {
	once  sync.Once
	value V
	err   error
}

// Get builds the value on first use and returns it
func (o *Once[V]) Get(build func() (V, error)) (V, error) {
	o.once.Do(func() {
		o.value, o.err = build()
	})
	return o.value, o.err
}
