package bus

import (
	"fmt"
	"sort"
)

// Listener receives change notifications from a Store. Only OnAdd is
// ever invoked by the ingest path; OnRemove and OnUpdate complete the
// subscriber shape but have no producer in this pipeline.
type Listener[V any] interface {
	OnAdd(V) error
	OnRemove(V) error
	OnUpdate(V) error
}

// ListenerFunc adapts a plain function to a Listener handling adds.
type ListenerFunc[V any] func(V) error

// OnAdd invokes the wrapped function.
func (f ListenerFunc[V]) OnAdd(v V) error { return f(v) }

// OnRemove is a no-op.
func (f ListenerFunc[V]) OnRemove(V) error { return nil }

// OnUpdate is a no-op.
func (f ListenerFunc[V]) OnUpdate(V) error { return nil }

// Store is a keyed value store with ordered change subscribers.
// Each service owns exactly one store; values cross the listener
// boundary by value, never as references into the store.
type Store[V any] struct {
	d         *Dispatcher
	key       func(V) string
	values    map[string]V
	listeners []Listener[V]
}

// NewStore creates a store whose entries are keyed by the key function.
func NewStore[V any](d *Dispatcher, key func(V) string) *Store[V] {
	return &Store[V]{
		d:      d,
		key:    key,
		values: make(map[string]V),
	}
}

// Get returns the stored value for a key, or ErrNotFound.
func (s *Store[V]) Get(key string) (V, error) {
	v, ok := s.values[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

// Put inserts or overwrites a value without notifying subscribers.
func (s *Store[V]) Put(v V) {
	s.values[s.key(v)] = v
}

// Ingest inserts or overwrites a value (last write wins) and notifies
// subscribers in registration order. The entire downstream chain for
// the event completes before Ingest returns to the outermost caller.
func (s *Store[V]) Ingest(v V) error {
	s.values[s.key(v)] = v
	if len(s.listeners) == 0 {
		return nil
	}
	jobs := make([]job, len(s.listeners))
	for i, l := range s.listeners {
		l := l
		jobs[i] = func() error { return l.OnAdd(v) }
	}
	return s.d.dispatch(jobs)
}

// Subscribe registers a listener. Dispatch order follows registration order.
func (s *Store[V]) Subscribe(l Listener[V]) {
	s.listeners = append(s.listeners, l)
}

// Len returns the number of stored entries.
func (s *Store[V]) Len() int {
	return len(s.values)
}

// Keys returns the stored keys in sorted order.
func (s *Store[V]) Keys() []string {
	out := make([]string, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
