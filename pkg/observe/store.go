// Package observe defines the reactive container contract the form engine
// publishes snapshots into. UI layers usually bring their own store; Value is
// the in-memory default so the engine works stand-alone.
package observe

import (
	"sort"
	"sync"
)

// Store is the observable container the engine writes state snapshots to.
// Set replaces the current value and notifies every subscriber.
type Store[T any] interface {
	Get() T
	Set(value T)
	Subscribe(fn func(T)) (cancel func())
}

// Value is a mutex-guarded Store. Subscribers are notified in subscription
// order, outside the lock, so they may read the store re-entrantly.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	subs    map[int]func(T)
	next    int
}

// NewValue constructs a Value seeded with the initial snapshot.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int]func(T)),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the current value and notifies subscribers.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.current = value
	listeners := v.orderedSubs()
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// Subscribe registers a listener for future Set calls. The returned cancel
// func is idempotent.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

func (v *Value[T]) orderedSubs() []func(T) {
	if len(v.subs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(v.subs))
	for id := range v.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, v.subs[id])
	}
	return out
}
