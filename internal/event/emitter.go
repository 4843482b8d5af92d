// Package event provides a typed fan-out used to report reconciler
// activity to the console, the log and metrics.
package event

import "sync"

// Emitter delivers events to subscribers in subscription order.
// Subscribers run synchronously on the emitting goroutine and must not block.
type Emitter[E any] struct {
	mu sync.RWMutex
	// +checklocks:mu
	subs []subscriber[E]
	// +checklocks:mu
	nextID int
}

type subscriber[E any] struct {
	id int
	fn func(E)
}

// Subscribe registers fn and returns a function that removes it.
func (e *Emitter[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subs = append(e.subs, subscriber[E]{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, s := range e.subs {
				if s.id == id {
					e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Emit sends ev to every current subscriber. The subscriber list is copied
// first, so a subscriber may subscribe or unsubscribe while handling ev.
func (e *Emitter[E]) Emit(ev E) {
	e.mu.RLock()
	subs := make([]subscriber[E], len(e.subs))
	copy(subs, e.subs)
	e.mu.RUnlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

// Len returns the number of subscribers.
func (e *Emitter[E]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}
