// Package bus carries the single process-wide "force logout" signal. The
// API client publishes it when the server reports the session invalid; the
// session controller subscribes. Keeping the signal on a bus instead of a
// direct call avoids a dependency cycle between the two.
package bus

import "sync"

// Bus is a minimal publish/subscribe primitive for the forced-logout
// event. The event has no payload.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func New() *Bus {
	return &Bus{subs: make(map[int]func())}
}

// OnForceLogout registers handler and returns a function that removes the
// registration. Unsubscribing twice is harmless.
func (b *Bus) OnForceLogout(handler func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// ForceLogout notifies all current subscribers. Handlers run outside the
// bus lock, so a handler may subscribe or unsubscribe without deadlocking.
// The publisher does not learn whether anyone was listening.
func (b *Bus) ForceLogout() {
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}
