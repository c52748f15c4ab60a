package ticker

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Source that only ticks when Fire is called.
type Manual struct {
	mu        sync.Mutex
	next      Handle
	callbacks map[Handle]func()
	scheduled int
}

// NewManual creates a Manual source.
func NewManual() *Manual {
	return &Manual{callbacks: make(map[Handle]func())}
}

// Schedule registers callback. The period is ignored.
func (source *Manual) Schedule(callback func(), _ time.Duration) Handle {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.next++
	source.scheduled++
	source.callbacks[source.next] = callback
	return source.next
}

// Cancel removes a registration.
func (source *Manual) Cancel(handle Handle) {
	source.mu.Lock()
	defer source.mu.Unlock()
	delete(source.callbacks, handle)
}

// Fire delivers one tick to every live registration, oldest first.
func (source *Manual) Fire() {
	for _, callback := range source.snapshot() {
		callback()
	}
}

// FireN calls Fire n times.
func (source *Manual) FireN(n int) {
	for i := 0; i < n; i++ {
		source.Fire()
	}
}

// Pending returns the number of live registrations.
func (source *Manual) Pending() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return len(source.callbacks)
}

// Scheduled returns how many registrations were ever made.
func (source *Manual) Scheduled() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.scheduled
}

func (source *Manual) snapshot() []func() {
	source.mu.Lock()
	defer source.mu.Unlock()

	handles := make([]Handle, 0, len(source.callbacks))
	for handle := range source.callbacks {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	callbacks := make([]func(), 0, len(handles))
	for _, handle := range handles {
		callbacks = append(callbacks, source.callbacks[handle])
	}
	return callbacks
}
