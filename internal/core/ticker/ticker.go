// Package ticker provides the periodic signal that drives the timer engines.
package ticker

import (
	"sync"
	"time"
)

// Period is the default tick interval.
const Period = time.Second

// Handle identifies one periodic registration. The zero Handle is never issued.
type Handle uint64

// Source schedules periodic callbacks.
type Source interface {
	// Schedule calls callback every period until the returned handle is cancelled.
	Schedule(callback func(), period time.Duration) Handle
	// Cancel stops a registration. Cancelling an unknown or zero handle is a no-op.
	// Cancel must not wait for an in-flight callback to return.
	Cancel(handle Handle)
}

// Interval is a Source backed by time.Ticker goroutines.
type Interval struct {
	mu     sync.Mutex
	next   Handle
	active map[Handle]chan struct{}
}

// NewInterval creates an Interval source.
func NewInterval() *Interval {
	return &Interval{active: make(map[Handle]chan struct{})}
}

// Schedule starts a goroutine that calls callback on every tick.
func (source *Interval) Schedule(callback func(), period time.Duration) Handle {
	if period <= 0 {
		period = Period
	}

	source.mu.Lock()
	source.next++
	handle := source.next
	stopCh := make(chan struct{})
	source.active[handle] = stopCh
	source.mu.Unlock()

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				select {
				case <-stopCh:
					return
				default:
				}
				callback()
			}
		}
	}()

	return handle
}

// Cancel stops the goroutine behind handle.
func (source *Interval) Cancel(handle Handle) {
	source.mu.Lock()
	stopCh, ok := source.active[handle]
	delete(source.active, handle)
	source.mu.Unlock()

	if ok {
		close(stopCh)
	}
}

// Pending returns the number of live registrations.
func (source *Interval) Pending() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return len(source.active)
}
