package ticker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_TicksUntilCancelled(t *testing.T) {
	source := NewInterval()
	var ticks atomic.Int32

	handle := source.Schedule(func() { ticks.Add(1) }, 5*time.Millisecond)
	assert.NotZero(t, handle)
	assert.Equal(t, 1, source.Pending())

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	source.Cancel(handle)
	assert.Equal(t, 0, source.Pending())

	// Allow any in-flight tick to land, then make sure ticking has stopped.
	time.Sleep(20 * time.Millisecond)
	settled := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, ticks.Load())
}

func TestInterval_CancelUnknownHandle(t *testing.T) {
	source := NewInterval()
	assert.NotPanics(t, func() {
		source.Cancel(0)
		source.Cancel(42)
	})
}

func TestInterval_CancelFromCallbackDoesNotDeadlock(t *testing.T) {
	source := NewInterval()
	done := make(chan struct{})

	var handle atomic.Uint64
	var closed atomic.Bool
	handle.Store(uint64(source.Schedule(func() {
		source.Cancel(Handle(handle.Load()))
		if closed.CompareAndSwap(false, true) {
			close(done)
		}
	}, time.Millisecond)))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
	assert.Eventually(t, func() bool { return source.Pending() == 0 }, time.Second, time.Millisecond)
}

func TestManual(t *testing.T) {
	source := NewManual()
	var first, second int

	a := source.Schedule(func() { first++ }, time.Second)
	b := source.Schedule(func() { second++ }, time.Second)
	assert.Equal(t, 2, source.Pending())

	source.FireN(3)
	assert.Equal(t, 3, first)
	assert.Equal(t, 3, second)

	source.Cancel(a)
	source.Fire()
	assert.Equal(t, 3, first)
	assert.Equal(t, 4, second)

	source.Cancel(b)
	assert.Equal(t, 0, source.Pending())
	assert.Equal(t, 2, source.Scheduled())
}
