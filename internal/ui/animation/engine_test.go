package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	states []bool
}

func (rec *recorder) apply(on bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.states = append(rec.states, on)
}

func (rec *recorder) snapshot() []bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]bool(nil), rec.states...)
}

func TestFlashRunsToCompletion(t *testing.T) {
	rec := &recorder{}
	engine := New(Config{Period: time.Millisecond, Count: 2}, rec.apply)

	engine.Flash(context.Background())
	require.Eventually(t, func() bool { return !engine.Running() }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []bool{true, false, true, false, false}, rec.snapshot())
}

func TestStopRestoresOffState(t *testing.T) {
	rec := &recorder{}
	engine := New(Config{Period: time.Hour, Count: 3}, rec.apply)

	engine.Flash(context.Background())
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, time.Millisecond)
	assert.True(t, engine.Running())

	engine.Stop()
	assert.False(t, engine.Running())
	assert.Equal(t, []bool{true, false}, rec.snapshot())

	engine.Stop()
}

func TestFlashReplacesRunningSequence(t *testing.T) {
	rec := &recorder{}
	engine := New(Config{Period: time.Hour, Count: 1}, rec.apply)

	engine.Flash(context.Background())
	engine.Flash(context.Background())
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 3 }, time.Second, time.Millisecond)

	engine.Stop()
	states := rec.snapshot()
	assert.Equal(t, []bool{true, false, true, false}, states)
}

func TestDefaults(t *testing.T) {
	engine := New(Config{}, func(bool) {})
	assert.Equal(t, DefaultConfig(), engine.config)
}
