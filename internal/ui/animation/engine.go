// Package animation runs short cancellable visual sequences on the UI.
package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains flash timing values.
type Config struct {
	// Period is how long each on and off phase lasts.
	Period time.Duration
	// Count is the number of on phases.
	Count int
}

// Engine toggles a visual state on and off, for example the clock on completion.
type Engine struct {
	mu     sync.Mutex
	config Config
	apply  func(on bool)
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an animation engine. apply is called from the animation goroutine.
func New(config Config, apply func(on bool)) *Engine {
	defaults := DefaultConfig()
	if config.Period <= 0 {
		config.Period = defaults.Period
	}
	if config.Count <= 0 {
		config.Count = defaults.Count
	}
	return &Engine{config: config, apply: apply}
}

// Flash starts a flash sequence, replacing any running one.
// The sequence always ends with apply(false).
func (engine *Engine) Flash(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		defer engine.apply(false)
		for range engine.config.Count {
			engine.apply(true)
			if !sleepWithContext(runCtx, engine.config.Period) {
				return
			}
			engine.apply(false)
			if !sleepWithContext(runCtx, engine.config.Period) {
				return
			}
		}
	})
}

// Stop terminates the running sequence and waits for it to restore the off state.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Running reports whether a sequence is in progress.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	done := engine.done
	engine.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
