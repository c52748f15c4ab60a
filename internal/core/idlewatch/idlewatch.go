// Package idlewatch stops a running countdown once the user has been away long enough.
package idlewatch

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomodoro/internal/core/ticker"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
)

const (
	DefaultCheckInterval = 5 * time.Second
	DefaultStopAfter     = 5 * time.Minute
)

// Target is the countdown the monitor guards.
type Target interface {
	Running() bool
	Stop()
}

// Config contains runtime options for Monitor.
type Config struct {
	Enabled       bool
	CheckInterval time.Duration
	StopAfter     time.Duration
	Source        ticker.Source
	// OnStop is called outside the lock after the target was stopped for inactivity.
	OnStop func(idle time.Duration)
}

// Monitor polls an idle provider while enabled.
type Monitor struct {
	mu          sync.Mutex
	provider    platform.IdleProvider
	target      Target
	options     Config
	handle      ticker.Handle
	scheduled   bool
	unsupported bool
	closed      bool
	logger      zerolog.Logger
}

// New creates a Monitor. Call Start to begin polling.
func New(provider platform.IdleProvider, target Target, options Config) *Monitor {
	if options.CheckInterval <= 0 {
		options.CheckInterval = DefaultCheckInterval
	}
	if options.StopAfter <= 0 {
		options.StopAfter = DefaultStopAfter
	}
	if options.Source == nil {
		options.Source = ticker.NewInterval()
	}
	return &Monitor{
		provider: provider,
		target:   target,
		options:  options,
		logger:   logging.Component("idlewatch"),
	}
}

// Start schedules polling if the monitor is enabled.
func (monitor *Monitor) Start() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.syncScheduleLocked()
}

// SetEnabled toggles polling. It follows the idle auto-stop setting.
func (monitor *Monitor) SetEnabled(enabled bool) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.options.Enabled = enabled
	monitor.syncScheduleLocked()
}

// Active reports whether the monitor is currently polling.
func (monitor *Monitor) Active() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.scheduled
}

// Check performs one poll. A stopped target is left alone.
func (monitor *Monitor) Check() {
	monitor.mu.Lock()
	if !monitor.options.Enabled || monitor.unsupported || monitor.closed || monitor.provider == nil {
		monitor.mu.Unlock()
		return
	}
	provider, target, stopAfter := monitor.provider, monitor.target, monitor.options.StopAfter
	monitor.mu.Unlock()

	if !target.Running() {
		return
	}

	idle, err := provider.IdleDuration()
	if err != nil {
		if errors.Is(err, platform.ErrIdleUnsupported) {
			monitor.logger.Info().Msg("idle detection unsupported, auto-stop disabled")
			monitor.mu.Lock()
			monitor.unsupported = true
			monitor.syncScheduleLocked()
			monitor.mu.Unlock()
			return
		}
		monitor.logger.Warn().Err(err).Msg("idle check failed")
		return
	}
	if idle < stopAfter {
		return
	}

	monitor.logger.Info().Dur("idle", idle).Msg("stopping countdown after inactivity")
	target.Stop()
	if monitor.options.OnStop != nil {
		monitor.options.OnStop(idle)
	}
}

// Close cancels polling.
func (monitor *Monitor) Close() {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.closed = true
	monitor.syncScheduleLocked()
}

func (monitor *Monitor) syncScheduleLocked() {
	want := monitor.options.Enabled && !monitor.unsupported && !monitor.closed && monitor.provider != nil
	if want == monitor.scheduled {
		return
	}
	if monitor.scheduled {
		monitor.options.Source.Cancel(monitor.handle)
		monitor.scheduled = false
		return
	}
	monitor.handle = monitor.options.Source.Schedule(monitor.Check, monitor.options.CheckInterval)
	monitor.scheduled = true
}
