// Package countdown implements the Pomodoro countdown state machine.
package countdown

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomodoro/internal/core/history"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stepping"
	"pomodoro/internal/core/ticker"
	"pomodoro/internal/logging"
)

// Chime plays the completion notification.
type Chime interface {
	Play() error
}

// HistoryWriter persists the session history after every change.
type HistoryWriter interface {
	SaveHistory(values []int) error
}

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Source       ticker.Source
	Policy       stepping.Policy
	Chime        Chime
	History      HistoryWriter
}

// Snapshot is a point-in-time copy of the engine state.
type Snapshot struct {
	Mode      model.Mode
	State     State
	Remaining int
	Total     int
	Running   bool
	Progress  float64
	History   []int
}

// Engine is the countdown state machine behind the Pomodoro view.
type Engine struct {
	mu         sync.Mutex
	settings   model.Settings
	options    Config
	mode       model.Mode
	remaining  int
	total      int
	running    bool
	history    *history.History
	handle     ticker.Handle
	generation uint64
	events     []chan Event
	closed     bool
	logger     zerolog.Logger
}

// New creates an idle Engine in focus mode, seeded with a previously stored history.
func New(settings model.Settings, seed []int, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = ticker.Period
	}
	if options.Source == nil {
		options.Source = ticker.NewInterval()
	}
	if options.Policy.Step == nil {
		options.Policy = stepping.Refined
	}

	engine := &Engine{
		settings: settings,
		options:  options,
		mode:     model.ModeFocus,
		history:  history.New(seed...),
		logger:   logging.Component("countdown"),
	}
	engine.resetLocked()
	return engine
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.closed {
		close(ch)
	} else {
		engine.events = append(engine.events, ch)
	}
	engine.mu.Unlock()
	return ch
}

// Start begins counting down. It is ignored while running or when nothing is left.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.running || engine.remaining == 0 {
		engine.mu.Unlock()
		return
	}
	engine.running = true
	engine.setActiveLocked(true)
	engine.logger.Debug().Str("mode", string(engine.mode)).Int("remaining", engine.remaining).Msg("start")
	engine.emitLocked(engine.eventLocked(EventStateChange))
	engine.mu.Unlock()
}

// Stop pauses the countdown and records the remaining seconds in the history.
// Stopping an engine that is not running does nothing.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if !engine.running {
		engine.mu.Unlock()
		return
	}
	engine.running = false
	engine.setActiveLocked(false)
	engine.history.Record(engine.remaining)
	values := engine.history.Values()
	engine.logger.Debug().Str("mode", string(engine.mode)).Int("remaining", engine.remaining).Msg("stop")
	engine.emitLocked(engine.eventLocked(EventStateChange))
	engine.emitLocked(engine.eventLocked(EventHistory))
	engine.mu.Unlock()

	engine.saveHistory(values)
}

// Reset stops the countdown and restores the full duration of the current mode.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	engine.resetLocked()
	engine.emitLocked(engine.eventLocked(EventStateChange))
	engine.mu.Unlock()
}

// ChangeMode switches mode and resets to its full duration.
// It panics on a mode outside the enumeration.
func (engine *Engine) ChangeMode(mode model.Mode) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	model.SecondsOf(mode, engine.settings) // panics before any state changes
	engine.mode = mode
	engine.resetLocked()
	engine.logger.Debug().Str("mode", string(mode)).Int("total", engine.total).Msg("mode changed")
	engine.emitLocked(engine.eventLocked(EventStateChange))
}

// Tick advances the countdown by one second.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	completed := engine.tickLocked()
	sound := engine.settings.SoundEnabled
	engine.mu.Unlock()

	if completed && sound {
		engine.playChime()
	}
}

// Adjust moves the remaining time one step in direction using the configured policy.
// The total duration is left alone, so the progress fraction shifts.
func (engine *Engine) Adjust(direction stepping.Direction) {
	engine.mu.Lock()
	engine.remaining = engine.options.Policy.Adjust(engine.remaining, direction)
	engine.emitLocked(engine.eventLocked(EventProgress))
	engine.mu.Unlock()
}

// ApplySettings replaces the settings. When the current mode's duration changed, the
// countdown is stopped and restarted from the new duration.
func (engine *Engine) ApplySettings(settings model.Settings) {
	engine.mu.Lock()
	previous := engine.settings
	engine.settings = settings
	if previous.Minutes(engine.mode) == settings.Minutes(engine.mode) {
		engine.mu.Unlock()
		return
	}
	engine.resetLocked()
	engine.logger.Debug().Str("mode", string(engine.mode)).Int("total", engine.total).Msg("settings applied")
	engine.emitLocked(engine.eventLocked(EventStateChange))
	engine.mu.Unlock()
}

// ClearHistory empties the session history.
func (engine *Engine) ClearHistory() {
	engine.mu.Lock()
	engine.history.Clear()
	values := engine.history.Values()
	engine.emitLocked(engine.eventLocked(EventHistory))
	engine.mu.Unlock()

	engine.saveHistory(values)
}

// ProgressFraction returns the elapsed share of the total duration in [0, 1].
func (engine *Engine) ProgressFraction() float64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.progressLocked()
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return Snapshot{
		Mode:      engine.mode,
		State:     engine.stateLocked(),
		Remaining: engine.remaining,
		Total:     engine.total,
		Running:   engine.running,
		Progress:  engine.progressLocked(),
		History:   engine.history.Padded(),
	}
}

// Running reports whether the countdown is ticking.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

// Settings returns the settings the engine currently uses.
func (engine *Engine) Settings() model.Settings {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.settings
}

// Close cancels ticking and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.running = false
	engine.setActiveLocked(false)
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) tickFrom(generation uint64) {
	engine.mu.Lock()
	if generation != engine.generation {
		engine.mu.Unlock()
		return
	}
	completed := engine.tickLocked()
	sound := engine.settings.SoundEnabled
	engine.mu.Unlock()

	if completed && sound {
		engine.playChime()
	}
}

func (engine *Engine) tickLocked() bool {
	if !engine.running || engine.remaining <= 0 {
		return false
	}

	engine.remaining--
	if engine.remaining > 0 {
		engine.emitLocked(engine.eventLocked(EventProgress))
		return false
	}

	engine.running = false
	engine.setActiveLocked(false)
	engine.logger.Debug().Str("mode", string(engine.mode)).Msg("completed")
	engine.emitLocked(engine.eventLocked(EventCompleted))
	return true
}

// setActiveLocked keeps at most one tick registration alive. Ticks from a cancelled
// registration carry a stale generation and are dropped by tickFrom.
func (engine *Engine) setActiveLocked(active bool) {
	if engine.handle != 0 {
		engine.options.Source.Cancel(engine.handle)
		engine.handle = 0
	}
	engine.generation++
	if !active {
		return
	}
	generation := engine.generation
	engine.handle = engine.options.Source.Schedule(func() {
		engine.tickFrom(generation)
	}, engine.options.TickInterval)
}

func (engine *Engine) resetLocked() {
	engine.running = false
	engine.setActiveLocked(false)
	engine.total = model.SecondsOf(engine.mode, engine.settings)
	engine.remaining = engine.total
}

func (engine *Engine) stateLocked() State {
	switch {
	case engine.running:
		return StateRunning
	case engine.remaining == 0:
		return StateCompleted
	case engine.remaining == engine.total:
		return StateIdle
	default:
		return StatePaused
	}
}

func (engine *Engine) progressLocked() float64 {
	if engine.total <= 0 {
		return 0
	}
	progress := float64(engine.total-engine.remaining) / float64(engine.total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (engine *Engine) eventLocked(eventType EventType) Event {
	event := Event{
		Type:      eventType,
		State:     engine.stateLocked(),
		Mode:      engine.mode,
		Remaining: engine.remaining,
		Total:     engine.total,
		Progress:  engine.progressLocked(),
		At:        time.Now(),
	}
	if eventType == EventHistory {
		event.History = engine.history.Padded()
	}
	return event
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (engine *Engine) playChime() {
	if engine.options.Chime == nil {
		return
	}
	if err := engine.options.Chime.Play(); err != nil {
		engine.logger.Warn().Err(err).Msg("completion chime failed")
	}
}

func (engine *Engine) saveHistory(values []int) {
	if engine.options.History == nil {
		return
	}
	if err := engine.options.History.SaveHistory(values); err != nil {
		engine.logger.Warn().Err(err).Msg("save history")
	}
}
