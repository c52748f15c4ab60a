// Package stopwatch implements the elapsed-time engine behind the stopwatch view.
package stopwatch

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pomodoro/internal/core/history"
	"pomodoro/internal/core/ticker"
	"pomodoro/internal/logging"
)

// EventType defines the type of stopwatch event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventLap         EventType = "lap"
	EventHistory     EventType = "history"
)

// Event carries a stopwatch update to observers.
type Event struct {
	Type    EventType
	Elapsed int
	Running bool
	Laps    []int
	History []int
	At      time.Time
}

// HistoryWriter persists stopped times after every change.
type HistoryWriter interface {
	SaveHistory(values []int) error
}

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Source       ticker.Source
	History      HistoryWriter
}

// Snapshot is a point-in-time copy of the stopwatch state.
type Snapshot struct {
	Elapsed int
	Running bool
	Laps    []int
	History []int
}

// Engine counts up from zero while running.
type Engine struct {
	mu         sync.Mutex
	options    Config
	elapsed    int
	running    bool
	laps       history.Laps
	history    *history.History
	handle     ticker.Handle
	generation uint64
	events     []chan Event
	closed     bool
	logger     zerolog.Logger
}

// New creates a stopped Engine at zero, seeded with a previously stored history.
func New(seed []int, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = ticker.Period
	}
	if options.Source == nil {
		options.Source = ticker.NewInterval()
	}
	return &Engine{
		options: options,
		history: history.New(seed...),
		logger:  logging.Component("stopwatch"),
	}
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

// Start begins counting. It is ignored while already running.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running {
		return
	}
	engine.running = true
	engine.setActiveLocked(true)
	engine.logger.Debug().Int("elapsed", engine.elapsed).Msg("start")
	engine.emitLocked(engine.eventLocked(EventStateChange))
}

// Stop halts counting and records the elapsed seconds in the history.
// Stopping a stopwatch that is not running does nothing.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if !engine.running {
		engine.mu.Unlock()
		return
	}
	engine.running = false
	engine.setActiveLocked(false)
	engine.history.Record(engine.elapsed)
	values := engine.history.Values()
	engine.logger.Debug().Int("elapsed", engine.elapsed).Msg("stop")
	engine.emitLocked(engine.eventLocked(EventStateChange))
	engine.emitLocked(engine.eventLocked(EventHistory))
	engine.mu.Unlock()

	engine.saveHistory(values)
}

// Reset stops the stopwatch, zeroes it and clears laps and history.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	engine.running = false
	engine.setActiveLocked(false)
	engine.elapsed = 0
	engine.laps.Clear()
	engine.history.Clear()
	values := engine.history.Values()
	engine.emitLocked(engine.eventLocked(EventStateChange))
	engine.emitLocked(engine.eventLocked(EventHistory))
	engine.mu.Unlock()

	engine.saveHistory(values)
}

// Lap records the current elapsed time. Laps are only taken while running.
func (engine *Engine) Lap() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.running {
		return false
	}
	engine.laps.Record(engine.elapsed)
	engine.emitLocked(engine.eventLocked(EventLap))
	return true
}

// Tick advances the stopwatch by one second while running.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.tickLocked()
}

// Snapshot returns the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return Snapshot{
		Elapsed: engine.elapsed,
		Running: engine.running,
		Laps:    engine.laps.Values(),
		History: engine.history.Values(),
	}
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
	defer engine.mu.Unlock()
	if generation != engine.generation {
		return
	}
	engine.tickLocked()
}

func (engine *Engine) tickLocked() {
	if !engine.running {
		return
	}
	engine.elapsed++
	engine.emitLocked(engine.eventLocked(EventTick))
}

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

func (engine *Engine) eventLocked(eventType EventType) Event {
	event := Event{
		Type:    eventType,
		Elapsed: engine.elapsed,
		Running: engine.running,
		At:      time.Now(),
	}
	switch eventType {
	case EventLap:
		event.Laps = engine.laps.Values()
	case EventHistory:
		event.History = engine.history.Values()
		event.Laps = engine.laps.Values()
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

func (engine *Engine) saveHistory(values []int) {
	if engine.options.History == nil {
		return
	}
	if err := engine.options.History.SaveHistory(values); err != nil {
		engine.logger.Warn().Err(err).Msg("save history")
	}
}
