package countdown

import (
	"time"

	"pomodoro/internal/core/model"
)

// State is the derived lifecycle state of the countdown.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
	EventHistory     EventType = "history"
)

// Event carries a countdown update to observers.
type Event struct {
	Type      EventType
	State     State
	Mode      model.Mode
	Remaining int
	Total     int
	Progress  float64
	History   []int
	At        time.Time
}
