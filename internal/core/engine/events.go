package engine

import "time"

// State represents the current engine phase.
type State string

const (
	StateReady     State = "ready"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
)

// Event represents an engine update for observers.
type Event struct {
	Type      EventType
	State     State
	Remaining int
	Progress  float64
	At        time.Time
}
