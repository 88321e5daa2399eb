package timekeeper

import (
	"time"

	"pomodoro/internal/core/interval"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
	EventIdlePause   EventType = "idle_pause"
	EventIdleError   EventType = "idle_error"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Snapshot interval.Snapshot
	// Previous is the phase that just ended, set on EventCompleted.
	Previous interval.Phase
	Message  string
	At       time.Time
}
