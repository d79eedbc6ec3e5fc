// Package logic contains the pure event model for the button sensor.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// State represents the logical state of the button.
type State string

const (
	StateOn  State = "ON"
	StateOff State = "OFF"
)

// StateFor maps a debounced active flag to a State.
func StateFor(active bool) State {
	if active {
		return StateOn
	}
	return StateOff
}

// EventType represents a publishable occurrence.
type EventType string

const (
	EventButtonOn  EventType = "BUTTON_ON"
	EventButtonOff EventType = "BUTTON_OFF"
	EventTick      EventType = "TICK"
)

// Event represents a transition or tick to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     State
}

// Input is one main-loop observation.
type Input struct {
	Pressed bool // debounced state after this iteration's evaluation
	Toggled bool // the evaluation changed the debounced state
	Settled bool // raw input stable for longer than the debounce window
	Tick    bool // the periodic timer reported ready
	Time    time.Time
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	On    int
	Off   int
	Ticks int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
