package ticker

import (
	"context"
	"time"
)

// ManualTrigger is a Trigger that fires only when told to.
type ManualTrigger struct {
	// Period is the period passed to Start.
	Period time.Duration

	// Starts counts Start calls.
	Starts int

	// StartError, if set, will be returned by Start.
	StartError error

	handler func()
}

// NewManualTrigger creates an idle ManualTrigger.
func NewManualTrigger() *ManualTrigger {
	return &ManualTrigger{}
}

// Start records the handler.
func (m *ManualTrigger) Start(_ context.Context, period time.Duration, handler func()) error {
	m.Starts++
	if m.StartError != nil {
		return m.StartError
	}
	m.Period = period
	m.handler = handler
	return nil
}

// Fire invokes the handler as one elapsed period would.
func (m *ManualTrigger) Fire() {
	if m.handler != nil {
		m.handler()
	}
}
