package logic

import "time"

// Recorder turns loop observations into events.
type Recorder struct {
	state         State
	baselined     bool
	publishTicks  bool
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewRecorder creates a Recorder. The startTime is used for calculating
// uptime in heartbeat events. When publishTicks is false ticks are
// counted but produce no events.
func NewRecorder(startTime time.Time, publishTicks bool) *Recorder {
	return &Recorder{
		publishTicks:  publishTicks,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process takes one observation and returns the events it produces.
// Button events are only returned once the input has first settled; the
// state acquired while settling is the baseline, not a transition.
func (r *Recorder) Process(in Input) []Event {
	var events []Event

	if in.Tick {
		r.eventCounts.Ticks++
		if r.publishTicks {
			events = append(events, Event{
				Timestamp: in.Time,
				Type:      EventTick,
				State:     r.state,
			})
		}
	}

	if !r.baselined {
		if in.Settled {
			r.baselined = true
			r.state = StateFor(in.Pressed)
		}
		return events
	}

	if !in.Toggled {
		return events
	}

	r.state = StateFor(in.Pressed)
	ev := Event{Timestamp: in.Time, State: r.state}
	if in.Pressed {
		ev.Type = EventButtonOn
		r.eventCounts.On++
	} else {
		ev.Type = EventButtonOff
		r.eventCounts.Off++
	}
	return append(events, ev)
}

// IsBaselined returns whether the recorder has established a baseline.
func (r *Recorder) IsBaselined() bool {
	return r.baselined
}

// CurrentState returns the button state, empty before baseline.
func (r *Recorder) CurrentState() State {
	return r.state
}

// EventCountsSnapshot returns a copy of the event counts.
func (r *Recorder) EventCountsSnapshot() EventCounts {
	return r.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet baselined, if the
// interval has not elapsed, or if interval is <= 0 (disabled).
func (r *Recorder) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !r.baselined {
		return nil
	}

	if now.Sub(r.lastHeartbeat) < interval {
		return nil
	}

	r.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(r.startTime),
		Counts:    r.eventCounts,
	}
}
