package input

import (
	"github.com/sweeney/button-sensor/internal/clock"
	"github.com/sweeney/button-sensor/internal/gpio"
)

// DefaultDebounce is the window used when none is configured.
const DefaultDebounce clock.Millis = 50

// Edge is the transition observed by one evaluation.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "RISING"
	case EdgeFalling:
		return "FALLING"
	}
	return "NONE"
}

// Button is a debounced Switch.
//
// A raw change is accepted only after the pin has held the new level for
// longer than the window, timed from the last raw transition. Acceptance
// depends on elapsed time, not on how many samples were taken.
//
// Pressed, Toggled, ToggledOn, ToggledOff and Poll each run exactly one
// evaluation. Call one of them per loop iteration.
type Button struct {
	RawSwitch

	clock  clock.Source
	window clock.Millis

	committed   Level
	lastReading Level
	wasActive   bool
	lastChange  clock.Millis
	lastSample  clock.Millis
	err         error
}

// NewButton creates a Button on pin. Its initial state is inactive and the
// stability window starts at construction.
func NewButton(reader gpio.Reader, src clock.Source, pin int, activeLevel Level, window clock.Millis) *Button {
	now := src.Millis()
	return &Button{
		RawSwitch:   RawSwitch{reader: reader, pin: pin, activeLevel: activeLevel},
		clock:       src,
		window:      window,
		committed:   !activeLevel,
		lastReading: !activeLevel,
		lastChange:  now,
		lastSample:  now,
	}
}

// Window returns the debounce window.
func (b *Button) Window() clock.Millis { return b.window }

// Pressed samples the pin, applies the debounce rule and reports whether
// the committed state is active.
func (b *Button) Pressed() bool {
	b.wasActive = b.committed == b.activeLevel

	now := b.clock.Millis()
	reading := b.lastReading
	v, err := b.reader.Level(b.pin)
	if err != nil {
		b.err = err
	} else {
		b.err = nil
		reading = Level(v)
	}

	if reading != b.lastReading {
		b.lastChange = now
	}
	if clock.Elapsed(now, b.lastChange) > b.window && reading != b.committed {
		b.committed = reading
	}
	b.lastReading = reading
	b.lastSample = now

	return b.committed == b.activeLevel
}

// Toggled reports whether the committed state changed in this evaluation.
func (b *Button) Toggled() bool {
	return b.Pressed() != b.wasActive
}

// ToggledOn reports an inactive to active transition.
func (b *Button) ToggledOn() bool {
	return b.Pressed() && !b.wasActive
}

// ToggledOff reports an active to inactive transition.
func (b *Button) ToggledOff() bool {
	return !b.Pressed() && b.wasActive
}

// Poll runs one evaluation and returns the edge it produced.
func (b *Button) Poll() Edge {
	now := b.Pressed()
	switch {
	case now && !b.wasActive:
		return EdgeRising
	case !now && b.wasActive:
		return EdgeFalling
	}
	return EdgeNone
}

// Active reports the debounced state if the button was evaluated within
// the last window, otherwise the raw pin state. It does not advance the
// filter.
func (b *Button) Active() bool {
	if clock.Elapsed(b.clock.Millis(), b.lastSample) < b.window {
		return b.committed == b.activeLevel
	}
	return b.RawSwitch.Active()
}

// Current reports the committed state without sampling.
func (b *Button) Current() bool {
	return b.committed == b.activeLevel
}

// Settled reports whether the raw input has been stable for longer than
// the window, so the committed state reflects the pin.
func (b *Button) Settled() bool {
	return clock.Elapsed(b.clock.Millis(), b.lastChange) > b.window &&
		b.lastReading == b.committed
}

// Err returns the error from the most recent read, if any.
func (b *Button) Err() error {
	return b.err
}

var (
	_ Switch = (*RawSwitch)(nil)
	_ Switch = (*Button)(nil)
)
