// Package clock provides the free-running millisecond counter used for
// debounce timing. The counter is a fixed-width uint32 that wraps after
// roughly 49.7 days; all interval arithmetic goes through Elapsed so that
// comparisons stay correct across the overflow boundary.
package clock

import (
	"time"

	"github.com/zoobzio/clockz"
)

// Millis is a wrapping millisecond counter value.
type Millis uint32

// Source supplies the current counter value.
type Source interface {
	Millis() Millis
}

// Elapsed returns the milliseconds from since to now.
// Unsigned subtraction makes this correct when now has wrapped past zero.
func Elapsed(now, since Millis) Millis {
	return now - since
}

// FromDuration converts d to whole milliseconds, saturating at the
// largest representable interval.
func FromDuration(d time.Duration) Millis {
	ms := d.Milliseconds()
	if ms < 0 {
		return 0
	}
	if ms > int64(^Millis(0)) {
		return ^Millis(0)
	}
	return Millis(ms)
}

// Monotonic derives a Millis counter from a clockz.Clock.
type Monotonic struct {
	clock clockz.Clock
	epoch time.Time
	start Millis
}

// NewMonotonic returns a counter that reads start at the moment of the call
// and advances with c. Pass clockz.RealClock in production.
func NewMonotonic(c clockz.Clock, start Millis) *Monotonic {
	return &Monotonic{
		clock: c,
		epoch: c.Now(),
		start: start,
	}
}

// Millis returns the current counter value. Truncating the elapsed
// milliseconds to 32 bits is what produces the wraparound.
func (m *Monotonic) Millis() Millis {
	elapsed := m.clock.Since(m.epoch).Milliseconds()
	return m.start + Millis(uint64(elapsed))
}
