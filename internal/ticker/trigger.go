package ticker

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"
)

// Trigger invokes a handler at a fixed period. The handler runs outside
// the caller's goroutine and must return quickly.
type Trigger interface {
	// Start arranges for handler to run every period, counted from the
	// call, until ctx is done.
	Start(ctx context.Context, period time.Duration, handler func()) error
}

// ClockTrigger is a Trigger driven by a clockz ticker. Its goroutine plays
// the role of the interrupt context.
type ClockTrigger struct {
	clock clockz.Clock
}

// NewClockTrigger returns a Trigger using c. Pass clockz.RealClock in
// production and a fake clock in tests.
func NewClockTrigger(c clockz.Clock) *ClockTrigger {
	return &ClockTrigger{clock: c}
}

// Start launches the ticker goroutine.
func (t *ClockTrigger) Start(ctx context.Context, period time.Duration, handler func()) error {
	if period <= 0 {
		return ErrInvalidPeriod
	}
	tk := t.clock.NewTicker(period)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C():
				handler()
			}
		}
	}()
	return nil
}
