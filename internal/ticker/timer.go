// Package ticker converts a periodic asynchronous trigger into a flag that
// a cooperative main loop can poll.
//
// The trigger's handler only ever sets the flag; Ready is the only place it
// is cleared. Elapsed periods are not counted: any number of ticks between
// two Ready calls collapse into a single true.
package ticker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

var (
	// ErrAlreadyArmed is returned by a second call to Begin.
	ErrAlreadyArmed = errors.New("ticker: timer already armed")

	// ErrInvalidPeriod is returned for a non-positive period.
	ErrInvalidPeriod = errors.New("ticker: period must be positive")
)

// Timer is a periodic ready flag. Create one per logical timer and hand it
// to the loop that polls it.
type Timer struct {
	trigger Trigger
	armed   atomic.Bool
	period  atomic.Int64
	flag    atomic.Bool
}

// New creates an unconfigured Timer fed by trigger.
func New(trigger Trigger) *Timer {
	return &Timer{trigger: trigger}
}

// Begin starts the periodic trigger. It may be called once; later calls
// return ErrAlreadyArmed and leave the running trigger untouched.
// The trigger stops when ctx is done but the Timer stays armed.
func (t *Timer) Begin(ctx context.Context, period time.Duration) error {
	if period <= 0 {
		return ErrInvalidPeriod
	}
	if !t.armed.CompareAndSwap(false, true) {
		return ErrAlreadyArmed
	}
	t.period.Store(int64(period))
	if err := t.trigger.Start(ctx, period, t.fire); err != nil {
		t.period.Store(0)
		t.armed.Store(false)
		return fmt.Errorf("start trigger: %w", err)
	}
	return nil
}

// fire is the trigger handler.
func (t *Timer) fire() {
	t.flag.Store(true)
}

// Ready reports whether at least one period has elapsed since the last
// true result, clearing the flag if so.
func (t *Timer) Ready() bool {
	return t.flag.CompareAndSwap(true, false)
}

// Pending reports the flag without clearing it.
func (t *Timer) Pending() bool {
	return t.flag.Load()
}

// Armed reports whether Begin has been called.
func (t *Timer) Armed() bool {
	return t.armed.Load()
}

// Period returns the configured period, or zero before Begin.
func (t *Timer) Period() time.Duration {
	return time.Duration(t.period.Load())
}
