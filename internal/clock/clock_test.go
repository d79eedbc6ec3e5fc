package clock

import (
	"math"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestElapsed(t *testing.T) {
	tests := []struct {
		name       string
		now, since Millis
		want       Millis
	}{
		{"zero", 0, 0, 0},
		{"simple", 120, 20, 100},
		{"across wrap", 30, math.MaxUint32 - 19, 50},
		{"at wrap", 0, math.MaxUint32, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Elapsed(tt.now, tt.since); got != tt.want {
				t.Errorf("Elapsed(%d, %d): got %d, want %d", tt.now, tt.since, got, tt.want)
			}
		})
	}
}

func TestFromDuration(t *testing.T) {
	if got := FromDuration(50 * time.Millisecond); got != 50 {
		t.Errorf("50ms: got %d, want 50", got)
	}
	if got := FromDuration(-time.Second); got != 0 {
		t.Errorf("negative: got %d, want 0", got)
	}
	if got := FromDuration(100 * 24 * time.Hour); got != math.MaxUint32 {
		t.Errorf("overflow: got %d, want saturation", got)
	}
}

func TestMonotonicAdvancesWithClock(t *testing.T) {
	fc := clockz.NewFakeClock()
	m := NewMonotonic(fc, 1000)

	if got := m.Millis(); got != 1000 {
		t.Fatalf("initial: got %d, want 1000", got)
	}

	fc.Advance(250 * time.Millisecond)
	if got := m.Millis(); got != 1250 {
		t.Errorf("after 250ms: got %d, want 1250", got)
	}
}

func TestMonotonicWraps(t *testing.T) {
	fc := clockz.NewFakeClock()
	m := NewMonotonic(fc, math.MaxUint32-9)

	fc.Advance(25 * time.Millisecond)
	if got := m.Millis(); got != 15 {
		t.Errorf("after wrap: got %d, want 15", got)
	}
}

func TestManual(t *testing.T) {
	m := NewManual(math.MaxUint32 - 1)
	m.Advance(3)
	if got := m.Millis(); got != 1 {
		t.Errorf("Advance across wrap: got %d, want 1", got)
	}
	m.Set(42)
	if got := m.Millis(); got != 42 {
		t.Errorf("Set: got %d, want 42", got)
	}
}
