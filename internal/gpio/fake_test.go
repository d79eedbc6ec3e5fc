package gpio

import (
	"errors"
	"testing"
)

func TestFakeReaderLevel(t *testing.T) {
	f := NewFakeReader()
	f.Script(17, true, false, true)

	want := []bool{true, false, true}
	for i, w := range want {
		got, err := f.Level(17)
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: got %v, want %v", i, got, w)
		}
	}

	// Exhausted script repeats the last level
	got, err := f.Level(17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("expected last level (high) to repeat")
	}
	if f.Reads[17] != 4 {
		t.Errorf("Reads: got %d, want 4", f.Reads[17])
	}
}

func TestFakeReaderPinsAreIndependent(t *testing.T) {
	f := NewFakeReader()
	f.Script(5, true, false)
	f.Set(6, true)

	f.Level(5)
	if got, _ := f.Level(6); !got {
		t.Error("pin 6: expected high")
	}
	if got, _ := f.Level(5); got {
		t.Error("pin 5: expected second scripted level (low)")
	}
}

func TestFakeReaderUnscriptedPin(t *testing.T) {
	f := NewFakeReader()

	_, err := f.Level(3)
	if err == nil {
		t.Error("expected error for unscripted pin")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader()
	f.Set(17, true)
	f.ReadError = errors.New("simulated error")

	_, err := f.Level(17)
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeReaderClose(t *testing.T) {
	f := NewFakeReader()

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakeReaderReset(t *testing.T) {
	f := NewFakeReader()
	f.Script(17, true, false)

	f.Level(17)
	f.Reset()

	if got, _ := f.Level(17); !got {
		t.Error("after reset: expected first scripted level (high)")
	}
}

func TestParseBias(t *testing.T) {
	for _, s := range []string{"up", "down", "none"} {
		if _, err := ParseBias(s); err != nil {
			t.Errorf("ParseBias(%q): unexpected error: %v", s, err)
		}
	}
	if _, err := ParseBias("sideways"); err == nil {
		t.Error("expected error for unknown bias")
	}
}
