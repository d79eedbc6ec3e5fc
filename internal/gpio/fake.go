package gpio

import "fmt"

// FakeReader is a test double that returns scripted levels per pin.
type FakeReader struct {
	// Scripts maps a pin to the levels returned by successive Level calls.
	// Once a script is exhausted its last level repeats.
	Scripts map[int][]bool

	// index tracks the next position per pin
	index map[int]int

	// Reads counts Level calls per pin.
	Reads map[int]int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Level()
	ReadError error
}

// NewFakeReader creates a FakeReader with no scripted pins.
func NewFakeReader() *FakeReader {
	return &FakeReader{
		Scripts: map[int][]bool{},
		index:   map[int]int{},
		Reads:   map[int]int{},
	}
}

// Script replaces the scripted levels for pin and rewinds it.
func (f *FakeReader) Script(pin int, levels ...bool) {
	f.Scripts[pin] = levels
	f.index[pin] = 0
}

// Set holds pin at a single level until changed.
func (f *FakeReader) Set(pin int, high bool) {
	f.Script(pin, high)
}

// Level returns the next scripted level for pin.
func (f *FakeReader) Level(pin int) (bool, error) {
	f.Reads[pin]++
	if f.ReadError != nil {
		return false, f.ReadError
	}

	levels := f.Scripts[pin]
	if len(levels) == 0 {
		return false, fmt.Errorf("no levels scripted for pin %d", pin)
	}

	i := f.index[pin]
	if i < len(levels)-1 {
		f.index[pin] = i + 1
	}
	return levels[i], nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds every script.
func (f *FakeReader) Reset() {
	for pin := range f.index {
		f.index[pin] = 0
	}
	f.Reads = map[int]int{}
	f.Closed = false
}
