package clock

import "sync/atomic"

// Manual is a Source whose value only moves when told to.
// Safe for concurrent use.
type Manual struct {
	now atomic.Uint32
}

// NewManual creates a Manual source reading start.
func NewManual(start Millis) *Manual {
	m := &Manual{}
	m.now.Store(uint32(start))
	return m
}

// Millis returns the current value.
func (m *Manual) Millis() Millis {
	return Millis(m.now.Load())
}

// Set jumps to v.
func (m *Manual) Set(v Millis) {
	m.now.Store(uint32(v))
}

// Advance moves the counter forward by d, wrapping past the maximum.
func (m *Manual) Advance(d Millis) {
	m.now.Add(uint32(d))
}
