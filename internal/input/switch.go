// Package input turns raw digital pin levels into logical switch state.
//
// A Switch answers "is this input engaged right now". RawSwitch reads the
// pin directly; Button filters contact bounce and reports edges. Both are
// driven from a single main loop and are not safe for concurrent use.
package input

import "github.com/sweeney/button-sensor/internal/gpio"

// Level is an electrical pin level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// Switch reports whether an input is at its active level.
type Switch interface {
	Pin() int
	Active() bool
}

// RawSwitch is an unfiltered Switch.
type RawSwitch struct {
	reader      gpio.Reader
	pin         int
	activeLevel Level
}

// NewSwitch creates a RawSwitch that is active when pin reads activeLevel.
func NewSwitch(reader gpio.Reader, pin int, activeLevel Level) *RawSwitch {
	return &RawSwitch{
		reader:      reader,
		pin:         pin,
		activeLevel: activeLevel,
	}
}

// Pin returns the pin number.
func (s *RawSwitch) Pin() int { return s.pin }

// ActiveLevel returns the level that counts as engaged.
func (s *RawSwitch) ActiveLevel() Level { return s.activeLevel }

// Active reads the pin. A failed read reports inactive.
func (s *RawSwitch) Active() bool {
	v, err := s.reader.Level(s.pin)
	if err != nil {
		return false
	}
	return Level(v) == s.activeLevel
}
