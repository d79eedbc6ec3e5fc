// Package gpio provides the digital-read primitive with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "fmt"

// Reader reads electrical levels of input pins.
type Reader interface {
	// Level returns the current electrical level of pin (true = high).
	Level(pin int) (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Bias selects the internal pull resistor for requested input lines.
type Bias string

const (
	BiasNone Bias = "none"
	BiasUp   Bias = "up"
	BiasDown Bias = "down"
)

// ParseBias converts a flag value into a Bias.
func ParseBias(s string) (Bias, error) {
	switch Bias(s) {
	case BiasNone, BiasUp, BiasDown:
		return Bias(s), nil
	}
	return "", fmt.Errorf("unknown bias %q (want up, down or none)", s)
}

// Defaults (BCM numbering).
const (
	DefaultChip = "gpiochip0"
	DefaultPin  = 17
)
