//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads GPIO from actual hardware using Linux GPIO character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	bias  Bias
	lines map[int]*gpiocdev.Line
}

// NewRealReader requests each pin on chip as an input with the given bias.
func NewRealReader(chip string, bias Bias, pins ...int) (*RealReader, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chip, err)
	}

	r := &RealReader{
		chip:  c,
		bias:  bias,
		lines: make(map[int]*gpiocdev.Line, len(pins)),
	}
	for _, pin := range pins {
		line, err := c.RequestLine(pin, gpiocdev.AsInput, biasOption(bias))
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request pin %d: %w", pin, err)
		}
		r.lines[pin] = line
	}
	return r, nil
}

func biasOption(b Bias) gpiocdev.LineReqOption {
	switch b {
	case BiasUp:
		return gpiocdev.WithPullUp
	case BiasDown:
		return gpiocdev.WithPullDown
	default:
		return gpiocdev.WithBiasDisabled
	}
}

// Level returns the raw level of pin. The pin must have been requested
// at construction.
func (r *RealReader) Level(pin int) (bool, error) {
	line, ok := r.lines[pin]
	if !ok {
		return false, fmt.Errorf("pin %d not requested", pin)
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin %d: %w", pin, err)
	}
	return v != 0, nil
}

// Close releases GPIO resources.
// Lines are reconfigured to input with pull-down (the Pi boot default)
// before release so attached hardware sees a clean state on reboot.
func (r *RealReader) Close() error {
	var errs []error

	for pin, line := range r.lines {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", pin, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", pin, err))
		}
	}
	r.lines = nil
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		r.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
