//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealSwitch drives the switch line on actual hardware using the Linux GPIO
// character device.
type RealSwitch struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealSwitch creates a switch driver for actual Raspberry Pi hardware.
// The line is requested as an output at the inactive (high) level so a
// daemon restart never holds the switch pressed.
func NewRealSwitch(pin int) (*RealSwitch, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(1))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request switch pin %d: %w", pin, err)
	}

	return &RealSwitch{
		chip: chip,
		line: line,
	}, nil
}

// Set drives the line: active pulls it low (switch pressed), inactive
// releases it high.
func (s *RealSwitch) Set(active bool) error {
	value := 1
	if active {
		value = 0
	}
	if err := s.line.SetValue(value); err != nil {
		return fmt.Errorf("set switch pin: %w", err)
	}
	return nil
}

// Close releases GPIO resources. The line is released to the inactive level
// and reconfigured as an input so the switch cannot be left pressed across
// daemon restarts or system shutdown.
func (s *RealSwitch) Close() error {
	var errs []error

	if s.line != nil {
		if err := s.line.SetValue(1); err != nil {
			errs = append(errs, fmt.Errorf("release switch pin: %w", err))
		}
		if err := s.line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure switch pin: %w", err))
		}
		if err := s.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close switch pin: %w", err))
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
