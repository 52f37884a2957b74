package logic

import (
	"errors"
	"fmt"
	"time"
)

// SwitchPin drives the physical power switch. Implementations map the
// logical active state to the wire level (the switch input is active-low,
// so Set(true) pulls the line low).
type SwitchPin interface {
	Set(active bool) error
}

// Default toggle timing. The pulse must be long enough for the monitored
// device's power controller to register a press; the settle wait covers the
// supply ramp before power readings mean anything again.
const (
	DefaultPulse  = time.Second
	DefaultSettle = 4800 * time.Millisecond
)

// ErrToggleInFlight is returned by Start when a toggle is already running.
var ErrToggleInFlight = errors.New("toggle already in flight")

type togglePhase int

const (
	phaseIdle togglePhase = iota
	phasePulse
	phaseSettle
)

// Actuator performs the power toggle as a non-blocking pulse-then-settle
// sequence advanced by Tick. While a toggle is in flight the sequencer
// evaluates no other transitions, but the control loop stays responsive.
type Actuator struct {
	pin      SwitchPin
	pulse    time.Duration
	settle   time.Duration
	phase    togglePhase
	deadline time.Time
}

// NewActuator creates an Actuator driving the given pin.
func NewActuator(pin SwitchPin, pulse, settle time.Duration) *Actuator {
	return &Actuator{pin: pin, pulse: pulse, settle: settle}
}

// Start asserts the switch and begins the pulse window.
func (a *Actuator) Start(now time.Time) error {
	if a.phase != phaseIdle {
		return ErrToggleInFlight
	}
	if err := a.pin.Set(true); err != nil {
		return fmt.Errorf("assert switch: %w", err)
	}
	a.phase = phasePulse
	a.deadline = now.Add(a.pulse)
	return nil
}

// InFlight reports whether a toggle is currently running.
func (a *Actuator) InFlight() bool {
	return a.phase != phaseIdle
}

// Tick advances the toggle. At the pulse deadline the switch is released
// and the settle window begins; done is true once the settle window has
// elapsed. Tick is a no-op when no toggle is in flight.
func (a *Actuator) Tick(now time.Time) (done bool, err error) {
	switch a.phase {
	case phasePulse:
		if now.Before(a.deadline) {
			return false, nil
		}
		if err := a.pin.Set(false); err != nil {
			// Try again next tick rather than leaving the switch held.
			return false, fmt.Errorf("release switch: %w", err)
		}
		a.phase = phaseSettle
		a.deadline = now.Add(a.settle)
		return false, nil
	case phaseSettle:
		if now.Before(a.deadline) {
			return false, nil
		}
		a.phase = phaseIdle
		return true, nil
	default:
		return false, nil
	}
}
