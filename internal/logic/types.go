// Package logic contains the pure power-cycle test automaton.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Mode identifies the active test mode.
type Mode int

const (
	ModeNone Mode = iota
	ModeS5
	ModeManualS3S4
	ModeCombination
	ModeCustom
)

// String returns the human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeS5:
		return "S5"
	case ModeManualS3S4:
		return "Manual S3/S4"
	case ModeCombination:
		return "Combination"
	case ModeCustom:
		return "Custom"
	default:
		return "None"
	}
}

// ModeDelay returns the scheduled power-on delay for the fixed test modes.
// ModeCustom has no fixed delay; the operator supplies one.
func ModeDelay(m Mode) time.Duration {
	switch m {
	case ModeS5:
		return 30 * time.Second
	case ModeManualS3S4:
		return 60 * time.Second
	case ModeCombination:
		return 75 * time.Second
	default:
		return 0
	}
}

// EventType represents a notification produced by the sequencer.
type EventType string

const (
	EventSystemOn         EventType = "SYSTEM_ON"
	EventSystemOff        EventType = "SYSTEM_OFF"
	EventCycleStart       EventType = "CYCLE_START"
	EventPowerOnScheduled EventType = "POWER_ON_SCHEDULED"
	EventToggleStart      EventType = "TOGGLE_START"
	EventToggleDone       EventType = "TOGGLE_DONE"
	EventSessionStart     EventType = "SESSION_START"
	EventSessionStop      EventType = "SESSION_STOP"
	EventPaused           EventType = "PAUSED"
	EventResumed          EventType = "RESUMED"
	EventSpuriousPowerOn  EventType = "ERR_SPURIOUS_POWER_ON"
	EventFailedPowerOn    EventType = "ERR_FAILED_POWER_ON"
)

// Event is a single notification to be printed and published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Mode      Mode
	Cycle     int
	// Delay is set on POWER_ON_SCHEDULED and SESSION_START events.
	Delay time.Duration
}

// Counts tracks notable occurrences since startup.
type Counts struct {
	On       int // off→on transitions observed
	Off      int // on→off transitions observed
	Cycles   int // confirmed power-on cycles
	Toggles  int // switch pulses issued (scheduled and manual)
	Spurious int // spurious power-on errors
	Failed   int // failed power-on errors
}

// Snapshot is a point-in-time view of the automaton, safe to hand to
// status trackers and diagnostics after the call returns.
type Snapshot struct {
	Mode             Mode
	Delay            time.Duration
	Cycle            int
	Paused           bool
	Step             int
	AttemptOn        bool
	CountdownPending bool
	ToggleInFlight   bool
	PowerOn          bool
	SessionStart     time.Time
	Counts           Counts
}
