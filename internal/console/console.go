// Package console renders automaton events and diagnostics as the
// line-oriented text the operator sees. It performs no I/O itself.
package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/sweeney/power-cycler/internal/logic"
)

// Stamp renders an elapsed-time prefix as [HH:MM:SS].
func Stamp(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	elapsed = elapsed.Truncate(time.Second)
	h := int(elapsed.Hours())
	m := int(elapsed.Minutes()) % 60
	s := int(elapsed.Seconds()) % 60
	return fmt.Sprintf("[%02d:%02d:%02d]", h, m, s)
}

// FormatEvent renders one event as a console line. elapsed is the time since
// the session started; stamped is false while no test mode is active, which
// omits the prefix.
func FormatEvent(e logic.Event, elapsed time.Duration, stamped bool) string {
	msg := message(e)
	if !stamped {
		return msg
	}
	return Stamp(elapsed) + " " + msg
}

func message(e logic.Event) string {
	switch e.Type {
	case logic.EventSystemOn:
		return "System is on"
	case logic.EventSystemOff:
		return "System is off"
	case logic.EventCycleStart:
		return fmt.Sprintf("Cycle %d start", e.Cycle)
	case logic.EventPowerOnScheduled:
		return fmt.Sprintf("Power On in %d seconds", int(e.Delay.Seconds()))
	case logic.EventToggleStart:
		return "Toggling power switch"
	case logic.EventToggleDone:
		return "Power switch toggle complete"
	case logic.EventSessionStart:
		return fmt.Sprintf("Commencing %s test", e.Mode)
	case logic.EventSessionStop:
		return "Test stopped"
	case logic.EventPaused:
		return "Test paused"
	case logic.EventResumed:
		return "Test resumed"
	case logic.EventSpuriousPowerOn:
		return "ERROR: system powered on outside of test control"
	case logic.EventFailedPowerOn:
		return "ERROR: power on attempt failed"
	default:
		return string(e.Type)
	}
}

// FormatDebug renders the automaton snapshot as a multi-line diagnostic dump
// for the debug command.
func FormatDebug(snap logic.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode:              %s\n", snap.Mode)
	fmt.Fprintf(&b, "power:             %s\n", onOff(snap.PowerOn))
	fmt.Fprintf(&b, "cycle:             %d\n", snap.Cycle)
	fmt.Fprintf(&b, "paused:            %t\n", snap.Paused)
	fmt.Fprintf(&b, "delay:             %ds\n", int(snap.Delay.Seconds()))
	fmt.Fprintf(&b, "check step:        %d\n", snap.Step)
	fmt.Fprintf(&b, "attempt pending:   %t\n", snap.AttemptOn)
	fmt.Fprintf(&b, "countdown pending: %t\n", snap.CountdownPending)
	fmt.Fprintf(&b, "toggle in flight:  %t\n", snap.ToggleInFlight)
	fmt.Fprintf(&b, "counts:            on=%d off=%d cycles=%d toggles=%d spurious=%d failed=%d",
		snap.Counts.On, snap.Counts.Off, snap.Counts.Cycles,
		snap.Counts.Toggles, snap.Counts.Spurious, snap.Counts.Failed)
	return b.String()
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
