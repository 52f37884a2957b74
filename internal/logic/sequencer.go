package logic

import "time"

// countdownOverhead is subtracted from the scheduled power-on delay to
// account for the debounce window that already elapsed while the off state
// was being confirmed (SampleWindowSize samples at the control-loop tick).
const countdownOverhead = time.Second

// Sequencer is the central test automaton. It owns the sampler, the power
// history and the actuator, and serializes every transition through Tick.
// All methods must be called from a single goroutine.
type Sequencer struct {
	sampler  *Sampler
	history  History
	actuator *Actuator

	mode         Mode
	delay        time.Duration
	cycle        int
	sessionStart time.Time
	paused       bool

	// step is the power-check escalation counter: while the device is
	// expected to be off it gates the pre-toggle wait, and after a toggle
	// it gates the spurious-power-on validation.
	step int
	// attemptOn is true while a toggle has been issued and its outcome is
	// unconfirmed.
	attemptOn bool
	// countdownUntil is the "power on in N seconds" deadline; zero when no
	// countdown is pending.
	countdownUntil time.Time

	counts Counts
}

// NewSequencer creates a Sequencer in the idle (no test) state.
func NewSequencer(sampler *Sampler, actuator *Actuator) *Sequencer {
	return &Sequencer{sampler: sampler, actuator: actuator}
}

// Tick processes one control-loop tick: it advances an in-flight toggle,
// expires the power-on countdown, folds one raw reading into the sample
// window, and applies the transition table to any completed observation.
// The returned events should be printed and published by the caller.
func (s *Sequencer) Tick(raw int, now time.Time) ([]Event, error) {
	var events []Event

	// A toggle in flight suspends all other evaluation; the physical pulse
	// completes even while paused or stopped.
	if s.actuator.InFlight() {
		done, err := s.actuator.Tick(now)
		if err != nil {
			return events, err
		}
		if done {
			events = append(events, s.event(EventToggleDone, now))
		}
		return events, nil
	}

	// While paused, observations still feed the sampler and history but no
	// notifications, timers, or toggles run.
	if s.paused {
		if on, ok := s.sampler.Observe(raw); ok {
			s.history.Push(on)
		}
		return events, nil
	}

	// A pending countdown suppresses sampling until its deadline; this is
	// the scheduled "power on in N seconds" wait.
	if !s.countdownUntil.IsZero() {
		if now.Before(s.countdownUntil) {
			return events, nil
		}
		s.countdownUntil = time.Time{}
		s.step = 1
	}

	on, ok := s.sampler.Observe(raw)
	if !ok {
		return events, nil
	}
	s.history.Push(on)

	if on {
		return s.onPowerOn(events, now), nil
	}
	return s.onPowerOff(events, now)
}

// onPowerOn handles a debounced on observation.
func (s *Sequencer) onPowerOn(events []Event, now time.Time) []Event {
	if !s.history.Previous() {
		s.counts.On++
		events = append(events, s.event(EventSystemOn, now))
	}

	if s.attemptOn {
		s.attemptOn = false
		s.cycle++
		s.counts.Cycles++
		events = append(events, s.event(EventCycleStart, now))
	}

	// A check sequence in progress validates that the device did not appear
	// on before our own toggle could have caused it.
	if s.step > 0 {
		s.step++
		if s.step == 2 && (s.history.Previous() || s.history.PreviousPrevious()) {
			s.counts.Spurious++
			events = append(events, s.event(EventSpuriousPowerOn, now))
			s.step = 0
		}
	}
	return events
}

// onPowerOff handles a debounced off observation.
func (s *Sequencer) onPowerOff(events []Event, now time.Time) ([]Event, error) {
	if s.history.Previous() {
		s.counts.Off++
		events = append(events, s.event(EventSystemOff, now))
	}

	if s.attemptOn {
		s.counts.Failed++
		events = append(events, s.event(EventFailedPowerOn, now))
		s.attemptOn = false
	}

	if s.mode == ModeNone {
		return events, nil
	}

	switch {
	case s.step == 2:
		if err := s.actuator.Start(now); err != nil {
			return events, err
		}
		s.step = 0
		s.attemptOn = true
		s.counts.Toggles++
		events = append(events, s.event(EventToggleStart, now))
	case s.step == 0:
		wait := s.delay - countdownOverhead
		if wait < 0 {
			wait = 0
		}
		s.countdownUntil = now.Add(wait)
		e := s.event(EventPowerOnScheduled, now)
		e.Delay = s.delay
		events = append(events, e)
	default:
		// step 1, or past 2 because the device stayed on through the
		// validation windows: this off is a fresh outage and needs one more
		// confirmation before the switch is pulsed.
		s.step = 2
	}
	return events, nil
}

// StartSession begins a new test session, performing the full protocol
// reset: sampler, history, check step, attempt flag, and countdown.
func (s *Sequencer) StartSession(mode Mode, delay time.Duration, now time.Time) []Event {
	s.sampler.Reset()
	s.history.Reset()
	s.step = 0
	s.attemptOn = false
	s.countdownUntil = time.Time{}
	s.mode = mode
	s.delay = delay
	s.cycle = 1
	s.sessionStart = now
	s.paused = false

	start := s.event(EventSessionStart, now)
	start.Delay = delay
	return []Event{start, s.event(EventCycleStart, now)}
}

// Stop ends the session. The check-protocol counters are deliberately left
// as-is, but the pending countdown is cancelled so no stale toggle from the
// stopped session can fire. The stop event is built before the mode is
// cleared so the session's final line still carries its mode and stamp.
func (s *Sequencer) Stop(now time.Time) []Event {
	s.countdownUntil = time.Time{}
	if s.mode == ModeNone {
		return nil
	}
	stop := s.event(EventSessionStop, now)
	s.mode = ModeNone
	return []Event{stop}
}

// Suspend halts the test protocol while the operator configures a new
// session: the pending countdown, check step, and attempt flag are dropped
// and the mode cleared, so nothing left over from the previous session can
// fire mid-wizard. StartSession then performs the full reset.
func (s *Sequencer) Suspend() {
	s.countdownUntil = time.Time{}
	s.mode = ModeNone
	s.step = 0
	s.attemptOn = false
}

// Pause suspends test evaluation. Issuing pause while already paused has no
// further effect.
func (s *Sequencer) Pause(now time.Time) []Event {
	if s.paused {
		return nil
	}
	s.paused = true
	return []Event{s.event(EventPaused, now)}
}

// Resume lifts a pause. A resume while not paused is a no-op.
func (s *Sequencer) Resume(now time.Time) []Event {
	if !s.paused {
		return nil
	}
	s.paused = false
	return []Event{s.event(EventResumed, now)}
}

// ManualToggle pulses the switch immediately, bypassing the check protocol.
// It does not set the attempt flag, so no power-on confirmation follows.
func (s *Sequencer) ManualToggle(now time.Time) ([]Event, error) {
	if s.actuator.InFlight() {
		return nil, ErrToggleInFlight
	}
	if err := s.actuator.Start(now); err != nil {
		return nil, err
	}
	s.counts.Toggles++
	return []Event{s.event(EventToggleStart, now)}, nil
}

// Elapsed returns the time since the session started, for stamping the given
// event. ok is false for events produced while no test mode was active; the
// decision follows the event's own mode so a session's final events (its stop
// line included) stay stamped even though the mode has since been cleared.
func (s *Sequencer) Elapsed(e Event) (time.Duration, bool) {
	if e.Mode == ModeNone {
		return 0, false
	}
	return e.Timestamp.Sub(s.sessionStart), true
}

// Snapshot returns a point-in-time copy of the automaton state.
func (s *Sequencer) Snapshot() Snapshot {
	return Snapshot{
		Mode:             s.mode,
		Delay:            s.delay,
		Cycle:            s.cycle,
		Paused:           s.paused,
		Step:             s.step,
		AttemptOn:        s.attemptOn,
		CountdownPending: !s.countdownUntil.IsZero(),
		ToggleInFlight:   s.actuator.InFlight(),
		PowerOn:          s.history.Current(),
		SessionStart:     s.sessionStart,
		Counts:           s.counts,
	}
}

func (s *Sequencer) event(t EventType, now time.Time) Event {
	return Event{Timestamp: now, Type: t, Mode: s.mode, Cycle: s.cycle}
}
