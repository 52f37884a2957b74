package logic

import (
	"strconv"
	"strings"
	"time"
)

// Prompts printed by the "new" session wizard.
const (
	ModePrompt  = "Select test mode: 1) S5  2) Manual S3/S4  3) Combination  4) Custom"
	DelayPrompt = "Enter power-on delay in seconds (positive integer):"
)

type promptState int

const (
	promptNone promptState = iota
	promptMode
	promptDelay
)

// Result is the outcome of handling one command line.
type Result struct {
	// Events to print and publish.
	Events []Event
	// Prompt is the next wizard prompt to print, empty if none.
	Prompt string
	// Debug is set for the debug command; the caller renders it.
	Debug *Snapshot
}

// CommandProcessor maps console lines onto sequencer transitions, including
// the two-step "new" wizard. Commands are case-insensitive; unknown input
// outside the wizard is ignored.
type CommandProcessor struct {
	seq   *Sequencer
	state promptState
}

// NewCommandProcessor creates a processor driving the given sequencer.
func NewCommandProcessor(seq *Sequencer) *CommandProcessor {
	return &CommandProcessor{seq: seq}
}

// Handle processes one command line.
func (p *CommandProcessor) Handle(line string, now time.Time) (Result, error) {
	line = strings.TrimSpace(line)

	switch p.state {
	case promptMode:
		return p.handleModeChoice(line, now), nil
	case promptDelay:
		return p.handleCustomDelay(line, now), nil
	}

	switch strings.ToLower(line) {
	case "pause":
		return Result{Events: p.seq.Pause(now)}, nil
	case "resume":
		return Result{Events: p.seq.Resume(now)}, nil
	case "new":
		// Freeze the previous session before the operator starts answering
		// prompts; its countdown or check step must not fire mid-wizard.
		p.seq.Suspend()
		p.state = promptMode
		return Result{Prompt: ModePrompt}, nil
	case "stop":
		return Result{Events: p.seq.Stop(now)}, nil
	case "toggle":
		events, err := p.seq.ManualToggle(now)
		return Result{Events: events}, err
	case "debug":
		snap := p.seq.Snapshot()
		return Result{Debug: &snap}, nil
	default:
		return Result{}, nil
	}
}

// handleModeChoice consumes the numeric mode selection of the new wizard.
func (p *CommandProcessor) handleModeChoice(line string, now time.Time) Result {
	var mode Mode
	switch line {
	case "1":
		mode = ModeS5
	case "2":
		mode = ModeManualS3S4
	case "3":
		mode = ModeCombination
	case "4":
		p.state = promptDelay
		return Result{Prompt: DelayPrompt}
	default:
		return Result{Prompt: ModePrompt}
	}
	p.state = promptNone
	return Result{Events: p.seq.StartSession(mode, ModeDelay(mode), now)}
}

// handleCustomDelay consumes the custom delay prompt, re-prompting until a
// strictly positive integer number of seconds is supplied.
func (p *CommandProcessor) handleCustomDelay(line string, now time.Time) Result {
	secs, err := strconv.Atoi(line)
	if err != nil || secs <= 0 {
		return Result{Prompt: DelayPrompt}
	}
	p.state = promptNone
	delay := time.Duration(secs) * time.Second
	return Result{Events: p.seq.StartSession(ModeCustom, delay, now)}
}
