package gpio

import (
	"errors"
	"testing"
)

func TestFakeSwitchRecordsLevels(t *testing.T) {
	f := NewFakeSwitch()

	if err := f.Set(true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := f.Set(false); err != nil {
		t.Fatalf("set: %v", err)
	}

	if len(f.Levels) != 2 || !f.Levels[0] || f.Levels[1] {
		t.Errorf("expected [true false], got %v", f.Levels)
	}
	if f.Active {
		t.Error("expected inactive after last Set(false)")
	}
}

func TestFakeSwitchError(t *testing.T) {
	f := NewFakeSwitch()
	f.SetError = errors.New("line busy")

	if err := f.Set(true); err == nil {
		t.Error("expected configured set error")
	}
	if len(f.Levels) != 0 {
		t.Error("failed set must not record a level")
	}
}

func TestFakeSwitchClose(t *testing.T) {
	f := NewFakeSwitch()
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !f.Closed {
		t.Error("expected closed flag")
	}
}

func TestFakeSwitchReset(t *testing.T) {
	f := NewFakeSwitch()
	f.Set(true)
	f.Close()

	f.Reset()

	if len(f.Levels) != 0 || f.Active || f.Closed {
		t.Error("reset should clear all recorded state")
	}
}
