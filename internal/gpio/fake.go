package gpio

// FakeSwitch records Set calls for test assertions.
type FakeSwitch struct {
	// Levels contains every logical level Set was called with, in order.
	Levels []bool

	// Active is the most recent level (true = switch pressed).
	Active bool

	// SetError, if set, will be returned by Set()
	SetError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeSwitch creates a FakeSwitch for testing.
func NewFakeSwitch() *FakeSwitch {
	return &FakeSwitch{}
}

// Set records the requested level.
func (f *FakeSwitch) Set(active bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Levels = append(f.Levels, active)
	f.Active = active
	return nil
}

// Close marks the switch as closed.
func (f *FakeSwitch) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded levels.
func (f *FakeSwitch) Reset() {
	f.Levels = nil
	f.Active = false
	f.Closed = false
	f.SetError = nil
}
