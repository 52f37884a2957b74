package logic

// History records the three most recent debounced power states, newest
// first. Pushing shifts the older entries back and discards the oldest.
type History struct {
	states [3]bool
}

// Push commits a new debounced state as the current one.
func (h *History) Push(on bool) {
	h.states[2] = h.states[1]
	h.states[1] = h.states[0]
	h.states[0] = on
}

// Current returns the latest committed state.
func (h *History) Current() bool {
	return h.states[0]
}

// Previous returns the state committed one debounce cycle ago.
func (h *History) Previous() bool {
	return h.states[1]
}

// PreviousPrevious returns the state committed two debounce cycles ago.
func (h *History) PreviousPrevious() bool {
	return h.states[2]
}

// Reset clears all three entries to off.
func (h *History) Reset() {
	h.states = [3]bool{}
}
