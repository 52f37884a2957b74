package logic

// SampleWindowSize is the number of raw readings folded into one
// debounced observation.
const SampleWindowSize = 5

// DefaultThreshold is the raw ADC level below which the device counts as
// powered on. Scale-dependent; recalibrate per target board.
const DefaultThreshold = 100

// Sampler converts raw analog readings into debounced on/off states using
// a fixed, non-overlapping window: one observation per SampleWindowSize
// readings, no sliding average, no outlier rejection.
type Sampler struct {
	threshold int
	window    [SampleWindowSize]int
	index     int
}

// NewSampler creates a Sampler with the given on/off threshold.
func NewSampler(threshold int) *Sampler {
	return &Sampler{threshold: threshold}
}

// Observe folds one raw reading into the window. On every SampleWindowSize-th
// reading it returns the debounced state and true; otherwise ok is false.
// The device counts as on when the window mean is below the threshold.
func (s *Sampler) Observe(raw int) (on bool, ok bool) {
	s.window[s.index] = raw
	s.index++
	if s.index < SampleWindowSize {
		return false, false
	}
	s.index = 0

	sum := 0
	for _, v := range s.window {
		sum += v
	}
	average := sum / SampleWindowSize
	return average < s.threshold, true
}

// Reset discards any partially filled window.
func (s *Sampler) Reset() {
	s.index = 0
}

// Threshold returns the configured on/off threshold.
func (s *Sampler) Threshold() int {
	return s.threshold
}
