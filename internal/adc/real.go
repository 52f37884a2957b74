package adc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RealReader reads raw samples from a Linux IIO ADC channel via sysfs
// (e.g. an MCP3008 or the SoC's own converter exposed by its IIO driver).
type RealReader struct {
	path string
}

// NewRealReader creates a reader for the given IIO device and voltage
// channel. It fails fast if the channel is not exposed.
func NewRealReader(device string, channel int) (*RealReader, error) {
	path := fmt.Sprintf("/sys/bus/iio/devices/%s/in_voltage%d_raw", device, channel)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("adc channel not available: %w", err)
	}
	return &RealReader{path: path}, nil
}

// Read returns one raw reading from the channel.
func (r *RealReader) Read() (int, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", r.path, err)
	}
	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse adc value %q: %w", strings.TrimSpace(string(data)), err)
	}
	return value, nil
}

// Close releases ADC resources. The sysfs reader holds none.
func (r *RealReader) Close() error {
	return nil
}
