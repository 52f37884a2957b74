// Package adc provides analog input reading with hardware abstraction.
// The real implementation reads a Linux IIO channel through sysfs.
// The fake implementation allows testing without hardware.
package adc

// Reader reads raw analog samples from the monitored device's power rail.
type Reader interface {
	// Read returns one raw ADC reading. The value range depends on the
	// converter's resolution; only the configured threshold interprets it.
	Read() (int, error)

	// Close releases ADC resources.
	Close() error
}

// Default IIO channel for the power-sense input.
const (
	DefaultDevice  = "iio:device0"
	DefaultChannel = 0
)
