// Package gpio drives the power-switch output line with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Switch drives the power switch control line. The line is active-low on
// the wire: Set(true) pulls it low (switch pressed), Set(false) releases it
// back to the inactive high level.
type Switch interface {
	Set(active bool) error

	// Close releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin wired to the power switch relay.
const DefaultPin = 17
