// Package status provides a thread-safe status tracker for the power-cycler
// daemon. It is read by HTTP handlers and by MQTT lifecycle snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/power-cycler/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	Threshold  int
	PulseMs    int64
	SettleMs   int64
	Broker     string
	HTTPPort   string
	ADCDevice  string
	ADCChannel int
	SwitchPin  int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Seq           logic.Snapshot
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the automaton snapshot. Called from the run loop on every tick.
func (t *Tracker) Update(seq logic.Snapshot) {
	t.mu.Lock()
	t.snap.Seq = seq
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
