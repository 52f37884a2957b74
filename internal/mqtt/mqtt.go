// Package mqtt provides MQTT publishing with abstraction for testing.
// Publishing is one-way: the daemon reports what it observed and did, it
// never accepts control over the network.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/power-cycler/internal/logic"
)

// Topic is the MQTT topic for power-cycle test events.
const Topic = "power/cycler/events"

// TopicSystem is the MQTT topic for daemon lifecycle events.
const TopicSystem = "power/cycler/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a test event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a daemon lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a daemon lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Power PowerPayload `json:"power"`
}

// PowerPayload contains the test event details.
type PowerPayload struct {
	Timestamp    string `json:"timestamp"`
	Event        string `json:"event"`
	Mode         string `json:"mode"`
	Cycle        int    `json:"cycle"`
	DelaySeconds int    `json:"delay_seconds,omitempty"`
}

// FormatPayload creates the JSON payload for a test event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Power: PowerPayload{
			Timestamp:    event.Timestamp.UTC().Format(time.RFC3339),
			Event:        string(event.Type),
			Mode:         event.Mode.String(),
			Cycle:        event.Cycle,
			DelaySeconds: int(event.Delay.Seconds()),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for lifecycle events
// that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the lifecycle event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a lifecycle event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
