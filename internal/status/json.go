package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event            string     `json:"event,omitempty"`
	Reason           string     `json:"reason,omitempty"`
	Mode             string     `json:"mode"`
	Power            string     `json:"power"`
	Cycle            int        `json:"cycle"`
	Paused           bool       `json:"paused"`
	CheckStep        int        `json:"check_step"`
	AttemptOn        bool       `json:"attempt_on"`
	CountdownPending bool       `json:"countdown_pending"`
	ToggleInFlight   bool       `json:"toggle_in_flight"`
	DelaySeconds     int        `json:"delay_seconds"`
	UptimeSeconds    int64      `json:"uptime_seconds"`
	StartTime        string     `json:"start_time"`
	Timestamp        string     `json:"timestamp"`
	MQTT             MQTTStatus `json:"mqtt"`
	Counts           CountsJSON `json:"event_counts"`
	Config           ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	On       int `json:"on"`
	Off      int `json:"off"`
	Cycles   int `json:"cycles"`
	Toggles  int `json:"toggles"`
	Spurious int `json:"spurious"`
	Failed   int `json:"failed"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs     int64  `json:"poll_ms"`
	Threshold  int    `json:"threshold"`
	PulseMs    int64  `json:"pulse_ms"`
	SettleMs   int64  `json:"settle_ms"`
	Broker     string `json:"broker"`
	HTTPPort   string `json:"http_port"`
	ADCDevice  string `json:"adc_device"`
	ADCChannel int    `json:"adc_channel"`
	SwitchPin  int    `json:"switch_pin"`
}

func powerString(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Mode:             snap.Seq.Mode.String(),
		Power:            powerString(snap.Seq.PowerOn),
		Cycle:            snap.Seq.Cycle,
		Paused:           snap.Seq.Paused,
		CheckStep:        snap.Seq.Step,
		AttemptOn:        snap.Seq.AttemptOn,
		CountdownPending: snap.Seq.CountdownPending,
		ToggleInFlight:   snap.Seq.ToggleInFlight,
		DelaySeconds:     int(snap.Seq.Delay.Seconds()),
		UptimeSeconds:    int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:        snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:        snap.Now.UTC().Format(time.RFC3339),
		MQTT:             MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			On:       snap.Seq.Counts.On,
			Off:      snap.Seq.Counts.Off,
			Cycles:   snap.Seq.Counts.Cycles,
			Toggles:  snap.Seq.Counts.Toggles,
			Spurious: snap.Seq.Counts.Spurious,
			Failed:   snap.Seq.Counts.Failed,
		},
		Config: ConfigJSON{
			PollMs:     snap.Config.PollMs,
			Threshold:  snap.Config.Threshold,
			PulseMs:    snap.Config.PulseMs,
			SettleMs:   snap.Config.SettleMs,
			Broker:     snap.Config.Broker,
			HTTPPort:   snap.Config.HTTPPort,
			ADCDevice:  snap.Config.ADCDevice,
			ADCChannel: snap.Config.ADCChannel,
			SwitchPin:  snap.Config.SwitchPin,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT lifecycle event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
