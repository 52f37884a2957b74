package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/power-cycler/internal/logic"
)

func testConfig() Config {
	return Config{
		PollMs:     200,
		Threshold:  100,
		PulseMs:    1000,
		SettleMs:   4800,
		Broker:     "tcp://localhost:1883",
		HTTPPort:   ":8080",
		ADCDevice:  "iio:device0",
		ADCChannel: 0,
		SwitchPin:  17,
	}
}

func TestTrackerUpdate(t *testing.T) {
	start := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	tr.Update(logic.Snapshot{
		Mode:    logic.ModeS5,
		PowerOn: true,
		Cycle:   3,
	})
	tr.SetMQTTConnected(true)

	snap := tr.Snapshot()
	if snap.Seq.Mode != logic.ModeS5 {
		t.Errorf("mode: got %s", snap.Seq.Mode)
	}
	if !snap.Seq.PowerOn {
		t.Error("expected power on")
	}
	if snap.Seq.Cycle != 3 {
		t.Errorf("cycle: got %d", snap.Seq.Cycle)
	}
	if !snap.MQTTConnected {
		t.Error("expected mqtt connected")
	}
	if !snap.StartTime.Equal(start) {
		t.Errorf("start time: got %v", snap.StartTime)
	}
	if snap.Now.IsZero() {
		t.Error("snapshot should stamp Now")
	}
}

func TestSnapshotUptime(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 3, 15, 10, 5, 30, 0, time.UTC),
	}
	if got := snap.Uptime(); got != 5*time.Minute+30*time.Second {
		t.Errorf("uptime: got %v", got)
	}
}

func TestFormatJSON(t *testing.T) {
	snap := Snapshot{
		Seq: logic.Snapshot{
			Mode:             logic.ModeCombination,
			Delay:            75 * time.Second,
			Cycle:            2,
			Step:             1,
			PowerOn:          true,
			CountdownPending: true,
			Counts:           logic.Counts{On: 2, Off: 2, Cycles: 2, Toggles: 1},
		},
		StartTime:     time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Now:           time.Date(2026, 3, 15, 10, 1, 0, 0, time.UTC),
		MQTTConnected: true,
		Config:        testConfig(),
	}

	var decoded StatusJSON
	if err := json.Unmarshal(FormatJSON(snap), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	s := decoded.Status
	if s.Event != "" || s.Reason != "" {
		t.Error("web status must not carry event/reason")
	}
	if s.Mode != "Combination" {
		t.Errorf("mode: got %q", s.Mode)
	}
	if s.Power != "ON" {
		t.Errorf("power: got %q", s.Power)
	}
	if s.Cycle != 2 || s.CheckStep != 1 {
		t.Errorf("cycle/step: got %d/%d", s.Cycle, s.CheckStep)
	}
	if !s.CountdownPending {
		t.Error("expected countdown_pending")
	}
	if s.DelaySeconds != 75 {
		t.Errorf("delay_seconds: got %d", s.DelaySeconds)
	}
	if s.UptimeSeconds != 60 {
		t.Errorf("uptime_seconds: got %d", s.UptimeSeconds)
	}
	if s.StartTime != "2026-03-15T10:00:00Z" {
		t.Errorf("start_time: got %q", s.StartTime)
	}
	if !s.MQTT.Connected || s.MQTT.Broker != "tcp://localhost:1883" {
		t.Errorf("mqtt: got %+v", s.MQTT)
	}
	if s.Counts.Toggles != 1 {
		t.Errorf("toggles: got %d", s.Counts.Toggles)
	}
	if s.Config.Threshold != 100 || s.Config.SwitchPin != 17 {
		t.Errorf("config: got %+v", s.Config)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 3, 15, 10, 0, 5, 0, time.UTC),
		Config:    testConfig(),
	}

	var decoded StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM"), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", decoded.Status.Event)
	}
	if decoded.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", decoded.Status.Reason)
	}
	if decoded.Status.Mode != "None" {
		t.Errorf("mode: got %q", decoded.Status.Mode)
	}
	if decoded.Status.Power != "OFF" {
		t.Errorf("power: got %q", decoded.Status.Power)
	}
}
