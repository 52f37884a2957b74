package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Hardware.ADCDevice != "iio:device0" {
		t.Errorf("adc device: got %q", cfg.Hardware.ADCDevice)
	}
	if cfg.Hardware.Threshold != 100 {
		t.Errorf("threshold: got %d", cfg.Hardware.Threshold)
	}
	if cfg.Timing.Poll.Duration != 200*time.Millisecond {
		t.Errorf("poll: got %v", cfg.Timing.Poll.Duration)
	}
	if cfg.Timing.Pulse.Duration != time.Second {
		t.Errorf("pulse: got %v", cfg.Timing.Pulse.Duration)
	}
	if cfg.Timing.Settle.Duration != 4800*time.Millisecond {
		t.Errorf("settle: got %v", cfg.Timing.Settle.Duration)
	}
	if cfg.MQTT.Broker != "tcp://localhost:1883" {
		t.Errorf("broker: got %q", cfg.MQTT.Broker)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("http addr: got %q", cfg.HTTP.Addr)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[hardware]
adc_device = "iio:device3"
adc_channel = 2
switch_pin = 27
threshold = 250

[timing]
poll = "500ms"
pulse = "2s"

[mqtt]
broker = "tcp://broker.lan:1883"

[http]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Hardware.ADCDevice != "iio:device3" {
		t.Errorf("adc device: got %q", cfg.Hardware.ADCDevice)
	}
	if cfg.Hardware.ADCChannel != 2 {
		t.Errorf("adc channel: got %d", cfg.Hardware.ADCChannel)
	}
	if cfg.Hardware.SwitchPin != 27 {
		t.Errorf("switch pin: got %d", cfg.Hardware.SwitchPin)
	}
	if cfg.Hardware.Threshold != 250 {
		t.Errorf("threshold: got %d", cfg.Hardware.Threshold)
	}
	if cfg.Timing.Poll.Duration != 500*time.Millisecond {
		t.Errorf("poll: got %v", cfg.Timing.Poll.Duration)
	}
	if cfg.Timing.Pulse.Duration != 2*time.Second {
		t.Errorf("pulse: got %v", cfg.Timing.Pulse.Duration)
	}
	// Unset keys keep their defaults.
	if cfg.Timing.Settle.Duration != 4800*time.Millisecond {
		t.Errorf("settle should keep default, got %v", cfg.Timing.Settle.Duration)
	}
	if cfg.MQTT.Broker != "tcp://broker.lan:1883" {
		t.Errorf("broker: got %q", cfg.MQTT.Broker)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("http addr: got %q", cfg.HTTP.Addr)
	}
}

func TestLoadFirstFoundWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")

	if err := os.WriteFile(first, []byte("[hardware]\nthreshold = 111\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("[hardware]\nthreshold = 222\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(filepath.Join(dir, "missing.toml"), first, second)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hardware.Threshold != 111 {
		t.Errorf("expected first found file to win, got threshold %d", cfg.Hardware.Threshold)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hardware.Threshold != 100 {
		t.Errorf("expected defaults, got threshold %d", cfg.Hardware.Threshold)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[hardware\nthreshold ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[timing]\npoll = \"fast\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POWER_CYCLER_ADC_DEVICE", "iio:device9")
	t.Setenv("POWER_CYCLER_ADC_CHANNEL", "5")
	t.Setenv("POWER_CYCLER_SWITCH_PIN", "22")
	t.Setenv("POWER_CYCLER_THRESHOLD", "300")
	t.Setenv("POWER_CYCLER_POLL", "1s")
	t.Setenv("POWER_CYCLER_MQTT_BROKER", "")
	t.Setenv("POWER_CYCLER_HTTP_ADDR", ":7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Hardware.ADCDevice != "iio:device9" {
		t.Errorf("adc device: got %q", cfg.Hardware.ADCDevice)
	}
	if cfg.Hardware.ADCChannel != 5 {
		t.Errorf("adc channel: got %d", cfg.Hardware.ADCChannel)
	}
	if cfg.Hardware.SwitchPin != 22 {
		t.Errorf("switch pin: got %d", cfg.Hardware.SwitchPin)
	}
	if cfg.Hardware.Threshold != 300 {
		t.Errorf("threshold: got %d", cfg.Hardware.Threshold)
	}
	if cfg.Timing.Poll.Duration != time.Second {
		t.Errorf("poll: got %v", cfg.Timing.Poll.Duration)
	}
	// Empty but set broker disables publishing.
	if cfg.MQTT.Broker != "" {
		t.Errorf("broker should be cleared, got %q", cfg.MQTT.Broker)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Errorf("http addr: got %q", cfg.HTTP.Addr)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[hardware]\nthreshold = 150\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("POWER_CYCLER_THRESHOLD", "999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hardware.Threshold != 999 {
		t.Errorf("env must override file, got %d", cfg.Hardware.Threshold)
	}
}

func TestEnvInvalidNumberIgnored(t *testing.T) {
	t.Setenv("POWER_CYCLER_THRESHOLD", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Hardware.Threshold != 100 {
		t.Errorf("invalid env value must be ignored, got %d", cfg.Hardware.Threshold)
	}
}
