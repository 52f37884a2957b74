// Package config loads and merges configuration from a TOML file and
// environment variable overrides.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sweeney/power-cycler/internal/adc"
	"github.com/sweeney/power-cycler/internal/gpio"
	"github.com/sweeney/power-cycler/internal/logic"
)

// Duration wraps time.Duration so that BurntSushi/toml can decode "30s"-style
// strings via the encoding.TextUnmarshaler interface.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = dur
	return nil
}

// HardwareConfig holds the ADC and switch pin settings.
type HardwareConfig struct {
	ADCDevice  string `toml:"adc_device"`
	ADCChannel int    `toml:"adc_channel"`
	SwitchPin  int    `toml:"switch_pin"`
	Threshold  int    `toml:"threshold"`
}

// TimingConfig holds the control-loop and actuator timing.
type TimingConfig struct {
	Poll   Duration `toml:"poll"`
	Pulse  Duration `toml:"pulse"`
	Settle Duration `toml:"settle"`
}

// MQTTConfig holds MQTT broker connection settings. An empty broker
// disables publishing.
type MQTTConfig struct {
	Broker string `toml:"broker"`
}

// HTTPConfig holds the status server settings. An empty address disables it.
type HTTPConfig struct {
	Addr string `toml:"addr"`
}

// Config is the top-level configuration struct.
type Config struct {
	Hardware HardwareConfig `toml:"hardware"`
	Timing   TimingConfig   `toml:"timing"`
	MQTT     MQTTConfig     `toml:"mqtt"`
	HTTP     HTTPConfig     `toml:"http"`
}

// Load reads config from the first existing path in paths, then applies
// environment variable overrides.  Missing files are skipped silently;
// a malformed file returns an error.  Calling Load() with no arguments
// returns pure defaults plus any env overrides.
func Load(paths ...string) (*Config, error) {
	cfg := defaults()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %q: %w", path, err)
			}
			break // first found file wins
		} else if !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("checking config path %q: %w", path, statErr)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Hardware: HardwareConfig{
			ADCDevice:  adc.DefaultDevice,
			ADCChannel: adc.DefaultChannel,
			SwitchPin:  gpio.DefaultPin,
			Threshold:  logic.DefaultThreshold,
		},
		Timing: TimingConfig{
			Poll:   Duration{200 * time.Millisecond},
			Pulse:  Duration{logic.DefaultPulse},
			Settle: Duration{logic.DefaultSettle},
		},
		MQTT: MQTTConfig{
			Broker: "tcp://localhost:1883",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// applyEnvOverrides copies any set POWER_CYCLER_* environment variables into cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POWER_CYCLER_ADC_DEVICE"); v != "" {
		cfg.Hardware.ADCDevice = v
	}
	if v := os.Getenv("POWER_CYCLER_ADC_CHANNEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Hardware.ADCChannel = n
		} else {
			log.Printf("config: ignoring invalid POWER_CYCLER_ADC_CHANNEL=%q: %v", v, err)
		}
	}
	if v := os.Getenv("POWER_CYCLER_SWITCH_PIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Hardware.SwitchPin = n
		} else {
			log.Printf("config: ignoring invalid POWER_CYCLER_SWITCH_PIN=%q: %v", v, err)
		}
	}
	if v := os.Getenv("POWER_CYCLER_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Hardware.Threshold = n
		} else {
			log.Printf("config: ignoring invalid POWER_CYCLER_THRESHOLD=%q: %v", v, err)
		}
	}
	if v := os.Getenv("POWER_CYCLER_POLL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timing.Poll = Duration{d}
		} else {
			log.Printf("config: ignoring invalid POWER_CYCLER_POLL=%q: %v", v, err)
		}
	}
	if v := os.Getenv("POWER_CYCLER_PULSE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timing.Pulse = Duration{d}
		} else {
			log.Printf("config: ignoring invalid POWER_CYCLER_PULSE=%q: %v", v, err)
		}
	}
	if v := os.Getenv("POWER_CYCLER_SETTLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timing.Settle = Duration{d}
		} else {
			log.Printf("config: ignoring invalid POWER_CYCLER_SETTLE=%q: %v", v, err)
		}
	}
	if v, ok := os.LookupEnv("POWER_CYCLER_MQTT_BROKER"); ok {
		cfg.MQTT.Broker = v
	}
	if v, ok := os.LookupEnv("POWER_CYCLER_HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	}
}
