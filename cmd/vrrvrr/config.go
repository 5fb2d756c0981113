package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full YAML-backed daemon configuration.
type Config struct {
	Keypad  KeypadConfig  `yaml:"keypad"`
	Input   InputConfig   `yaml:"input"`
	Pulse   PulseConfig   `yaml:"pulse"`
	Adjust  AdjustConfig  `yaml:"adjust"`
	Power   PowerConfig   `yaml:"power"`
	Battery BatteryConfig `yaml:"battery"`
	Storage StorageConfig `yaml:"storage"`
	IPC     IPCConfig     `yaml:"ipc"`
	Presets []PresetSeed  `yaml:"presets"`
	Logging LoggingConfig `yaml:"logging"`
}

// KeypadConfig selects the evdev devices to read and the long-press window.
type KeypadConfig struct {
	Devices     []string `yaml:"devices"`
	LongPressMS int      `yaml:"long_press_ms"`
}

// InputConfig holds the multi-step input timeouts.
type InputConfig struct {
	EntryTimeoutMS int `yaml:"entry_timeout_ms"`
	TapTimeoutMS   int `yaml:"tap_timeout_ms"`
}

// PulseConfig holds the output pulse durations.
type PulseConfig struct {
	BlinkMS     int `yaml:"blink_ms"`
	VibrationMS int `yaml:"vibration_ms"`
	NotifyMS    int `yaml:"notify_ms"`
}

// AdjustConfig holds the held +/- auto-repeat rate.
type AdjustConfig struct {
	RepeatMS int `yaml:"repeat_ms"`
}

// PowerConfig holds the inactivity suspend policy.
type PowerConfig struct {
	InactivityTimeoutSec int `yaml:"inactivity_timeout_sec"`
	CheckIntervalSec     int `yaml:"check_interval_sec"`
}

// BatteryConfig holds the supply-voltage monitor settings. An empty
// VoltagePath disables the monitor.
type BatteryConfig struct {
	VoltagePath      string `yaml:"voltage_path"`
	ThresholdMV      int    `yaml:"threshold_mv"`
	CheckIntervalSec int    `yaml:"check_interval_sec"`
}

// StorageConfig locates the preset block file.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// IPCConfig holds the virtual keypad socket. An empty path disables it.
type IPCConfig struct {
	SocketPath string `yaml:"socket_path"`
}

// PresetSeed is one factory preset, used when the stored block is missing
// or invalid.
type PresetSeed struct {
	Tempo       int  `yaml:"tempo"`
	Subdivision int  `yaml:"subdivision"`
	Accent      bool `yaml:"accent"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in defaults, matching the factory
// device settings.
func DefaultConfig() *Config {
	return &Config{
		Keypad: KeypadConfig{
			Devices:     nil,
			LongPressMS: defaultLongPressMS,
		},
		Input: InputConfig{
			EntryTimeoutMS: defaultEntryTimeoutMS,
			TapTimeoutMS:   defaultTapTimeoutMS,
		},
		Pulse: PulseConfig{
			BlinkMS:     defaultBlinkMS,
			VibrationMS: defaultVibrationMS,
			NotifyMS:    defaultNotifyMS,
		},
		Adjust: AdjustConfig{
			RepeatMS: defaultAdjustRepeatMS,
		},
		Power: PowerConfig{
			InactivityTimeoutSec: defaultInactivityTimeoutS,
			CheckIntervalSec:     defaultInactivityCheckS,
		},
		Battery: BatteryConfig{
			VoltagePath:      "",
			ThresholdMV:      defaultBatteryThresholdMV,
			CheckIntervalSec: defaultBatteryCheckS,
		},
		Storage: StorageConfig{
			Path: "~/.local/state/vrrvrr/presets.bin",
		},
		IPC: IPCConfig{
			SocketPath: "/tmp/vrrvrr.sock",
		},
		Presets: []PresetSeed{
			{Tempo: 60, Subdivision: 1, Accent: false},
			{Tempo: 90, Subdivision: 1, Accent: false},
			{Tempo: 60, Subdivision: 2, Accent: true},
			{Tempo: 150, Subdivision: 1, Accent: false},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfigFile loads YAML config from path over the defaults. Unknown
// keys are rejected.
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	// Reject trailing documents.
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides carries command-line values that take precedence over the
// config file.
type FlagOverrides struct {
	KeypadDevice  string
	StorePath     string
	IPCSocketPath string
	LogLevel      string
}

// Apply applies the non-empty overrides onto cfg.
func (f FlagOverrides) Apply(cfg *Config) {
	if f.KeypadDevice != "" {
		cfg.Keypad.Devices = []string{f.KeypadDevice}
	}
	if f.StorePath != "" {
		cfg.Storage.Path = f.StorePath
	}
	if f.IPCSocketPath != "" {
		cfg.IPC.SocketPath = f.IPCSocketPath
	}
	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if len(c.Keypad.Devices) == 0 && c.IPC.SocketPath == "" {
		return fmt.Errorf("no input sources: need keypad.devices or ipc.socket_path")
	}
	if c.Keypad.LongPressMS <= 0 {
		return fmt.Errorf("keypad.long_press_ms must be positive, got %d", c.Keypad.LongPressMS)
	}
	if c.Input.EntryTimeoutMS <= 0 {
		return fmt.Errorf("input.entry_timeout_ms must be positive, got %d", c.Input.EntryTimeoutMS)
	}
	if c.Input.TapTimeoutMS <= 0 {
		return fmt.Errorf("input.tap_timeout_ms must be positive, got %d", c.Input.TapTimeoutMS)
	}
	if c.Pulse.BlinkMS <= 0 || c.Pulse.VibrationMS <= 0 || c.Pulse.NotifyMS <= 0 {
		return fmt.Errorf("pulse durations must be positive")
	}
	if c.Adjust.RepeatMS <= 0 {
		return fmt.Errorf("adjust.repeat_ms must be positive, got %d", c.Adjust.RepeatMS)
	}
	if c.Power.InactivityTimeoutSec <= 0 || c.Power.CheckIntervalSec <= 0 {
		return fmt.Errorf("power intervals must be positive")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}
	if c.Battery.VoltagePath != "" {
		if c.Battery.ThresholdMV <= 0 {
			return fmt.Errorf("battery.threshold_mv must be positive, got %d", c.Battery.ThresholdMV)
		}
		if c.Battery.CheckIntervalSec <= 0 {
			return fmt.Errorf("battery.check_interval_sec must be positive, got %d", c.Battery.CheckIntervalSec)
		}
	}
	if len(c.Presets) != presetSlots {
		return fmt.Errorf("presets: need exactly %d entries, got %d", presetSlots, len(c.Presets))
	}
	for i, p := range c.Presets {
		if p.Tempo < minTempo || p.Tempo > maxTempo {
			return fmt.Errorf("presets[%d].tempo out of range 1..%d: %d", i, maxTempo, p.Tempo)
		}
		if p.Subdivision < minSubdivision || p.Subdivision > maxSubdivision {
			return fmt.Errorf("presets[%d].subdivision out of range %d..%d: %d",
				i, minSubdivision, maxSubdivision, p.Subdivision)
		}
	}
	if _, err := parseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// ToEngineConfig converts the wall-clock settings into the reducer's
// duration-typed view.
func (c *Config) ToEngineConfig() EngineConfig {
	return EngineConfig{
		EntryTimeout:      time.Duration(c.Input.EntryTimeoutMS) * time.Millisecond,
		TapTimeout:        time.Duration(c.Input.TapTimeoutMS) * time.Millisecond,
		BlinkDuration:     time.Duration(c.Pulse.BlinkMS) * time.Millisecond,
		VibrationDuration: time.Duration(c.Pulse.VibrationMS) * time.Millisecond,
		NotifyDuration:    time.Duration(c.Pulse.NotifyMS) * time.Millisecond,
		AdjustInterval:    time.Duration(c.Adjust.RepeatMS) * time.Millisecond,
		PowerOnDuration:   time.Duration(defaultPowerOnMS) * time.Millisecond,
		InactivityTimeout: time.Duration(c.Power.InactivityTimeoutSec) * time.Second,
		InactivityCheck:   time.Duration(c.Power.CheckIntervalSec) * time.Second,
	}
}

// DefaultPresets converts the configured factory presets into slot values.
// Must be called after Validate.
func (c *Config) DefaultPresets() [presetSlots]Preset {
	var out [presetSlots]Preset
	for i := 0; i < presetSlots && i < len(c.Presets); i++ {
		out[i] = Preset{
			Tempo:       uint8(c.Presets[i].Tempo),
			Subdivision: uint8(c.Presets[i].Subdivision),
			Accent:      c.Presets[i].Accent,
		}
	}
	return out
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// EngineConfig is the reducer's read-only view of the timing configuration.
type EngineConfig struct {
	EntryTimeout      time.Duration
	TapTimeout        time.Duration
	BlinkDuration     time.Duration
	VibrationDuration time.Duration
	NotifyDuration    time.Duration
	AdjustInterval    time.Duration
	PowerOnDuration   time.Duration
	InactivityTimeout time.Duration
	InactivityCheck   time.Duration
}
