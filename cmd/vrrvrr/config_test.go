package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestDefaultConfig_FactoryPresets(t *testing.T) {
	presets := DefaultConfig().DefaultPresets()
	want := [presetSlots]Preset{
		{Tempo: 60, Subdivision: 1, Accent: false},
		{Tempo: 90, Subdivision: 1, Accent: false},
		{Tempo: 60, Subdivision: 2, Accent: true},
		{Tempo: 150, Subdivision: 1, Accent: false},
	}
	if presets != want {
		t.Errorf("factory presets = %v, want %v", presets, want)
	}
}

func TestLoadConfigFile_OverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
input:
  entry_timeout_ms: 3000
pulse:
  blink_ms: 50
keypad:
  devices: ["/dev/input/event3"]
`)
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Input.EntryTimeoutMS != 3000 {
		t.Errorf("entry_timeout_ms = %d, want 3000", cfg.Input.EntryTimeoutMS)
	}
	if cfg.Pulse.BlinkMS != 50 {
		t.Errorf("blink_ms = %d, want 50", cfg.Pulse.BlinkMS)
	}
	// Untouched sections keep their defaults.
	if cfg.Input.TapTimeoutMS != defaultTapTimeoutMS {
		t.Errorf("tap_timeout_ms = %d, want default %d", cfg.Input.TapTimeoutMS, defaultTapTimeoutMS)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadConfigFile_RejectsUnknownKeys(t *testing.T) {
	path := writeTempConfig(t, `
input:
  entry_timeout_msec: 3000
`)
	if _, err := LoadConfigFile(path); err == nil {
		t.Errorf("expected error for unknown key")
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no input sources", func(c *Config) {
			c.Keypad.Devices = nil
			c.IPC.SocketPath = ""
		}},
		{"zero long press", func(c *Config) { c.Keypad.LongPressMS = 0 }},
		{"zero entry timeout", func(c *Config) { c.Input.EntryTimeoutMS = 0 }},
		{"negative blink", func(c *Config) { c.Pulse.BlinkMS = -1 }},
		{"zero adjust repeat", func(c *Config) { c.Adjust.RepeatMS = 0 }},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }},
		{"preset tempo zero", func(c *Config) { c.Presets[0].Tempo = 0 }},
		{"preset tempo too large", func(c *Config) { c.Presets[1].Tempo = 256 }},
		{"preset subdivision zero", func(c *Config) { c.Presets[2].Subdivision = 0 }},
		{"preset subdivision too large", func(c *Config) { c.Presets[3].Subdivision = 10 }},
		{"too few presets", func(c *Config) { c.Presets = c.Presets[:3] }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"battery threshold zero", func(c *Config) {
			c.Battery.VoltagePath = "/sys/class/power_supply/bat/voltage_now"
			c.Battery.ThresholdMV = 0
		}},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestFlagOverrides_Apply(t *testing.T) {
	cfg := DefaultConfig()
	FlagOverrides{
		KeypadDevice: "/dev/input/event9",
		StorePath:    "/tmp/p.bin",
		LogLevel:     "debug",
	}.Apply(cfg)

	if len(cfg.Keypad.Devices) != 1 || cfg.Keypad.Devices[0] != "/dev/input/event9" {
		t.Errorf("devices = %v", cfg.Keypad.Devices)
	}
	if cfg.Storage.Path != "/tmp/p.bin" {
		t.Errorf("storage path = %s", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %s", cfg.Logging.Level)
	}
	// Empty overrides leave the config alone.
	if cfg.IPC.SocketPath != DefaultConfig().IPC.SocketPath {
		t.Errorf("ipc socket changed: %s", cfg.IPC.SocketPath)
	}
}

func TestToEngineConfig_Durations(t *testing.T) {
	ec := DefaultConfig().ToEngineConfig()
	if ec.EntryTimeout != 2*time.Second {
		t.Errorf("entry timeout = %v, want 2s", ec.EntryTimeout)
	}
	if ec.BlinkDuration != 100*time.Millisecond {
		t.Errorf("blink = %v, want 100ms", ec.BlinkDuration)
	}
	if ec.NotifyDuration != 500*time.Millisecond {
		t.Errorf("notify = %v, want 500ms", ec.NotifyDuration)
	}
	if ec.AdjustInterval != 50*time.Millisecond {
		t.Errorf("adjust = %v, want 50ms", ec.AdjustInterval)
	}
	if ec.InactivityTimeout != 10*time.Minute {
		t.Errorf("inactivity timeout = %v, want 10m", ec.InactivityTimeout)
	}
}
