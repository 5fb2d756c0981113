package main

import "log/slog"

// Color selects the RGB LED state. The concrete pin driving (common-anode
// inversion, PWM, etc.) lives behind the Outputs interface.
type Color uint8

const (
	ColorOff         Color = iota
	ColorBeatAccent        // purple: first subdivision of an accented beat
	ColorBeatNormal        // white: every other subdivision
	ColorConfirm           // red: key feedback blink
	ColorSaveConfirm       // green: preset saved
)

func (c Color) String() string {
	switch c {
	case ColorOff:
		return "off"
	case ColorBeatAccent:
		return "beat_accent"
	case ColorBeatNormal:
		return "beat_normal"
	case ColorConfirm:
		return "confirm"
	case ColorSaveConfirm:
		return "save_confirm"
	}
	return "unknown"
}

// VibrationPattern selects the motor duty pattern. The accent pulse is the
// stronger/slower pattern used on the first subdivision of a beat.
type VibrationPattern uint8

const (
	VibrationOff VibrationPattern = iota
	VibrationAccentPulse
	VibrationNormalPulse
)

func (p VibrationPattern) String() string {
	switch p {
	case VibrationOff:
		return "off"
	case VibrationAccentPulse:
		return "accent_pulse"
	case VibrationNormalPulse:
		return "normal_pulse"
	}
	return "unknown"
}

// Outputs is the capability surface consumed by the effects layer and
// implemented by the excluded output driver. Calls are level-setting; pulse
// durations are produced by the reducer via the blink-off/vibrate-off timers.
type Outputs interface {
	SetColor(c Color)
	SetVibration(p VibrationPattern)
	SetLowBattery(on bool)
}

// VibrationSwitch reports the physical "vibration disabled" switch. It is
// read by the effects layer immediately before any vibration command.
type VibrationSwitch interface {
	Disabled() bool
}

// Suspender requests the hardware layer to enter its low-power dormant mode.
// The request must be idempotent.
type Suspender interface {
	Suspend()
}

// logOutputs is the host-side Outputs implementation: it only logs. Useful
// when bench-testing the brain without the LED/motor driver attached.
type logOutputs struct {
	logger *slog.Logger
}

func (o *logOutputs) SetColor(c Color) {
	o.logger.Debug("set color", "color", c.String())
}

func (o *logOutputs) SetVibration(p VibrationPattern) {
	o.logger.Debug("set vibration", "pattern", p.String())
}

func (o *logOutputs) SetLowBattery(on bool) {
	o.logger.Info("low battery indicator", "on", on)
}

// logSuspender logs the suspend request instead of halting the host.
type logSuspender struct {
	logger *slog.Logger
}

func (s *logSuspender) Suspend() {
	s.logger.Info("suspend requested (inactivity)")
}

// constSwitch is a VibrationSwitch with a fixed reading.
type constSwitch bool

func (s constSwitch) Disabled() bool { return bool(s) }
