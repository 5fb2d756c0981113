package main

import (
	"fmt"
	"time"
)

// TimerPurpose keys the single-owner timer set: each purpose has at most one
// outstanding timer, enforced by cancel-then-rearm.
type TimerPurpose uint8

const (
	TimerBlinkOff TimerPurpose = iota
	TimerVibrateOff
	TimerEntryTimeout
	TimerTapTimeout
	TimerPowerOn
	TimerTempoAdjust
	TimerInactivity
)

func (p TimerPurpose) String() string {
	switch p {
	case TimerBlinkOff:
		return "blink_off"
	case TimerVibrateOff:
		return "vibrate_off"
	case TimerEntryTimeout:
		return "entry_timeout"
	case TimerTapTimeout:
		return "tap_timeout"
	case TimerPowerOn:
		return "power_on"
	case TimerTempoAdjust:
		return "tempo_adjust"
	case TimerInactivity:
		return "inactivity"
	}
	return "unknown"
}

// ==============================
// Commands (side effects)
// ==============================

// Command represents an external side effect requested by the reducer and
// executed by the engine loop: output pulses, timer (re)arming, the blocking
// preset write, and the suspend request.
type Command interface {
	commandMarker()
	String() string
}

// CmdStartBeat starts (or restarts) the absolute-deadline beat timer at the
// given tick interval.
type CmdStartBeat struct {
	Interval time.Duration
}

func (CmdStartBeat) commandMarker() {}
func (c CmdStartBeat) String() string {
	return fmt.Sprintf("CmdStartBeat(interval=%s)", c.Interval)
}

// CmdStopBeat cancels the beat timer. Idempotent.
type CmdStopBeat struct{}

func (CmdStopBeat) commandMarker() {}
func (CmdStopBeat) String() string { return "CmdStopBeat()" }

// CmdSetColor sets the RGB LED. Pulses are shaped by a following
// CmdArmTimer(TimerBlinkOff, ...) that turns the LED back off.
type CmdSetColor struct {
	Color Color
}

func (CmdSetColor) commandMarker() {}
func (c CmdSetColor) String() string {
	return fmt.Sprintf("CmdSetColor(color=%s)", c.Color)
}

// CmdVibrate starts the motor with the given duty pattern. The effects layer
// reads the hardware vibration switch first and drops the command if
// vibration is disabled.
type CmdVibrate struct {
	Pattern VibrationPattern
}

func (CmdVibrate) commandMarker() {}
func (c CmdVibrate) String() string {
	return fmt.Sprintf("CmdVibrate(pattern=%s)", c.Pattern)
}

// CmdVibrateOff stops the motor.
type CmdVibrateOff struct{}

func (CmdVibrateOff) commandMarker() {}
func (CmdVibrateOff) String() string { return "CmdVibrateOff()" }

// CmdArmTimer cancels any outstanding timer for Purpose and arms a new one.
type CmdArmTimer struct {
	Purpose TimerPurpose
	Delay   time.Duration
	Repeat  bool
}

func (CmdArmTimer) commandMarker() {}
func (c CmdArmTimer) String() string {
	return fmt.Sprintf("CmdArmTimer(purpose=%s, delay=%s, repeat=%v)", c.Purpose, c.Delay, c.Repeat)
}

// CmdCancelTimer cancels any outstanding timer for Purpose. Idempotent.
type CmdCancelTimer struct {
	Purpose TimerPurpose
}

func (CmdCancelTimer) commandMarker() {}
func (c CmdCancelTimer) String() string {
	return fmt.Sprintf("CmdCancelTimer(purpose=%s)", c.Purpose)
}

// CmdWritePresets writes the encoded preset block to persistent storage.
// The write blocks the engine loop for its whole duration, then holds for
// Pause so the save-confirmation pulse stays visible while the write settles.
type CmdWritePresets struct {
	Block []byte
	Pause time.Duration
}

func (CmdWritePresets) commandMarker() {}
func (c CmdWritePresets) String() string {
	return fmt.Sprintf("CmdWritePresets(len=%d, pause=%s)", len(c.Block), c.Pause)
}

// CmdSuspend asks the hardware layer to enter low-power dormant mode.
type CmdSuspend struct{}

func (CmdSuspend) commandMarker() {}
func (CmdSuspend) String() string { return "CmdSuspend()" }

// CmdLowBattery asserts the low-battery indicator output.
type CmdLowBattery struct {
	On bool
}

func (CmdLowBattery) commandMarker() {}
func (c CmdLowBattery) String() string {
	return fmt.Sprintf("CmdLowBattery(on=%v)", c.On)
}
