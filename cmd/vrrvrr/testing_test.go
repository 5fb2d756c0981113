package main

import (
	"time"
)

// testEngineConfig returns the factory timing configuration used throughout
// the reducer tests.
func testEngineConfig() EngineConfig {
	return DefaultConfig().ToEngineConfig()
}

// newTestState returns a boot state with the factory presets.
func newTestState() *MetronomeState {
	return NewMetronomeState(DefaultConfig().DefaultPresets())
}

// lastStartBeat returns the interval of the last CmdStartBeat in cmds.
func lastStartBeat(cmds []Command) (time.Duration, bool) {
	var interval time.Duration
	found := false
	for _, c := range cmds {
		if sb, ok := c.(CmdStartBeat); ok {
			interval = sb.Interval
			found = true
		}
	}
	return interval, found
}

// hasCommand reports whether cmds contains a command matching pred.
func hasCommand(cmds []Command, pred func(Command) bool) bool {
	for _, c := range cmds {
		if pred(c) {
			return true
		}
	}
	return false
}

// hasArmTimer reports whether cmds arms a timer for the given purpose.
func hasArmTimer(cmds []Command, purpose TimerPurpose) bool {
	return hasCommand(cmds, func(c Command) bool {
		a, ok := c.(CmdArmTimer)
		return ok && a.Purpose == purpose
	})
}

// hasCancelTimer reports whether cmds cancels the timer for the given purpose.
func hasCancelTimer(cmds []Command, purpose TimerPurpose) bool {
	return hasCommand(cmds, func(c Command) bool {
		a, ok := c.(CmdCancelTimer)
		return ok && a.Purpose == purpose
	})
}

// hasSetColor reports whether cmds sets the given color.
func hasSetColor(cmds []Command, color Color) bool {
	return hasCommand(cmds, func(c Command) bool {
		sc, ok := c.(CmdSetColor)
		return ok && sc.Color == color
	})
}

// countWritePresets counts CmdWritePresets commands in cmds.
func countWritePresets(cmds []Command) int {
	n := 0
	for _, c := range cmds {
		if _, ok := c.(CmdWritePresets); ok {
			n++
		}
	}
	return n
}
