package main

import (
	"log/slog"
	"time"
)

// effects executes reducer-emitted Commands against the outside world:
// output sinks, the timer set, persistent storage and the suspend hook.
//
// Design rules:
//   - This is the only place that performs I/O on behalf of the reducer.
//   - It never calls Reduce(); timer fires re-enter through the event channel.
//   - Commands run inline on the engine goroutine, so a blocking command
//     (the preset write) suspends all other timer-driven behavior for its
//     duration.
type effects struct {
	outputs   Outputs
	vibSwitch VibrationSwitch
	store     BlockStore
	suspender Suspender
	timers    *timerSet
	logger    *slog.Logger
}

// run executes a single command.
func (e *effects) run(cmd Command) {
	switch c := cmd.(type) {
	case CmdStartBeat:
		e.timers.StartBeat(c.Interval)

	case CmdStopBeat:
		e.timers.StopBeat()

	case CmdSetColor:
		e.outputs.SetColor(c.Color)

	case CmdVibrate:
		// The hardware switch is sampled on every pulse, not latched at
		// startup.
		if e.vibSwitch != nil && e.vibSwitch.Disabled() {
			return
		}
		e.outputs.SetVibration(c.Pattern)

	case CmdVibrateOff:
		e.outputs.SetVibration(VibrationOff)

	case CmdArmTimer:
		e.timers.Arm(c.Purpose, c.Delay, c.Repeat)

	case CmdCancelTimer:
		e.timers.Cancel(c.Purpose)

	case CmdWritePresets:
		// Blocking erase+program. There is no status check and no retry;
		// a failed write is caught by validation on the next boot.
		if err := e.store.WriteBlock(c.Block); err != nil {
			e.logger.Error("preset block write failed", "error", err)
		}
		// Hold so the save-confirmation pulse stays visible while the
		// write settles, before the beat restarts.
		time.Sleep(c.Pause)

	case CmdSuspend:
		e.suspender.Suspend()

	case CmdLowBattery:
		e.outputs.SetLowBattery(c.On)

	default:
		e.logger.Warn("unknown command type", "command", cmd.String())
	}
}
