package main

// This file implements the reducer-style building blocks:
//
//   - Events: inputs to the reducer (keypad events, timer fires, beat ticks,
//     collaborator notifications)
//   - Commands: side effects requested by the reducer (output pulses, timer
//     arming, the preset write, the suspend request)
//   - Reduce(): computes next state + commands, without performing I/O
//
// The reducer must be pure. All metronome state lives in MetronomeState,
// and the engine loop is the only caller. The engine executes the returned
// Commands in order and feeds timer fires back in as Events.

// ReduceResult is the output of Reduce(): next state plus the commands to
// execute, in order.
type ReduceResult struct {
	State    *MetronomeState
	Commands []Command
}

// Reduce is the pure reducer.
//
// Rules:
//   - Must not perform I/O
//   - Must not block
//   - Must not read the clock; events carry their timestamps
func Reduce(s *MetronomeState, e Event, cfg EngineConfig) ReduceResult {
	if s == nil {
		s = NewMetronomeState([presetSlots]Preset{})
	}

	var cmds []Command

	switch ev := e.(type) {
	case Started:
		s.LastInput = ev.At
		cmds = []Command{
			CmdSetColor{Color: ColorBeatNormal},
			CmdArmTimer{Purpose: TimerPowerOn, Delay: cfg.PowerOnDuration},
			CmdArmTimer{Purpose: TimerInactivity, Delay: cfg.InactivityCheck, Repeat: true},
		}

	case KeyPressed:
		cmds = reduceKeyPressed(s, ev)

	case KeyReleased:
		cmds = reduceKeyReleased(s, cfg, ev)

	case KeyLongPressed:
		cmds = reduceKeyLongPressed(s, cfg, ev)

	case BeatTick:
		cmds = dispatchTick(s, cfg)

	case TimerFired:
		switch ev.Purpose {
		case TimerBlinkOff, TimerPowerOn:
			cmds = []Command{CmdSetColor{Color: ColorOff}}
		case TimerVibrateOff:
			cmds = []Command{CmdVibrateOff{}}
		case TimerEntryTimeout:
			cmds = entryTimeout(s)
		case TimerTapTimeout:
			cmds = tapTimeout(s)
		case TimerTempoAdjust:
			cmds = stepTempo(s, s.AdjustDirection)
		case TimerInactivity:
			// Suspend only while stopped and idle past the threshold.
			// The request is idempotent on the hardware side.
			if s.Paused && ev.At.Sub(s.LastInput) > cfg.InactivityTimeout {
				cmds = []Command{CmdSuspend{}}
			}
		}

	case BatteryLow:
		cmds = []Command{CmdLowBattery{On: true}}

	default:
		// Unknown event type: no-op.
	}

	return ReduceResult{
		State:    s,
		Commands: cmds,
	}
}
