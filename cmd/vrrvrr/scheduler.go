package main

import "time"

// Tempo scheduler helpers. These are pure: they mutate only the passed state
// and return the commands that drive the beat timer. The engine executes the
// commands in order, so stop-then-start sequences are never interleaved with
// other timer work.

// startTempo starts (or retimes) the beat at the given tempo. Tempo 0 is a
// guarded no-op; the caller keeps whatever was running. TickIndex resets so
// the retimed run realigns on the beat.
func startTempo(s *MetronomeState, tempo uint8) []Command {
	if tempo < minTempo {
		return nil
	}
	s.Tempo = tempo
	s.TickIndex = 0
	s.Paused = false

	interval := tempoToInterval(tempo) / time.Duration(s.Subdiv)
	return []Command{CmdStopBeat{}, CmdStartBeat{Interval: interval}}
}

// stopBeat cancels the beat timer and marks the engine stopped. Idempotent.
func stopBeat(s *MetronomeState) []Command {
	s.Paused = true
	return []Command{CmdStopBeat{}}
}

// setSubdivision changes the number of ticks per beat. Out-of-range values
// are silently ignored. Subdivision changes always go through stop+start.
func setSubdivision(s *MetronomeState, m uint8) []Command {
	if m < minSubdivision || m > maxSubdivision {
		return nil
	}
	s.Subdiv = m
	cmds := stopBeat(s)
	if s.Tempo > 0 {
		cmds = append(cmds, startTempo(s, s.Tempo)...)
	}
	return cmds
}

// stepTempo applies one +/-1 tempo step, clamped to 1..255, and marks the
// scheduler for a retime on the next tick boundary so the in-flight pulse is
// not torn. With no tempo set there is nothing to step.
func stepTempo(s *MetronomeState, direction int) []Command {
	if s.Tempo == 0 || direction == 0 {
		return nil
	}
	if direction > 0 && s.Tempo < maxTempo {
		s.Tempo++
	}
	if direction < 0 && s.Tempo > minTempo {
		s.Tempo--
	}
	s.RetimePending = true
	return nil
}

// dispatchTick handles one firing of the beat timer: emit the visual and
// haptic pulse, advance the subdivision counter, and only then perform any
// deferred retime so the current tick's pulse is never dropped.
func dispatchTick(s *MetronomeState, cfg EngineConfig) []Command {
	isFirst := s.Accent && s.TickIndex == 0

	color := ColorBeatNormal
	pattern := VibrationNormalPulse
	if isFirst {
		color = ColorBeatAccent
		pattern = VibrationAccentPulse
	}

	cmds := blinkCmds(color, cfg.BlinkDuration)
	cmds = append(cmds, vibrateCmds(pattern, cfg.VibrationDuration)...)

	s.TickIndex++
	if s.TickIndex >= s.Subdiv {
		s.TickIndex = 0
	}

	if s.RetimePending {
		s.RetimePending = false
		cmds = append(cmds, stopBeat(s)...)
		if s.Tempo > 0 {
			cmds = append(cmds, startTempo(s, s.Tempo)...)
		}
	}
	return cmds
}

// blinkCmds lights the LED and arms the blink-off timer, replacing any
// outstanding one.
func blinkCmds(c Color, d time.Duration) []Command {
	return []Command{
		CmdSetColor{Color: c},
		CmdArmTimer{Purpose: TimerBlinkOff, Delay: d},
	}
}

// vibrateCmds starts the motor and arms the vibrate-off timer.
func vibrateCmds(p VibrationPattern, d time.Duration) []Command {
	return []Command{
		CmdVibrate{Pattern: p},
		CmdArmTimer{Purpose: TimerVibrateOff, Delay: d},
	}
}
