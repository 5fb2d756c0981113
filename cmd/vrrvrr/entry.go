package main

// Tempo entry state machine: digit-by-digit numeric tempo input.
//
// Each digit stops the beat immediately, re-arms the entry timeout and
// appends to the buffer. As soon as the buffer value is a valid tempo the
// beat restarts at it, so the device ticks along while the user types.
// Values >= 256 stay pending but are never applied.

// enterDigit feeds one digit 0-9 into the entry buffer.
func enterDigit(s *MetronomeState, cfg EngineConfig, d uint8) []Command {
	cmds := stopBeat(s)

	// Digit entry supersedes a tap sequence in progress: the two estimators
	// share the '0'/tap key and are mutually exclusive.
	if s.Mode == ModeTapping {
		s.Tap.Count = 0
		cmds = append(cmds, CmdCancelTimer{Purpose: TimerTapTimeout})
	}
	s.Mode = ModeEnteringDigits

	cmds = append(cmds, CmdArmTimer{Purpose: TimerEntryTimeout, Delay: cfg.EntryTimeout})

	s.EntryBuffer = s.EntryBuffer*10 + int(d)
	if s.EntryBuffer > maxTempo {
		// Past the valid range the prompt is inert until the timeout resets
		// it. Pinning the value keeps arbitrarily long digit strings from
		// wrapping back into range.
		s.EntryBuffer = maxTempo + 1
	}
	if s.EntryBuffer >= minTempo && s.EntryBuffer <= maxTempo {
		cmds = append(cmds, startTempo(s, uint8(s.EntryBuffer))...)
	}
	return cmds
}

// entryTimeout discards unsubmitted digit input. The tempo keeps whatever
// value the last in-range digit applied; an out-of-range buffer simply
// evaporates.
func entryTimeout(s *MetronomeState) []Command {
	s.EntryBuffer = 0
	if s.Mode == ModeEnteringDigits {
		s.Mode = ModeIdle
	}
	return nil
}
