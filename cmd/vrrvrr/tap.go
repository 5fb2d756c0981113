package main

import "time"

// Tap tempo estimator.
//
// The estimate is a recency-weighted running average: the first measured
// interval seeds it, every later interval is blended in with
// avg = (avg + delta) / 2. The tap timeout only resets the tap count, not
// the average, so a tap after a long pause still blends with the previous
// sequence's average. That is the shipped device's behavior and is kept.

// tapTempo records one tap at the given time and, from the second tap of a
// sequence on, restarts the beat at the estimated tempo.
func tapTempo(s *MetronomeState, cfg EngineConfig, at time.Time) []Command {
	cmds := stopBeat(s)
	s.Mode = ModeTapping

	cmds = append(cmds, CmdArmTimer{Purpose: TimerTapTimeout, Delay: cfg.TapTimeout})

	s.Tap.Count++
	if s.Tap.Count > 1 {
		delta := at.Sub(s.Tap.LastTap)
		if delta > 0 {
			if s.Tap.AvgInterval == 0 {
				s.Tap.AvgInterval = delta
			} else {
				s.Tap.AvgInterval = (s.Tap.AvgInterval + delta) / 2
			}
			bpm := intervalToTempo(s.Tap.AvgInterval)
			if bpm >= minTempo && bpm <= maxTempo {
				cmds = append(cmds, startTempo(s, uint8(bpm))...)
			}
		}
	}
	s.Tap.LastTap = at
	return cmds
}

// tapTimeout ends the tap sequence. The next tap starts a new sequence; the
// running average is deliberately left in place.
func tapTimeout(s *MetronomeState) []Command {
	s.Tap.Count = 0
	if s.Mode == ModeTapping {
		s.Mode = ModeIdle
	}
	return nil
}
