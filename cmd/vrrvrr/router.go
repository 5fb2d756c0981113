package main

// Key event router: maps classified keypad events plus the current input
// mode to actions on the tempo engine, the estimators and the preset store.
// Owns the long-press release suppression rule.

// reduceKeyPressed handles key-down events. Only the +/- keys act on press;
// everything else acts on release or long press.
func reduceKeyPressed(s *MetronomeState, ev KeyPressed) []Command {
	s.LastInput = ev.At

	switch ev.Key {
	case KeyTempoUp:
		return stepTempo(s, +1)
	case KeyTempoDown:
		return stepTempo(s, -1)
	}
	return nil
}

// reduceKeyReleased handles key-up events. A release paired with a long
// press is swallowed exactly once via the one-shot lock. Every routed
// release ends with a short confirmation blink.
func reduceKeyReleased(s *MetronomeState, cfg EngineConfig, ev KeyReleased) []Command {
	s.LastInput = ev.At

	if s.LongPressLock {
		s.LongPressLock = false
		return nil
	}

	var cmds []Command
	switch {
	case ev.Key == KeyTapOrZero:
		// The shared key is a '0' digit while a prompt is in progress,
		// a tap otherwise.
		if s.Mode == ModeEnteringDigits {
			cmds = enterDigit(s, cfg, 0)
		} else {
			cmds = tapTempo(s, cfg, ev.At)
		}

	case ev.Key == KeyTempoUp || ev.Key == KeyTempoDown:
		s.AdjustDirection = 0
		cmds = []Command{CmdCancelTimer{Purpose: TimerTempoAdjust}}

	default:
		if d, ok := digitValue(ev.Key); ok {
			cmds = enterDigit(s, cfg, d)
		} else if slot, ok := presetSlot(ev.Key); ok {
			cmds = applyPreset(s, slot)
		}
	}

	cmds = append(cmds, blinkCmds(ColorConfirm, cfg.BlinkDuration)...)
	return cmds
}

// reduceKeyLongPressed handles long presses. Every long press arms the
// release lock, except the +/- hold gestures, which clear it again so their
// paired release can cancel the auto-repeat timer.
func reduceKeyLongPressed(s *MetronomeState, cfg EngineConfig, ev KeyLongPressed) []Command {
	s.LastInput = ev.At
	s.LongPressLock = true

	switch {
	case ev.Key == KeyTapOrZero:
		s.Accent = !s.Accent
		return nil

	case ev.Key == KeyTempoUp:
		s.LongPressLock = false
		s.AdjustDirection = +1
		return []Command{CmdArmTimer{Purpose: TimerTempoAdjust, Delay: cfg.AdjustInterval, Repeat: true}}

	case ev.Key == KeyTempoDown:
		s.LongPressLock = false
		s.AdjustDirection = -1
		return []Command{CmdArmTimer{Purpose: TimerTempoAdjust, Delay: cfg.AdjustInterval, Repeat: true}}
	}

	if d, ok := digitValue(ev.Key); ok {
		return setSubdivision(s, d)
	}
	if slot, ok := presetSlot(ev.Key); ok {
		return savePreset(s, cfg, slot)
	}
	return nil
}
