package main

import (
	"testing"
	"time"
)

func TestRouter_DigitReleaseEntersDigit(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()

	cmds := reduceKeyReleased(s, cfg, KeyReleased{Key: Key7, At: time.Now()})
	if s.Tempo != 7 || s.Mode != ModeEnteringDigits {
		t.Errorf("tempo=%d mode=%v, want 7/entering_digits", s.Tempo, s.Mode)
	}
	if !hasSetColor(cmds, ColorConfirm) {
		t.Errorf("release must end with a confirmation blink")
	}
}

func TestRouter_SharedKeyTapsWhenIdle(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()

	reduceKeyReleased(s, cfg, KeyReleased{Key: KeyTapOrZero, At: time.Now()})
	if s.Mode != ModeTapping || s.Tap.Count != 1 {
		t.Errorf("mode=%v count=%d, want tapping/1", s.Mode, s.Tap.Count)
	}
}

func TestRouter_SharedKeyIsZeroDuringEntry(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	at := time.Now()

	reduceKeyReleased(s, cfg, KeyReleased{Key: Key1, At: at})
	reduceKeyReleased(s, cfg, KeyReleased{Key: Key2, At: at})
	reduceKeyReleased(s, cfg, KeyReleased{Key: KeyTapOrZero, At: at})

	if s.Tempo != 120 {
		t.Errorf("tempo = %d, want 120", s.Tempo)
	}
	if s.Tap.Count != 0 {
		t.Errorf("tap count = %d, want 0 (shared key was a digit)", s.Tap.Count)
	}
}

func TestRouter_LongPressSavesAndSwallowsRelease(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	at := time.Now()
	startTempo(s, 100)

	cmds := reduceKeyLongPressed(s, cfg, KeyLongPressed{Key: KeyA, At: at})
	if countWritePresets(cmds) != 1 {
		t.Fatalf("long press: writes = %d, want 1", countWritePresets(cmds))
	}
	want := Preset{Tempo: 100, Subdivision: 1, Accent: true}
	if s.Presets[0] != want {
		t.Errorf("slot 0 = %v, want %v", s.Presets[0], want)
	}

	// The paired release must not recall the preset nor blink.
	before := *s
	cmds = reduceKeyReleased(s, cfg, KeyReleased{Key: KeyA, At: at})
	if len(cmds) != 0 {
		t.Errorf("suppressed release emitted %v", cmds)
	}
	if s.LongPressLock {
		t.Errorf("release lock must clear after one release")
	}
	if s.Tempo != before.Tempo || s.Mode != before.Mode {
		t.Errorf("suppressed release changed state")
	}

	// The following release routes normally again.
	reduceKeyReleased(s, cfg, KeyReleased{Key: KeyB, At: at})
	if s.Tempo != 90 {
		t.Errorf("next release: tempo = %d, want 90 (slot 1 recalled)", s.Tempo)
	}
}

func TestRouter_LetterReleaseRecallsPreset(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()

	reduceKeyReleased(s, cfg, KeyReleased{Key: KeyC, At: time.Now()})
	// Factory slot 2: 60 bpm, 2 subdivisions, accent on.
	if s.Tempo != 60 || s.Subdiv != 2 || !s.Accent {
		t.Errorf("state = %d/%d/%v, want 60/2/true", s.Tempo, s.Subdiv, s.Accent)
	}
	if s.Paused {
		t.Errorf("recall must start the beat")
	}
}

func TestRouter_DigitLongPressSetsSubdivision(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	startTempo(s, 120)

	reduceKeyLongPressed(s, cfg, KeyLongPressed{Key: Key3, At: time.Now()})
	if s.Subdiv != 3 {
		t.Errorf("subdiv = %d, want 3", s.Subdiv)
	}
	if s.EntryBuffer != 0 {
		t.Errorf("long press leaked into the entry buffer: %d", s.EntryBuffer)
	}
}

func TestRouter_SharedKeyLongPressTogglesAccent(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()

	reduceKeyLongPressed(s, cfg, KeyLongPressed{Key: KeyTapOrZero, At: time.Now()})
	if s.Accent {
		t.Errorf("accent still enabled after toggle")
	}
	reduceKeyReleased(s, cfg, KeyReleased{Key: KeyTapOrZero, At: time.Now()})
	if s.Tap.Count != 0 {
		t.Errorf("suppressed release still counted as a tap")
	}

	reduceKeyLongPressed(s, cfg, KeyLongPressed{Key: KeyTapOrZero, At: time.Now()})
	if !s.Accent {
		t.Errorf("accent not re-enabled after second toggle")
	}
}

func TestRouter_AdjustKeysStepOnPress(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	startTempo(s, 120)

	reduceKeyPressed(s, KeyPressed{Key: KeyTempoUp, At: time.Now()})
	if s.Tempo != 121 {
		t.Errorf("tempo after '*' press = %d, want 121", s.Tempo)
	}
	reduceKeyPressed(s, KeyPressed{Key: KeyTempoDown, At: time.Now()})
	if s.Tempo != 120 {
		t.Errorf("tempo after '#' press = %d, want 120", s.Tempo)
	}

	// Releasing an adjust key cancels any auto-repeat and steps no further.
	cmds := reduceKeyReleased(s, cfg, KeyReleased{Key: KeyTempoUp, At: time.Now()})
	if !hasCancelTimer(cmds, TimerTempoAdjust) {
		t.Errorf("release must cancel the auto-repeat timer")
	}
	if s.Tempo != 120 {
		t.Errorf("release changed the tempo: %d", s.Tempo)
	}
}

func TestRouter_AdjustHoldArmsRepeat(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	startTempo(s, 120)

	cmds := reduceKeyLongPressed(s, cfg, KeyLongPressed{Key: KeyTempoUp, At: time.Now()})
	if s.AdjustDirection != 1 {
		t.Errorf("direction = %d, want 1", s.AdjustDirection)
	}
	if !hasArmTimer(cmds, TimerTempoAdjust) {
		t.Fatalf("hold must arm the auto-repeat timer")
	}
	if s.LongPressLock {
		t.Errorf("adjust hold must not lock out its release")
	}

	// Each repeat fire steps once.
	stepTempo(s, s.AdjustDirection)
	stepTempo(s, s.AdjustDirection)
	if s.Tempo != 122 {
		t.Errorf("tempo after 2 repeats = %d, want 122", s.Tempo)
	}

	cmds = reduceKeyReleased(s, cfg, KeyReleased{Key: KeyTempoUp, At: time.Now()})
	if s.AdjustDirection != 0 {
		t.Errorf("direction after release = %d, want 0", s.AdjustDirection)
	}
	if !hasCancelTimer(cmds, TimerTempoAdjust) {
		t.Errorf("release must cancel the auto-repeat timer")
	}
}
