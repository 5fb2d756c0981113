package main

import (
	"testing"
	"time"
)

func TestStartTempo_DividesIntervalBySubdivision(t *testing.T) {
	s := newTestState()
	s.Subdiv = 2

	cmds := startTempo(s, 60)
	interval, ok := lastStartBeat(cmds)
	if !ok {
		t.Fatalf("expected beat start")
	}
	if interval != 500*time.Millisecond {
		t.Errorf("tick interval = %v, want 500ms (60 bpm / 2 subdivisions)", interval)
	}
	if s.TickIndex != 0 {
		t.Errorf("tick index = %d, want 0", s.TickIndex)
	}
	if s.Paused {
		t.Errorf("expected running")
	}
}

func TestStartTempo_ZeroIsNoOp(t *testing.T) {
	s := newTestState()
	if cmds := startTempo(s, 0); cmds != nil {
		t.Errorf("startTempo(0) = %v, want nil", cmds)
	}
	if !s.Paused {
		t.Errorf("state must stay stopped")
	}
}

func TestSetSubdivision_RestartsRunningBeat(t *testing.T) {
	s := newTestState()
	startTempo(s, 120)

	cmds := setSubdivision(s, 4)
	if s.Subdiv != 4 {
		t.Fatalf("subdiv = %d, want 4", s.Subdiv)
	}
	interval, ok := lastStartBeat(cmds)
	if !ok {
		t.Fatalf("expected beat restart")
	}
	if interval != 125*time.Millisecond {
		t.Errorf("tick interval = %v, want 125ms", interval)
	}
}

func TestSetSubdivision_RejectsOutOfRange(t *testing.T) {
	s := newTestState()
	for _, m := range []uint8{0, 10, 200} {
		if cmds := setSubdivision(s, m); cmds != nil {
			t.Errorf("setSubdivision(%d) = %v, want nil", m, cmds)
		}
		if s.Subdiv != minSubdivision {
			t.Errorf("subdiv changed to %d on invalid input %d", s.Subdiv, m)
		}
	}
}

func TestSetSubdivision_WhileStoppedDoesNotStart(t *testing.T) {
	s := newTestState()
	cmds := setSubdivision(s, 3)
	if s.Subdiv != 3 {
		t.Fatalf("subdiv = %d, want 3", s.Subdiv)
	}
	if _, ok := lastStartBeat(cmds); ok {
		t.Errorf("no beat must start with no tempo set")
	}
}

func TestStepTempo_ClampsAtBounds(t *testing.T) {
	s := newTestState()

	s.Tempo = maxTempo
	stepTempo(s, +1)
	if s.Tempo != maxTempo {
		t.Errorf("tempo above max: %d", s.Tempo)
	}

	s.Tempo = minTempo
	stepTempo(s, -1)
	if s.Tempo != minTempo {
		t.Errorf("tempo below min: %d", s.Tempo)
	}
}

func TestStepTempo_NoTempoIsNoOp(t *testing.T) {
	s := newTestState()
	stepTempo(s, +1)
	if s.Tempo != 0 || s.RetimePending {
		t.Errorf("tempo=%d retime=%v, want 0/false", s.Tempo, s.RetimePending)
	}
}

func TestStepTempo_DefersRetimeToNextTick(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	startTempo(s, 120)

	cmds := stepTempo(s, +1)
	if len(cmds) != 0 {
		t.Errorf("step must not retime immediately, got %v", cmds)
	}
	if s.Tempo != 121 || !s.RetimePending {
		t.Fatalf("tempo=%d retime=%v, want 121/true", s.Tempo, s.RetimePending)
	}

	cmds = dispatchTick(s, cfg)
	if s.RetimePending {
		t.Errorf("retime flag must clear on the next tick")
	}
	interval, ok := lastStartBeat(cmds)
	if !ok {
		t.Fatalf("tick after step must restart the beat")
	}
	if want := tempoToInterval(121); interval != want {
		t.Errorf("retimed interval = %v, want %v", interval, want)
	}
}

func TestDispatchTick_AccentCycle(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	s.Subdiv = 3
	startTempo(s, 120)

	// Tick 0 is the accented first subdivision; 1 and 2 are normal; then
	// the cycle repeats.
	wantAccent := []bool{true, false, false, true, false, false}
	for i, want := range wantAccent {
		cmds := dispatchTick(s, cfg)
		gotAccent := hasSetColor(cmds, ColorBeatAccent)
		gotNormal := hasSetColor(cmds, ColorBeatNormal)
		if gotAccent != want || gotNormal == want {
			t.Errorf("tick %d: accent=%v normal=%v, want accent=%v", i, gotAccent, gotNormal, want)
		}
		if !hasArmTimer(cmds, TimerBlinkOff) || !hasArmTimer(cmds, TimerVibrateOff) {
			t.Errorf("tick %d: pulse-off timers not armed", i)
		}
	}
}

func TestDispatchTick_AccentDisabled(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	s.Accent = false
	s.Subdiv = 2
	startTempo(s, 120)

	for i := 0; i < 4; i++ {
		cmds := dispatchTick(s, cfg)
		if hasSetColor(cmds, ColorBeatAccent) {
			t.Errorf("tick %d: accent pulse with accents disabled", i)
		}
		if !hasSetColor(cmds, ColorBeatNormal) {
			t.Errorf("tick %d: missing normal pulse", i)
		}
	}
}

func TestDispatchTick_WrapsTickIndex(t *testing.T) {
	s := newTestState()
	cfg := testEngineConfig()
	s.Subdiv = 3
	startTempo(s, 60)

	want := []uint8{1, 2, 0, 1, 2, 0}
	for i, w := range want {
		dispatchTick(s, cfg)
		if s.TickIndex != w {
			t.Errorf("after tick %d: index = %d, want %d", i, s.TickIndex, w)
		}
	}
}
