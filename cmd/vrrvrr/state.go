package main

import "time"

// UiInputMode says which estimator currently owns unsubmitted numeric input.
// Digit entry and tap tempo share the '0'/tap key, so exactly one of them is
// active at a time; digit entry takes priority once a prompt is in progress.
type UiInputMode uint8

const (
	ModeIdle UiInputMode = iota
	ModeEnteringDigits
	ModeTapping
)

func (m UiInputMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeEnteringDigits:
		return "entering_digits"
	case ModeTapping:
		return "tapping"
	}
	return "unknown"
}

// Preset is one recallable (tempo, subdivision, accent) triple.
type Preset struct {
	Tempo       uint8
	Subdivision uint8
	Accent      bool
}

// TapState is the tap tempo estimator's working state. Count resets on the
// tap timeout; AvgInterval deliberately survives it, so a tap long after a
// pause blends with the previous sequence's average (original behavior).
type TapState struct {
	Count       int
	LastTap     time.Time
	AvgInterval time.Duration
}

// MetronomeState is the single engine-owned state aggregate. Only the
// reducer mutates it, and only from the engine goroutine.
type MetronomeState struct {
	// Live tempo engine state. Tempo is 0 (stopped, nothing set yet) or
	// 1-255. TickIndex counts subdivisions within the current beat and is
	// always < Subdiv.
	Tempo     uint8
	Subdiv    uint8
	Accent    bool
	TickIndex uint8
	Paused    bool

	// RetimePending defers a +/- tempo change to the next tick boundary so
	// the in-flight pulse is never torn.
	RetimePending bool

	// AdjustDirection is -1/0/+1 while the +/- auto-repeat timer is armed.
	AdjustDirection int

	// Numeric input.
	Mode        UiInputMode
	EntryBuffer int
	Tap         TapState

	// LongPressLock swallows the release event paired with a long press
	// exactly once.
	LongPressLock bool

	// LastInput feeds the inactivity check.
	LastInput time.Time

	Presets [presetSlots]Preset
}

// NewMetronomeState returns the boot state: stopped, no subdivisions,
// accents enabled, presets at their compiled-in defaults.
func NewMetronomeState(defaults [presetSlots]Preset) *MetronomeState {
	return &MetronomeState{
		Subdiv:  minSubdivision,
		Accent:  true,
		Paused:  true,
		Presets: defaults,
	}
}
