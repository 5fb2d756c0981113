package main

import "time"

// timerSet owns every timer in the program: the purpose-keyed one-shot and
// repeating timers, and the absolute-deadline beat timer.
//
// Single-owner discipline: Arm/Cancel/StartBeat/StopBeat are called only
// from the engine goroutine (while executing commands), so each purpose has
// at most one outstanding timer and no locking is needed on the generation
// maps. Fires are delivered into the engine's event channel; a fire already
// in flight when its timer is cancelled or re-armed carries a stale
// generation and is discarded by current().
type timerSet struct {
	events chan<- Event

	gen  map[TimerPurpose]uint64
	stop map[TimerPurpose]chan struct{}

	beatGen  uint64
	beatStop chan struct{}
}

func newTimerSet(events chan<- Event) *timerSet {
	return &timerSet{
		events: events,
		gen:    make(map[TimerPurpose]uint64),
		stop:   make(map[TimerPurpose]chan struct{}),
	}
}

// Arm cancels any outstanding timer for the purpose and arms a new one.
// Repeating timers re-fire at the given delay until cancelled.
func (t *timerSet) Arm(purpose TimerPurpose, delay time.Duration, repeat bool) {
	t.Cancel(purpose)

	t.gen[purpose]++
	gen := t.gen[purpose]
	stop := make(chan struct{})
	t.stop[purpose] = stop

	go func() {
		tmr := time.NewTimer(delay)
		defer tmr.Stop()
		for {
			select {
			case <-stop:
				return
			case at := <-tmr.C:
				select {
				case t.events <- TimerFired{Purpose: purpose, Gen: gen, At: at}:
				case <-stop:
					return
				}
				if !repeat {
					return
				}
				tmr.Reset(delay)
			}
		}
	}()
}

// Cancel stops any outstanding timer for the purpose and invalidates fires
// already in flight. Idempotent.
func (t *timerSet) Cancel(purpose TimerPurpose) {
	if stop := t.stop[purpose]; stop != nil {
		close(stop)
		delete(t.stop, purpose)
	}
	t.gen[purpose]++
}

// StartBeat starts the beat timer at a fixed period using absolute-deadline
// scheduling: each next fire time is computed from the previous scheduled
// time, not from callback completion, so processing jitter inside a tick
// does not accumulate drift across beats.
func (t *timerSet) StartBeat(interval time.Duration) {
	t.StopBeat()

	t.beatGen++
	gen := t.beatGen
	stop := make(chan struct{})
	t.beatStop = stop

	go func() {
		next := time.Now().Add(interval)
		tmr := time.NewTimer(time.Until(next))
		defer tmr.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tmr.C:
				select {
				case t.events <- BeatTick{Gen: gen, At: next}:
				case <-stop:
					return
				}
				next = next.Add(interval)
				tmr.Reset(time.Until(next))
			}
		}
	}()
}

// StopBeat cancels the beat timer and invalidates ticks already in flight.
// Idempotent.
func (t *timerSet) StopBeat() {
	if t.beatStop != nil {
		close(t.beatStop)
		t.beatStop = nil
	}
	t.beatGen++
}

// current reports whether a timer-produced event belongs to the currently
// armed generation of its timer. Non-timer events always pass.
func (t *timerSet) current(e Event) bool {
	switch ev := e.(type) {
	case TimerFired:
		return ev.Gen == t.gen[ev.Purpose]
	case BeatTick:
		return ev.Gen == t.beatGen
	}
	return true
}
