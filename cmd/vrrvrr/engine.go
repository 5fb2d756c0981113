package main

import (
	"context"
	"log/slog"
)

// ============================================================================
// Engine loop - the metronome brain
// ============================================================================
//
// Design rules enforced here:
//   - The reducer performs no I/O and computes: next state + commands.
//   - The engine loop is the only place that executes side effects.
//   - Timer fires re-enter the loop as Events through the shared channel.
//   - Explicit event and command queues; no nested/re-entrant execution.
//
// The loop is the single logical thread of control: all shared state is
// mutated only here, and every stop-mutate-restart sequence runs to
// completion before the next event is taken. Stale timer fires (from a
// purpose that was cancelled or re-armed while the fire was in flight) are
// filtered by generation before reduction.
// ============================================================================

// runEngine drains the event channel until ctx is cancelled or the channel
// is closed.
func runEngine(
	ctx context.Context,
	events <-chan Event,
	state *MetronomeState,
	cfg EngineConfig,
	eff *effects,
	timers *timerSet,
	logger *slog.Logger,
) {
	var eventQueue []Event
	var cmdQueue []Command

	enqueueCommands := func(cmds []Command) {
		if len(cmds) == 0 {
			return
		}
		cmdQueue = append(cmdQueue, cmds...)
	}

	// Reduce all queued events, enqueuing any resulting commands.
	flushEvents := func() {
		for len(eventQueue) > 0 {
			ev := eventQueue[0]
			eventQueue = eventQueue[1:]

			rr := Reduce(state, ev, cfg)
			if rr.State != nil {
				state = rr.State
			}
			enqueueCommands(rr.Commands)
		}
	}

	// Execute all queued commands, in order.
	flushCommands := func() {
		for len(cmdQueue) > 0 {
			cmd := cmdQueue[0]
			cmdQueue = cmdQueue[1:]
			eff.run(cmd)
		}
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("engine stopping (context canceled)")
			return

		case ev, ok := <-events:
			if !ok {
				logger.Info("engine stopping (events channel closed)")
				return
			}
			if !timers.current(ev) {
				continue
			}
			eventQueue = append(eventQueue, ev)
			flushEvents()
			flushCommands()
		}
	}
}
