package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event is the input to the reducer: a classified keypad event, a timer fire,
// a beat tick, or a collaborator notification. Events carry their own
// timestamps so the reducer stays pure and deterministic under test.
type Event interface {
	eventMarker()
}

// Started is posted once at boot. It lights the power-on indicator and arms
// the repeating inactivity check.
type Started struct {
	At time.Time
}

func (Started) eventMarker() {}

// KeyPressed is emitted by the keypad collaborator when a key goes down.
type KeyPressed struct {
	Key Key       `json:"key"`
	At  time.Time `json:"-"`
}

func (KeyPressed) eventMarker() {}

// KeyLongPressed is emitted while a key is held past the long-press
// threshold. The collaborator still emits the paired KeyReleased afterwards;
// the router suppresses it.
type KeyLongPressed struct {
	Key Key       `json:"key"`
	At  time.Time `json:"-"`
}

func (KeyLongPressed) eventMarker() {}

// KeyReleased is emitted by the keypad collaborator when a key goes up.
type KeyReleased struct {
	Key Key       `json:"key"`
	At  time.Time `json:"-"`
}

func (KeyReleased) eventMarker() {}

// BeatTick is one scheduled firing of the beat/subdivision timer. Gen ties
// the tick to the beat timer generation that produced it, so a fire already
// in flight when the beat is retimed is discarded.
type BeatTick struct {
	Gen uint64
	At  time.Time
}

func (BeatTick) eventMarker() {}

// TimerFired reports a purpose-keyed timer expiry. Stale generations are
// filtered by the engine before reduction.
type TimerFired struct {
	Purpose TimerPurpose
	Gen     uint64
	At      time.Time
}

func (TimerFired) eventMarker() {}

// BatteryLow is posted once by the battery monitor when the voltage crosses
// the low threshold. The monitor disarms itself after posting.
type BatteryLow struct {
	Millivolts int
	At         time.Time
}

func (BatteryLow) eventMarker() {}

// ============================================================================
// JSON envelope for the virtual keypad IPC socket
// ============================================================================
// Only keypad events cross the IPC boundary. Go has no union types, so the
// envelope carries a type discriminator.
// ============================================================================

// EventEnvelope wraps a key event with a type discriminator for JSON.
type EventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type keyPayload struct {
	Key uint8 `json:"key"`
}

// UnmarshalKeyEvent deserializes a JSON envelope into a key event. The
// timestamp is assigned at the point of receipt.
func UnmarshalKeyEvent(data []byte, at time.Time) (Event, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	var p keyPayload
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal key payload: %w", err)
	}
	if p.Key >= numKeys {
		return nil, fmt.Errorf("key id out of range: %d", p.Key)
	}

	switch env.Type {
	case "key_pressed":
		return KeyPressed{Key: Key(p.Key), At: at}, nil
	case "key_long_pressed":
		return KeyLongPressed{Key: Key(p.Key), At: at}, nil
	case "key_released":
		return KeyReleased{Key: Key(p.Key), At: at}, nil
	default:
		return nil, fmt.Errorf("unknown event type: %q", env.Type)
	}
}

// MarshalKeyEvent serializes a key event into a JSON envelope.
func MarshalKeyEvent(e Event) ([]byte, error) {
	var env EventEnvelope
	var key uint8

	switch e := e.(type) {
	case KeyPressed:
		env.Type = "key_pressed"
		key = uint8(e.Key)
	case KeyLongPressed:
		env.Type = "key_long_pressed"
		key = uint8(e.Key)
	case KeyReleased:
		env.Type = "key_released"
		key = uint8(e.Key)
	default:
		return nil, fmt.Errorf("unsupported event type: %T", e)
	}

	data, err := json.Marshal(keyPayload{Key: key})
	if err != nil {
		return nil, fmt.Errorf("marshal key payload: %w", err)
	}
	env.Data = data

	return json.Marshal(env)
}
