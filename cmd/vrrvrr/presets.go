package main

import "fmt"

// Preset store: four slots, persisted as one fixed-size block.

// encodePresetBlock serializes all four slots into a full storage page:
// magic signature, 4 tempo bytes, 4 subdivision bytes, 4 accent bytes,
// zero padding to the page size.
func encodePresetBlock(presets [presetSlots]Preset) []byte {
	block := make([]byte, blockPageSize)
	copy(block, blockMagic[:])
	for i, p := range presets {
		block[blockTempoOff+i] = p.Tempo
		block[blockSubdivOff+i] = p.Subdivision
		if p.Accent {
			block[blockAccentOff+i] = 1
		}
	}
	return block
}

// decodePresetBlock validates and decodes a persisted block. Validation is
// all-or-nothing: a bad signature or any single out-of-range field discards
// the whole block, so corrupt values never propagate into the slots.
func decodePresetBlock(block []byte) ([presetSlots]Preset, error) {
	var presets [presetSlots]Preset

	if len(block) < blockAccentOff+presetSlots {
		return presets, fmt.Errorf("block too short: %d bytes", len(block))
	}
	for i := 0; i < blockMagicLen; i++ {
		if block[i] != blockMagic[i] {
			return presets, fmt.Errorf("bad magic signature at byte %d", i)
		}
	}
	for i := 0; i < presetSlots; i++ {
		tempo := block[blockTempoOff+i]
		subdiv := block[blockSubdivOff+i]
		accent := block[blockAccentOff+i]
		if tempo < minTempo {
			return presets, fmt.Errorf("slot %d: tempo %d out of range", i, tempo)
		}
		if subdiv < minSubdivision || subdiv > maxSubdivision {
			return presets, fmt.Errorf("slot %d: subdivision %d out of range", i, subdiv)
		}
		if accent > 1 {
			return presets, fmt.Errorf("slot %d: accent %d out of range", i, accent)
		}
		presets[i] = Preset{Tempo: tempo, Subdivision: subdiv, Accent: accent == 1}
	}
	return presets, nil
}

// savePreset copies the live tempo/subdivision/accent into the slot and
// persists all four slots. Rejected with no tempo set. The green
// confirmation pulse is emitted before the blocking write; the write command
// carries the pause that keeps the pulse stable while it completes; the beat
// restarts afterwards at the just-saved tempo.
func savePreset(s *MetronomeState, cfg EngineConfig, slot int) []Command {
	if s.Tempo == 0 {
		return nil
	}
	s.Presets[slot] = Preset{Tempo: s.Tempo, Subdivision: s.Subdiv, Accent: s.Accent}

	cmds := stopBeat(s)
	cmds = append(cmds, blinkCmds(ColorSaveConfirm, cfg.NotifyDuration)...)
	cmds = append(cmds, CmdWritePresets{Block: encodePresetBlock(s.Presets), Pause: cfg.NotifyDuration})
	cmds = append(cmds, startTempo(s, s.Tempo)...)
	return cmds
}

// applyPreset copies the slot's tempo and accent into the live state and
// restarts through the subdivision setter. Slot values passed load-time
// validation, so they satisfy the live range invariants.
func applyPreset(s *MetronomeState, slot int) []Command {
	p := s.Presets[slot]
	s.Tempo = p.Tempo
	s.Accent = p.Accent
	return setSubdivision(s, p.Subdivision)
}
