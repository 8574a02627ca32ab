// Package preset persists a complete synthesizer setup — parameter
// snapshot, sequencer pattern and tempo — as a JSON file. Enum fields are
// stored as their text names, so presets stay readable and stable across
// versions.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-synth/sequencer"
	"github.com/cwbudde/algo-synth/synth"
)

// Preset bundles everything needed to restore a session.
type Preset struct {
	Params  synth.Params      `json:"params"`
	Pattern sequencer.Pattern `json:"pattern"`
	Tempo   float64           `json:"tempo"`
}

// Default returns a preset with baseline parameters, a cleared pattern
// and a 120 BPM tempo.
func Default() Preset {
	return Preset{
		Params:  synth.DefaultParams(),
		Pattern: sequencer.ClearPattern(),
		Tempo:   120,
	}
}

// Load reads a preset file. Parameter values are clamped into range on
// load, never rejected.
func Load(path string) (Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: read %s: %w", path, err)
	}

	return Decode(b)
}

// Decode parses preset JSON.
func Decode(b []byte) (Preset, error) {
	p := Default()
	if err := json.Unmarshal(b, &p); err != nil {
		return Preset{}, fmt.Errorf("preset: decode: %w", err)
	}

	p.Params = p.Params.Clamped()

	return p, nil
}

// Save writes the preset as indented JSON, creating parent directories as
// needed.
func Save(path string, p Preset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("preset: mkdir: %w", err)
	}

	b, err := Encode(p)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("preset: write %s: %w", path, err)
	}

	return nil
}

// Encode renders the preset as indented JSON with a trailing newline.
func Encode(p Preset) ([]byte, error) {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("preset: encode: %w", err)
	}

	return append(b, '\n'), nil
}
