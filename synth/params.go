package synth

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/biquad"
	"github.com/cwbudde/algo-synth/dsp/osc"
)

// minEnvelopeSeconds is the floor applied to attack, decay and release so
// ramps always have a non-zero duration.
const minEnvelopeSeconds = 0.001

// Params is a complete snapshot of all synthesis parameters. It is always
// fully populated: updates go through Merge, which produces a new complete
// snapshot with every field clamped to its range.
type Params struct {
	Waveform osc.Waveform `json:"waveform"`
	Volume   float64      `json:"volume"`

	Attack  float64 `json:"attack"`
	Decay   float64 `json:"decay"`
	Sustain float64 `json:"sustain"`
	Release float64 `json:"release"`

	Cutoff    float64      `json:"cutoff"`
	Resonance float64      `json:"resonance"`
	Filter    biquad.Shape `json:"filter"`

	LFORate   float64 `json:"lfoRate"`
	LFOAmount float64 `json:"lfoAmount"`

	DetuneCents float64 `json:"detune"`
	RingMod     float64 `json:"ringMod"`

	Wetness    float64 `json:"wetness"`
	Coarseness float64 `json:"coarseness"`
}

// DefaultParams returns the baseline snapshot used by a fresh engine.
func DefaultParams() Params {
	return Params{
		Waveform:   osc.Sawtooth,
		Volume:     0.5,
		Attack:     0.01,
		Decay:      0.12,
		Sustain:    0.7,
		Release:    0.3,
		Cutoff:     2000,
		Resonance:  1,
		Filter:     biquad.Lowpass,
		LFORate:    5,
		LFOAmount:  0,
		Wetness:    0.3,
		Coarseness: 0,
	}
}

// Patch is a partial parameter update. Nil fields keep the current value.
type Patch struct {
	Waveform *osc.Waveform `json:"waveform,omitempty"`
	Volume   *float64      `json:"volume,omitempty"`

	Attack  *float64 `json:"attack,omitempty"`
	Decay   *float64 `json:"decay,omitempty"`
	Sustain *float64 `json:"sustain,omitempty"`
	Release *float64 `json:"release,omitempty"`

	Cutoff    *float64      `json:"cutoff,omitempty"`
	Resonance *float64      `json:"resonance,omitempty"`
	Filter    *biquad.Shape `json:"filter,omitempty"`

	LFORate   *float64 `json:"lfoRate,omitempty"`
	LFOAmount *float64 `json:"lfoAmount,omitempty"`

	DetuneCents *float64 `json:"detune,omitempty"`
	RingMod     *float64 `json:"ringMod,omitempty"`

	Wetness    *float64 `json:"wetness,omitempty"`
	Coarseness *float64 `json:"coarseness,omitempty"`
}

// Merge applies patch on top of p and returns the clamped result. Merging
// never fails: out-of-range values are clamped, never rejected.
func (p Params) Merge(patch Patch) Params {
	if patch.Waveform != nil {
		p.Waveform = *patch.Waveform
	}
	if patch.Volume != nil {
		p.Volume = *patch.Volume
	}
	if patch.Attack != nil {
		p.Attack = *patch.Attack
	}
	if patch.Decay != nil {
		p.Decay = *patch.Decay
	}
	if patch.Sustain != nil {
		p.Sustain = *patch.Sustain
	}
	if patch.Release != nil {
		p.Release = *patch.Release
	}
	if patch.Cutoff != nil {
		p.Cutoff = *patch.Cutoff
	}
	if patch.Resonance != nil {
		p.Resonance = *patch.Resonance
	}
	if patch.Filter != nil {
		p.Filter = *patch.Filter
	}
	if patch.LFORate != nil {
		p.LFORate = *patch.LFORate
	}
	if patch.LFOAmount != nil {
		p.LFOAmount = *patch.LFOAmount
	}
	if patch.DetuneCents != nil {
		p.DetuneCents = *patch.DetuneCents
	}
	if patch.RingMod != nil {
		p.RingMod = *patch.RingMod
	}
	if patch.Wetness != nil {
		p.Wetness = *patch.Wetness
	}
	if patch.Coarseness != nil {
		p.Coarseness = *patch.Coarseness
	}

	return p.Clamped()
}

// Clamped returns a copy of p with every field forced into its valid
// range. Unknown enum values fall back to the defaults.
func (p Params) Clamped() Params {
	if _, err := p.Waveform.MarshalText(); err != nil {
		p.Waveform = osc.Sawtooth
	}
	if _, err := p.Filter.MarshalText(); err != nil {
		p.Filter = biquad.Lowpass
	}

	p.Volume = clamp(p.Volume, 0, 1)
	p.Attack = clampMin(p.Attack, minEnvelopeSeconds)
	p.Decay = clampMin(p.Decay, minEnvelopeSeconds)
	p.Release = clampMin(p.Release, minEnvelopeSeconds)
	p.Sustain = clamp(p.Sustain, 0, 1)
	p.Cutoff = clamp(p.Cutoff, 20, 20000)
	p.Resonance = clamp(p.Resonance, 0.1, 30)
	p.LFORate = clamp(p.LFORate, 0.1, 50)
	p.LFOAmount = clamp(p.LFOAmount, 0, 1)
	p.RingMod = clamp(p.RingMod, 0, 1)
	p.Wetness = clamp(p.Wetness, 0, 1)
	p.Coarseness = clamp(p.Coarseness, 0, 1)

	if math.IsNaN(p.DetuneCents) || math.IsInf(p.DetuneCents, 0) {
		p.DetuneCents = 0
	}

	return p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func clampMin(v, lo float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}

	return v
}
