// Package ringmod implements a sine-carrier ring modulator. Multiplying
// the input by a bipolar carrier produces sum and difference frequencies,
// giving the inharmonic, metallic character of the effect.
package ringmod

import (
	"fmt"
	"math"
)

// RingModulator multiplies the input by an internal sine carrier and
// blends the result with the dry signal:
//
//	wet = input * sin(2π * carrierHz * t)
//	out = input*(1-mix) + wet*mix
type RingModulator struct {
	sampleRate float64
	carrierHz  float64
	mix        float64

	phase    float64
	phaseInc float64
}

// New creates a ring modulator with the given carrier frequency and
// dry/wet mix in [0, 1].
func New(sampleRate, carrierHz, mix float64) (*RingModulator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("ring modulator sample rate must be > 0 and finite: %f", sampleRate)
	}
	if carrierHz <= 0 || math.IsNaN(carrierHz) || math.IsInf(carrierHz, 0) {
		return nil, fmt.Errorf("ring modulator carrier frequency must be > 0 and finite: %f", carrierHz)
	}
	if mix < 0 || mix > 1 || math.IsNaN(mix) {
		return nil, fmt.Errorf("ring modulator mix must be in [0, 1]: %f", mix)
	}

	r := &RingModulator{
		sampleRate: sampleRate,
		carrierHz:  carrierHz,
		mix:        mix,
	}
	r.phaseInc = 2 * math.Pi * carrierHz / sampleRate

	return r, nil
}

// CarrierHz returns the carrier oscillator frequency in Hz.
func (r *RingModulator) CarrierHz() float64 { return r.carrierHz }

// Mix returns the dry/wet mix in [0, 1].
func (r *RingModulator) Mix() float64 { return r.mix }

// SetCarrierHz retunes the carrier, preserving its phase.
func (r *RingModulator) SetCarrierHz(carrierHz float64) error {
	if carrierHz <= 0 || math.IsNaN(carrierHz) || math.IsInf(carrierHz, 0) {
		return fmt.Errorf("ring modulator carrier frequency must be > 0 and finite: %f", carrierHz)
	}

	r.carrierHz = carrierHz
	r.phaseInc = 2 * math.Pi * carrierHz / r.sampleRate

	return nil
}

// SetMix sets the dry/wet mix in [0, 1].
func (r *RingModulator) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) {
		return fmt.Errorf("ring modulator mix must be in [0, 1]: %f", mix)
	}

	r.mix = mix

	return nil
}

// Reset clears the carrier phase.
func (r *RingModulator) Reset() {
	r.phase = 0
}

// ProcessSample processes one sample.
func (r *RingModulator) ProcessSample(x float64) float64 {
	carrier := math.Sin(r.phase)

	r.phase += r.phaseInc
	if r.phase >= 2*math.Pi {
		r.phase -= 2 * math.Pi
	}

	return x*(1-r.mix) + x*carrier*r.mix
}

// ProcessBlock applies ring modulation to buf in place.
func (r *RingModulator) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}
