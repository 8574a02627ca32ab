package osc

import (
	"fmt"
	"math"
)

// LFO is a sine low frequency oscillator. Rate changes can be ramped
// linearly over a window to avoid audible modulation jumps.
type LFO struct {
	sampleRate float64
	rateHz     float64
	phase      float64

	rampStep float64
	rampLeft int
	stopped  bool
}

// NewLFO creates a sine LFO at rateHz.
func NewLFO(sampleRate, rateHz float64) (*LFO, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo sample rate must be > 0 and finite: %f", sampleRate)
	}
	if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		return nil, fmt.Errorf("lfo rate must be > 0 and finite: %f", rateHz)
	}

	return &LFO{
		sampleRate: sampleRate,
		rateHz:     rateHz,
	}, nil
}

// Rate returns the current (possibly mid-ramp) rate in Hz.
func (l *LFO) Rate() float64 {
	return l.rateHz
}

// SetRate ramps the rate linearly to rateHz over rampSeconds. Non-positive
// or invalid rates are ignored; a zero ramp applies immediately.
func (l *LFO) SetRate(rateHz, rampSeconds float64) {
	if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		return
	}

	if rampSeconds <= 0 {
		l.rateHz = rateHz
		l.rampLeft = 0

		return
	}

	samples := int(rampSeconds * l.sampleRate)
	if samples < 1 {
		samples = 1
	}

	l.rampLeft = samples
	l.rampStep = (rateHz - l.rateHz) / float64(samples)
}

// Stop silences the LFO. Stopping twice is a no-op.
func (l *LFO) Stop() {
	l.stopped = true
}

// Next advances the LFO by one sample and returns its value in [-1, 1].
func (l *LFO) Next() float64 {
	if l.stopped {
		return 0
	}

	if l.rampLeft > 0 {
		l.rateHz += l.rampStep
		l.rampLeft--
	}

	v := math.Sin(2 * math.Pi * l.phase)

	l.phase += l.rateHz / l.sampleRate
	if l.phase >= 1 {
		l.phase -= 1
	}

	return v
}
