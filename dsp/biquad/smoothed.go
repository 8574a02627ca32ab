package biquad

import (
	"fmt"
	"math"
)

// DefaultRampSeconds is the smoothing window applied to cutoff and Q
// changes when no explicit ramp is requested.
const DefaultRampSeconds = 0.1

// SmoothedFilter wraps a Section and ramps cutoff frequency and Q linearly
// towards their targets, redesigning the coefficients once per processed
// block. Shape changes take effect immediately; only the continuous
// parameters are smoothed.
type SmoothedFilter struct {
	section    *Section
	sampleRate float64
	shape      Shape

	cutoff     float64
	q          float64
	cutoffStep float64
	qStep      float64
	rampLeft   int
}

// NewSmoothedFilter creates a filter with the given initial design.
func NewSmoothedFilter(sampleRate float64, shape Shape, cutoff, q float64) (*SmoothedFilter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("filter sample rate must be > 0 and finite: %f", sampleRate)
	}
	if _, ok := shapeNames[shape]; !ok {
		return nil, fmt.Errorf("unknown filter shape: %d", int(shape))
	}

	q = normalizedQ(q)

	f := &SmoothedFilter{
		section:    NewSection(Design(shape, cutoff, q, sampleRate)),
		sampleRate: sampleRate,
		shape:      shape,
		cutoff:     cutoff,
		q:          q,
	}

	return f, nil
}

// Shape returns the current filter shape.
func (f *SmoothedFilter) Shape() Shape {
	return f.shape
}

// Cutoff returns the current (possibly mid-ramp) cutoff frequency in Hz.
func (f *SmoothedFilter) Cutoff() float64 {
	return f.cutoff
}

// Q returns the current (possibly mid-ramp) quality factor.
func (f *SmoothedFilter) Q() float64 {
	return f.q
}

// SetShape switches the response immediately, preserving the delay line so
// audio keeps flowing through the change.
func (f *SmoothedFilter) SetShape(shape Shape) {
	if _, ok := shapeNames[shape]; !ok {
		return
	}

	f.shape = shape
	f.section.SetCoefficients(Design(shape, f.cutoff, f.q, f.sampleRate))
}

// SetTarget ramps cutoff and Q linearly to the given values over
// rampSeconds. A non-positive ramp applies the change immediately.
func (f *SmoothedFilter) SetTarget(cutoff, q, rampSeconds float64) {
	if math.IsNaN(cutoff) || math.IsInf(cutoff, 0) {
		return
	}

	q = normalizedQ(q)

	if rampSeconds <= 0 {
		f.cutoff = cutoff
		f.q = q
		f.rampLeft = 0
		f.section.SetCoefficients(Design(f.shape, cutoff, q, f.sampleRate))

		return
	}

	samples := int(rampSeconds * f.sampleRate)
	if samples < 1 {
		samples = 1
	}

	f.rampLeft = samples
	f.cutoffStep = (cutoff - f.cutoff) / float64(samples)
	f.qStep = (q - f.q) / float64(samples)
}

// Process filters a block of samples in-place, advancing any parameter
// ramp by the block length. The coefficients are redesigned at most once
// per call, at the ramp position reached by the end of the block.
func (f *SmoothedFilter) Process(buf []float64) {
	if f.rampLeft > 0 {
		n := len(buf)
		if n > f.rampLeft {
			n = f.rampLeft
		}

		f.cutoff += f.cutoffStep * float64(n)
		f.q += f.qStep * float64(n)
		f.rampLeft -= n
		f.section.SetCoefficients(Design(f.shape, f.cutoff, f.q, f.sampleRate))
	}

	f.section.ProcessBlock(buf)
}

// Reset clears the filter state without touching the design.
func (f *SmoothedFilter) Reset() {
	f.section.Reset()
}
