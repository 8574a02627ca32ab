// Package testutil holds shared helpers for signal-level assertions in
// tests.
package testutil

import (
	"math"
	"testing"
)

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireInRange fails t if any element falls outside [lo, hi].
func RequireInRange(t *testing.T, data []float64, lo, hi float64) {
	t.Helper()
	for i, v := range data {
		if v < lo || v > hi {
			t.Fatalf("index %d: value %v outside [%v, %v]", i, v, lo, hi)
		}
	}
}

// Peak returns the maximum absolute sample value.
func Peak(data []float64) float64 {
	var peak float64
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root-mean-square level of the signal.
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(data)))
}

// Sine generates a deterministic sine wave.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}
