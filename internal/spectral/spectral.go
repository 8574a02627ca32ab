// Package spectral provides small frequency-domain helpers used by tests
// to verify oscillator pitch and filter behavior.
package spectral

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Magnitudes returns the single-sided magnitude spectrum of a real signal.
// The input is Hann-windowed and zero-padded to the next power of two; the
// result holds the non-negative-frequency bins [0..Nyquist].
func Magnitudes(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("spectral: empty signal")
	}

	fftSize := nextPowerOf2(len(signal))

	in := make([]complex128, fftSize)
	for i, v := range signal {
		w := 1.0
		if len(signal) > 1 {
			w = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(signal)-1)))
		}
		in[i] = complex(v*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectral: plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectral: forward: %w", err)
	}

	half := fftSize/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)
	for i := range half {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mags := make([]float64, half)
	vecmath.Magnitude(mags, re, im)

	return mags, nil
}

// DominantFrequency returns the frequency in Hz of the strongest bin above
// DC in the signal's magnitude spectrum.
func DominantFrequency(signal []float64, sampleRate float64) (float64, error) {
	mags, err := Magnitudes(signal)
	if err != nil {
		return 0, err
	}

	fftSize := 2 * (len(mags) - 1)

	best := 1
	for i := 2; i < len(mags); i++ {
		if mags[i] > mags[best] {
			best = i
		}
	}

	return float64(best) * sampleRate / float64(fftSize), nil
}

// BandEnergy sums squared magnitudes over [loHz, hiHz].
func BandEnergy(mags []float64, loHz, hiHz, sampleRate float64) float64 {
	if len(mags) < 2 {
		return 0
	}

	fftSize := 2 * (len(mags) - 1)
	binHz := sampleRate / float64(fftSize)

	var sum float64
	for i, m := range mags {
		f := float64(i) * binHz
		if f >= loHz && f <= hiHz {
			sum += m * m
		}
	}

	return sum
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
