package biquad

import (
	"fmt"
	"math"
)

const defaultQ = 1 / math.Sqrt2

// Shape selects the filter response.
type Shape int

// Supported filter shapes.
const (
	Lowpass Shape = iota
	Highpass
	Bandpass
	Notch
)

var shapeNames = map[Shape]string{
	Lowpass:  "lowpass",
	Highpass: "highpass",
	Bandpass: "bandpass",
	Notch:    "notch",
}

// String returns the lower-case shape name.
func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}

	return fmt.Sprintf("shape(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	name, ok := shapeNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown filter shape: %d", int(s))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	for sh, name := range shapeNames {
		if name == string(text) {
			*s = sh
			return nil
		}
	}

	return fmt.Errorf("unknown filter shape: %q", string(text))
}

// Design returns RBJ cookbook coefficients for the given shape at freq (Hz)
// with quality factor q. Out-of-band frequencies are clamped into the
// usable range rather than rejected.
func Design(shape Shape, freq, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{B0: 1}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64

	switch shape {
	case Lowpass:
		b0 = (1 - cw) / 2
		b1 = 1 - cw
		b2 = (1 - cw) / 2
	case Highpass:
		b0 = (1 + cw) / 2
		b1 = -(1 + cw)
		b2 = (1 + cw) / 2
	case Bandpass:
		// Constant skirt gain.
		b0 = sw / 2
		b1 = 0
		b2 = -sw / 2
	case Notch:
		b0 = 1
		b1 = -2 * cw
		b2 = 1
	default:
		return Coefficients{B0: 1}
	}

	a0 = 1 + alpha
	a1 = -2 * cw
	a2 = 1 - alpha

	return normalizeCoefficients(b0, b1, b2, a0, a1, a2)
}

// normalizedW0 converts freq to the normalized angular frequency, clamping
// into (0, Nyquist) so live parameter sweeps never produce an unstable
// design.
func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}
	if math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq < 1 {
		freq = 1
	}
	if freq > 0.95*nyquist {
		freq = 0.95 * nyquist
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeCoefficients(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{B0: 1}
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
