package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})
	input := []float64{1, 0, -1, 0.5, 0.25}
	for i, x := range input {
		y := s.ProcessSample(x)
		if !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced DF-II-T with B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04
	// driven by an impulse.
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		y := s.ProcessSample(x)
		if !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

	s1 := NewSection(c)
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(c)
	block := make([]float64, len(input))
	copy(block, input)
	s2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: ProcessBlock=%.15f, ProcessSample=%.15f", i, block[i], ref[i])
		}
	}
}

func TestSetCoefficients_PreservesState(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	s.ProcessSample(1)
	s.ProcessSample(0.5)

	// Retune to passthrough: the pending delay-line contribution still
	// reaches the output on the next sample.
	s.SetCoefficients(Coefficients{B0: 1})
	y := s.ProcessSample(0)
	if y == 0 {
		t.Fatal("delay line lost on retune")
	}
}

func TestReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	s.ProcessSample(1)
	s.ProcessSample(0.5)
	s.Reset()

	y := s.ProcessSample(0)
	if y != 0 {
		t.Fatalf("output after reset with zero input: got %v, want 0", y)
	}
}

func TestProcessSample_StabilityLongRun(t *testing.T) {
	s := NewSection(Design(Lowpass, 2000, 1, 44100))
	s.ProcessSample(1)

	var maxAbs float64
	for range 10000 {
		y := s.ProcessSample(0)
		if a := math.Abs(y); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs > 1 {
		t.Fatalf("impulse response diverged: max |y| = %v", maxAbs)
	}
}
