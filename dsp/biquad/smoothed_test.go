package biquad

import (
	"math"
	"testing"
)

func TestSmoothedFilter_Validation(t *testing.T) {
	if _, err := NewSmoothedFilter(0, Lowpass, 1000, 1); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewSmoothedFilter(44100, Shape(99), 1000, 1); err == nil {
		t.Fatal("expected error for unknown shape")
	}
}

func TestSmoothedFilter_ImmediateTarget(t *testing.T) {
	f, err := NewSmoothedFilter(44100, Lowpass, 2000, 1)
	if err != nil {
		t.Fatalf("NewSmoothedFilter: %v", err)
	}

	f.SetTarget(500, 2, 0)
	if f.Cutoff() != 500 || f.Q() != 2 {
		t.Fatalf("got cutoff=%v q=%v, want 500, 2", f.Cutoff(), f.Q())
	}
}

func TestSmoothedFilter_RampReachesTarget(t *testing.T) {
	sr := 44100.0
	f, err := NewSmoothedFilter(sr, Lowpass, 2000, 1)
	if err != nil {
		t.Fatalf("NewSmoothedFilter: %v", err)
	}

	f.SetTarget(500, 4, 0.1)

	// 0.1 s at 44100 Hz is 4410 samples; process well past that.
	buf := make([]float64, 512)
	for processed := 0; processed < 6000; processed += len(buf) {
		f.Process(buf)
	}

	if math.Abs(f.Cutoff()-500) > 1e-6 {
		t.Fatalf("cutoff after ramp: got %v, want 500", f.Cutoff())
	}
	if math.Abs(f.Q()-4) > 1e-6 {
		t.Fatalf("q after ramp: got %v, want 4", f.Q())
	}
}

func TestSmoothedFilter_RampIsGradual(t *testing.T) {
	sr := 44100.0
	f, err := NewSmoothedFilter(sr, Lowpass, 2000, 1)
	if err != nil {
		t.Fatalf("NewSmoothedFilter: %v", err)
	}

	f.SetTarget(500, 1, 0.1)

	buf := make([]float64, 512)
	f.Process(buf)

	got := f.Cutoff()
	if got >= 2000 || got <= 500 {
		t.Fatalf("cutoff after one block: got %v, want strictly between 500 and 2000", got)
	}
}

func TestSmoothedFilter_SetShapeImmediate(t *testing.T) {
	sr := 44100.0
	f, err := NewSmoothedFilter(sr, Lowpass, 1000, 1)
	if err != nil {
		t.Fatalf("NewSmoothedFilter: %v", err)
	}

	f.SetShape(Highpass)
	if f.Shape() != Highpass {
		t.Fatalf("shape: got %v, want %v", f.Shape(), Highpass)
	}

	// Unknown shapes are ignored.
	f.SetShape(Shape(42))
	if f.Shape() != Highpass {
		t.Fatalf("shape after invalid switch: got %v, want %v", f.Shape(), Highpass)
	}
}

func TestSmoothedFilter_LowpassAttenuatesHighSine(t *testing.T) {
	sr := 44100.0
	f, err := NewSmoothedFilter(sr, Lowpass, 500, 1/math.Sqrt2)
	if err != nil {
		t.Fatalf("NewSmoothedFilter: %v", err)
	}

	// 8 kHz sine through a 500 Hz lowpass should come out much smaller.
	n := 4096
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * 8000 * float64(i) / sr)
	}
	f.Process(buf)

	var peak float64
	for _, v := range buf[n/2:] {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 0.05 {
		t.Fatalf("8 kHz peak after 500 Hz lowpass: got %v, want < 0.05", peak)
	}
}
