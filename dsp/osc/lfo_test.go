package osc

import (
	"math"
	"testing"
)

func TestNewLFO_Validation(t *testing.T) {
	if _, err := NewLFO(0, 5); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewLFO(sr, 0); err == nil {
		t.Fatal("expected error for zero rate")
	}
	if _, err := NewLFO(sr, math.Inf(1)); err == nil {
		t.Fatal("expected error for infinite rate")
	}
}

func TestLFO_PeriodMatchesRate(t *testing.T) {
	rate := 5.0
	l, err := NewLFO(sr, rate)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	// Count upward zero crossings over 2 seconds: expect one per cycle.
	var crossings int
	prev := l.Next()
	for range int(2 * sr) {
		v := l.Next()
		if prev < 0 && v >= 0 {
			crossings++
		}
		prev = v
	}

	if crossings < 9 || crossings > 11 {
		t.Fatalf("zero crossings over 2 s: got %d, want ~10", crossings)
	}
}

func TestLFO_SetRateImmediate(t *testing.T) {
	l, err := NewLFO(sr, 5)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	l.SetRate(8, 0)
	if l.Rate() != 8 {
		t.Fatalf("rate: got %v, want 8", l.Rate())
	}

	// Invalid rates are ignored.
	l.SetRate(-1, 0)
	l.SetRate(math.NaN(), 0)
	if l.Rate() != 8 {
		t.Fatalf("rate after invalid SetRate: got %v, want 8", l.Rate())
	}
}

func TestLFO_SetRateRamps(t *testing.T) {
	l, err := NewLFO(sr, 5)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	l.SetRate(10, 0.1)

	// Halfway through the ramp the rate sits between the endpoints.
	for range int(0.05 * sr) {
		l.Next()
	}
	mid := l.Rate()
	if mid <= 5 || mid >= 10 {
		t.Fatalf("mid-ramp rate: got %v, want strictly between 5 and 10", mid)
	}

	for range int(0.1 * sr) {
		l.Next()
	}
	if math.Abs(l.Rate()-10) > 1e-9 {
		t.Fatalf("post-ramp rate: got %v, want 10", l.Rate())
	}
}

func TestLFO_StopOutputsZero(t *testing.T) {
	l, err := NewLFO(sr, 5)
	if err != nil {
		t.Fatalf("NewLFO: %v", err)
	}

	l.Next()
	l.Stop()
	l.Stop()

	for range 16 {
		if v := l.Next(); v != 0 {
			t.Fatalf("stopped LFO output: got %v, want 0", v)
		}
	}
}
