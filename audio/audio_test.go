package audio

import (
	"sync"
	"testing"
	"time"
)

// countingSource renders a constant and counts how many samples were
// pulled.
type countingSource struct {
	mu      sync.Mutex
	samples int
}

func (s *countingSource) Process(dst []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples += len(dst)
	for i := range dst {
		dst[i] = 0.25
	}
}

func (s *countingSource) SampleRate() float64 { return 44100 }

func (s *countingSource) pulled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New("pulse", &countingSource{}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestHeadless_PullsAtRoughlyRealTime(t *testing.T) {
	src := &countingSource{}
	out := NewHeadless(src)

	if err := out.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := out.Start(); err != nil {
		t.Fatalf("redundant Start: %v", err)
	}

	time.Sleep(200 * time.Millisecond)
	if err := out.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// 200 ms at 44.1 kHz is 8820 samples; allow generous scheduling
	// slack in both directions.
	got := src.pulled()
	if got < 2000 || got > 20000 {
		t.Fatalf("pulled %d samples in 200ms, want ~8820", got)
	}

	// No pulls after Close.
	after := src.pulled()
	time.Sleep(50 * time.Millisecond)
	if src.pulled() != after {
		t.Fatal("source still pulled after Close")
	}

	// Closing again is a no-op.
	if err := out.Close(); err != nil {
		t.Fatalf("redundant Close: %v", err)
	}
}

func TestClip(t *testing.T) {
	cases := []struct {
		in   float64
		want float32
	}{
		{0.5, 0.5},
		{1.7, 1},
		{-2.3, -1},
		{0, 0},
	}

	for _, tc := range cases {
		if got := clip(tc.in); got != tc.want {
			t.Errorf("clip(%v): got %v, want %v", tc.in, got, tc.want)
		}
	}
}
