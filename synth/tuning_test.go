package synth

import (
	"math"
	"testing"
)

func TestMidiToFrequency_A4(t *testing.T) {
	if got := MidiToFrequency(69); got != 440 {
		t.Fatalf("got %v, want 440", got)
	}
}

func TestMidiToFrequency_KnownNotes(t *testing.T) {
	cases := []struct {
		note int
		want float64
	}{
		{57, 220},   // A3
		{81, 880},   // A5
		{60, 261.6}, // middle C
	}

	for _, tc := range cases {
		got := MidiToFrequency(tc.note)
		if math.Abs(got-tc.want) > 0.1 {
			t.Errorf("note %d: got %v, want ~%v", tc.note, got, tc.want)
		}
	}
}

func TestFrequencyToMidi_RoundTripLaw(t *testing.T) {
	for note := 0; note <= 127; note++ {
		f := MidiToFrequency(note)
		back := MidiToFrequency(FrequencyToMidi(f))
		if math.Abs(back-f) > 1e-9 {
			t.Fatalf("note %d: round trip %v != %v", note, back, f)
		}
	}
}

func TestFrequencyToMidi_RoundsToNearest(t *testing.T) {
	// 450 Hz is closer to A4 (440) than to A#4 (466.16).
	if got := FrequencyToMidi(450); got != 69 {
		t.Fatalf("got %d, want 69", got)
	}
	if got := FrequencyToMidi(460); got != 70 {
		t.Fatalf("got %d, want 70", got)
	}
}
