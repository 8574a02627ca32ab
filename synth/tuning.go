package synth

import "math"

// MidiToFrequency converts a MIDI note number to its equal-temperament
// frequency in Hz, with A4 (note 69) at 440 Hz.
func MidiToFrequency(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

// FrequencyToMidi converts a frequency in Hz to the nearest MIDI note
// number.
func FrequencyToMidi(freq float64) int {
	if freq <= 0 {
		return 0
	}

	return int(math.Round(69 + 12*math.Log2(freq/440)))
}
