// Package synth implements the voice engine: a monophonic-per-key,
// polyphonic-by-note virtual-analog synthesizer. Each sounding note owns a
// small signal graph (oscillator → optional ring modulator → resonant
// filter → envelope gain) mixed onto a master bus with a ramped master
// gain. Voices are keyed by MIDI note number; releasing a note removes it
// from the live map immediately while the graph keeps rendering its
// release tail until a sample-counted disposal deadline.
package synth
