// Package osc provides band-limited waveform oscillators and a low
// frequency oscillator for modulation duties.
package osc
