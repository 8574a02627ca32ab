// Package sequencer implements a 16-step pattern sequencer: step and
// pattern types, a random pattern generator, and a software-timer clock
// that drives a note sink at sixteenth-note resolution.
package sequencer

// PatternLength is the fixed number of steps in a pattern. All index
// arithmetic is modulo this length.
const PatternLength = 16

// Step is one slot of the pattern. Note 0 is a rest. Duration is a
// fraction of one step period; the clock leaves a small gap before the
// next step by scaling it down further.
type Step struct {
	Note     int     `json:"note"`
	Velocity float64 `json:"velocity"`
	Duration float64 `json:"duration"`
	Slide    bool    `json:"slide"`
	Enabled  bool    `json:"enabled"`
}

// Pattern is a fixed sequence of 16 steps.
type Pattern [PatternLength]Step

// DefaultStep returns the cleared-step value: a rest that is still
// enabled, so toggling in a note later plays without extra edits.
func DefaultStep() Step {
	return Step{
		Note:     0,
		Velocity: 0.8,
		Duration: 0.5,
		Slide:    false,
		Enabled:  true,
	}
}

// ClearPattern returns a pattern of 16 default steps.
func ClearPattern() Pattern {
	var p Pattern
	for i := range p {
		p[i] = DefaultStep()
	}

	return p
}
