package synth

// segment is one pending linear gain ramp in sample time.
type segment struct {
	target  float64
	samples int
}

// Envelope evaluates the ADSR gain curve as a queue of linear automation
// segments on the sample clock. Trigger schedules attack and decay;
// Release cancels whatever is still pending and ramps to zero from the
// instantaneous level, so a release during the attack starts from the
// partial gain rather than the nominal sustain level.
type Envelope struct {
	sampleRate float64
	level      float64

	pending []segment
	step    float64
	left    int

	released bool
}

// NewEnvelope returns an idle envelope at gain 0.
func NewEnvelope(sampleRate float64) *Envelope {
	return &Envelope{sampleRate: sampleRate}
}

// Trigger schedules the attack ramp 0 → velocity·volume over attack
// seconds, then the decay ramp to sustain·velocity·volume over decay
// seconds. Sustain holds until Release.
func (e *Envelope) Trigger(velocity, volume, attack, decay, sustain float64) {
	peak := velocity * volume

	e.level = 0
	e.released = false
	e.left = 0
	e.pending = e.pending[:0]
	e.pending = append(e.pending,
		segment{target: peak, samples: e.seconds(attack)},
		segment{target: sustain * peak, samples: e.seconds(decay)},
	)
}

// Release cancels all pending automation and ramps from the current
// instantaneous level to 0 over release seconds.
func (e *Envelope) Release(release float64) {
	e.released = true
	e.left = 0
	e.pending = e.pending[:0]
	e.pending = append(e.pending, segment{target: 0, samples: e.seconds(release)})
}

// Released reports whether Release has been called.
func (e *Envelope) Released() bool {
	return e.released
}

// Level returns the current instantaneous gain.
func (e *Envelope) Level() float64 {
	return e.level
}

// Idle reports whether the envelope has finished its release ramp.
func (e *Envelope) Idle() bool {
	return e.released && e.left == 0 && len(e.pending) == 0
}

// Process fills dst with per-sample gain values, advancing the envelope.
func (e *Envelope) Process(dst []float64) {
	for i := range dst {
		if e.left == 0 && len(e.pending) > 0 {
			next := e.pending[0]
			e.pending = e.pending[1:]
			e.left = next.samples
			e.step = (next.target - e.level) / float64(next.samples)
		}

		if e.left > 0 {
			e.level += e.step
			e.left--
			if e.left == 0 && len(e.pending) == 0 && e.released {
				e.level = 0
			}
		}

		dst[i] = e.level
	}
}

func (e *Envelope) seconds(s float64) int {
	if s < minEnvelopeSeconds {
		s = minEnvelopeSeconds
	}

	n := int(s * e.sampleRate)
	if n < 1 {
		n = 1
	}

	return n
}
