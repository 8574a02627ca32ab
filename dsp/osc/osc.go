package osc

import (
	"fmt"
	"math"
)

// Waveform selects the oscillator shape.
type Waveform int

// Supported waveforms.
const (
	Sine Waveform = iota
	Triangle
	Sawtooth
	Square
)

var waveformNames = map[Waveform]string{
	Sine:     "sine",
	Triangle: "triangle",
	Sawtooth: "sawtooth",
	Square:   "square",
}

// String returns the lower-case waveform name.
func (w Waveform) String() string {
	if name, ok := waveformNames[w]; ok {
		return name
	}

	return fmt.Sprintf("waveform(%d)", int(w))
}

// MarshalText implements encoding.TextMarshaler.
func (w Waveform) MarshalText() ([]byte, error) {
	name, ok := waveformNames[w]
	if !ok {
		return nil, fmt.Errorf("unknown waveform: %d", int(w))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Waveform) UnmarshalText(text []byte) error {
	for wf, name := range waveformNames {
		if name == string(text) {
			*w = wf
			return nil
		}
	}

	return fmt.Errorf("unknown waveform: %q", string(text))
}

// Option mutates oscillator construction parameters.
type Option func(*Oscillator) error

// WithDetuneCents applies a static pitch offset in cents.
func WithDetuneCents(cents float64) Option {
	return func(o *Oscillator) error {
		if math.IsNaN(cents) || math.IsInf(cents, 0) {
			return fmt.Errorf("oscillator detune must be finite: %f", cents)
		}

		o.detuneRatio = math.Pow(2, cents/1200)

		return nil
	}
}

// WithGlide starts the oscillator at fromHz and glides linearly to the
// target frequency over the given duration in seconds.
func WithGlide(fromHz, seconds float64) Option {
	return func(o *Oscillator) error {
		if fromHz <= 0 || math.IsNaN(fromHz) || math.IsInf(fromHz, 0) {
			return fmt.Errorf("oscillator glide source must be > 0 and finite: %f", fromHz)
		}
		if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("oscillator glide time must be >= 0 and finite: %f", seconds)
		}

		if seconds == 0 {
			return nil
		}

		samples := int(seconds * o.sampleRate)
		if samples < 1 {
			samples = 1
		}

		o.glideLeft = samples
		o.glideStep = (o.targetHz - fromHz) / float64(samples)
		o.freqHz = fromHz

		return nil
	}
}

// Oscillator is a phase-accumulator waveform generator. Sawtooth and square
// outputs are band-limited with polyBLEP correction at the discontinuities;
// sine and triangle are generated directly.
type Oscillator struct {
	sampleRate  float64
	shape       Waveform
	phase       float64 // [0,1)
	freqHz      float64 // current pre-detune frequency
	targetHz    float64
	glideStep   float64
	glideLeft   int
	detuneRatio float64
	lfo         *LFO
	lfoDepth    float64 // frequency deviation as a ratio of the target
	stopped     bool
}

// New creates an oscillator at freqHz for the given shape.
func New(sampleRate float64, shape Waveform, freqHz float64, opts ...Option) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}
	if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return nil, fmt.Errorf("oscillator frequency must be > 0 and finite: %f", freqHz)
	}
	if _, ok := waveformNames[shape]; !ok {
		return nil, fmt.Errorf("unknown waveform: %d", int(shape))
	}

	o := &Oscillator{
		sampleRate:  sampleRate,
		shape:       shape,
		freqHz:      freqHz,
		targetHz:    freqHz,
		detuneRatio: 1,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// TargetFrequency returns the glide destination frequency in Hz, before
// detune and vibrato.
func (o *Oscillator) TargetFrequency() float64 {
	return o.targetHz
}

// AttachLFO routes an LFO into the oscillator frequency. depth is the peak
// deviation as a fraction of the target frequency (0.05 = ±5%).
func (o *Oscillator) AttachLFO(l *LFO, depth float64) {
	o.lfo = l
	o.lfoDepth = depth
}

// DetachLFO removes any attached LFO. Safe to call when none is attached.
func (o *Oscillator) DetachLFO() {
	o.lfo = nil
	o.lfoDepth = 0
}

// LFO returns the attached modulator, or nil.
func (o *Oscillator) LFO() *LFO {
	return o.lfo
}

// Stop silences the oscillator permanently. Stopping twice is a no-op.
func (o *Oscillator) Stop() {
	o.stopped = true
}

// polyBLEP returns the band-limiting correction for a discontinuity at
// phase t with per-sample increment dt.
func polyBLEP(t, dt float64) float64 {
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}

	return 0
}

// Process fills dst with oscillator output in [-1, 1].
func (o *Oscillator) Process(dst []float64) {
	if o.stopped {
		for i := range dst {
			dst[i] = 0
		}

		return
	}

	for i := range dst {
		if o.glideLeft > 0 {
			o.freqHz += o.glideStep
			o.glideLeft--
			if o.glideLeft == 0 {
				o.freqHz = o.targetHz
			}
		}

		f := o.freqHz * o.detuneRatio
		if o.lfo != nil {
			// Vibrato deviates by a fixed fraction of the target
			// frequency, so its width stays constant through a glide.
			f += o.lfoDepth * o.targetHz * o.detuneRatio * o.lfo.Next()
			if f < 0 {
				f = 0
			}
		}

		dt := f / o.sampleRate
		dst[i] = o.sample(dt)

		o.phase += dt
		if o.phase >= 1 {
			o.phase -= 1
		}
	}
}

func (o *Oscillator) sample(dt float64) float64 {
	switch o.shape {
	case Sine:
		return math.Sin(2 * math.Pi * o.phase)
	case Triangle:
		return 2*math.Abs(2*o.phase-1) - 1
	case Sawtooth:
		out := 2*o.phase - 1
		out -= polyBLEP(o.phase, dt)

		return out
	case Square:
		out := -1.0
		if o.phase < 0.5 {
			out = 1
		}
		out += polyBLEP(o.phase, dt)
		out -= polyBLEP(math.Mod(o.phase+0.5, 1), dt)

		return out
	default:
		return 0
	}
}
