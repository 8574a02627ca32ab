package synth

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/biquad"
	"github.com/cwbudde/algo-synth/dsp/osc"
	"github.com/cwbudde/algo-synth/dsp/ringmod"
	"github.com/cwbudde/algo-synth/internal/vecmath"
)

const (
	// Vibrato depth is fixed: LFOAmount gates the LFO on, it does not
	// scale the modulation depth.
	lfoDepth = 0.05

	// Carrier ratio for the ring modulator path.
	ringCarrierRatio = 1.5

	// Graph disposal safety margin past the end of the release ramp.
	disposalMarginSeconds = 0.1
)

// Voice is the live signal graph for one sounding note. The engine owns
// the map of live voices; a released voice leaves that map immediately but
// keeps rendering until its sample-counted disposal deadline.
type Voice struct {
	note int

	osc    *osc.Oscillator
	ring   *ringmod.RingModulator
	filter *biquad.SmoothedFilter
	env    *Envelope
	lfo    *osc.LFO

	createdAt int64
	stopAt    int64 // oscillator stop deadline, set on release
	disposeAt int64 // graph disposal deadline, set on release

	gain []float64
}

// newVoice builds the signal graph for note from the full parameter
// snapshot. slideFrom > 0 starts the oscillator there and glides to the
// note frequency over slideTime seconds.
func newVoice(sampleRate float64, note int, velocity, slideFrom, slideTime float64, p Params, now int64) (*Voice, error) {
	freq := MidiToFrequency(note)

	opts := []osc.Option{osc.WithDetuneCents(p.DetuneCents)}
	if slideTime > 0 && slideFrom > 0 {
		opts = append(opts, osc.WithGlide(slideFrom, slideTime))
	}

	o, err := osc.New(sampleRate, p.Waveform, freq, opts...)
	if err != nil {
		return nil, err
	}

	v := &Voice{
		note:      note,
		osc:       o,
		env:       NewEnvelope(sampleRate),
		createdAt: now,
		stopAt:    -1,
		disposeAt: -1,
	}

	if p.LFOAmount > 0 {
		l, err := osc.NewLFO(sampleRate, p.LFORate)
		if err != nil {
			return nil, err
		}
		v.lfo = l
		o.AttachLFO(l, lfoDepth)
	}

	if p.RingMod > 0 && p.RingMod < 1 {
		mix := math.Min(p.RingMod, 0.5)
		r, err := ringmod.New(sampleRate, ringCarrierRatio*freq, mix)
		if err != nil {
			return nil, err
		}
		v.ring = r
	}

	f, err := biquad.NewSmoothedFilter(sampleRate, p.Filter, p.Cutoff, p.Resonance)
	if err != nil {
		return nil, err
	}
	v.filter = f

	v.env.Trigger(velocity, p.Volume, p.Attack, p.Decay, p.Sustain)

	return v, nil
}

// release starts the envelope release ramp and fixes the oscillator stop
// and graph disposal deadlines. The LFO stops immediately. Releasing an
// already-released voice is a no-op.
func (v *Voice) release(release float64, sampleRate float64, now int64) {
	if v.env.Released() {
		return
	}

	v.env.Release(release)
	if v.lfo != nil {
		v.lfo.Stop()
	}

	v.stopAt = now + int64(release*sampleRate)
	v.disposeAt = now + int64((release+disposalMarginSeconds)*sampleRate)
}

// expired reports whether the voice is past its disposal deadline.
func (v *Voice) expired(now int64) bool {
	return v.disposeAt >= 0 && now >= v.disposeAt
}

// applyParams pushes a ramped parameter update into the running graph.
func (v *Voice) applyParams(p Params, rampSeconds float64) {
	v.filter.SetShape(p.Filter)
	v.filter.SetTarget(p.Cutoff, p.Resonance, rampSeconds)
	if v.lfo != nil {
		v.lfo.SetRate(p.LFORate, rampSeconds)
	}
}

// render writes the voice output into dst, which must already be sized to
// the block length. now is the sample clock at the start of the block.
func (v *Voice) render(dst []float64, now int64) {
	if v.stopAt >= 0 && now >= v.stopAt {
		v.osc.Stop()
	}

	v.osc.Process(dst)
	if v.ring != nil {
		v.ring.ProcessBlock(dst)
	}
	v.filter.Process(dst)

	if len(v.gain) != len(dst) {
		v.gain = make([]float64, len(dst))
	}
	v.env.Process(v.gain)
	vecmath.MulBlockInPlace(dst, v.gain)
}
