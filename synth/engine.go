package synth

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cwbudde/algo-synth/internal/vecmath"
)

// paramRampSeconds is the ramp window applied when pushing parameter
// updates and master volume changes into running audio.
const paramRampSeconds = 0.1

// EngineOption mutates engine construction parameters.
type EngineOption func(*Engine) error

// WithParams sets the initial parameter snapshot. It is clamped, never
// rejected.
func WithParams(p Params) EngineOption {
	return func(e *Engine) error {
		e.params = p.Clamped()
		return nil
	}
}

// WithMasterVolume sets the initial master gain, clamped to [0, 1].
func WithMasterVolume(v float64) EngineOption {
	return func(e *Engine) error {
		e.master = clamp(v, 0, 1)
		e.masterTarget = e.master
		return nil
	}
}

// Engine is the voice manager. It maps MIDI notes to live voices, owns the
// master gain and the parameter baseline, and renders all voices onto the
// master bus. All methods are safe for concurrent use: the sequencer
// goroutine and the audio pull goroutine both call in.
type Engine struct {
	mu sync.Mutex

	sampleRate float64
	params     Params

	voices    map[int]*Voice // live, keyed by note
	releasing []*Voice       // past noteOff, waiting for disposal

	clock int64 // samples rendered since construction

	master       float64
	masterTarget float64
	masterStep   float64
	masterLeft   int

	scratch []float64
}

// NewEngine creates an engine rendering at sampleRate Hz.
func NewEngine(sampleRate float64, opts ...EngineOption) (*Engine, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("engine sample rate must be > 0 and finite: %f", sampleRate)
	}

	e := &Engine{
		sampleRate:   sampleRate,
		params:       DefaultParams(),
		voices:       make(map[int]*Voice),
		master:       1,
		masterTarget: 1,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// SampleRate returns the render rate in Hz.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// Params returns the current baseline parameter snapshot.
func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.params
}

// UpdateParams merges patch into the baseline and pushes a ramped update
// (filter cutoff, Q, shape, LFO rate) into every running voice over 100 ms.
// New voices use the full post-merge baseline. Never fails.
func (e *Engine) UpdateParams(patch Patch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.params = e.params.Merge(patch)

	for _, v := range e.voices {
		v.applyParams(e.params, paramRampSeconds)
	}
	for _, v := range e.releasing {
		v.applyParams(e.params, paramRampSeconds)
	}
}

// NoteOn starts a voice for note at the given velocity. A live voice for
// the same note is released first, so exactly one voice per note is ever
// live. If slideTime > 0 the pitch glides linearly from the highest active
// note's frequency (or half the target when nothing is sounding) to the
// target over slideTime seconds.
func (e *Engine) NoteOn(note int, velocity, slideTime float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if v, ok := e.voices[note]; ok {
		e.releaseVoice(v)
		delete(e.voices, note)
	}

	velocity = clamp(velocity, 0, 1)

	var slideFrom float64
	if slideTime > 0 {
		slideFrom = e.slideSource(note)
	}

	v, err := newVoice(e.sampleRate, note, velocity, slideFrom, slideTime, e.params, e.clock)
	if err != nil {
		return
	}

	e.voices[note] = v
}

// NoteOff releases the voice for note. Without a live voice it is a
// silent no-op. The note leaves the live map and active set immediately;
// the graph keeps rendering its release tail and is disposed
// release + 100 ms later.
func (e *Engine) NoteOff(note int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	v, ok := e.voices[note]
	if !ok {
		return
	}

	e.releaseVoice(v)
	delete(e.voices, note)
}

// StopAllNotes releases every live voice immediately and clears the
// active set synchronously. The released graphs share a single batched
// disposal deadline; new notes may start at once.
func (e *Engine) StopAllNotes() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for note, v := range e.voices {
		e.releaseVoice(v)
		delete(e.voices, note)
	}
}

// SetMasterVolume clamps v to [0, 1] and ramps the master gain to it over
// 100 ms.
func (e *Engine) SetMasterVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.masterTarget = clamp(v, 0, 1)

	samples := int(paramRampSeconds * e.sampleRate)
	if samples < 1 {
		samples = 1
	}

	e.masterLeft = samples
	e.masterStep = (e.masterTarget - e.master) / float64(samples)
}

// MasterVolume returns the master gain target.
func (e *Engine) MasterVolume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.masterTarget
}

// ActiveNotes returns the sorted live note numbers.
func (e *Engine) ActiveNotes() []int {
	e.mu.Lock()
	defer e.mu.Unlock()

	notes := make([]int, 0, len(e.voices))
	for note := range e.voices {
		notes = append(notes, note)
	}
	sort.Ints(notes)

	return notes
}

// Process renders one block onto dst: all live and releasing voices are
// mixed, the master gain ramp advances, the sample clock moves forward and
// voices past their disposal deadline are reaped.
func (e *Engine) Process(dst []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vecmath.Zero(dst)

	if len(e.scratch) != len(dst) {
		e.scratch = make([]float64, len(dst))
	}

	for _, v := range e.voices {
		v.render(e.scratch, e.clock)
		vecmath.AddBlockInPlace(dst, e.scratch)
	}
	for _, v := range e.releasing {
		v.render(e.scratch, e.clock)
		vecmath.AddBlockInPlace(dst, e.scratch)
	}

	e.applyMaster(dst)
	e.clock += int64(len(dst))
	e.reap()
}

// releaseVoice must be called with the engine lock held.
func (e *Engine) releaseVoice(v *Voice) {
	v.release(e.params.Release, e.sampleRate, e.clock)
	e.releasing = append(e.releasing, v)
}

// slideSource returns the glide start frequency for a new note: the
// highest currently-active note's frequency, or half the target when
// nothing is sounding. Must be called with the engine lock held.
func (e *Engine) slideSource(target int) float64 {
	highest := math.MinInt32
	for note := range e.voices {
		if note > highest {
			highest = note
		}
	}

	if highest == math.MinInt32 {
		return MidiToFrequency(target) / 2
	}

	return MidiToFrequency(highest)
}

func (e *Engine) applyMaster(dst []float64) {
	if e.masterLeft == 0 {
		vecmath.ScaleBlockInPlace(dst, e.master)
		return
	}

	for i := range dst {
		if e.masterLeft > 0 {
			e.master += e.masterStep
			e.masterLeft--
			if e.masterLeft == 0 {
				e.master = e.masterTarget
			}
		}
		dst[i] *= e.master
	}
}

// reap drops released voices whose disposal deadline has passed. Must be
// called with the engine lock held.
func (e *Engine) reap() {
	kept := e.releasing[:0]
	for _, v := range e.releasing {
		if !v.expired(e.clock) {
			kept = append(kept, v)
		}
	}
	for i := len(kept); i < len(e.releasing); i++ {
		e.releasing[i] = nil
	}
	e.releasing = kept
}
