package sequencer

import (
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	minTempo = 20
	maxTempo = 300

	// Fraction of the nominal gate time actually held, leaving a gap
	// before the next potential retrigger of the same note.
	gateScale = 0.9

	// Slide steps glide over a fixed portamento time in seconds.
	slideSeconds = 0.3
)

// NoteSink receives the note events the clock produces. The clock never
// touches the voice engine beyond this interface.
type NoteSink interface {
	NoteOn(note int, velocity, slideTime float64)
	NoteOff(note int)
	StopAllNotes()
}

// Clock drives a 16-step pattern into a NoteSink on a software timer at
// sixteenth-note resolution. It has two states, stopped and running; all
// methods are safe for concurrent use.
type Clock struct {
	mu sync.Mutex

	sink    NoteSink
	pattern Pattern
	tempo   float64
	index   int
	running bool

	done  chan struct{}
	gates map[*time.Timer]struct{}
}

// NewClock creates a stopped clock over the given pattern. Tempo is
// clamped to [20, 300] BPM. The step index starts at the last slot so the
// first tick advances onto step 0.
func NewClock(sink NoteSink, pattern Pattern, tempo float64) (*Clock, error) {
	if sink == nil {
		return nil, fmt.Errorf("sequencer clock requires a note sink")
	}

	return &Clock{
		sink:    sink,
		pattern: pattern,
		tempo:   clampTempo(tempo),
		index:   PatternLength - 1,
		gates:   make(map[*time.Timer]struct{}),
	}, nil
}

// Tempo returns the current tempo in BPM.
func (c *Clock) Tempo() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tempo
}

// SetTempo clamps bpm to [20, 300]. While running, the new period takes
// effect on the next tick cycle; an in-flight tick timer is not
// rescheduled.
func (c *Clock) SetTempo(bpm float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tempo = clampTempo(bpm)
}

// StepPeriod returns the duration of one step at the current tempo:
// (60000/tempo)/4 milliseconds.
func (c *Clock) StepPeriod() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stepPeriodLocked()
}

// StepIndex returns the current step position, for display.
func (c *Clock) StepIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.index
}

// Running reports whether the clock is ticking.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

// Pattern returns a copy of the current pattern.
func (c *Clock) Pattern() Pattern {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pattern
}

// SetPattern replaces the pattern. Takes effect on the next tick.
func (c *Clock) SetPattern(p Pattern) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pattern = p
}

// SetStep replaces one slot, with the index taken modulo 16.
func (c *Clock) SetStep(i int, s Step) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pattern[((i%PatternLength)+PatternLength)%PatternLength] = s
}

// Clear replaces every step with the default (rest, enabled) value and
// resets the step index to 0, whether running or stopped.
func (c *Clock) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pattern = ClearPattern()
	c.index = 0
}

// Start begins ticking. Starting a running clock is a no-op.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}

	c.running = true
	c.done = make(chan struct{})
	go c.run(c.done)
}

// Stop cancels the tick timer and every pending note-off gate, then
// silences the sink so no note rings past the stop. Stopping a stopped
// clock is a no-op.
func (c *Clock) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}

	c.running = false
	close(c.done)

	for t := range c.gates {
		t.Stop()
		delete(c.gates, t)
	}
	c.mu.Unlock()

	c.sink.StopAllNotes()
}

// run is the tick loop. The period is re-read every cycle so tempo
// changes apply on the next tick.
func (c *Clock) run(done chan struct{}) {
	for {
		c.mu.Lock()
		period := c.stepPeriodLocked()
		c.mu.Unlock()

		timer := time.NewTimer(period)
		select {
		case <-done:
			timer.Stop()
			return
		case <-timer.C:
			c.tick()
		}
	}
}

// tick advances the step index, then reads and plays the step it landed
// on.
func (c *Clock) tick() {
	c.mu.Lock()

	c.index = (c.index + 1) % PatternLength
	step := c.pattern[c.index]
	period := c.stepPeriodLocked()

	if !c.running || !step.Enabled || step.Note <= 0 {
		c.mu.Unlock()
		return
	}

	gate := time.Duration(float64(period) * step.Duration * gateScale)
	if gate < time.Millisecond {
		gate = time.Millisecond
	}
	note := step.Note

	var slideTime float64
	if step.Slide {
		slideTime = slideSeconds
	}

	var gateTimer *time.Timer
	gateTimer = time.AfterFunc(gate, func() {
		c.mu.Lock()
		_, pending := c.gates[gateTimer]
		delete(c.gates, gateTimer)
		c.mu.Unlock()

		if pending {
			c.sink.NoteOff(note)
		}
	})
	c.gates[gateTimer] = struct{}{}

	// Deliver the NoteOn under the lock so Stop cannot silence the sink
	// between the gate registration and the note landing. The sink never
	// calls back into the clock.
	c.sink.NoteOn(note, step.Velocity, slideTime)
	c.mu.Unlock()
}

func (c *Clock) stepPeriodLocked() time.Duration {
	ms := (60000 / c.tempo) / 4

	return time.Duration(ms * float64(time.Millisecond))
}

func clampTempo(bpm float64) float64 {
	if bpm < minTempo || math.IsNaN(bpm) {
		return minTempo
	}
	if bpm > maxTempo {
		return maxTempo
	}

	return bpm
}
