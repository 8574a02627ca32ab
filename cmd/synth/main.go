// Command synth plays a preset through the step sequencer. It loads a
// preset file (or starts from defaults), optionally randomizes the
// pattern, and renders into the selected audio backend. When -watch is
// set, edits to the preset file are hot-reloaded into the running engine.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/sequencer"
	"github.com/cwbudde/algo-synth/synth"
)

func main() {
	var (
		presetPath = flag.String("preset", "", "preset JSON file (defaults used when empty)")
		backend    = flag.String("backend", audio.BackendOto, "audio backend: oto, portaudio or none")
		sampleRate = flag.Float64("rate", 44100, "sample rate in Hz")
		tempo      = flag.Float64("tempo", 0, "override preset tempo (BPM)")
		seed       = flag.Int64("seed", 0, "randomize the pattern with this seed (0 keeps the preset pattern)")
		duration   = flag.Duration("duration", 0, "stop after this long (0 runs until interrupted)")
		volume     = flag.Float64("volume", 0.8, "master volume [0,1]")
		watch      = flag.Bool("watch", false, "hot-reload the preset file on change")
	)
	flag.Parse()

	if err := run(*presetPath, *backend, *sampleRate, *tempo, *seed, *duration, *volume, *watch); err != nil {
		log.Fatal(err)
	}
}

func run(presetPath, backend string, sampleRate, tempo float64, seed int64, duration time.Duration, volume float64, watch bool) error {
	p := preset.Default()
	if presetPath != "" {
		loaded, err := preset.Load(presetPath)
		if err != nil {
			return err
		}
		p = loaded
	}

	if tempo > 0 {
		p.Tempo = tempo
	}
	if seed != 0 {
		p.Pattern = sequencer.RandomPattern(rand.New(rand.NewSource(seed)))
	}

	engine, err := synth.NewEngine(sampleRate, synth.WithParams(p.Params))
	if err != nil {
		return err
	}
	engine.SetMasterVolume(volume)

	out, err := audio.New(backend, engine)
	if err != nil {
		// Degraded, not fatal: keep the engine running headless.
		log.Printf("audio backend %q unavailable (%v), falling back to headless", backend, err)
		out = audio.NewHeadless(engine)
	}
	if err := out.Start(); err != nil {
		return err
	}
	defer out.Close()

	clock, err := sequencer.NewClock(engine, p.Pattern, p.Tempo)
	if err != nil {
		return err
	}
	clock.Start()
	defer clock.Stop()

	log.Printf("playing at %.0f BPM, backend %s", clock.Tempo(), backend)

	var watchEvents chan preset.Preset
	if watch && presetPath != "" {
		watchEvents = make(chan preset.Preset, 1)
		stop, err := watchPreset(presetPath, watchEvents)
		if err != nil {
			return err
		}
		defer stop()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	var timeout <-chan time.Time
	if duration > 0 {
		timeout = time.After(duration)
	}

	for {
		select {
		case <-sig:
			log.Print("interrupted")
			return nil
		case <-timeout:
			return nil
		case next := <-watchEvents:
			applyPreset(engine, clock, next)
			log.Printf("reloaded %s", presetPath)
		}
	}
}

// applyPreset pushes a reloaded preset into the running engine and clock.
// Params go through the normal patch path so live voices ramp instead of
// clicking.
func applyPreset(engine *synth.Engine, clock *sequencer.Clock, p preset.Preset) {
	engine.UpdateParams(paramsAsPatch(p.Params))
	clock.SetPattern(p.Pattern)
	clock.SetTempo(p.Tempo)
}

func paramsAsPatch(p synth.Params) synth.Patch {
	return synth.Patch{
		Waveform:    &p.Waveform,
		Volume:      &p.Volume,
		Attack:      &p.Attack,
		Decay:       &p.Decay,
		Sustain:     &p.Sustain,
		Release:     &p.Release,
		Cutoff:      &p.Cutoff,
		Resonance:   &p.Resonance,
		Filter:      &p.Filter,
		LFORate:     &p.LFORate,
		LFOAmount:   &p.LFOAmount,
		DetuneCents: &p.DetuneCents,
		RingMod:     &p.RingMod,
		Wetness:     &p.Wetness,
		Coarseness:  &p.Coarseness,
	}
}

// watchPreset reloads path on write events and sends the parsed preset to
// events. Parse failures are logged and skipped so a half-saved file never
// kills playback.
func watchPreset(path string, events chan<- preset.Preset) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	// Watch the directory: editors often replace the file on save, which
	// drops a watch registered on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}

				p, err := preset.Load(path)
				if err != nil {
					log.Printf("reload %s: %v", path, err)
					continue
				}

				select {
				case events <- p:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("watch: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
