// Package audio provides output backends that pull rendered blocks from a
// Source. The default backend plays through oto; a headless backend keeps
// the engine running without a sound device, and a portaudio backend is
// available behind the portaudio build tag.
package audio

import "fmt"

// Source renders audio on demand. Backends call Process from their own
// goroutine; the implementation must be safe for that.
type Source interface {
	Process(dst []float64)
	SampleRate() float64
}

// Output plays a Source until closed.
type Output interface {
	Start() error
	Close() error
}

// Backend names accepted by New.
const (
	BackendOto       = "oto"
	BackendHeadless  = "none"
	BackendPortAudio = "portaudio"
)

// New creates the named output backend for src. An init failure is not
// fatal to the process: callers are expected to fall back to the headless
// backend and keep the engine usable.
func New(backend string, src Source) (Output, error) {
	switch backend {
	case BackendOto, "":
		return newOtoOutput(src)
	case BackendHeadless, "headless":
		return NewHeadless(src), nil
	case BackendPortAudio:
		return newPortAudioOutput(src)
	default:
		return nil, fmt.Errorf("audio: unknown backend %q", backend)
	}
}

func clip(v float64) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}

	return float32(v)
}
