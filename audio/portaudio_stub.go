//go:build !portaudio

package audio

import "fmt"

func newPortAudioOutput(Source) (Output, error) {
	return nil, fmt.Errorf("audio: portaudio backend not compiled in (build with -tags portaudio)")
}
