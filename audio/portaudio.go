//go:build portaudio

package audio

import (
	"fmt"
	"sync"

	pa "github.com/gordonklaus/portaudio"
)

const portaudioBlockSize = 512

// portAudioOutput plays a Source through the default portaudio device
// using the blocking write API.
type portAudioOutput struct {
	src    Source
	stream *pa.Stream
	out    []float32

	mu      sync.Mutex
	done    chan struct{}
	stopped sync.WaitGroup
}

func newPortAudioOutput(src Source) (Output, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: portaudio init: %w", err)
	}

	o := &portAudioOutput{
		src: src,
		out: make([]float32, portaudioBlockSize),
	}

	stream, err := pa.OpenDefaultStream(0, 1, src.SampleRate(), portaudioBlockSize, &o.out)
	if err != nil {
		_ = pa.Terminate()
		return nil, fmt.Errorf("audio: portaudio stream: %w", err)
	}
	o.stream = stream

	return o, nil
}

func (o *portAudioOutput) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.done != nil {
		return nil
	}

	if err := o.stream.Start(); err != nil {
		return fmt.Errorf("audio: portaudio start: %w", err)
	}

	o.done = make(chan struct{})
	o.stopped.Add(1)
	go o.run(o.done)

	return nil
}

func (o *portAudioOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.done != nil {
		close(o.done)
		o.stopped.Wait()
		o.done = nil
	}

	err := o.stream.Close()
	if terr := pa.Terminate(); err == nil {
		err = terr
	}

	return err
}

func (o *portAudioOutput) run(done chan struct{}) {
	defer o.stopped.Done()

	buf := make([]float64, portaudioBlockSize)
	for {
		select {
		case <-done:
			return
		default:
		}

		o.src.Process(buf)
		for i, v := range buf {
			o.out[i] = clip(v)
		}

		if err := o.stream.Write(); err != nil {
			return
		}
	}
}
