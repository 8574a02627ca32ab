package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoOutput plays a Source through an oto context. oto pulls bytes via
// io.Reader; Read renders the requested number of mono float32 LE frames
// from the source.
type otoOutput struct {
	ctx    *oto.Context
	player *oto.Player
	src    Source

	mu      sync.Mutex
	started bool

	buf []float64
}

func newOtoOutput(src Source) (*otoOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(src.SampleRate()),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: oto context: %w", err)
	}
	<-ready

	o := &otoOutput{ctx: ctx, src: src}
	o.player = ctx.NewPlayer(o)

	return o, nil
}

func (o *otoOutput) Read(p []byte) (int, error) {
	const bytesPerSample = 4

	frames := len(p) / bytesPerSample
	if frames == 0 {
		return 0, nil
	}

	if len(o.buf) < frames {
		o.buf = make([]float64, frames)
	}

	block := o.buf[:frames]
	o.src.Process(block)

	for i, v := range block {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(clip(v)))
	}

	return frames * bytesPerSample, nil
}

func (o *otoOutput) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.started {
		o.player.Play()
		o.started = true
	}

	return nil
}

func (o *otoOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.started {
		return nil
	}
	o.started = false

	return o.player.Close()
}
