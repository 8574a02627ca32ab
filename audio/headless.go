package audio

import (
	"sync"
	"time"
)

const headlessBlockSize = 512

// Headless pulls blocks from the source at roughly real-time pace and
// discards them. It keeps the engine's sample clock moving when no sound
// device is available (tests, CI, degraded startup).
type Headless struct {
	src Source

	mu      sync.Mutex
	done    chan struct{}
	stopped sync.WaitGroup
}

// NewHeadless creates a headless output for src.
func NewHeadless(src Source) *Headless {
	return &Headless{src: src}
}

// Start begins pulling. Starting twice is a no-op.
func (h *Headless) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done != nil {
		return nil
	}

	h.done = make(chan struct{})
	h.stopped.Add(1)

	interval := time.Duration(float64(headlessBlockSize) / h.src.SampleRate() * float64(time.Second))
	go h.run(h.done, interval)

	return nil
}

// Close stops the pull loop and waits for it to exit. Closing a stopped
// output is a no-op.
func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done == nil {
		return nil
	}

	close(h.done)
	h.stopped.Wait()
	h.done = nil

	return nil
}

func (h *Headless) run(done chan struct{}, interval time.Duration) {
	defer h.stopped.Done()

	buf := make([]float64, headlessBlockSize)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			h.src.Process(buf)
		}
	}
}
