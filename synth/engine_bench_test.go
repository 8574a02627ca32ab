package synth

import (
	"fmt"
	"testing"
)

func BenchmarkEngineProcess(b *testing.B) {
	for _, voices := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("voices=%d", voices), func(b *testing.B) {
			e, err := NewEngine(44100)
			if err != nil {
				b.Fatal(err)
			}
			e.UpdateParams(Patch{LFOAmount: float(0.5), RingMod: float(0.3)})
			for i := range voices {
				e.NoteOn(48+i, 1, 0)
			}

			buf := make([]float64, 512)
			b.SetBytes(int64(len(buf) * 8))
			b.ResetTimer()
			for range b.N {
				e.Process(buf)
			}
		})
	}
}
