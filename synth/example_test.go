package synth_test

import (
	"fmt"

	"github.com/cwbudde/algo-synth/synth"
)

func ExampleEngine() {
	engine, err := synth.NewEngine(44100)
	if err != nil {
		panic(err)
	}

	engine.NoteOn(60, 1, 0) // middle C
	engine.NoteOn(64, 0.8, 0)
	fmt.Println(engine.ActiveNotes())

	buf := make([]float64, 512)
	engine.Process(buf)

	engine.StopAllNotes()
	fmt.Println(engine.ActiveNotes())
	// Output:
	// [60 64]
	// []
}

func ExampleMidiToFrequency() {
	fmt.Printf("%.1f\n", synth.MidiToFrequency(69))
	fmt.Printf("%.1f\n", synth.MidiToFrequency(81))
	// Output:
	// 440.0
	// 880.0
}
