package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-wavetable/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=44100 blockSize=256 channels=2
}

func ExampleNoteToHz() {
	fmt.Printf("%.2f %.2f\n", core.NoteToHz(57), core.NoteToHz(69))

	// Output:
	// 220.00 440.00
}
