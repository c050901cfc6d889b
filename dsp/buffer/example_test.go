package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-wavetable/dsp/buffer"
)

func ExampleBlock() {
	b := buffer.New(2, 3)
	b.Channel(0)[1] = 0.5
	b.Channel(1)[1] = -0.25

	out := make([]float32, 6)
	b.Interleave(out)
	fmt.Println(out, b.Peak())

	// Output:
	// [0 0 0.5 -0.25 0 0] 0.5
}
