package minphase_test

import (
	"fmt"

	"github.com/cwbudde/algo-wavetable/wavetable/minphase"
)

func ExampleMinimumPhase() {
	const n = 8
	mag := make([]float64, n/2+1)
	mag[1] = n / 2 // one unit-amplitude cycle

	cycle, err := minphase.MinimumPhase(mag, n)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(cycle))

	// Output:
	// 8
}
