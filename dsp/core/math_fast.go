//go:build fastmath

package core

import "github.com/meko-christian/algo-approx"

const (
	ln2  = 0.693147180559945309417232121458
	ln10 = 2.302585092994045684017991454684
)

// pow2 computes 2^x as e^(x*ln2) with the fast exponential.
func pow2(x float64) float64 {
	return approx.FastExp(x * ln2)
}

// pow10 computes 10^x as e^(x*ln10) with the fast exponential.
func pow10(x float64) float64 {
	return approx.FastExp(x * ln10)
}
