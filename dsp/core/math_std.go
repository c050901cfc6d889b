//go:build !fastmath

package core

import "math"

func pow2(x float64) float64 {
	return math.Exp2(x)
}

func pow10(x float64) float64 {
	return math.Pow(10, x)
}
