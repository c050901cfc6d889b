package time

import "math"

// Stats holds time-domain statistics of one signal or wavetable cycle.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // largest absolute sample
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	ZeroCrossings  int // sign changes including the wrap from the last sample to the first
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes the statistics of a single cycle in one pass. The
// cycle is treated as periodic, so a sign change between the last and the
// first sample counts as a zero crossing.
func Calculate(cycle []float32) Stats {
	n := len(cycle)
	if n == 0 {
		return emptyStats()
	}

	var sum, sumSq, peak float64
	for _, v := range cycle {
		x := float64(v)
		sum += x
		sumSq += x * x
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	s := Stats{
		Length:         n,
		DC:             sum / nf,
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor_dB: math.Inf(-1),
		ZeroCrossings:  ZeroCrossings(cycle),
	}
	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactor_dB = ampTodB(s.CrestFactor)
	}

	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float32) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range signal {
		x := float64(v)
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// ZeroCrossings returns the number of sign changes around the cycle.
// Exact zeros take the sign of the previous nonzero sample.
func ZeroCrossings(cycle []float32) int {
	prev := float32(0)
	for i := len(cycle) - 1; i >= 0; i-- {
		if cycle[i] != 0 {
			prev = cycle[i]
			break
		}
	}
	if prev == 0 {
		return 0
	}

	var count int
	for _, x := range cycle {
		if x == 0 {
			continue
		}
		if (x < 0) != (prev < 0) {
			count++
		}
		prev = x
	}

	return count
}
