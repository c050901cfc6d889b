package wavetable

import (
	vecmath "github.com/cwbudde/algo-vecmath"
)

// PeakTarget is the global peak level tables are normalized to.
const PeakTarget = 0.999

// RemoveDC subtracts the mean of row in place and returns the removed mean.
func RemoveDC(row []float64) float64 {
	if len(row) == 0 {
		return 0
	}
	mean := vecmath.Sum(row) / float64(len(row))
	if mean == 0 {
		return 0
	}
	for i := range row {
		row[i] -= mean
	}
	return mean
}

// NormalizePeak scales all rows by one common gain so the largest absolute
// sample equals target. Silent input is left untouched. It returns the
// applied gain.
func NormalizePeak(rows [][]float64, target float64) float64 {
	var peak float64
	for _, row := range rows {
		if p := vecmath.MaxAbs(row); p > peak {
			peak = p
		}
	}
	if peak <= 0 {
		return 1
	}

	gain := target / peak
	for _, row := range rows {
		vecmath.ScaleBlockInPlace(row, gain)
	}
	return gain
}
