// Package interp provides the fractional interpolation used by wavetable
// oscillators: linear interpolation between adjacent samples and bilinear
// interpolation across a (frame, sample) grid.
package interp
