// Package spectrum analyses single-cycle waveforms.
//
// An [Analyzer] owns a cached FFT plan for one cycle length and returns the
// magnitude of the non-negative frequency bins. [DominantBin] and
// [HarmonicProfile] summarize a magnitude spectrum for inspection tools and
// tests.
package spectrum
