// Package wavetable holds reconstructed single-cycle tables and the
// post-processing applied to them after reconstruction.
//
// A [Wavetable] is immutable once built. Rows are stored contiguously as
// float32 and sampled with bilinear interpolation across phase and morph
// position.
package wavetable
