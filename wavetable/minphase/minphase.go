// Package minphase reconstructs a real, approximately minimum-phase waveform
// cycle from a one-sided magnitude spectrum using the real cepstrum.
//
// The algorithm:
//  1. Build the even log-magnitude spectrum log(max(|X[k]|, 1e-12)) over N bins
//  2. Inverse FFT to the real cepstrum
//  3. Fold the cepstrum onto positive quefrencies (keep c[0] and c[N/2],
//     double 0 < n < N/2, zero N/2 < n < N)
//  4. Forward FFT to the minimum-phase log spectrum
//  5. Exponentiate termwise
//  6. Re-enforce Hermitian symmetry
//  7. Inverse FFT; the real part is the output cycle
//
// The inverse transform of the FFT backend is normalized, so steps 2 and 7
// already include the 1/N factor.
package minphase

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-wavetable/dsp/core"
)

// Floor replaces zero and near-zero magnitudes before taking the logarithm.
const Floor = 1e-12

// Errors returned by reconstruction.
var (
	ErrNotPowerOfTwo  = errors.New("minphase: size must be a power of two >= 2")
	ErrLengthMismatch = errors.New("minphase: buffer length mismatch")
)

// Reconstructor performs minimum-phase reconstruction for one cycle length.
// It caches the FFT plan and scratch buffers, so Reconstruct does not allocate.
//
// A Reconstructor is not safe for concurrent use.
type Reconstructor struct {
	n    int
	plan *algofft.Plan[complex128]

	spec []complex128
	ceps []complex128
}

// New creates a Reconstructor for cycles of n samples.
func New(n int) (*Reconstructor, error) {
	if n < 2 || !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("minphase: failed to create FFT plan: %w", err)
	}

	return &Reconstructor{
		n:    n,
		plan: plan,
		spec: make([]complex128, n),
		ceps: make([]complex128, n),
	}, nil
}

// Size returns the cycle length in samples.
func (r *Reconstructor) Size() int { return r.n }

// Bins returns the required magnitude length, Size()/2+1.
func (r *Reconstructor) Bins() int { return r.n/2 + 1 }

// Reconstruct writes one cycle of Size() samples into dst whose magnitude
// spectrum matches mag (bins 0..N/2). Negative magnitudes are treated as zero.
func (r *Reconstructor) Reconstruct(dst, mag []float64) error {
	n := r.n
	half := n / 2

	if len(mag) != half+1 {
		return fmt.Errorf("%w: magnitude has %d bins, want %d", ErrLengthMismatch, len(mag), half+1)
	}
	if len(dst) != n {
		return fmt.Errorf("%w: output has %d samples, want %d", ErrLengthMismatch, len(dst), n)
	}

	for k := 0; k < n; k++ {
		rk := k
		if k > half {
			rk = n - k
		}
		r.spec[k] = complex(math.Log(math.Max(mag[rk], Floor)), 0)
	}

	if err := r.plan.Inverse(r.ceps, r.spec); err != nil {
		return fmt.Errorf("minphase: cepstrum FFT failed: %w", err)
	}

	for i := 1; i < n; i++ {
		switch {
		case i < half:
			r.ceps[i] *= 2
		case i > half:
			r.ceps[i] = 0
		}
	}

	if err := r.plan.Forward(r.spec, r.ceps); err != nil {
		return fmt.Errorf("minphase: log-spectrum FFT failed: %w", err)
	}

	for k := range r.spec {
		r.spec[k] = cmplx.Exp(r.spec[k])
	}

	r.spec[0] = complex(real(r.spec[0]), 0)
	r.spec[half] = complex(real(r.spec[half]), 0)
	for k := 1; k < half; k++ {
		r.spec[n-k] = cmplx.Conj(r.spec[k])
	}

	if err := r.plan.Inverse(r.ceps, r.spec); err != nil {
		return fmt.Errorf("minphase: synthesis FFT failed: %w", err)
	}

	for i := range dst {
		dst[i] = real(r.ceps[i])
	}

	return nil
}

// MinimumPhase is a one-shot convenience wrapper around [Reconstructor].
func MinimumPhase(mag []float64, n int) ([]float64, error) {
	r, err := New(n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	if err := r.Reconstruct(out, mag); err != nil {
		return nil, err
	}
	return out, nil
}
