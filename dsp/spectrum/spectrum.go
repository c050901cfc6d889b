package spectrum

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-wavetable/dsp/core"
)

var (
	ErrSize           = errors.New("spectrum: size must be a power of two >= 2")
	ErrLengthMismatch = errors.New("spectrum: buffer length mismatch")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	MagnitudeInto(out, in)
	return out
}

// MagnitudeInto writes |in[k]| into dst, which must have the same length.
func MagnitudeInto(dst []float64, in []complex128) {
	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Magnitude(dst, re, im)
	putScratch(buf)
}

// Analyzer computes magnitude spectra of real cycles of a fixed length.
// It is not safe for concurrent use.
type Analyzer struct {
	n    int
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
}

// NewAnalyzer returns an analyzer for cycles of n samples.
func NewAnalyzer(n int) (*Analyzer, error) {
	if n < 2 || !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrSize, n)
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}
	return &Analyzer{
		n:    n,
		plan: plan,
		in:   make([]complex128, n),
		out:  make([]complex128, n),
	}, nil
}

// Size returns the cycle length.
func (a *Analyzer) Size() int { return a.n }

// Bins returns the number of non-negative frequency bins, n/2+1.
func (a *Analyzer) Bins() int { return a.n/2 + 1 }

// Magnitude writes the n/2+1 bin magnitudes of cycle into dst.
func (a *Analyzer) Magnitude(dst, cycle []float64) error {
	if len(cycle) != a.n || len(dst) != a.Bins() {
		return fmt.Errorf("%w: cycle %d dst %d, want %d and %d", ErrLengthMismatch, len(cycle), len(dst), a.n, a.Bins())
	}
	for i, v := range cycle {
		a.in[i] = complex(v, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum: forward fft: %w", err)
	}
	MagnitudeInto(dst, a.out[:a.Bins()])
	return nil
}

// MagnitudeFloat32 is [Analyzer.Magnitude] for float32 cycles such as
// wavetable rows.
func (a *Analyzer) MagnitudeFloat32(dst []float64, cycle []float32) error {
	if len(cycle) != a.n || len(dst) != a.Bins() {
		return fmt.Errorf("%w: cycle %d dst %d, want %d and %d", ErrLengthMismatch, len(cycle), len(dst), a.n, a.Bins())
	}
	for i, v := range cycle {
		a.in[i] = complex(float64(v), 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum: forward fft: %w", err)
	}
	MagnitudeInto(dst, a.out[:a.Bins()])
	return nil
}

// DominantBin returns the index and magnitude of the largest bin, ignoring
// DC. It returns (0, 0) for spectra with fewer than two bins.
func DominantBin(mag []float64) (int, float64) {
	best, bestVal := 0, 0.0
	for k := 1; k < len(mag); k++ {
		if mag[k] > bestVal {
			best, bestVal = k, mag[k]
		}
	}
	return best, bestVal
}

// HarmonicProfile returns the magnitudes of bins 1..count relative to the
// dominant bin, so the strongest partial reads 1.
func HarmonicProfile(mag []float64, count int) []float64 {
	if count > len(mag)-1 {
		count = len(mag) - 1
	}
	if count <= 0 {
		return nil
	}
	_, peak := DominantBin(mag)
	out := make([]float64, count)
	if peak == 0 {
		return out
	}
	for k := range out {
		out[k] = mag[k+1] / peak
	}
	return out
}
