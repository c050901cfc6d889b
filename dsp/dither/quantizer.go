package dither

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"
)

// Quantizer converts samples in [-1, +1] to integers of a fixed bit depth.
// It keeps noise state between calls and is not safe for concurrent use.
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	limit           bool
	shaping         bool

	tpdf  *vecmath.DitherState
	rng   *rand.Rand
	noise []float64
	err   float64

	// derived from bitDepth
	scale   float64
	limitLo int
	limitHi int
}

// NewQuantizer creates a Quantizer. The default configuration is 16-bit,
// triangular dither of 1 LSB, limiting enabled, no noise shaping.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		limit:           cfg.limit,
		shaping:         cfg.shaping,
		tpdf:            vecmath.NewDitherState(cfg.seed),
		rng:             rand.New(rand.NewPCG(uint64(cfg.seed), 0x9e3779b97f4a7c15)),
	}
	q.scale = math.Exp2(float64(q.bitDepth-1)) - 1
	q.limitLo = -int(q.scale) - 1
	q.limitHi = int(q.scale)
	return q, nil
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// FullScale returns the integer that +1.0 maps to.
func (q *Quantizer) FullScale() int { return q.limitHi }

// Reset clears the noise shaping history.
func (q *Quantizer) Reset() { q.err = 0 }

// Quantize converts a single sample.
func (q *Quantizer) Quantize(x float64) int {
	var noise [1]float64
	q.fillNoise(noise[:])
	return q.quantize(x, noise[0])
}

// QuantizeBlock converts src into dst, which must be at least as long.
// Noise for the whole block is generated up front.
func (q *Quantizer) QuantizeBlock(dst []int, src []float32) {
	if cap(q.noise) < len(src) {
		q.noise = make([]float64, len(src))
	}
	noise := q.noise[:len(src)]
	q.fillNoise(noise)

	for i, x := range src {
		dst[i] = q.quantize(float64(x), noise[i])
	}
}

func (q *Quantizer) fillNoise(dst []float64) {
	switch q.ditherType {
	case DitherTriangular:
		vecmath.GenerateTPDF(dst, q.ditherAmplitude, q.tpdf)
	case DitherRectangular:
		for i := range dst {
			dst[i] = q.ditherAmplitude * (q.rng.Float64() - 0.5)
		}
	default:
		clear(dst)
	}
}

func (q *Quantizer) quantize(x, noise float64) int {
	scaled := x * q.scale
	if q.shaping {
		scaled -= q.err
	}

	result := int(math.Round(scaled + noise))
	if q.limit {
		result = max(q.limitLo, min(q.limitHi, result))
	}

	if q.shaping {
		q.err = float64(result) - scaled
	}
	return result
}
