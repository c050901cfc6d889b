package framepack

import (
	"encoding/binary"

	"github.com/cwbudde/algo-wavetable/dsp/core"
)

// NoiseMapping selects how noise band codes are turned into decibels.
type NoiseMapping int

const (
	// NoiseHalfDB reads codes as half-decibel steps: dB = code * 0.5.
	NoiseHalfDB NoiseMapping = iota
	// NoiseRanged maps the signed code range onto [-DBRange, 0] dB.
	NoiseRanged
)

const (
	// HarmonicCodeMax12 is the full-scale harmonic code of the 12-bit variant.
	HarmonicCodeMax12 = 4096
	// HarmonicCodeMax16 is the full-scale harmonic code of the 16-bit variant.
	HarmonicCodeMax16 = 65535

	defaultDBRange = 60
)

// Options controls decoding. The zero value decodes with the canonical
// settings and performs no dimension checks.
type Options struct {
	// TableSize, Frames, Harmonics and NoiseBands are the expected
	// dimensions; 0 disables the corresponding check.
	TableSize  int
	Frames     int
	Harmonics  int
	NoiseBands int

	// HarmonicCodeMax is the code that maps to AmpScale. 0 selects
	// HarmonicCodeMax12.
	HarmonicCodeMax float64
	// AmpScale is the time-domain amplitude of a full-scale harmonic.
	// Values <= 0 select 1.
	AmpScale float64

	// LoBin and HiBin bound the noise bands. 0 selects the defaults: the bin
	// just above the last harmonic, and the Nyquist bin.
	LoBin int
	HiBin int

	Noise   NoiseMapping
	DBRange float64 // NoiseRanged only; <= 0 selects 60 dB
}

func (o Options) withDefaults() Options {
	if o.HarmonicCodeMax <= 0 {
		o.HarmonicCodeMax = HarmonicCodeMax12
	}
	if o.AmpScale <= 0 {
		o.AmpScale = 1
	}
	if o.DBRange <= 0 {
		o.DBRange = defaultDBRange
	}
	return o
}

// HarmonicAmplitude returns the time-domain amplitude encoded by code q.
func (o Options) HarmonicAmplitude(q uint16) float64 {
	o = o.withDefaults()
	return float64(q) / o.HarmonicCodeMax * o.AmpScale
}

// NoiseLevel returns the linear RMS level encoded by a noise band code.
func (o Options) NoiseLevel(code int16) float64 {
	o = o.withDefaults()
	var db float64
	switch o.Noise {
	case NoiseRanged:
		norm := (float64(code) + 32768) / 65535
		db = -o.DBRange + norm*o.DBRange
	default:
		db = float64(code) * 0.5
	}
	return core.DBToLinear(db)
}

// Pack is a decoded framepack.
type Pack struct {
	Header Header
	// Edges are the noise band edges in bins; nil when the pack has no noise bands.
	Edges []int
	// Frames holds one magnitude spectrum of Header.Bins() values per frame.
	Frames [][]float64
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) u16() uint16 {
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

// Decode parses data and returns the per-frame magnitude spectra.
//
// Every failure is a [*DecodeError]; callers can match the cause with
// errors.Is against the package sentinels.
func Decode(data []byte, opts Options) (*Pack, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	if opts.TableSize > 0 && opts.TableSize != h.TableSize {
		return nil, stageErr(StageValidation, ErrHintMismatch, "tableSize %d, declared %d", h.TableSize, opts.TableSize)
	}
	if opts.Frames > 0 && opts.Frames != h.Frames {
		return nil, stageErr(StageValidation, ErrHintMismatch, "frames %d, declared %d", h.Frames, opts.Frames)
	}
	if opts.Harmonics > 0 && opts.Harmonics != h.Harmonics {
		return nil, stageErr(StageValidation, ErrHintMismatch, "harmonics %d, declared %d", h.Harmonics, opts.Harmonics)
	}
	if opts.NoiseBands > 0 && opts.NoiseBands != h.NoiseBands {
		return nil, stageErr(StageValidation, ErrHintMismatch, "noise bands %d, declared %d", h.NoiseBands, opts.NoiseBands)
	}
	if len(data) < h.PayloadSize() {
		return nil, stageErr(StageFrames, ErrTruncated, "need %d bytes for %d frames, have %d",
			h.PayloadSize(), h.Frames, len(data))
	}

	opts = opts.withDefaults()
	n := h.TableSize
	nBins := h.Bins()
	nyquist := nBins - 1
	binScale := float64(n) * 0.5

	pack := &Pack{Header: h, Frames: make([][]float64, h.Frames)}
	if h.NoiseBands > 0 {
		hi := opts.HiBin
		if hi <= 0 || hi > nyquist {
			hi = nyquist
		}
		lo := opts.LoBin
		if lo <= 0 {
			lo = int(core.Clamp(float64(h.Harmonics+1), 0, float64(nyquist)))
		}
		pack.Edges = BandEdges(lo, hi, h.NoiseBands)
	}

	r := reader{data: data, off: HeaderSize}
	for f := range pack.Frames {
		mag := make([]float64, nBins)

		for k := 0; k < h.Harmonics; k++ {
			amp := opts.HarmonicAmplitude(r.u16())
			if bin := 1 + k; bin < nBins {
				mag[bin] = amp * binScale
			}
		}

		for b := 0; b < h.NoiseBands; b++ {
			level := opts.NoiseLevel(int16(r.u16())) * binScale
			lo, hi := pack.Edges[b], pack.Edges[b+1]
			for k := lo; k < hi && k < nBins; k++ {
				mag[k] += level
			}
		}

		r.off += 2 * reservedFields

		mag[0] = 0
		mag[nyquist] = 0
		pack.Frames[f] = mag
	}

	return pack, nil
}
