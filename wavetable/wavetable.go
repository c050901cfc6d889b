package wavetable

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-wavetable/dsp/core"
	"github.com/cwbudde/algo-wavetable/dsp/interp"
)

// DefaultName is used when a table is built without a name.
const DefaultName = "Wavetable"

var (
	ErrNoFrames      = errors.New("wavetable: no frames")
	ErrFrameSize     = errors.New("wavetable: frame length does not match table size")
	ErrNotPowerOfTwo = errors.New("wavetable: table size must be a power of two")
)

// Wavetable is an immutable set of equal-length single-cycle frames.
type Wavetable struct {
	name   string
	size   int
	frames int
	data   []float32
}

// New copies rows into a new table. Every row must hold size samples and
// size must be a power of two >= 2.
func New(name string, size int, rows [][]float64) (*Wavetable, error) {
	if size < 2 || !core.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, size)
	}
	if len(rows) == 0 {
		return nil, ErrNoFrames
	}
	if name == "" {
		name = DefaultName
	}

	data := make([]float32, 0, size*len(rows))
	for f, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("%w: frame %d has %d samples, want %d", ErrFrameSize, f, len(row), size)
		}
		for _, v := range row {
			data = append(data, float32(v))
		}
	}

	return &Wavetable{name: name, size: size, frames: len(rows), data: data}, nil
}

// Name returns the display name.
func (w *Wavetable) Name() string { return w.name }

// Size returns the number of samples per frame.
func (w *Wavetable) Size() int { return w.size }

// Frames returns the number of frames.
func (w *Wavetable) Frames() int { return w.frames }

// Row returns frame f. The slice aliases the table and must not be modified.
func (w *Wavetable) Row(f int) []float32 {
	return w.data[f*w.size : (f+1)*w.size : (f+1)*w.size]
}

// Peak returns the largest absolute sample value across all frames.
func (w *Wavetable) Peak() float32 {
	var peak float32
	for _, v := range w.data {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Sample reads the table at phase in [0,1) and morph position in [0,1].
// The morph position selects a fractional frame in [0, Frames-1]; phase is
// interpolated cyclically within each frame.
func (w *Wavetable) Sample(phase float64, morph float32) float32 {
	if morph < 0 {
		morph = 0
	} else if morph > 1 {
		morph = 1
	}

	pos := morph * float32(w.frames-1)
	a := int(pos)
	if a > w.frames-1 {
		a = w.frames - 1
	}
	b := a + 1
	if b > w.frames-1 {
		b = w.frames - 1
	}
	ty := pos - float32(a)

	i0, i1, tx := interp.CyclicIndex(phase, w.size)
	ra := w.data[a*w.size : (a+1)*w.size]
	rb := w.data[b*w.size : (b+1)*w.size]

	return interp.Bilinear(tx, ty, ra[i0], ra[i1], rb[i0], rb[i1])
}
