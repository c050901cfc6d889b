package wtgen

import (
	"context"

	"github.com/cwbudde/algo-wavetable/wavetable"
	"github.com/cwbudde/algo-wavetable/wavetable/framepack"
	"github.com/cwbudde/algo-wavetable/wavetable/minphase"
)

// Decode runs every stage up to and including the framepack decode and
// returns the magnitude spectra.
func Decode(doc []byte) (*framepack.Pack, error) {
	d, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	p, err := d.Spectral()
	if err != nil {
		return nil, err
	}
	payload, err := p.Payload()
	if err != nil {
		return nil, err
	}
	pack, err := framepack.Decode(payload, p.Options())
	if err != nil {
		return nil, fail(StageFramepack, err)
	}
	return pack, nil
}

// Build decodes doc and reconstructs a normalized wavetable named name.
// Each frame is rebuilt as a minimum-phase cycle, stripped of DC, and all
// frames share one gain that brings the global peak to
// [wavetable.PeakTarget].
func Build(ctx context.Context, doc []byte, name string) (*wavetable.Wavetable, error) {
	pack, err := Decode(doc)
	if err != nil {
		return nil, err
	}

	n := pack.Header.TableSize
	rec, err := minphase.New(n)
	if err != nil {
		return nil, fail(StageReconstruct, err)
	}

	rows := make([][]float64, len(pack.Frames))
	for f, mag := range pack.Frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := make([]float64, n)
		if err := rec.Reconstruct(row, mag); err != nil {
			return nil, fail(StageReconstruct, err)
		}
		wavetable.RemoveDC(row)
		rows[f] = row
	}
	wavetable.NormalizePeak(rows, wavetable.PeakTarget)

	wt, err := wavetable.New(name, n, rows)
	if err != nil {
		return nil, fail(StageReconstruct, err)
	}
	return wt, nil
}
