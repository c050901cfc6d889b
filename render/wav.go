package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-wavetable/dsp/buffer"
	"github.com/cwbudde/algo-wavetable/dsp/dither"
)

const wavFormatPCM = 1

var ErrEmptyBlock = errors.New("render: nothing to write")

// WAVOptions controls PCM encoding.
type WAVOptions struct {
	SampleRate int
	BitDepth   int // 16 or 24; 0 selects 16
	Dither     dither.DitherType
	Seed       int64
}

// WriteWAV encodes the block as integer PCM. Samples are interleaved and
// quantized with the requested dither before encoding.
func WriteWAV(w io.WriteSeeker, b *buffer.Block, opts WAVOptions) error {
	if b == nil || b.NumChannels() == 0 {
		return ErrEmptyBlock
	}
	if opts.SampleRate <= 0 {
		return fmt.Errorf("render: invalid sample rate %d", opts.SampleRate)
	}
	bits := opts.BitDepth
	if bits == 0 {
		bits = 16
	}
	if bits != 16 && bits != 24 {
		return fmt.Errorf("render: unsupported bit depth %d", bits)
	}

	q, err := dither.NewQuantizer(
		dither.WithBitDepth(bits),
		dither.WithDitherType(opts.Dither),
		dither.WithSeed(opts.Seed),
	)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	channels := b.NumChannels()
	interleaved := make([]float32, b.Frames()*channels)
	b.Interleave(interleaved)
	pcm := make([]int, len(interleaved))
	q.QuantizeBlock(pcm, interleaved)

	enc := wav.NewEncoder(w, opts.SampleRate, bits, channels, wavFormatPCM)
	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: opts.SampleRate},
		Data:           pcm,
		SourceBitDepth: bits,
	}
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("render: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render: close wav: %w", err)
	}
	return nil
}
