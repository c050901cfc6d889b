package buffer

import "math"

// Block holds planar (non-interleaved) float32 audio: one slice per channel,
// all the same length.
type Block struct {
	channels [][]float32
	frames   int
}

// New returns a zero-filled Block with the given shape.
func New(channels, frames int) *Block {
	if channels < 0 {
		channels = 0
	}
	if frames < 0 {
		frames = 0
	}
	b := &Block{channels: make([][]float32, channels), frames: frames}
	for i := range b.channels {
		b.channels[i] = make([]float32, frames)
	}
	return b
}

// FromChannels wraps existing channel slices without copying. All slices must
// share the same length; the shortest length wins otherwise.
func FromChannels(ch [][]float32) *Block {
	frames := 0
	for i, c := range ch {
		if i == 0 || len(c) < frames {
			frames = len(c)
		}
	}
	b := &Block{channels: make([][]float32, len(ch)), frames: frames}
	for i, c := range ch {
		b.channels[i] = c[:frames]
	}
	return b
}

// Channels returns the planar channel slices.
func (b *Block) Channels() [][]float32 {
	return b.channels
}

// Channel returns the samples of channel i.
func (b *Block) Channel(i int) []float32 {
	return b.channels[i]
}

// NumChannels returns the channel count.
func (b *Block) NumChannels() int {
	return len(b.channels)
}

// Frames returns the number of samples per channel.
func (b *Block) Frames() int {
	return b.frames
}

// Resize sets the frame count to n, reusing capacity when possible.
// Newly exposed samples are zeroed.
func (b *Block) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for i, c := range b.channels {
		old := len(c)
		if n <= cap(c) {
			c = c[:n]
		} else {
			grown := make([]float32, n)
			copy(grown, c)
			c = grown
		}
		for j := old; j < n; j++ {
			c[j] = 0
		}
		b.channels[i] = c
	}
	b.frames = n
}

// Clear sets all samples to 0.
func (b *Block) Clear() {
	b.ClearRange(0, b.frames)
}

// ClearRange sets samples in [start, end) of every channel to 0.
// Indices are clamped to valid bounds.
func (b *Block) ClearRange(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > b.frames {
		end = b.frames
	}
	for _, c := range b.channels {
		for i := start; i < end; i++ {
			c[i] = 0
		}
	}
}

// Peak returns the largest absolute sample over all channels.
func (b *Block) Peak() float32 {
	var peak float32
	for _, c := range b.channels {
		for _, v := range c {
			if a := float32(math.Abs(float64(v))); a > peak {
				peak = a
			}
		}
	}
	return peak
}

// Scale multiplies every sample by gain.
func (b *Block) Scale(gain float32) {
	for _, c := range b.channels {
		for i := range c {
			c[i] *= gain
		}
	}
}

// AppendTo appends the first n frames of b to dst channel by channel.
// dst must have the same channel count.
func (b *Block) AppendTo(dst *Block, n int) {
	if n > b.frames {
		n = b.frames
	}
	for i := range dst.channels {
		dst.channels[i] = append(dst.channels[i], b.channels[i][:n]...)
	}
	dst.frames += n
}

// Interleave writes the block as interleaved frames into dst and returns the
// number of samples written. dst is filled up to its length.
func (b *Block) Interleave(dst []float32) int {
	nc := len(b.channels)
	if nc == 0 {
		return 0
	}
	frames := len(dst) / nc
	if frames > b.frames {
		frames = b.frames
	}
	for f := 0; f < frames; f++ {
		for c := 0; c < nc; c++ {
			dst[f*nc+c] = b.channels[c][f]
		}
	}
	return frames * nc
}
