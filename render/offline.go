package render

import (
	"context"
	"errors"
	"time"

	"github.com/cwbudde/algo-wavetable/dsp/buffer"
	"github.com/cwbudde/algo-wavetable/dsp/core"
	"github.com/cwbudde/algo-wavetable/synth"
)

// DefaultTail is how long rendering continues after the last event.
const DefaultTail = 2 * time.Second

var ErrNoSynth = errors.New("render: no synth")

// Scratch blocks indexed by channel count.
var scratch = [3]*buffer.Pool{1: buffer.NewPool(1), 2: buffer.NewPool(2)}

// Offline renders an event list through a synth.
type Offline struct {
	Synth     *synth.Synth
	BlockSize int           // frames per Process call; <= 0 selects the default block size
	Channels  int           // 1 or 2; anything else selects stereo
	Tail      time.Duration // < 0 disables the tail; 0 selects DefaultTail
}

// Render processes events and returns the rendered audio. Rendering stops
// once the tail after the last event has elapsed, or earlier when every
// voice has finished.
func (o *Offline) Render(ctx context.Context, events []NoteEvent) (*buffer.Block, error) {
	if o.Synth == nil {
		return nil, ErrNoSynth
	}
	cfg := core.ApplyProcessorOptions(
		core.WithBlockSize(o.BlockSize),
		core.WithChannels(o.Channels),
	)
	blockSize, channels := cfg.BlockSize, cfg.Channels
	tail := o.Tail
	if tail == 0 {
		tail = DefaultTail
	} else if tail < 0 {
		tail = 0
	}

	sr := o.Synth.SampleRate()
	offsets := make([]int, len(events))
	last := 0
	for i, ev := range events {
		offsets[i] = SampleOffset(ev.Time, sr)
		last = max(last, offsets[i])
	}
	end := last + SampleOffset(tail, sr)

	out := buffer.New(channels, 0)
	blk := scratch[channels].Get(blockSize)
	defer scratch[channels].Put(blk)
	pending := make([]synth.Event, 0, 16)

	next := 0
	for pos := 0; pos < end; pos += blockSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if next >= len(events) && pos > last && o.Synth.ActiveVoices() == 0 {
			break
		}

		pending = pending[:0]
		for next < len(events) && offsets[next] < pos+blockSize {
			pending = append(pending, synth.Event{Offset: offsets[next] - pos, Msg: events[next].Msg})
			next++
		}

		n := min(blockSize, end-pos)
		blk.Resize(n)
		o.Synth.Process(blk.Channels(), pending)
		blk.AppendTo(out, n)
	}
	return out, nil
}
