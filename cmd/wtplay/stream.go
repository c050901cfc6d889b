//go:build !headless

package main

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-wavetable/dsp/buffer"
	"github.com/cwbudde/algo-wavetable/render"
	"github.com/cwbudde/algo-wavetable/synth"
)

const (
	channels       = 2
	bytesPerSample = 4
)

// stream feeds the synth output to the audio device. Events are scheduled
// against a sample clock advanced by Read, so timing follows the device.
type stream struct {
	mu      sync.Mutex
	synth   *synth.Synth
	events  []render.NoteEvent
	offsets []int
	next    int
	pos     int
	end     int
	size    int
	blk     *buffer.Block
	frame   []float32
	pending []synth.Event
	done    chan struct{}
	once    sync.Once
}

func newStream(s *synth.Synth, events []render.NoteEvent, blockSize int, tail time.Duration) *stream {
	if blockSize <= 0 {
		blockSize = 256
	}
	sr := s.SampleRate()
	offsets := make([]int, len(events))
	last := 0
	for i, ev := range events {
		offsets[i] = render.SampleOffset(ev.Time, sr)
		last = max(last, offsets[i])
	}
	return &stream{
		synth:   s,
		events:  events,
		offsets: offsets,
		end:     last + render.SampleOffset(tail, sr),
		size:    blockSize,
		blk:     buffer.New(channels, blockSize),
		frame:   make([]float32, channels*blockSize),
		pending: make([]synth.Event, 0, 16),
		done:    make(chan struct{}),
	}
}

// Done is closed once the last event and its tail have been rendered.
func (st *stream) Done() <-chan struct{} { return st.done }

// Read implements io.Reader with interleaved little-endian float32 frames.
func (st *stream) Read(p []byte) (int, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.pos >= st.end {
		st.once.Do(func() { close(st.done) })
		return 0, io.EOF
	}

	frameBytes := channels * bytesPerSample
	want := len(p) / frameBytes
	if want == 0 {
		return 0, nil
	}
	written := 0
	for written < want && st.pos < st.end {
		n := min(want-written, st.size, st.end-st.pos)
		st.renderBlock(n)
		k := st.blk.Interleave(st.frame)
		for i, v := range st.frame[:k] {
			binary.LittleEndian.PutUint32(p[written*frameBytes+i*bytesPerSample:], math.Float32bits(v))
		}
		written += n
	}
	return written * frameBytes, nil
}

func (st *stream) renderBlock(n int) {
	st.pending = st.pending[:0]
	for st.next < len(st.events) && st.offsets[st.next] < st.pos+n {
		st.pending = append(st.pending, synth.Event{
			Offset: st.offsets[st.next] - st.pos,
			Msg:    st.events[st.next].Msg,
		})
		st.next++
	}
	st.blk.Resize(n)
	st.synth.Process(st.blk.Channels(), st.pending)
	st.pos += n
}
