package synth

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-wavetable/dsp/core"
	"github.com/cwbudde/algo-wavetable/dsp/envelope"
	"github.com/cwbudde/algo-wavetable/synth/params"
	"github.com/cwbudde/algo-wavetable/wavetable/store"
)

var ErrSampleRate = errors.New("synth: sample rate must be > 0")

// Snapshotter provides the current wavetable slots.
type Snapshotter interface {
	Snapshot() store.Snapshot
}

// blockParams holds the parameter values polled once per render call.
type blockParams struct {
	gain   float32
	morph  float32
	levels [Oscillators]float32
	env    envelope.Params
}

// Synth is a polyphonic wavetable synthesizer.
type Synth struct {
	sampleRate float64
	fallback   Fallback
	tables     Snapshotter
	params     params.Source

	voices []voice
	free   []int // stack of idle voice indices
	bp     blockParams
}

// New returns a synth reading tables from tables and parameter values from
// src. Either may be nil: a nil Snapshotter leaves every slot empty and a
// nil Source uses the default of every parameter.
func New(tables Snapshotter, src params.Source, opts ...Option) (*Synth, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.proc.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrSampleRate, cfg.proc.SampleRate)
	}

	s := &Synth{
		sampleRate: cfg.proc.SampleRate,
		fallback:   cfg.fallback,
		tables:     tables,
		params:     src,
		voices:     make([]voice, cfg.voices),
		free:       make([]int, 0, cfg.voices),
	}
	for i := len(s.voices) - 1; i >= 0; i-- {
		s.voices[i].env.SetSampleRate(s.sampleRate)
		s.free = append(s.free, i)
	}
	s.poll()
	return s, nil
}

// SampleRate returns the rendering sample rate.
func (s *Synth) SampleRate() float64 { return s.sampleRate }

// SetSampleRate changes the rendering sample rate. Sounding voices keep
// their pitch.
func (s *Synth) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}
	ratio := s.sampleRate / sampleRate
	s.sampleRate = sampleRate
	for i := range s.voices {
		v := &s.voices[i]
		v.env.SetSampleRate(sampleRate)
		for k := range v.delta {
			v.delta[k] *= ratio
		}
	}
	return nil
}

// Voices returns the polyphony.
func (s *Synth) Voices() int { return len(s.voices) }

// ActiveVoices returns the number of sounding voices, including voices in
// their release stage.
func (s *Synth) ActiveVoices() int { return len(s.voices) - len(s.free) }

// NoteOn starts a voice for note (0-127) with velocity in [0,1]. A voice
// still holding the same note is released first. NoteOn reports false when
// no voice is free, in which case the note is not played and sounding
// voices are left alone.
func (s *Synth) NoteOn(note int, velocity float32) bool {
	if note < 0 || note > 127 || len(s.free) == 0 {
		return false
	}
	for i := range s.voices {
		if v := &s.voices[i]; v.active && v.note == note && !v.releasing() {
			v.env.NoteOff()
		}
	}

	idx := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]

	velocity = float32(core.Clamp01(float64(velocity)))
	s.voices[idx].start(note, velocity, core.NoteToHz(note), s.sampleRate, s.bp.env)
	return true
}

// NoteOff ends every held voice playing note. With allowTailOff the voice
// enters its release stage; otherwise it stops immediately.
func (s *Synth) NoteOff(note int, allowTailOff bool) {
	for i := range s.voices {
		v := &s.voices[i]
		if !v.active || v.note != note {
			continue
		}
		if allowTailOff {
			if !v.releasing() {
				v.env.NoteOff()
			}
			continue
		}
		s.release(i)
	}
}

// AllNotesOff ends every voice.
func (s *Synth) AllNotesOff(allowTailOff bool) {
	for i := range s.voices {
		v := &s.voices[i]
		if !v.active {
			continue
		}
		if allowTailOff {
			v.env.NoteOff()
			continue
		}
		s.release(i)
	}
}

func (s *Synth) release(i int) {
	s.voices[i].stop()
	s.free = append(s.free, i)
}

// poll reads the parameter source into s.bp.
func (s *Synth) poll() {
	s.bp.gain = float32(core.Clamp01(s.value(params.Gain)))
	s.bp.morph = float32(core.Clamp01(s.value(params.Morph)))
	for k := range s.bp.levels {
		s.bp.levels[k] = float32(core.Clamp01(s.value(params.OscLevel[k])))
	}
	s.bp.env = envelope.Params{
		Attack:  s.value(params.Attack),
		Decay:   s.value(params.Decay),
		Sustain: s.value(params.Sustain),
		Release: s.value(params.Release),
	}
}

func (s *Synth) value(id string) float64 {
	if s.params != nil {
		if v, ok := s.params.Value(id); ok {
			return v
		}
	}
	return defaults[id]
}

var defaults = func() map[string]float64 {
	m := make(map[string]float64, len(params.Layout))
	for _, p := range params.Layout {
		m[p.ID] = p.Default
	}
	return m
}()

// Render adds n frames starting at frame start to every channel of out.
// The range is clipped to the shortest channel.
func (s *Synth) Render(out [][]float32, start, n int) {
	if len(out) == 0 || start < 0 {
		return
	}
	for _, ch := range out {
		n = min(n, len(ch)-start)
	}
	if n <= 0 {
		return
	}

	var tables store.Snapshot
	if s.tables != nil {
		tables = s.tables.Snapshot()
	}
	s.poll()

	for i := range s.voices {
		v := &s.voices[i]
		if !v.active {
			continue
		}
		v.env.SetParameters(s.bp.env)
		if !v.render(out, start, n, &tables, &s.bp, s.fallback) {
			s.release(i)
		}
	}
}
