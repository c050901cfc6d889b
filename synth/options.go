package synth

import "github.com/cwbudde/algo-wavetable/dsp/core"

const (
	// DefaultVoices is the default polyphony.
	DefaultVoices = 8
	maxVoices     = 128
)

// Fallback selects what an oscillator plays when its slot is empty.
type Fallback int

const (
	// FallbackSine plays a sine at the note's pitch.
	FallbackSine Fallback = iota
	// FallbackSilence contributes nothing.
	FallbackSilence
)

type config struct {
	proc     core.ProcessorConfig
	voices   int
	fallback Fallback
}

func defaultConfig() config {
	return config{
		proc:     core.DefaultProcessorConfig(),
		voices:   DefaultVoices,
		fallback: FallbackSine,
	}
}

// Option configures a [Synth].
type Option func(*config)

// WithSampleRate sets the rendering sample rate (default 48 kHz).
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) {
		core.WithSampleRate(sampleRate)(&c.proc)
	}
}

// WithVoices sets the polyphony, between 1 and 128.
func WithVoices(n int) Option {
	return func(c *config) {
		if n >= 1 && n <= maxVoices {
			c.voices = n
		}
	}
}

// WithFallback sets the empty-slot policy.
func WithFallback(f Fallback) Option {
	return func(c *config) {
		if f == FallbackSine || f == FallbackSilence {
			c.fallback = f
		}
	}
}
