package render

import (
	"github.com/cwbudde/algo-wavetable/dsp/buffer"
	"github.com/cwbudde/algo-wavetable/measure/loudness"
)

// DefaultCeiling is the sample peak that loudness normalization never exceeds.
const DefaultCeiling = 0.989

// Loudness summarizes a rendered block.
type Loudness struct {
	Integrated   float64 // LUFS; -Inf when every gating block is below -70 LUFS
	MaxMomentary float64 // loudest 400 ms window in LUFS
	ShortTerm    float64 // LUFS over the final 3 s
	Peak         float64 // sample peak across channels
}

// Measure runs the block through an R128 meter.
func Measure(b *buffer.Block, sampleRate float64) Loudness {
	m := loudness.NewMeter(
		loudness.WithSampleRate(sampleRate),
		loudness.WithChannels(b.NumChannels()),
	)
	m.Process(b.Channels())

	return Loudness{
		Integrated:   m.Integrated(),
		MaxMomentary: m.MaxMomentary(),
		ShortTerm:    m.ShortTerm(),
		Peak:         m.Peak(),
	}
}

// Normalize scales the block so its integrated loudness reaches target LUFS,
// limited so that the sample peak stays at or below ceiling. It returns the
// measurement taken before scaling and the gain applied.
func Normalize(b *buffer.Block, sampleRate, target, ceiling float64) (Loudness, float64) {
	l := Measure(b, sampleRate)
	g := loudness.Gain(l.Integrated, target, l.Peak, ceiling)
	if g != 1 {
		b.Scale(float32(g))
	}
	return l, g
}
