package synth

import (
	"math"

	"github.com/cwbudde/algo-wavetable/dsp/envelope"
	"github.com/cwbudde/algo-wavetable/wavetable"
	"github.com/cwbudde/algo-wavetable/wavetable/store"
)

// Oscillators is the number of oscillators per voice, one per slot.
const Oscillators = store.Slots

// Oscillators at or below this level are not sampled.
const levelGate = 1e-4

type voice struct {
	active   bool
	note     int
	velocity float32
	phase    [Oscillators]float64
	delta    [Oscillators]float64
	env      envelope.ADSR
}

func (v *voice) start(note int, velocity float32, freq, sampleRate float64, env envelope.Params) {
	v.active = true
	v.note = note
	v.velocity = velocity
	for k := range v.phase {
		v.phase[k] = 0
		v.delta[k] = freq / sampleRate
	}
	v.env.SetSampleRate(sampleRate)
	v.env.SetParameters(env)
	v.env.NoteOn()
}

func (v *voice) releasing() bool {
	return v.env.Stage() == envelope.Release
}

func (v *voice) stop() {
	v.active = false
	v.env.Reset()
}

// render adds n samples starting at start to every channel of out. It
// returns false when the envelope finished, in which case the remaining
// samples are left untouched.
func (v *voice) render(out [][]float32, start, n int, tables *store.Snapshot, bp *blockParams, fallback Fallback) bool {
	for i := 0; i < n; i++ {
		env := float32(v.env.Next())

		var mix float32
		for k := 0; k < Oscillators; k++ {
			if lvl := bp.levels[k]; lvl > levelGate {
				mix += lvl * oscSample(tables[k], v.phase[k], bp.morph, fallback)
			}
			v.phase[k] += v.delta[k]
			if v.phase[k] >= 1 {
				v.phase[k] -= math.Floor(v.phase[k])
			}
		}

		s := mix * v.velocity * env * bp.gain
		for _, ch := range out {
			ch[start+i] += s
		}

		if !v.env.Active() {
			return false
		}
	}
	return true
}

func oscSample(wt *wavetable.Wavetable, phase float64, morph float32, fallback Fallback) float32 {
	if wt != nil {
		return wt.Sample(phase, morph)
	}
	if fallback == FallbackSine {
		return float32(math.Sin(2 * math.Pi * phase))
	}
	return 0
}
