// Package envelope provides a linear ADSR amplitude envelope.
package envelope

import (
	"fmt"

	"github.com/cwbudde/algo-wavetable/dsp/core"
)

// MinStageSeconds is the shortest attack, decay or release time.
const MinStageSeconds = 0.001

// Stage is the current envelope segment.
type Stage int

const (
	Idle Stage = iota
	Attack
	Decay
	Sustain
	Release
)

var stageNames = [...]string{"Idle", "Attack", "Decay", "Sustain", "Release"}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// Params holds stage times in seconds and the sustain level in [0,1].
type Params struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultParams returns 10 ms attack, 100 ms decay, 0.8 sustain and 200 ms
// release.
func DefaultParams() Params {
	return Params{Attack: 0.01, Decay: 0.1, Sustain: 0.8, Release: 0.2}
}

func (p Params) sanitized() Params {
	p.Attack = max(p.Attack, MinStageSeconds)
	p.Decay = max(p.Decay, MinStageSeconds)
	p.Release = max(p.Release, MinStageSeconds)
	p.Sustain = core.Clamp01(p.Sustain)
	return p
}

// ADSR is a linear attack/decay/sustain/release envelope.
//
// Attack ramps from the current level to 1, decay ramps to the sustain
// level, and release ramps from the level at note-off to 0 over the release
// time. The zero value is idle; call [ADSR.SetSampleRate] before use.
type ADSR struct {
	sampleRate float64
	params     Params
	stage      Stage
	level      float64

	attackRate   float64
	decayRate    float64
	releaseRate  float64
	releaseStart float64
}

// New returns an idle envelope with [DefaultParams].
func New(sampleRate float64) *ADSR {
	e := &ADSR{}
	e.params = DefaultParams()
	e.SetSampleRate(sampleRate)
	return e
}

// SetSampleRate changes the sample rate and rescales the ramp rates.
func (e *ADSR) SetSampleRate(sampleRate float64) {
	if sampleRate <= 0 {
		return
	}
	e.sampleRate = sampleRate
	e.recalculate()
}

// SetParameters updates the stage times and sustain level. It is safe to
// call on every block, including while a note is sounding.
func (e *ADSR) SetParameters(p Params) {
	e.params = p.sanitized()
	e.recalculate()
}

// Parameters returns the sanitized parameters in use.
func (e *ADSR) Parameters() Params { return e.params }

func (e *ADSR) recalculate() {
	if e.sampleRate <= 0 {
		return
	}
	p := e.params.sanitized()
	e.params = p

	e.attackRate = 1 / (p.Attack * e.sampleRate)
	e.decayRate = (1 - p.Sustain) / (p.Decay * e.sampleRate)
	e.releaseRate = e.releaseStart / (p.Release * e.sampleRate)

	if e.stage == Sustain {
		e.level = p.Sustain
	}
}

// NoteOn starts the attack from the current level.
func (e *ADSR) NoteOn() {
	e.stage = Attack
}

// NoteOff starts the release from the current level. It does nothing when
// the envelope is idle.
func (e *ADSR) NoteOff() {
	if e.stage == Idle {
		return
	}
	if e.sampleRate <= 0 {
		e.Reset()
		return
	}
	e.releaseStart = e.level
	e.releaseRate = e.level / (e.params.Release * e.sampleRate)
	e.stage = Release
}

// Reset stops the envelope immediately.
func (e *ADSR) Reset() {
	e.stage = Idle
	e.level = 0
	e.releaseStart = 0
}

// Active reports whether the envelope is producing output.
func (e *ADSR) Active() bool { return e.stage != Idle }

// Stage returns the current segment.
func (e *ADSR) Stage() Stage { return e.stage }

// Level returns the most recent output value.
func (e *ADSR) Level() float64 { return e.level }

// Next advances one sample and returns the amplitude multiplier.
func (e *ADSR) Next() float64 {
	switch e.stage {
	case Idle:
		return 0

	case Attack:
		e.level += e.attackRate
		if e.level >= 1 {
			e.level = 1
			e.stage = Decay
		}

	case Decay:
		e.level -= e.decayRate
		if e.level <= e.params.Sustain {
			e.level = e.params.Sustain
			e.stage = Sustain
		}

	case Sustain:
		e.level = e.params.Sustain

	case Release:
		e.level -= e.releaseRate
		if e.level <= 0 {
			e.Reset()
		}
	}

	return e.level
}

// Process writes successive envelope values into dst.
func (e *ADSR) Process(dst []float32) {
	for i := range dst {
		dst[i] = float32(e.Next())
	}
}
