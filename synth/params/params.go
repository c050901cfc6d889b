// Package params holds the synthesizer's automatable parameters.
//
// Values live in atomics so a control goroutine can write while the audio
// goroutine reads without locking.
package params

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/cwbudde/algo-wavetable/dsp/core"
)

// Parameter identifiers.
const (
	Gain    = "gain"
	Attack  = "attack"
	Decay   = "decay"
	Sustain = "sustain"
	Release = "release"
	Morph   = "wt_morph"
)

// OscLevel holds the level identifiers of oscillators 1 to 4.
var OscLevel = [4]string{"osc1_level", "osc2_level", "osc3_level", "osc4_level"}

var ErrUnknown = errors.New("params: unknown parameter")

// Spec describes one parameter.
type Spec struct {
	ID      string
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// Clamp limits v to the parameter range. NaN maps to the default.
func (s Spec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}
	return core.Clamp(v, s.Min, s.Max)
}

// Layout is the default parameter set.
var Layout = []Spec{
	{ID: Gain, Name: "Gain", Min: 0, Max: 1, Default: 0.8},
	{ID: Attack, Name: "Attack", Min: 0.001, Max: 5, Default: 0.01},
	{ID: Decay, Name: "Decay", Min: 0.001, Max: 5, Default: 0.1},
	{ID: Sustain, Name: "Sustain", Min: 0, Max: 1, Default: 0.8},
	{ID: Release, Name: "Release", Min: 0.001, Max: 10, Default: 0.2},
	{ID: Morph, Name: "WT Morph", Min: 0, Max: 1, Default: 0},
	{ID: OscLevel[0], Name: "Osc 1 Level", Min: 0, Max: 1, Default: 1},
	{ID: OscLevel[1], Name: "Osc 2 Level", Min: 0, Max: 1, Default: 0},
	{ID: OscLevel[2], Name: "Osc 3 Level", Min: 0, Max: 1, Default: 0},
	{ID: OscLevel[3], Name: "Osc 4 Level", Min: 0, Max: 1, Default: 0},
}

// Source provides current parameter values. ok is false for identifiers the
// source does not know.
type Source interface {
	Value(id string) (v float64, ok bool)
}

// Values is a fixed map [Source], mainly for tests.
type Values map[string]float64

func (m Values) Value(id string) (float64, bool) {
	v, ok := m[id]
	return v, ok
}

type entry struct {
	spec Spec
	bits atomic.Uint64
}

// Registry is a [Source] whose values can be changed concurrently. The set
// of parameters is fixed at construction.
type Registry struct {
	entries map[string]*entry
	order   []string
}

// NewRegistry returns a registry holding layout, or [Layout] when none is
// given. Every parameter starts at its default.
func NewRegistry(layout ...Spec) *Registry {
	if len(layout) == 0 {
		layout = Layout
	}
	r := &Registry{entries: make(map[string]*entry, len(layout))}
	for _, s := range layout {
		e := &entry{spec: s}
		e.bits.Store(math.Float64bits(s.Default))
		if _, dup := r.entries[s.ID]; !dup {
			r.order = append(r.order, s.ID)
		}
		r.entries[s.ID] = e
	}
	return r
}

// Value returns the current value of id.
func (r *Registry) Value(id string) (float64, bool) {
	e, ok := r.entries[id]
	if !ok {
		return 0, false
	}
	return math.Float64frombits(e.bits.Load()), true
}

// Set stores v clamped to the parameter range.
func (r *Registry) Set(id string, v float64) error {
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	e.bits.Store(math.Float64bits(e.spec.Clamp(v)))
	return nil
}

// Spec returns the description of id.
func (r *Registry) Spec(id string) (Spec, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Spec{}, false
	}
	return e.spec, true
}

// IDs returns the identifiers in layout order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Reset restores every parameter to its default.
func (r *Registry) Reset() {
	for _, e := range r.entries {
		e.bits.Store(math.Float64bits(e.spec.Default))
	}
}

// Snapshot returns all current values.
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(r.entries))
	for id, e := range r.entries {
		out[id] = math.Float64frombits(e.bits.Load())
	}
	return out
}

// Restore sets every known parameter in values. Unknown identifiers are
// skipped and reported together in the returned error.
func (r *Registry) Restore(values map[string]float64) error {
	var unknown []string
	for id, v := range values {
		if err := r.Set(id, v); err != nil {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %q", ErrUnknown, unknown)
	}
	return nil
}
