// Package synth renders polyphonic wavetable voices.
//
// A [Synth] owns a fixed pool of voices. Each voice runs four oscillators at
// the note's pitch, one per wavetable slot, shaped by a linear ADSR. At the
// start of every [Synth.Render] call the synth takes one snapshot of the
// wavetable slots and polls the parameter source once; the rest of the call
// touches only preallocated state, so it is safe for a real-time audio
// callback.
//
// A Synth is not safe for concurrent use. Note and MIDI methods must be
// called from the goroutine that renders, typically by passing events to
// [Synth.Process].
package synth
