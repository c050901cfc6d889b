// Package render drives a synth offline: it reads note events from a
// standard MIDI file, renders them block by block and writes the result as
// a WAV file.
package render
