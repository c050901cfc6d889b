package synth

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"

	"github.com/cwbudde/algo-wavetable/synth/params"
)

func TestHandleMIDI(t *testing.T) {
	s := newSynth(t, nil, instant(params.Values{params.Release: 1}))

	s.HandleMIDI(midi.NoteOn(0, 60, 127))
	s.HandleMIDI(midi.NoteOn(3, 64, 64))
	if s.ActiveVoices() != 2 {
		t.Fatalf("active = %d, want 2", s.ActiveVoices())
	}
	for i := range s.voices {
		if v := &s.voices[i]; v.active && v.note == 64 && v.velocity != float32(64)/127 {
			t.Fatalf("velocity = %v", v.velocity)
		}
	}

	// Note-on with zero velocity releases.
	s.HandleMIDI(midi.NoteOn(0, 60, 0))
	s.HandleMIDI(midi.NoteOff(3, 64))
	for i := range s.voices {
		if v := &s.voices[i]; v.active && !v.releasing() {
			t.Fatalf("voice for note %d still held", v.note)
		}
	}

	s.HandleMIDI(midi.ControlChange(0, ccAllSoundOff, 0))
	if s.ActiveVoices() != 0 {
		t.Fatalf("active = %d after all sound off", s.ActiveVoices())
	}
}

func TestHandleMIDIAllNotesOffTailsOff(t *testing.T) {
	s := newSynth(t, nil, instant(params.Values{params.Release: 1}))
	s.HandleMIDI(midi.NoteOn(0, 60, 100))
	s.Render(block(1, 4), 0, 4)
	s.HandleMIDI(midi.ControlChange(0, ccAllNotesOff, 0))
	if s.ActiveVoices() != 1 || !s.voices[0].releasing() {
		t.Fatal("all notes off must release, not stop")
	}
}

func TestProcessSplitsAtEventOffsets(t *testing.T) {
	s := newSynth(t, nil, instant(params.Values{params.Gain: 1}))
	out := block(2, 32)
	out[0][0] = 9 // Process clears first

	s.Process(out, []Event{
		{Offset: 10, Msg: midi.NoteOn(0, 69, 127)},
		{Offset: 20, Msg: midi.ControlChange(0, ccAllSoundOff, 0)},
	})

	for i := 0; i < 10; i++ {
		if out[0][i] != 0 {
			t.Fatalf("output before note-on at %d: %v", i, out[0][i])
		}
	}
	var sounding bool
	for i := 10; i < 20; i++ {
		if out[0][i] != 0 {
			sounding = true
		}
		if out[0][i] != out[1][i] {
			t.Fatalf("channels differ at %d", i)
		}
	}
	if !sounding {
		t.Fatal("no output between note-on and all sound off")
	}
	for i := 20; i < 32; i++ {
		if out[0][i] != 0 {
			t.Fatalf("output after hard stop at %d: %v", i, out[0][i])
		}
	}
}

func TestProcessClampsOffsets(t *testing.T) {
	s := newSynth(t, nil, instant(nil))
	out := block(1, 8)
	s.Process(out, []Event{
		{Offset: -5, Msg: midi.NoteOn(0, 60, 127)},
		{Offset: 50, Msg: midi.NoteOff(0, 60)},
	})
	if out[0][1] == 0 {
		t.Fatal("event before block start must apply at offset 0")
	}
	if s.ActiveVoices() != 1 || !s.voices[0].releasing() {
		t.Fatal("event past the block end must still be applied")
	}
}
