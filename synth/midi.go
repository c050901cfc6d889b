package synth

import (
	"gitlab.com/gomidi/midi/v2"
)

const (
	ccAllSoundOff = 120
	ccAllNotesOff = 123
)

// Event is a MIDI message positioned within a block.
type Event struct {
	Offset int
	Msg    midi.Message
}

// HandleMIDI applies one message. Note-on with velocity 0 counts as
// note-off. All channels are accepted.
func (s *Synth) HandleMIDI(msg midi.Message) {
	var ch, key, vel, cc, val uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		s.NoteOn(int(key), float32(vel)/127)
	case msg.GetNoteEnd(&ch, &key):
		s.NoteOff(int(key), true)
	case msg.GetControlChange(&ch, &cc, &val):
		switch cc {
		case ccAllSoundOff:
			s.AllNotesOff(false)
		case ccAllNotesOff:
			s.AllNotesOff(true)
		}
	}
}

// Process clears out and renders one block, applying each event at its
// offset. Events must be sorted by offset; offsets outside the block are
// clamped to its edges.
func (s *Synth) Process(out [][]float32, events []Event) {
	if len(out) == 0 {
		return
	}
	n := len(out[0])
	for _, ch := range out {
		n = min(n, len(ch))
		clear(ch)
	}

	pos := 0
	for _, ev := range events {
		off := min(max(ev.Offset, pos), n)
		if off > pos {
			s.Render(out, pos, off-pos)
			pos = off
		}
		s.HandleMIDI(ev.Msg)
	}
	if pos < n {
		s.Render(out, pos, n-pos)
	}
}
