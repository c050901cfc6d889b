package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// NoteEvent is a MIDI message at an absolute time.
type NoteEvent struct {
	Time time.Duration
	Msg  midi.Message
}

// ReadSMF reads every note-on, note-off and control change from all tracks
// of a standard MIDI file, ordered by time. Tempo changes are applied.
func ReadSMF(r io.Reader) ([]NoteEvent, error) {
	var events []NoteEvent
	err := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		msg := midi.Message(te.Message)
		if !playable(msg) {
			return
		}
		events = append(events, NoteEvent{
			Time: time.Duration(te.AbsMicroSeconds) * time.Microsecond,
			Msg:  msg,
		})
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("render: read midi file: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events, nil
}

func playable(msg midi.Message) bool {
	var ch, key, vel, cc, val uint8
	return msg.GetNoteStart(&ch, &key, &vel) ||
		msg.GetNoteEnd(&ch, &key) ||
		msg.GetControlChange(&ch, &cc, &val)
}

// SampleOffset converts an event time to a frame index at sampleRate.
func SampleOffset(t time.Duration, sampleRate float64) int {
	return int(t.Seconds()*sampleRate + 0.5)
}
