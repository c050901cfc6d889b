// Package state saves and restores the synthesizer's parameters and slot
// documents as JSON.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-wavetable/synth/params"
	"github.com/cwbudde/algo-wavetable/wavetable/store"
)

// Version is the current state format version.
const Version = 1

var ErrVersion = errors.New("state: unsupported version")

// Slot is the persisted form of one wavetable slot. Empty slots have an
// empty Document.
type Slot struct {
	Name     string `json:"name,omitempty"`
	Document string `json:"document,omitempty"`
}

// State is the persisted synthesizer state.
type State struct {
	Version int                `json:"version"`
	Params  map[string]float64 `json:"params"`
	Slots   [store.Slots]Slot  `json:"slots"`
}

// Capture records the current parameter values and slot documents.
func Capture(reg *params.Registry, st *store.Store) State {
	s := State{Version: Version, Params: reg.Snapshot()}
	for i := range s.Slots {
		s.Slots[i] = Slot{Name: st.Name(i), Document: st.Source(i)}
	}
	return s
}

// Write encodes s as indented JSON.
func Write(w io.Writer, s State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("state: encode: %w", err)
	}
	return nil
}

// Read decodes a state and checks its version.
func Read(r io.Reader) (State, error) {
	var s State
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return State{}, fmt.Errorf("state: decode: %w", err)
	}
	if s.Version != Version {
		return State{}, fmt.Errorf("%w: %d", ErrVersion, s.Version)
	}
	return s, nil
}

// Apply restores parameters and rebuilds every slot that has a document.
// Slots without a document are cleared. A slot that fails to load keeps its
// previous contents; all failures are returned together.
func Apply(ctx context.Context, s State, reg *params.Registry, st *store.Store) error {
	var errs []error
	if err := reg.Restore(s.Params); err != nil {
		errs = append(errs, err)
	}

	for i, slot := range s.Slots {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if slot.Document == "" {
			if err := st.Clear(i); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := st.Load(ctx, i, []byte(slot.Document), slot.Name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
