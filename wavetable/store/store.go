// Package store keeps the four wavetable slots shared between a loader and
// the audio renderer.
//
// Writers build tables without holding any lock and then publish a new
// immutable slot set with a single atomic pointer swap. Readers call
// [Store.Snapshot], which is one atomic load and never blocks. Tables that
// drop out of every snapshot are reclaimed by the garbage collector, so the
// audio goroutine never frees memory itself.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-wavetable/wavetable"
	"github.com/cwbudde/algo-wavetable/wavetable/wtgen"
)

// Slots is the number of wavetable slots, one per oscillator.
const Slots = 4

var ErrInvalidSlot = errors.New("store: slot index out of range")

// Snapshot is a consistent view of the slot tables. Empty slots are nil.
type Snapshot [Slots]*wavetable.Wavetable

// Builder turns a document into a table.
type Builder func(ctx context.Context, doc []byte, name string) (*wavetable.Wavetable, error)

// Option configures a [Store].
type Option func(*Store)

// WithLogger sets the logger used for load and clear events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBuilder replaces the default [wtgen.Build] builder.
func WithBuilder(b Builder) Option {
	return func(s *Store) {
		if b != nil {
			s.build = b
		}
	}
}

type slot struct {
	name   string
	source string
}

type slotSet struct {
	tables Snapshot
	slots  [Slots]slot
}

// Store holds the slot tables. The zero value is not usable; call [New].
type Store struct {
	mu     sync.Mutex // serializes writers
	cur    atomic.Pointer[slotSet]
	build  Builder
	logger *slog.Logger
}

// New returns a store with all slots empty.
func New(opts ...Option) *Store {
	s := &Store{
		build:  wtgen.Build,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cur.Store(&slotSet{})
	return s
}

func checkSlot(i int) error {
	if i < 0 || i >= Slots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	return nil
}

// Snapshot returns the current tables. It is safe to call from the audio
// goroutine: it neither locks nor allocates.
func (s *Store) Snapshot() Snapshot {
	return s.cur.Load().tables
}

// Table returns the table in slot i, or nil when the slot is empty or i is
// out of range.
func (s *Store) Table(i int) *wavetable.Wavetable {
	if checkSlot(i) != nil {
		return nil
	}
	return s.cur.Load().tables[i]
}

// Name returns the display name of slot i.
func (s *Store) Name(i int) string {
	if checkSlot(i) != nil {
		return ""
	}
	return s.cur.Load().slots[i].name
}

// Source returns the document slot i was loaded from.
func (s *Store) Source(i int) string {
	if checkSlot(i) != nil {
		return ""
	}
	return s.cur.Load().slots[i].source
}

// Load builds doc and installs the result in slot i. On failure the slot
// keeps its previous contents.
func (s *Store) Load(ctx context.Context, i int, doc []byte, name string) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	if err := s.load(ctx, i, doc, name, name); err != nil {
		return fmt.Errorf("store: slot %d: %w", i, err)
	}
	return nil
}

// LoadFile reads a document from path and loads it into slot i. The slot is
// named after the file; the table after the file name without extension.
func (s *Store) LoadFile(ctx context.Context, i int, path string) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("store: slot %d: %w", i, err)
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.TrimSuffix(stem, ".wtgen")

	if err := s.load(ctx, i, doc, base, stem); err != nil {
		return fmt.Errorf("store: slot %d: %s: %w", i, base, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context, i int, doc []byte, slotName, tableName string) error {
	start := time.Now()
	wt, err := s.build(ctx, doc, tableName)
	if err != nil {
		s.logger.Warn("wavetable load failed", "slot", i, "name", slotName, "error", err)
		return err
	}

	s.swap(i, wt, slot{name: slotName, source: string(doc)})
	s.logger.Info("wavetable loaded",
		"slot", i,
		"name", slotName,
		"frames", wt.Frames(),
		"size", wt.Size(),
		"elapsed", time.Since(start))
	return nil
}

// Install places a prebuilt table in slot i.
func (s *Store) Install(i int, wt *wavetable.Wavetable, name, source string) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	s.swap(i, wt, slot{name: name, source: source})
	return nil
}

// Clear empties slot i.
func (s *Store) Clear(i int) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	s.swap(i, nil, slot{})
	s.logger.Info("wavetable cleared", "slot", i)
	return nil
}

func (s *Store) swap(i int, wt *wavetable.Wavetable, meta slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.cur.Load()
	next.tables[i] = wt
	next.slots[i] = meta
	s.cur.Store(&next)
}
