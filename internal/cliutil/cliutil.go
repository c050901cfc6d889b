// Package cliutil holds flag and logging helpers shared by the commands.
package cliutil

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-wavetable/synth/params"
	"github.com/cwbudde/algo-wavetable/wavetable/store"
)

// ResolveLogLevel maps a flag value to a slog level.
func ResolveLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	logLevel, err := ResolveLogLevel(level)
	if err != nil {
		return nil, err
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler), nil
}

// SlotFlags holds the -slot1 to -slot4 document paths.
type SlotFlags [store.Slots]string

// Register adds the slot flags to fs.
func (s *SlotFlags) Register(fs *flag.FlagSet) {
	for i := range s {
		fs.StringVar(&s[i], fmt.Sprintf("slot%d", i+1), "", fmt.Sprintf("wtgen document for oscillator %d", i+1))
	}
}

// Load loads every non-empty path into its slot. All slots are attempted;
// failures are returned together.
func (s *SlotFlags) Load(ctx context.Context, st *store.Store) error {
	var errs []error
	for i, path := range s {
		if path == "" {
			continue
		}
		if err := st.LoadFile(ctx, i, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ParamFlags collects repeated -param id=value assignments.
type ParamFlags map[string]float64

// String implements flag.Value.
func (p ParamFlags) String() string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id + "=" + strconv.FormatFloat(p[id], 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (p ParamFlags) Set(v string) error {
	id, val, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("expected id=value, got %q", v)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return fmt.Errorf("parameter %s: %w", id, err)
	}
	p[strings.TrimSpace(id)] = f
	return nil
}

// Apply writes the collected values into reg.
func (p ParamFlags) Apply(reg *params.Registry) error {
	var errs []error
	for id, v := range p {
		if err := reg.Set(id, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Fatal logs err and exits with status 1.
func Fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
