//go:build !headless

// Command wtplay plays a Standard MIDI File through the wavetable synth on
// the default audio device.
//
// Usage:
//
//	wtplay -midi song.mid [flags]
//
// Examples:
//
//	wtplay -midi song.mid -slot1 pad.wtgen.json
//	wtplay -midi song.mid -state patch.json -param gain=0.5
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-wavetable/internal/cliutil"
	"github.com/cwbudde/algo-wavetable/render"
	"github.com/cwbudde/algo-wavetable/synth"
	"github.com/cwbudde/algo-wavetable/synth/params"
	"github.com/cwbudde/algo-wavetable/synth/state"
	"github.com/cwbudde/algo-wavetable/wavetable/store"
)

func main() {
	var (
		slots  cliutil.SlotFlags
		values = cliutil.ParamFlags{}
	)
	midiPath := flag.String("midi", "", "input Standard MIDI File (required)")
	rate := flag.Int("rate", 48000, "sample rate in Hz")
	block := flag.Int("block", 256, "render block size in frames")
	latency := flag.Duration("latency", 40*time.Millisecond, "device buffer size")
	tail := flag.Duration("tail", render.DefaultTail, "play time after the last event")
	voices := flag.Int("voices", synth.DefaultVoices, "polyphony")
	statePath := flag.String("state", "", "restore parameters and slots from a state file")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	slots.Register(flag.CommandLine)
	flag.Var(values, "param", "parameter assignment id=value (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wtplay -midi song.mid [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a Standard MIDI File through the wavetable synth.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := cliutil.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if *midiPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := params.NewRegistry()
	st := store.New(store.WithLogger(logger))
	if *statePath != "" {
		if err := restore(ctx, *statePath, reg, st); err != nil {
			cliutil.Fatal(logger, "restore state", err)
		}
	}
	if err := slots.Load(ctx, st); err != nil {
		cliutil.Fatal(logger, "load slots", err)
	}
	if err := values.Apply(reg); err != nil {
		cliutil.Fatal(logger, "apply parameters", err)
	}

	s, err := synth.New(st, reg,
		synth.WithSampleRate(float64(*rate)),
		synth.WithVoices(*voices),
	)
	if err != nil {
		cliutil.Fatal(logger, "create synth", err)
	}

	f, err := os.Open(*midiPath)
	if err != nil {
		cliutil.Fatal(logger, "open midi", err)
	}
	events, err := render.ReadSMF(f)
	f.Close()
	if err != nil {
		cliutil.Fatal(logger, "read midi", err)
	}

	src := newStream(s, events, *block, *tail)

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   *latency,
	})
	if err != nil {
		cliutil.Fatal(logger, "open audio device", err)
	}
	<-ready

	player := otoCtx.NewPlayer(src)
	player.Play()
	logger.Info("playing", "events", len(events), "rate", *rate, "voices", *voices)

	select {
	case <-ctx.Done():
		logger.Info("interrupted")
	case <-src.Done():
		// Let the device drain what it has buffered.
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
	}
	if err := player.Close(); err != nil {
		logger.Warn("close player", "error", err)
	}
}

func restore(ctx context.Context, path string, reg *params.Registry, st *store.Store) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	s, err := state.Read(f)
	if err != nil {
		return err
	}
	return state.Apply(ctx, s, reg, st)
}
