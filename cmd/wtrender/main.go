// Command wtrender renders a Standard MIDI File through the wavetable synth
// and writes the result as a WAV file.
//
// Usage:
//
//	wtrender -midi song.mid -out song.wav [flags]
//
// Examples:
//
//	wtrender -midi song.mid -slot1 pad.wtgen.json -out song.wav
//	wtrender -midi song.mid -state patch.json -bits 24 -dither none -out song.wav
//	wtrender -midi song.mid -slot1 pad.wtgen.json -param wt_morph=0.5 -save-state patch.json -out song.wav
//	wtrender -midi song.mid -slot1 pad.wtgen.json -normalize -lufs -16 -out song.wav
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-wavetable/dsp/dither"
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
	outPath := flag.String("out", "out.wav", "output WAV file")
	rate := flag.Int("rate", 48000, "sample rate in Hz")
	block := flag.Int("block", 512, "render block size in frames")
	bits := flag.Int("bits", 16, "output bit depth (16 or 24)")
	ditherName := flag.String("dither", "triangular", "dither type (none, rectangular, triangular)")
	seed := flag.Int64("seed", 1, "dither seed")
	tail := flag.Duration("tail", render.DefaultTail, "render time after the last event")
	voices := flag.Int("voices", synth.DefaultVoices, "polyphony")
	normalize := flag.Bool("normalize", false, "normalize integrated loudness to -lufs")
	target := flag.Float64("lufs", -14, "loudness target in LUFS for -normalize")
	silent := flag.Bool("silent-fallback", false, "render empty slots as silence instead of a sine")
	statePath := flag.String("state", "", "restore parameters and slots from a state file")
	saveState := flag.String("save-state", "", "write the final parameters and slots to a state file")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	slots.Register(flag.CommandLine)
	flag.Var(values, "param", "parameter assignment id=value (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wtrender -midi song.mid -out song.wav [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a Standard MIDI File through the wavetable synth.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wtrender -midi song.mid -slot1 pad.wtgen.json -out song.wav\n")
		fmt.Fprintf(os.Stderr, "  wtrender -midi song.mid -state patch.json -bits 24 -dither none -out song.wav\n")
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
	dt, err := dither.ParseDitherType(*ditherName)
	if err != nil {
		cliutil.Fatal(logger, "invalid dither", err)
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

	fallback := synth.FallbackSine
	if *silent {
		fallback = synth.FallbackSilence
	}
	s, err := synth.New(st, reg,
		synth.WithSampleRate(float64(*rate)),
		synth.WithVoices(*voices),
		synth.WithFallback(fallback),
	)
	if err != nil {
		cliutil.Fatal(logger, "create synth", err)
	}

	events, err := readEvents(*midiPath)
	if err != nil {
		cliutil.Fatal(logger, "read midi", err)
	}
	logger.Info("rendering", "events", len(events), "rate", *rate, "voices", *voices)

	start := time.Now()
	off := render.Offline{Synth: s, BlockSize: *block, Tail: *tail}
	if *tail == 0 {
		off.Tail = -1
	}
	out, err := off.Render(ctx, events)
	if err != nil {
		cliutil.Fatal(logger, "render", err)
	}

	if *normalize {
		before, gain := render.Normalize(out, float64(*rate), *target, render.DefaultCeiling)
		logger.Info("normalized",
			"from_lufs", before.Integrated,
			"target_lufs", *target,
			"gain_db", 20*math.Log10(gain),
		)
	}
	l := render.Measure(out, float64(*rate))

	f, err := os.Create(*outPath)
	if err != nil {
		cliutil.Fatal(logger, "create output", err)
	}
	err = render.WriteWAV(f, out, render.WAVOptions{
		SampleRate: *rate,
		BitDepth:   *bits,
		Dither:     dt,
		Seed:       *seed,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		cliutil.Fatal(logger, "write wav", err)
	}
	logger.Info("rendered",
		"out", *outPath,
		"frames", out.Frames(),
		"duration", time.Duration(float64(out.Frames())/float64(*rate)*float64(time.Second)),
		"peak", l.Peak,
		"lufs", l.Integrated,
		"lufs_momentary_max", l.MaxMomentary,
		"lufs_short_term", l.ShortTerm,
		"elapsed", time.Since(start),
	)

	if *saveState != "" {
		if err := save(*saveState, reg, st); err != nil {
			cliutil.Fatal(logger, "save state", err)
		}
	}
}

func readEvents(path string) ([]render.NoteEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return render.ReadSMF(f)
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

func save(path string, reg *params.Registry, st *store.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := state.Write(f, state.Capture(reg, st)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
