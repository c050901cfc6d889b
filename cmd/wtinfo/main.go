// Command wtinfo prints the contents of wtgen wavetable documents.
//
// Usage:
//
//	wtinfo [flags] file.json ...
//
// For every file it decodes the framepack, rebuilds the table and reports
// its dimensions, peak level and the dominant harmonic of each frame.
//
// Examples:
//
//	wtinfo pad.wtgen.json
//	wtinfo -frames -harmonics 8 pad.wtgen.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-wavetable/dsp/spectrum"
	"github.com/cwbudde/algo-wavetable/internal/cliutil"
	timestats "github.com/cwbudde/algo-wavetable/stats/time"
	"github.com/cwbudde/algo-wavetable/wavetable"
	"github.com/cwbudde/algo-wavetable/wavetable/framepack"
	"github.com/cwbudde/algo-wavetable/wavetable/wtgen"
)

type fileInfo struct {
	path   string
	header framepack.Header
	table  *wavetable.Wavetable
	frames []frameInfo
}

type frameInfo struct {
	dominant int
	stats    timestats.Stats
	profile  []float64
}

func main() {
	frames := flag.Bool("frames", false, "print one row per frame")
	harmonics := flag.Int("harmonics", 4, "relative harmonic levels to print with -frames")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wtinfo [flags] file.json ...\n\n")
		fmt.Fprintf(os.Stderr, "Prints the contents of wtgen-1 wavetable documents.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wtinfo pad.wtgen.json\n")
		fmt.Fprintf(os.Stderr, "  wtinfo -frames -harmonics 8 pad.wtgen.json\n")
	}
	flag.Parse()

	logger, err := cliutil.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var infos []fileInfo
	failed := false
	for _, path := range flag.Args() {
		info, err := inspect(ctx, path, *harmonics)
		if err != nil {
			logger.Error("inspect failed", "path", path, "error", err)
			failed = true
			continue
		}
		logger.Debug("inspected", "path", path, "frames", info.header.Frames)
		infos = append(infos, info)
	}

	printSummary(infos)
	if *frames {
		for _, info := range infos {
			printFrames(info, *harmonics)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(ctx context.Context, path string, harmonics int) (fileInfo, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fileInfo{}, err
	}
	pack, err := wtgen.Decode(doc)
	if err != nil {
		return fileInfo{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	table, err := wtgen.Build(ctx, doc, name)
	if err != nil {
		return fileInfo{}, err
	}

	an, err := spectrum.NewAnalyzer(table.Size())
	if err != nil {
		return fileInfo{}, err
	}
	mag := make([]float64, an.Bins())

	info := fileInfo{path: path, header: pack.Header, table: table}
	for f := 0; f < table.Frames(); f++ {
		row := table.Row(f)
		if err := an.MagnitudeFloat32(mag, row); err != nil {
			return fileInfo{}, err
		}
		bin, _ := spectrum.DominantBin(mag)
		info.frames = append(info.frames, frameInfo{
			dominant: bin,
			stats:    timestats.Calculate(row),
			profile:  spectrum.HarmonicProfile(mag, harmonics),
		})
	}
	return info, nil
}

func printSummary(infos []fileInfo) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "File\tSize\tFrames\tHarmonics\tNoise Bands\tPeak\tDominant (first/last)\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "----\t----\t------\t---------\t-----------\t----\t---------------------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, info := range infos {
		h := info.header
		first, last := info.frames[0].dominant, info.frames[len(info.frames)-1].dominant
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.4f\t%d/%d\n",
			filepath.Base(info.path),
			h.TableSize,
			h.Frames,
			h.Harmonics,
			h.NoiseBands,
			info.table.Peak(),
			first, last,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printFrames(info fileInfo, harmonics int) {
	fmt.Printf("\n%s\n", filepath.Base(info.path))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := "Frame\tDominant\tRMS dB\tCrest dB\tZC"
	for k := 1; k <= harmonics; k++ {
		header += fmt.Sprintf("\tH%d", k)
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for f, fr := range info.frames {
		row := fmt.Sprintf("%d\t%d\t%.2f\t%.2f\t%d",
			f, fr.dominant, fr.stats.RMS_dB, fr.stats.CrestFactor_dB, fr.stats.ZeroCrossings)
		for _, p := range fr.profile {
			row += fmt.Sprintf("\t%.3f", p)
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
