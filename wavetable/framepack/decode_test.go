package framepack

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-wavetable/internal/testutil"
)

func TestReadHeader(t *testing.T) {
	data := testutil.BuildFramepack(256, 4, 2, make([]testutil.FrameCodes, 3))
	h, err := ReadHeader(data)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	want := Header{TableSize: 256, Frames: 3, Harmonics: 4, NoiseBands: 2}
	if h != want {
		t.Fatalf("header = %+v, want %+v", h, want)
	}
	if h.Bins() != 129 || h.FrameBytes() != 18 || h.PayloadSize() != len(data) {
		t.Fatalf("derived sizes: bins=%d frame=%d payload=%d len=%d", h.Bins(), h.FrameBytes(), h.PayloadSize(), len(data))
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := testutil.BuildFramepack(64, 2, 1, make([]testutil.FrameCodes, 4))
	badMagic := append([]byte(nil), valid...)
	badMagic[0] = 'X'

	tests := []struct {
		name  string
		data  []byte
		opts  Options
		want  error
		stage Stage
	}{
		{name: "empty", data: nil, want: ErrTruncated, stage: StageMagic},
		{name: "magic", data: badMagic, want: ErrBadMagic, stage: StageMagic},
		{name: "short header", data: valid[:10], want: ErrTruncated, stage: StageHeader},
		{name: "non power of two", data: testutil.BuildFramepack(100, 1, 0, make([]testutil.FrameCodes, 1)), want: ErrNotPowerOfTwo, stage: StageValidation},
		{name: "zero frames", data: testutil.BuildFramepack(64, 1, 0, nil), want: ErrInvalidDimensions, stage: StageValidation},
		{name: "table size one", data: testutil.BuildFramepack(1, 1, 0, make([]testutil.FrameCodes, 1)), want: ErrInvalidDimensions, stage: StageValidation},
		{name: "truncated frames", data: valid[:HeaderSize+2*12], want: ErrTruncated, stage: StageFrames},
		{name: "size hint", data: valid, opts: Options{TableSize: 128}, want: ErrHintMismatch, stage: StageValidation},
		{name: "frame hint", data: valid, opts: Options{Frames: 2}, want: ErrHintMismatch, stage: StageValidation},
		{name: "harmonic hint", data: valid, opts: Options{Harmonics: 3}, want: ErrHintMismatch, stage: StageValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack, err := Decode(tt.data, tt.opts)
			if err == nil {
				t.Fatalf("expected error, got pack %+v", pack.Header)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var de *DecodeError
			if !errors.As(err, &de) || de.Stage != tt.stage {
				t.Fatalf("stage = %v, want %v (err %v)", de, tt.stage, err)
			}
		})
	}
}

func TestDecodeHarmonics(t *testing.T) {
	const n = 64
	data := testutil.BuildFramepack(n, 3, 0, []testutil.FrameCodes{
		{Harmonics: []uint16{4096, 2048, 0}},
	})
	pack, err := Decode(data, Options{TableSize: n, Frames: 1})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(pack.Frames) != 1 || len(pack.Frames[0]) != n/2+1 {
		t.Fatalf("shape = %d frames x %d bins", len(pack.Frames), len(pack.Frames[0]))
	}
	if pack.Edges != nil {
		t.Fatalf("edges = %v, want nil without noise bands", pack.Edges)
	}
	mag := pack.Frames[0]
	if mag[0] != 0 || mag[n/2] != 0 {
		t.Fatalf("DC/Nyquist not zero: %v %v", mag[0], mag[n/2])
	}
	if math.Abs(mag[1]-n/2) > 1e-12 || math.Abs(mag[2]-n/4) > 1e-12 || mag[3] != 0 {
		t.Fatalf("harmonic bins = %v", mag[:4])
	}
}

func TestDecodeHarmonicVariants(t *testing.T) {
	o16 := Options{HarmonicCodeMax: HarmonicCodeMax16, AmpScale: 0.5}
	if got := o16.HarmonicAmplitude(65535); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("16-bit full scale = %v, want 0.5", got)
	}
	var o12 Options
	if got := o12.HarmonicAmplitude(2048); got != 0.5 {
		t.Fatalf("12-bit half scale = %v, want 0.5", got)
	}
}

func TestDecodeNoiseBands(t *testing.T) {
	const n = 32
	data := testutil.BuildFramepack(n, 2, 2, []testutil.FrameCodes{
		{Noise: []int16{0, -40}},
	})
	pack, err := Decode(data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// lo = H+1 = 3, hi = Nyquist = 16.
	wantEdges := []int{3, 9, 16}
	for i := range wantEdges {
		if pack.Edges[i] != wantEdges[i] {
			t.Fatalf("edges = %v, want %v", pack.Edges, wantEdges)
		}
	}

	mag := pack.Frames[0]
	scale := float64(n) / 2
	for k := 3; k < 9; k++ {
		if math.Abs(mag[k]-scale) > 1e-12 {
			t.Fatalf("band 0 bin %d = %v, want %v", k, mag[k], scale)
		}
	}
	want := math.Pow(10, -20.0/20) * scale
	for k := 9; k < 16; k++ {
		if math.Abs(mag[k]-want) > 1e-12 {
			t.Fatalf("band 1 bin %d = %v, want %v", k, mag[k], want)
		}
	}
	if mag[16] != 0 || mag[1] != 0 || mag[2] != 0 {
		t.Fatalf("unexpected energy outside bands: %v", mag)
	}
}

func TestDecodeNoiseAddsToHarmonics(t *testing.T) {
	const n = 16
	data := testutil.BuildFramepack(n, 2, 1, []testutil.FrameCodes{
		{Harmonics: []uint16{0, 4096}, Noise: []int16{0}},
	})
	pack, err := Decode(data, Options{LoBin: 1, HiBin: 4})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	mag := pack.Frames[0]
	if math.Abs(mag[2]-2*float64(n)/2) > 1e-12 {
		t.Fatalf("bin 2 = %v, want harmonic + noise", mag[2])
	}
}

func TestNoiseRangedMapping(t *testing.T) {
	o := Options{Noise: NoiseRanged, DBRange: 48}
	if got := o.NoiseLevel(32767); math.Abs(got-1) > 1e-9 {
		t.Fatalf("top code = %v, want 1", got)
	}
	if got := o.NoiseLevel(-32768); math.Abs(got-math.Pow(10, -48.0/20)) > 1e-12 {
		t.Fatalf("bottom code = %v", got)
	}
	var half Options
	if got := half.NoiseLevel(-12); math.Abs(got-math.Pow(10, -6.0/20)) > 1e-12 {
		t.Fatalf("half-dB code = %v", got)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	data := append(testutil.SingleHarmonic(16, 100), 1, 2, 3)
	if _, err := Decode(data, Options{}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}
