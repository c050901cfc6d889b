package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestMagnitude(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}
	if math.Abs(mag[0]-5) > 1e-12 || math.Abs(mag[1]-math.Sqrt2) > 1e-12 || mag[2] != 0 {
		t.Fatalf("Magnitude = %v", mag)
	}
	if Magnitude(nil) != nil {
		t.Fatal("empty input must return nil")
	}
}

func TestAnalyzerSinusoid(t *testing.T) {
	const n = 64
	a, err := NewAnalyzer(n)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	for _, tt := range []struct {
		bin int
		amp float64
	}{{1, 1}, {3, 0.5}, {17, 0.25}} {
		cycle := make([]float64, n)
		for i := range cycle {
			cycle[i] = tt.amp * math.Cos(2*math.Pi*float64(tt.bin*i)/n+0.3)
		}
		mag := make([]float64, a.Bins())
		if err := a.Magnitude(mag, cycle); err != nil {
			t.Fatalf("Magnitude: %v", err)
		}

		bin, val := DominantBin(mag)
		if bin != tt.bin {
			t.Fatalf("dominant bin = %d, want %d", bin, tt.bin)
		}
		if want := tt.amp * n / 2; math.Abs(val-want) > 1e-9 {
			t.Fatalf("bin %d magnitude = %v, want %v", bin, val, want)
		}
	}
}

func TestAnalyzerFloat32MatchesFloat64(t *testing.T) {
	const n = 32
	a, err := NewAnalyzer(n)
	if err != nil {
		t.Fatal(err)
	}
	c64 := make([]float64, n)
	c32 := make([]float32, n)
	for i := range c64 {
		v := float32(math.Sin(2*math.Pi*float64(i)/n) + 0.3*math.Sin(2*math.Pi*float64(5*i)/n))
		c32[i] = v
		c64[i] = float64(v)
	}
	m64 := make([]float64, a.Bins())
	m32 := make([]float64, a.Bins())
	if err := a.Magnitude(m64, c64); err != nil {
		t.Fatal(err)
	}
	if err := a.MagnitudeFloat32(m32, c32); err != nil {
		t.Fatal(err)
	}
	for k := range m64 {
		if m64[k] != m32[k] {
			t.Fatalf("bin %d: %v vs %v", k, m64[k], m32[k])
		}
	}
}

func TestAnalyzerErrors(t *testing.T) {
	if _, err := NewAnalyzer(48); !errors.Is(err, ErrSize) {
		t.Fatalf("size 48: err = %v", err)
	}
	a, err := NewAnalyzer(16)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Magnitude(make([]float64, 8), make([]float64, 16)); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("short dst: err = %v", err)
	}
}

func TestHarmonicProfile(t *testing.T) {
	mag := []float64{9, 2, 4, 1}
	got := HarmonicProfile(mag, 5)
	want := []float64{0.5, 1, 0.25}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("profile = %v, want %v", got, want)
		}
	}
	if HarmonicProfile([]float64{1}, 3) != nil {
		t.Fatal("DC-only spectrum must have no profile")
	}
}
