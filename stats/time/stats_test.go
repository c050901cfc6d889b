package time

import (
	"math"
	"testing"
)

func harmonic(n, k int, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		// Quarter-sample offset keeps samples off the zero crossings.
		out[i] = float32(amp * math.Sin(2*math.Pi*float64(k)*(float64(i)+0.25)/float64(n)))
	}
	return out
}

func TestCalculateSine(t *testing.T) {
	s := Calculate(harmonic(256, 1, 1))

	if s.Length != 256 {
		t.Fatalf("Length = %d", s.Length)
	}
	if math.Abs(s.DC) > 1e-6 {
		t.Errorf("DC = %v", s.DC)
	}
	if math.Abs(s.RMS-1/math.Sqrt2) > 1e-4 {
		t.Errorf("RMS = %v, want %v", s.RMS, 1/math.Sqrt2)
	}
	if math.Abs(s.CrestFactor_dB-3.0103) > 0.01 {
		t.Errorf("crest = %v dB, want 3.01", s.CrestFactor_dB)
	}
	if s.ZeroCrossings != 2 {
		t.Errorf("ZeroCrossings = %d, want 2", s.ZeroCrossings)
	}
}

func TestZeroCrossings(t *testing.T) {
	tests := []struct {
		name  string
		cycle []float32
		want  int
	}{
		{"empty", nil, 0},
		{"silent", []float32{0, 0, 0}, 0},
		{"dc", []float32{1, 1, 1}, 0},
		{"square", []float32{1, 1, -1, -1}, 2},
		{"wrap only", []float32{-1, 1, 1, 1}, 2},
		{"zeros skipped", []float32{1, 0, -1, 0}, 2},
		{"harmonic 5", harmonic(512, 5, 0.5), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZeroCrossings(tt.cycle); got != tt.want {
				t.Fatalf("ZeroCrossings = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Peak_dB, -1) {
		t.Fatalf("empty stats = %+v", s)
	}
}

func TestCalculateSilence(t *testing.T) {
	s := Calculate(make([]float32, 64))
	if s.CrestFactor != 0 || !math.IsInf(s.CrestFactor_dB, -1) {
		t.Fatalf("crest of silence = %v / %v dB", s.CrestFactor, s.CrestFactor_dB)
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float32{3, -3, 3, -3}); got != 3 {
		t.Fatalf("RMS = %v", got)
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v", got)
	}
}
