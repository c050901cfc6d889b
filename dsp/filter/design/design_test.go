package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-wavetable/dsp/filter/biquad"
)

const sr = 48000.0

// magnitudeDB evaluates 10*log10(|H(f)|^2) of c in closed form.
func magnitudeDB(c biquad.Coefficients, freq float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freq/sr)
	num := (c.B0-c.B2)*(c.B0-c.B2) + c.B1*c.B1 + (c.B1*(c.B0+c.B2)+c.B0*c.B2*cw)*cw
	den := (1-c.A2)*(1-c.A2) + c.A1*c.A1 + (c.A1*(c.A2+1)+cw*c.A2)*cw
	return 10 * math.Log10(num/den)
}

func TestHighpass(t *testing.T) {
	c := Highpass(1000, defaultQ, sr)
	tests := []struct {
		name   string
		freq   float64
		wantDB float64
		tolDB  float64
	}{
		{"cutoff", 1000, -3.01, 0.05},
		{"passband", 12000, 0, 0.1},
		{"stopband", 100, -40, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := magnitudeDB(c, tt.freq); math.Abs(got-tt.wantDB) > tt.tolDB {
				t.Fatalf("|H(%v)| = %.3f dB, want %.3f", tt.freq, got, tt.wantDB)
			}
		})
	}
}

func TestHighShelf(t *testing.T) {
	c := HighShelf(1500, 4, defaultQ, sr)
	if got := magnitudeDB(c, 20); math.Abs(got) > 0.05 {
		t.Fatalf("low band = %.3f dB, want 0", got)
	}
	if got := magnitudeDB(c, 20000); math.Abs(got-4) > 0.1 {
		t.Fatalf("high band = %.3f dB, want 4", got)
	}
}

func TestInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		c    biquad.Coefficients
	}{
		{"zero rate", Highpass(1000, 1, 0)},
		{"above nyquist", Highpass(30000, 1, sr)},
		{"nan freq", HighShelf(math.NaN(), 3, 1, sr)},
	}
	for _, tt := range tests {
		if tt.c != (biquad.Coefficients{}) {
			t.Errorf("%s: got %+v, want zero coefficients", tt.name, tt.c)
		}
	}
}

func TestNonPositiveQUsesButterworth(t *testing.T) {
	if Highpass(1000, 0, sr) != Highpass(1000, defaultQ, sr) {
		t.Fatal("q <= 0 should select 1/sqrt(2)")
	}
}
