package render

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-wavetable/dsp/buffer"
)

func sineBlock(channels, n int, amp, sampleRate float64) *buffer.Block {
	b := buffer.New(channels, n)
	for c := 0; c < channels; c++ {
		ch := b.Channel(c)
		for i := range ch {
			ch[i] = float32(amp * math.Sin(2*math.Pi*1000*float64(i)/sampleRate))
		}
	}
	return b
}

func TestNormalizeReachesTarget(t *testing.T) {
	const sr = 48000.0
	b := sineBlock(2, int(sr*4), 0.5, sr)

	before, gain := Normalize(b, sr, -20, DefaultCeiling)
	if gain >= 1 {
		t.Fatalf("gain = %v, want attenuation from %v LUFS", gain, before.Integrated)
	}
	after := Measure(b, sr)
	if math.Abs(after.Integrated-(-20)) > 0.05 {
		t.Fatalf("integrated after normalize = %.3f LUFS, want -20", after.Integrated)
	}
	if math.Abs(after.Peak-before.Peak*gain) > 1e-4 {
		t.Fatalf("peak %v, want %v", after.Peak, before.Peak*gain)
	}
}

func TestNormalizeRespectsCeiling(t *testing.T) {
	const sr = 48000.0
	b := sineBlock(1, int(sr*2), 0.1, sr)

	_, gain := Normalize(b, sr, 0, DefaultCeiling)
	if gain <= 1 {
		t.Fatalf("gain = %v, want boost", gain)
	}
	if p := float64(b.Peak()); p > DefaultCeiling+1e-6 {
		t.Fatalf("peak %v above ceiling", p)
	}
}

func TestMeasureReportsLoudestWindow(t *testing.T) {
	const sr = 48000.0
	b := sineBlock(1, int(sr*6), 0.1, sr)
	burst := sineBlock(1, int(sr), 1, sr).Channel(0)
	copy(b.Channel(0), burst)

	l := Measure(b, sr)
	// A full-scale 1 kHz sine reads about -3.03 LUFS, the 0.1 tail 20 dB less.
	if math.Abs(l.MaxMomentary-(-3.03)) > 0.2 {
		t.Fatalf("max momentary = %.2f LUFS, want -3.03", l.MaxMomentary)
	}
	if math.Abs(l.ShortTerm-(-23.03)) > 0.2 {
		t.Fatalf("short-term = %.2f LUFS, want -23.03", l.ShortTerm)
	}
	if l.Integrated <= l.ShortTerm || l.Integrated >= l.MaxMomentary {
		t.Fatalf("integrated %.2f outside (%.2f, %.2f)", l.Integrated, l.ShortTerm, l.MaxMomentary)
	}
}

func TestNormalizeSilence(t *testing.T) {
	b := buffer.New(2, 48000)
	l, gain := Normalize(b, 48000, -14, DefaultCeiling)
	if gain != 1 {
		t.Fatalf("gain = %v, want 1", gain)
	}
	if !math.IsInf(l.Integrated, -1) || l.Peak != 0 {
		t.Fatalf("loudness of silence = %+v", l)
	}
}
