package loudness

import (
	"math"

	"github.com/cwbudde/algo-wavetable/dsp/filter/biquad"
	"github.com/cwbudde/algo-wavetable/dsp/filter/design"
)

const (
	// BS.1770 K-weighting: a +4 dB shelf above 1.5 kHz and a 38 Hz highpass.
	shelfFreq   = 1500.0
	shelfGainDB = 4.0
	highpassHz  = 38.0

	momentarySeconds = 0.4
	shortTermSeconds = 3.0

	// Gating blocks are momentary windows taken every 100 ms (75% overlap).
	gateStepSeconds = momentarySeconds / 4
	absoluteGate    = -70.0
	relativeGate    = -10.0

	floorLUFS = -120.0
)

// window is a sliding mean square over a fixed number of samples.
type window struct {
	sq  []float64
	pos int
	sum float64
}

func newWindow(n int) window {
	return window{sq: make([]float64, max(n, 1))}
}

func (w *window) push(sq float64) {
	w.sum += sq - w.sq[w.pos]
	if w.sum < 0 {
		w.sum = 0
	}
	w.sq[w.pos] = sq
	if w.pos++; w.pos == len(w.sq) {
		w.pos = 0
	}
}

func (w *window) meanSquare() float64 {
	return w.sum / float64(len(w.sq))
}

// channel holds the filter state and windows of one input channel.
type channel struct {
	shelf, highpass biquad.Section
	momentary       window
	shortTerm       window
	peak            float64
}

func (c *channel) push(x float64) {
	if a := math.Abs(x); a > c.peak {
		c.peak = a
	}
	y := c.highpass.ProcessSample(c.shelf.ProcessSample(x))
	c.momentary.push(y * y)
	c.shortTerm.push(y * y)
}

// Meter measures EBU R128 / ITU-R BS.1770 loudness of planar float32 audio.
// Gating blocks are collected from the first processed sample on.
type Meter struct {
	channels []channel

	step  int
	count int

	// Momentary power at every gating step.
	blocks       []float64
	maxMomentary float64
}

// NewMeter creates a loudness meter with the given options.
func NewMeter(opts ...MeterOption) *Meter {
	cfg := ApplyMeterOptions(opts...)
	sr := cfg.SampleRate

	q := 1 / math.Sqrt2
	shelf := design.HighShelf(shelfFreq, shelfGainDB, q, sr)
	hp := design.Highpass(highpassHz, q, sr)

	m := &Meter{
		channels: make([]channel, cfg.Channels),
		step:     max(int(math.Round(gateStepSeconds*sr)), 1),
	}
	for i := range m.channels {
		m.channels[i] = channel{
			shelf:     *biquad.NewSection(shelf),
			highpass:  *biquad.NewSection(hp),
			momentary: newWindow(int(math.Round(momentarySeconds * sr))),
			shortTerm: newWindow(int(math.Round(shortTermSeconds * sr))),
		}
	}
	return m
}

// Process feeds one block of planar channels, the layout the synth renders
// into. Missing channels read as silence. Only the frames present in every
// supplied channel are measured.
func (m *Meter) Process(block [][]float32) {
	n := -1
	for i := 0; i < len(m.channels) && i < len(block); i++ {
		if n < 0 || len(block[i]) < n {
			n = len(block[i])
		}
	}

	for f := 0; f < n; f++ {
		for i := range m.channels {
			var x float64
			if i < len(block) {
				x = float64(block[i][f])
			}
			m.channels[i].push(x)
		}

		if m.count++; m.count < m.step {
			continue
		}
		m.count = 0
		p := m.power(func(c *channel) *window { return &c.momentary })
		m.blocks = append(m.blocks, p)
		m.maxMomentary = max(m.maxMomentary, p)
	}
}

// power sums the channel mean squares of the selected window.
func (m *Meter) power(sel func(*channel) *window) float64 {
	var p float64
	for i := range m.channels {
		p += sel(&m.channels[i]).meanSquare()
	}
	return p
}

// MaxMomentary returns the loudest momentary (400 ms) reading in LUFS.
func (m *Meter) MaxMomentary() float64 {
	return toLUFS(m.maxMomentary)
}

// ShortTerm returns the loudness of the last 3 s in LUFS.
func (m *Meter) ShortTerm() float64 {
	return toLUFS(m.power(func(c *channel) *window { return &c.shortTerm }))
}

// Integrated returns the gated integrated loudness in LUFS, or -Inf when no
// block passes the absolute gate.
func (m *Meter) Integrated() float64 {
	mean, ok := gatedMean(m.blocks, absoluteGate)
	if !ok {
		return math.Inf(-1)
	}
	mean, ok = gatedMean(m.blocks, max(absoluteGate, toLUFS(mean)+relativeGate))
	if !ok {
		return math.Inf(-1)
	}
	return toLUFS(mean)
}

// gatedMean averages the block powers louder than gate.
func gatedMean(blocks []float64, gate float64) (float64, bool) {
	var sum float64
	var n int
	for _, p := range blocks {
		if toLUFS(p) > gate {
			sum += p
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Peak returns the largest absolute sample seen on any channel.
func (m *Meter) Peak() float64 {
	var p float64
	for i := range m.channels {
		p = max(p, m.channels[i].peak)
	}
	return p
}

// Gain returns the linear gain that moves a signal measured at integrated
// loudness to target, limited so that peak does not exceed ceiling. It
// returns 1 for silent or ungated input.
func Gain(integrated, target, peak, ceiling float64) float64 {
	if math.IsInf(integrated, -1) || integrated <= floorLUFS {
		return 1
	}
	g := math.Pow(10, (target-integrated)/20)
	if ceiling > 0 && peak > 0 && g*peak > ceiling {
		g = ceiling / peak
	}
	return g
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return floorLUFS
	}
	return -0.691 + 10*math.Log10(meanSquare)
}
