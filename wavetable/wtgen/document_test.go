package wtgen

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/cwbudde/algo-wavetable/internal/testutil"
	"github.com/cwbudde/algo-wavetable/wavetable/framepack"
)

func TestSpectralValidation(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(testutil.SingleHarmonic(16, 4096))

	tests := []struct {
		name  string
		doc   string
		stage Stage
		want  error
	}{
		{name: "not json", doc: `{"schema":`, stage: StageParse},
		{name: "schema", doc: `{"schema":"wtgen-2","program":{"nodes":[]}}`, stage: StageSchema, want: ErrSchema},
		{name: "no nodes", doc: `{"schema":"wtgen-1","program":{"nodes":[]}}`, stage: StageOp, want: ErrNoNodes},
		{name: "other op", doc: `{"schema":"wtgen-1","program":{"nodes":[{"op":"oscillator","p":{}}]}}`, stage: StageOp, want: ErrUnsupportedOp},
		{name: "codec", doc: `{"schema":"wtgen-1","program":{"nodes":[{"op":"spectralData","p":{"codec":"pcm","data":"` + payload + `"}}]}}`, stage: StageCodec, want: ErrCodec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.doc))
			if err == nil {
				_, err = doc.Spectral()
			}
			var we *Error
			if !errors.As(err, &we) || we.Stage != tt.stage {
				t.Fatalf("err = %v, want stage %s", err, tt.stage)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNodeKeepsUnknownOpName(t *testing.T) {
	doc, err := Parse([]byte(`{"schema":"wtgen-1","program":{"nodes":[{"op":"additive"}]}}`))
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Program.Nodes[0]
	if n.Op != "additive" || n.Spectral != nil {
		t.Fatalf("node = %+v", n)
	}
}

func TestPayloadDecoding(t *testing.T) {
	raw := []byte("HNFPv1\x00abc")
	std := base64.StdEncoding.EncodeToString(raw)
	unpadded := base64.RawStdEncoding.EncodeToString(raw)
	wrapped := std[:4] + "\n" + std[4:8] + " \r\n\t" + std[8:]

	for _, data := range []string{std, unpadded, wrapped} {
		p := SpectralData{Data: data}
		got, err := p.Payload()
		if err != nil {
			t.Fatalf("Payload(%q): %v", data, err)
		}
		if string(got) != string(raw) {
			t.Fatalf("Payload(%q) = %q", data, got)
		}
	}

	for _, data := range []string{"", "!!!!"} {
		p := SpectralData{Data: data}
		_, err := p.Payload()
		var we *Error
		if !errors.As(err, &we) || we.Stage != StageBase64 {
			t.Fatalf("Payload(%q): err = %v, want base64 stage", data, err)
		}
	}
}

func TestOptionsMapping(t *testing.T) {
	doc := testutil.WtgenDocument(testutil.SingleHarmonic(16, 1), map[string]any{
		"tableSize": 16.0,
		"frames":    1,
		"harmonics": map[string]any{"count": 1, "ampScale": 0.5},
		"noise": map[string]any{
			"bands":   0,
			"dbRange": 48,
			"quantDb": 120,
			"banding": map[string]any{"loBin": 3, "hiBin": 7.0},
		},
	})
	d, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	p, err := d.Spectral()
	if err != nil {
		t.Fatal(err)
	}

	want := framepack.Options{
		TableSize: 16,
		Frames:    1,
		Harmonics: 1,
		AmpScale:  0.5,
		LoBin:     3,
		HiBin:     7,
		Noise:     framepack.NoiseRanged,
		DBRange:   48,
	}
	if got := p.Options(); got != want {
		t.Fatalf("Options = %+v, want %+v", got, want)
	}

	bare := SpectralData{}
	if got := bare.Options(); got != (framepack.Options{}) {
		t.Fatalf("bare Options = %+v, want zero value", got)
	}
}

func TestIntRejectsNonNumbers(t *testing.T) {
	var i Int
	if err := i.UnmarshalJSON([]byte(`"12"`)); err == nil {
		t.Fatal("string must be rejected")
	}
	if err := i.UnmarshalJSON([]byte(`1e12`)); err == nil {
		t.Fatal("out of range value must be rejected")
	}
	if err := i.UnmarshalJSON([]byte(`2048.9`)); err != nil || i != 2048 {
		t.Fatalf("2048.9 -> %d, %v", i, err)
	}
}
