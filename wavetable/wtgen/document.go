package wtgen

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"

	"github.com/cwbudde/algo-wavetable/wavetable/framepack"
)

const (
	Schema = "wtgen-1"
	Codec  = "harm-noise-framepack-v1"
)

// OpKind tags the variant held by a [Node].
type OpKind string

const OpSpectralData OpKind = "spectralData"

// Document is a parsed wtgen-1 document.
type Document struct {
	Schema  string  `json:"schema"`
	Program Program `json:"program"`
}

type Program struct {
	Nodes []Node `json:"nodes"`
}

// Node is one program step. Spectral is set when Op is [OpSpectralData];
// other kinds are kept by name only so they can be reported.
type Node struct {
	Op       OpKind
	Spectral *SpectralData
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Op OpKind          `json:"op"`
		P  json.RawMessage `json:"p"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.Op = raw.Op
	n.Spectral = nil
	if raw.Op != OpSpectralData {
		return nil
	}

	var p SpectralData
	if len(raw.P) > 0 {
		if err := json.Unmarshal(raw.P, &p); err != nil {
			return fmt.Errorf("spectralData params: %w", err)
		}
	}
	n.Spectral = &p
	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	out := struct {
		Op OpKind        `json:"op"`
		P  *SpectralData `json:"p,omitempty"`
	}{Op: n.Op, P: n.Spectral}
	return json.Marshal(out)
}

// SpectralData holds the parameters of a spectralData node.
type SpectralData struct {
	Codec     string         `json:"codec"`
	Data      string         `json:"data"`
	TableSize Int            `json:"tableSize,omitempty"`
	Frames    Int            `json:"frames,omitempty"`
	Harmonics *HarmonicsInfo `json:"harmonics,omitempty"`
	Noise     *NoiseInfo     `json:"noise,omitempty"`
}

type HarmonicsInfo struct {
	Count    Int      `json:"count,omitempty"`
	AmpScale *float64 `json:"ampScale,omitempty"`
}

// NoiseInfo describes the noise bands. Encoders also write a quantDb key;
// it carries no decoding information and is not read.
type NoiseInfo struct {
	Bands   Int      `json:"bands,omitempty"`
	DBRange *float64 `json:"dbRange,omitempty"`
	Banding *Banding `json:"banding,omitempty"`
}

type Banding struct {
	LoBin Int `json:"loBin"`
	HiBin Int `json:"hiBin"`
}

// Int is an integer that also accepts JSON numbers with a fractional part,
// which are truncated toward zero.
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("integer out of range: %s", data)
	}
	*i = Int(f)
	return nil
}

// Parse decodes a document without validating it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fail(StageParse, err)
	}
	return &doc, nil
}

// Spectral validates the envelope and returns the first node's parameters.
func (d *Document) Spectral() (*SpectralData, error) {
	if d.Schema != Schema {
		return nil, fail(StageSchema, fmt.Errorf("%w %q, expected %q", ErrSchema, d.Schema, Schema))
	}
	if len(d.Program.Nodes) == 0 {
		return nil, fail(StageOp, ErrNoNodes)
	}

	node := d.Program.Nodes[0]
	if node.Op != OpSpectralData || node.Spectral == nil {
		return nil, fail(StageOp, fmt.Errorf("%w %q", ErrUnsupportedOp, node.Op))
	}
	p := node.Spectral
	if p.Codec != Codec {
		return nil, fail(StageCodec, fmt.Errorf("%w %q, expected %q", ErrCodec, p.Codec, Codec))
	}
	return p, nil
}

// Payload decodes the base64 framepack bytes. Whitespace is ignored and
// unpadded input is accepted.
func (p *SpectralData) Payload() ([]byte, error) {
	clean := bytes.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, []byte(p.Data))
	if len(clean) == 0 {
		return nil, fail(StageBase64, ErrMissingPayload)
	}

	enc := base64.StdEncoding
	if len(clean)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	out := make([]byte, enc.DecodedLen(len(clean)))
	n, err := enc.Decode(out, clean)
	if err != nil {
		return nil, fail(StageBase64, err)
	}
	return out[:n], nil
}

// Options maps the optional declarations onto framepack decode options.
// The ranged noise mapping is selected when noise.dbRange is present.
func (p *SpectralData) Options() framepack.Options {
	opts := framepack.Options{
		TableSize: int(p.TableSize),
		Frames:    int(p.Frames),
	}
	if h := p.Harmonics; h != nil {
		opts.Harmonics = int(h.Count)
		if h.AmpScale != nil {
			opts.AmpScale = *h.AmpScale
		}
	}
	if n := p.Noise; n != nil {
		opts.NoiseBands = int(n.Bands)
		if n.DBRange != nil {
			opts.Noise = framepack.NoiseRanged
			opts.DBRange = *n.DBRange
		}
		if b := n.Banding; b != nil {
			opts.LoBin = int(b.LoBin)
			opts.HiBin = int(b.HiBin)
		}
	}
	return opts
}
