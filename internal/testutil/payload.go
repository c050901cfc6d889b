package testutil

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
)

// FrameCodes holds the raw codes of one framepack frame.
type FrameCodes struct {
	Harmonics []uint16
	Noise     []int16
}

// BuildFramepack encodes an HNFPv1 payload. Every frame must carry exactly
// harmonics and bands codes; the header frame count is len(frames).
func BuildFramepack(tableSize, harmonics, bands int, frames []FrameCodes) []byte {
	le := binary.LittleEndian
	out := []byte{'H', 'N', 'F', 'P', 'v', '1', 0}
	out = le.AppendUint16(out, uint16(tableSize))
	out = le.AppendUint16(out, uint16(len(frames)))
	out = le.AppendUint16(out, uint16(harmonics))
	out = le.AppendUint16(out, uint16(bands))
	for _, f := range frames {
		for i := 0; i < harmonics; i++ {
			var q uint16
			if i < len(f.Harmonics) {
				q = f.Harmonics[i]
			}
			out = le.AppendUint16(out, q)
		}
		for i := 0; i < bands; i++ {
			var q int16
			if i < len(f.Noise) {
				q = f.Noise[i]
			}
			out = le.AppendUint16(out, uint16(q))
		}
		out = le.AppendUint16(out, 0)
		out = le.AppendUint16(out, 0)
		out = le.AppendUint16(out, 0)
	}
	return out
}

// SingleHarmonic encodes one frame with harmonic 1 at code q and no noise.
func SingleHarmonic(tableSize int, q uint16) []byte {
	return BuildFramepack(tableSize, 1, 0, []FrameCodes{{Harmonics: []uint16{q}}})
}

// HarmonicMorph encodes frames where frame f carries only harmonic f+1 at
// code q, so each frame is a pure sinusoid of a different order.
func HarmonicMorph(tableSize, frames int, q uint16) []byte {
	codes := make([]FrameCodes, frames)
	for f := range codes {
		h := make([]uint16, frames)
		h[f] = q
		codes[f] = FrameCodes{Harmonics: h}
	}
	return BuildFramepack(tableSize, frames, 0, codes)
}

// WtgenDocument wraps a payload into a wtgen-1 JSON document. Entries of
// params are merged into program.nodes[0].p.
func WtgenDocument(payload []byte, params map[string]any) []byte {
	p := map[string]any{
		"codec": "harm-noise-framepack-v1",
		"data":  base64.StdEncoding.EncodeToString(payload),
	}
	for k, v := range params {
		p[k] = v
	}
	doc := map[string]any{
		"schema": "wtgen-1",
		"program": map[string]any{
			"nodes": []any{
				map[string]any{"op": "spectralData", "p": p},
			},
		},
	}
	out, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return out
}
