package framepack

import (
	"bytes"
	"encoding/binary"

	"github.com/cwbudde/algo-wavetable/dsp/core"
)

// Magic identifies an HNFPv1 payload.
var Magic = [7]byte{'H', 'N', 'F', 'P', 'v', '1', 0}

const (
	// HeaderSize is the byte size of magic plus the four header fields.
	HeaderSize = len(Magic) + 4*2

	reservedFields = 3
)

// Header describes the dimensions declared by a framepack.
type Header struct {
	TableSize  int
	Frames     int
	Harmonics  int
	NoiseBands int
}

// Bins returns the number of one-sided spectrum bins, TableSize/2+1.
func (h Header) Bins() int {
	return h.TableSize/2 + 1
}

// FrameBytes returns the encoded size of one frame.
func (h Header) FrameBytes() int {
	return 2*h.Harmonics + 2*h.NoiseBands + 2*reservedFields
}

// PayloadSize returns the minimum payload length implied by the header.
func (h Header) PayloadSize() int {
	return HeaderSize + h.Frames*h.FrameBytes()
}

// ReadHeader parses and validates the magic and header fields without decoding
// any frame data.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < len(Magic) {
		return Header{}, stageErr(StageMagic, ErrTruncated, "%d bytes", len(data))
	}
	if !bytes.Equal(data[:len(Magic)], Magic[:]) {
		return Header{}, stageErr(StageMagic, ErrBadMagic, "")
	}
	if len(data) < HeaderSize {
		return Header{}, stageErr(StageHeader, ErrTruncated, "header needs %d bytes, have %d", HeaderSize, len(data))
	}

	le := binary.LittleEndian
	off := len(Magic)
	h := Header{
		TableSize:  int(le.Uint16(data[off:])),
		Frames:     int(le.Uint16(data[off+2:])),
		Harmonics:  int(le.Uint16(data[off+4:])),
		NoiseBands: int(le.Uint16(data[off+6:])),
	}

	if h.TableSize < 2 || h.Frames <= 0 {
		return h, stageErr(StageValidation, ErrInvalidDimensions, "tableSize=%d frames=%d", h.TableSize, h.Frames)
	}
	if !core.IsPowerOfTwo(h.TableSize) {
		return h, stageErr(StageValidation, ErrNotPowerOfTwo, "tableSize=%d", h.TableSize)
	}

	return h, nil
}
