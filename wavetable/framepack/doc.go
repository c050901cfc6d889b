// Package framepack decodes the HNFPv1 harmonic+noise framepack, the binary
// payload of the harm-noise-framepack-v1 spectral codec.
//
// # Layout
//
// All fields are little-endian:
//
//	magic      [7]byte  "HNFPv1\x00"
//	tableSize  uint16   samples per cycle, power of two
//	frames     uint16   morph frames
//	harmonics  uint16   H
//	noiseBands uint16   B
//	frames × {
//	    H × uint16   harmonic amplitude codes (bin 1+h)
//	    B × int16    noise band level codes
//	    3 × uint16   reserved (phase/tilt shaping, consumed and ignored)
//	}
//
// Decoding yields one magnitude spectrum of tableSize/2+1 bins per frame,
// ready for minimum-phase reconstruction. Bin magnitudes are scaled so that a
// harmonic code of full scale corresponds to a sinusoid of amplitude AmpScale
// in the time domain.
//
// # Noise mapping
//
// Two variants of the noise code exist. The canonical mapping, [NoiseHalfDB],
// reads each code as half-decibels (dB = code*0.5). [NoiseRanged] normalizes
// the signed code to [0,1] and maps it into [-DBRange, 0] dB. Either way the
// level is converted to linear RMS and added to every bin of the band.
package framepack
