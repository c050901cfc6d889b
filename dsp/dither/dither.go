// Package dither converts normalized float samples to signed PCM integers
// with optional dither noise and first-order noise shaping.
package dither

import (
	"fmt"
	"strings"
)

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither (plain rounding).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform (rectangular) PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF), the most common choice.
	DitherTriangular

	ditherTypeCount // sentinel for validation
)

var ditherTypeNames = [ditherTypeCount]string{
	"None", "Rectangular", "Triangular",
}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt >= 0 && dt < ditherTypeCount {
		return ditherTypeNames[dt]
	}
	return fmt.Sprintf("DitherType(%d)", dt)
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType maps a name as printed by [DitherType.String] back to its
// type. Case is ignored.
func ParseDitherType(name string) (DitherType, error) {
	for i, n := range ditherTypeNames {
		if strings.EqualFold(n, name) {
			return DitherType(i), nil
		}
	}
	return DitherNone, fmt.Errorf("dither: unknown dither type %q", name)
}
