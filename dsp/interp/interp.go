package interp

// Lerp interpolates linearly from a to b by t in [0,1].
func Lerp(t, a, b float32) float32 {
	return a + (b-a)*t
}

// Bilinear interpolates a 2x2 cell. a0 and a1 are adjacent samples on row a,
// b0 and b1 the same positions on row b. tx blends within a row and ty blends
// between rows.
func Bilinear(tx, ty float32, a0, a1, b0, b1 float32) float32 {
	return Lerp(ty, Lerp(tx, a0, a1), Lerp(tx, b0, b1))
}

// CyclicIndex maps a phase in [0,1) onto a cycle of n samples and returns the
// two neighbouring indices plus the fractional position between them. The
// second index wraps to 0 at the end of the cycle.
func CyclicIndex(phase float64, n int) (i0, i1 int, frac float32) {
	pos := phase * float64(n)
	i := int(pos)
	frac = float32(pos - float64(i))
	i0 = i % n
	if i0 < 0 {
		i0 += n
	}
	i1 = i0 + 1
	if i1 == n {
		i1 = 0
	}
	return i0, i1, frac
}
