package interp

import "testing"

func TestLerpEndpoints(t *testing.T) {
	for _, tc := range []struct {
		t, want float32
	}{
		{t: 0, want: 2},
		{t: 0.25, want: 2.5},
		{t: 1, want: 4},
	} {
		if got := Lerp(tc.t, 2, 4); got != tc.want {
			t.Fatalf("Lerp(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestBilinearCorners(t *testing.T) {
	a0, a1, b0, b1 := float32(1), float32(2), float32(3), float32(4)
	cases := []struct {
		tx, ty, want float32
	}{
		{0, 0, a0},
		{1, 0, a1},
		{0, 1, b0},
		{1, 1, b1},
		{0.5, 0.5, 2.5},
	}
	for _, tc := range cases {
		if got := Bilinear(tc.tx, tc.ty, a0, a1, b0, b1); got != tc.want {
			t.Fatalf("Bilinear(%v,%v) = %v, want %v", tc.tx, tc.ty, got, tc.want)
		}
	}
}

func TestCyclicIndexWraps(t *testing.T) {
	i0, i1, frac := CyclicIndex(0.999, 8)
	if i0 != 7 || i1 != 0 {
		t.Fatalf("indices = %d,%d want 7,0", i0, i1)
	}
	if frac < 0.99 || frac > 1 {
		t.Fatalf("frac = %v", frac)
	}

	i0, i1, frac = CyclicIndex(0.5, 8)
	if i0 != 4 || i1 != 5 || frac != 0 {
		t.Fatalf("got %d,%d,%v want 4,5,0", i0, i1, frac)
	}
}
