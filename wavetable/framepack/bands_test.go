package framepack

import "testing"

func TestBandEdgesInvariants(t *testing.T) {
	for lo := 0; lo <= 20; lo += 3 {
		for hi := lo; hi <= 70; hi += 7 {
			for bands := 1; bands <= 17; bands++ {
				edges := BandEdges(lo, hi, bands)
				if len(edges) != bands+1 {
					t.Fatalf("lo=%d hi=%d B=%d: len=%d", lo, hi, bands, len(edges))
				}
				if edges[0] != lo || edges[bands] != hi {
					t.Fatalf("lo=%d hi=%d B=%d: endpoints %d..%d", lo, hi, bands, edges[0], edges[bands])
				}
				for i := 1; i < len(edges); i++ {
					if edges[i] < edges[i-1] {
						t.Fatalf("lo=%d hi=%d B=%d: decreasing at %d: %v", lo, hi, bands, i, edges)
					}
				}
			}
		}
	}
}

func TestBandEdgesFloorPartition(t *testing.T) {
	got := BandEdges(10, 20, 3)
	want := []int{10, 13, 16, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("edges = %v, want %v", got, want)
		}
	}
}

func TestBandEdgesSanitizesInputs(t *testing.T) {
	got := BandEdges(-5, -10, 0)
	if len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Fatalf("edges = %v, want [0 0]", got)
	}
}
