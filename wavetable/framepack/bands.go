package framepack

// BandEdges partitions the bin range [loBin, hiBin] into bands equal-width
// integer segments and returns bands+1 edges. Band b covers bins
// [edges[b], edges[b+1]).
//
// Inputs are sanitized: bands < 1 is treated as 1, loBin < 0 as 0 and
// hiBin < loBin as loBin. The result is non-decreasing with
// edges[0] == loBin and edges[bands] == hiBin.
func BandEdges(loBin, hiBin, bands int) []int {
	if bands < 1 {
		bands = 1
	}
	if loBin < 0 {
		loBin = 0
	}
	if hiBin < loBin {
		hiBin = loBin
	}

	total := hiBin - loBin
	edges := make([]int, bands+1)
	edges[0] = loBin
	for i := 1; i < bands; i++ {
		edges[i] = loBin + i*total/bands
	}
	edges[bands] = hiBin
	return edges
}
