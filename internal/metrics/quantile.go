package metrics

import (
	"math"
	"sort"
)

// quantileEdges returns the distinct bin edges of q equal-population bins
// over the non-NaN values, using linear interpolation between order
// statistics. Repeated edges collapse, so fewer than q+1 edges may come back.
func quantileEdges(values []float64, q int) []float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 || q < 1 {
		return nil
	}
	sort.Float64s(sorted)

	edges := make([]float64, 0, q+1)
	for i := 0; i <= q; i++ {
		v := linearQuantile(sorted, float64(i)/float64(q))
		if len(edges) == 0 || v != edges[len(edges)-1] {
			edges = append(edges, v)
		}
	}
	return edges
}

// linearQuantile is the p-quantile of sorted data with h = p·(n-1)
func linearQuantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// quantileBins assigns each value to a quantile bin and returns the
// assignment plus the bin count. Bins are right-closed and the first bin
// also holds its lower edge. When fewer than two distinct edges exist every
// value lands in a single bin. NaN values get bin -1.
func quantileBins(values []float64, q int) ([]int, int) {
	bins := make([]int, len(values))
	edges := quantileEdges(values, q)

	k := len(edges) - 1
	if k < 1 {
		k = 1
	}

	for i, v := range values {
		switch {
		case math.IsNaN(v):
			bins[i] = -1
		case len(edges) < 2:
			bins[i] = 0
		default:
			b := sort.SearchFloat64s(edges, v) - 1
			if b < 0 {
				b = 0
			}
			if b >= k {
				b = k - 1
			}
			bins[i] = b
		}
	}

	return bins, k
}
