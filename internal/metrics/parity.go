package metrics

import (
	"math"
	"sort"
)

// Parity returns the statistical parity of one attribute: the spread
// (max − min) of the mean true label across its bins or groups.
//
// Numeric attributes are split into Config.ParityBins quantile bins.
// Categorical rows are assigned to the first column, in table order, holding
// the row's largest value among the attribute's one-hot columns. The second
// result is false when the attribute has nothing to bin (unknown attribute,
// or categorical with no columns). The value is NaN when no bin has rows.
func (e *Engine) Parity(attribute string) (float64, bool) {
	switch e.cfg.Kind(attribute) {
	case KindNumeric:
		values, ok := e.table.Column(attribute)
		if !ok {
			return 0, false
		}
		bins, k := quantileBins(values, e.cfg.ParityBins)
		return e.meanSpread(bins, k), true

	case KindCategorical:
		cols := e.columns[attribute]
		if len(cols) == 0 {
			return 0, false
		}
		return e.meanSpread(e.activeCategory(cols), len(cols)), true

	default:
		return 0, false
	}
}

// StatisticalParity computes Parity for each attribute, or for every
// protected attribute when none are given, sorted by parity descending.
// Ties keep input order and NaN values sort last.
func (e *Engine) StatisticalParity(attributes ...string) []ParityResult {
	var results []ParityResult
	for _, attr := range e.attributes(attributes) {
		p, ok := e.Parity(attr)
		if !ok {
			e.logger.Debug("attribute omitted from parity", "attribute", attr)
			continue
		}
		results = append(results, ParityResult{Attribute: attr, Parity: p})
	}
	SortParity(results)
	return results
}

// SortParity orders results by parity descending, stable, NaN last
func SortParity(results []ParityResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Parity, results[j].Parity
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		default:
			return a > b
		}
	})
}

// activeCategory returns, per row, the index of the first column holding the
// row's maximum value.
func (e *Engine) activeCategory(cols []string) []int {
	data := make([][]float64, len(cols))
	for j, name := range cols {
		data[j], _ = e.table.Column(name)
	}

	out := make([]int, e.table.Rows())
	for i := range out {
		best := 0
		for j := 1; j < len(data); j++ {
			if data[j][i] > data[best][i] {
				best = j
			}
		}
		out[i] = best
	}
	return out
}

// meanSpread is max − min of the mean label per bin over non-empty bins.
// Rows with a negative bin are ignored.
func (e *Engine) meanSpread(bins []int, k int) float64 {
	sums := make([]float64, k)
	counts := make([]int, k)
	for i, b := range bins {
		if b < 0 || b >= k {
			continue
		}
		sums[b] += e.labelValues[i]
		counts[b]++
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	seen := false
	for b := range sums {
		if counts[b] == 0 {
			continue
		}
		m := sums[b] / float64(counts[b])
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
		seen = true
	}
	if !seen {
		return nan()
	}
	return hi - lo
}
