package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Correlation returns the absolute Pearson correlation between an
// attribute's encoding and the true labels.
//
// Numeric attributes correlate the raw column. Categorical attributes
// average the absolute correlation of each one-hot column, skipping columns
// whose correlation is undefined. The result is NaN when nothing is defined:
// fewer than two rows, a constant column or label vector, or a categorical
// attribute with no columns.
func (e *Engine) Correlation(attribute string) float64 {
	switch e.cfg.Kind(attribute) {
	case KindNumeric:
		values, ok := e.table.Column(attribute)
		if !ok {
			return nan()
		}
		return absPearson(values, e.labelValues)

	case KindCategorical:
		var defined []float64
		for _, name := range e.columns[attribute] {
			values, _ := e.table.Column(name)
			if r := absPearson(values, e.labelValues); !math.IsNaN(r) {
				defined = append(defined, r)
			}
		}
		if len(defined) == 0 {
			return nan()
		}
		return stat.Mean(defined, nil)

	default:
		return nan()
	}
}

// Correlations computes Correlation for each attribute, or for every
// protected attribute when none are given.
func (e *Engine) Correlations(attributes ...string) map[string]float64 {
	attrs := e.attributes(attributes)
	out := make(map[string]float64, len(attrs))
	for _, attr := range attrs {
		out[attr] = e.Correlation(attr)
	}
	return out
}

// absPearson is |r(x, y)|, or NaN when either side has zero variance or
// there are fewer than two samples.
func absPearson(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return nan()
	}
	if constant(x) || constant(y) {
		return nan()
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return r
	}
	// rounding can push a perfect correlation slightly past 1
	return math.Min(math.Abs(r), 1)
}

func constant(x []float64) bool {
	return floats.Max(x) == floats.Min(x)
}
