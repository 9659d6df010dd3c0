package metrics

import "math"

func nan() float64 { return math.NaN() }

// FalseNegativeRate returns, per group of the attribute, the share of
// positive-label rows predicted negative. A group with no positive labels
// has an undefined (NaN) rate.
func (e *Engine) FalseNegativeRate(attribute string) map[string]float64 {
	return e.errorRate(attribute, 1)
}

// FalsePositiveRate returns, per group of the attribute, the share of
// negative-label rows predicted positive. A group with no negative labels
// has an undefined (NaN) rate.
func (e *Engine) FalsePositiveRate(attribute string) map[string]float64 {
	return e.errorRate(attribute, 0)
}

// FalseNegativeRates computes FalseNegativeRate for each attribute, or for
// every protected attribute when none are given. Attributes without groups
// are omitted.
func (e *Engine) FalseNegativeRates(attributes ...string) Rates {
	return e.collectRates(attributes, e.FalseNegativeRate)
}

// FalsePositiveRates is FalseNegativeRates for the false positive rate
func (e *Engine) FalsePositiveRates(attributes ...string) Rates {
	return e.collectRates(attributes, e.FalsePositiveRate)
}

func (e *Engine) collectRates(attributes []string, rate func(string) map[string]float64) Rates {
	out := make(Rates)
	for _, attr := range e.attributes(attributes) {
		if r := rate(attr); len(r) > 0 {
			out[attr] = r
		}
	}
	return out
}

// errorRate counts, within each group, the rows whose true label is class
// and the subset of those the model got wrong.
func (e *Engine) errorRate(attribute string, class int) map[string]float64 {
	groups := e.Groups(attribute)
	rates := make(map[string]float64, len(groups))

	for _, g := range groups {
		total, wrong := 0, 0
		for i, member := range g.Members {
			if !member || e.labels[i] != class {
				continue
			}
			total++
			if e.predictions[i] != class {
				wrong++
			}
		}

		if total == 0 {
			e.logger.Debug("undefined error rate",
				"attribute", attribute,
				"group", g.Name,
				"class", class,
			)
			rates[g.Name] = nan()
			continue
		}
		rates[g.Name] = float64(wrong) / float64(total)
	}

	return rates
}
