package metrics

import "math"

// Report assembles correlation, FNR and FPR for every protected attribute,
// one row per attribute in configured order. It performs no computation of
// its own beyond calling the metric operations.
func (e *Engine) Report() *Report {
	report := &Report{
		Samples: e.table.Rows(),
		Rows:    make([]ReportRow, 0, len(e.cfg.Protected)),
	}
	for _, attr := range e.cfg.Protected {
		report.Rows = append(report.Rows, ReportRow{
			Attribute:   attr,
			Kind:        e.cfg.Kind(attr),
			Correlation: e.Correlation(attr),
			FNR:         e.FalseNegativeRate(attr),
			FPR:         e.FalsePositiveRate(attr),
		})
	}
	return report
}

// AttributeDelta holds per-group rate changes for one attribute
type AttributeDelta struct {
	Attribute string             `json:"attribute"`
	FNR       map[string]float64 `json:"fnr_delta"`
	FPR       map[string]float64 `json:"fpr_delta"`
}

// Compare returns candidate − base rates for every attribute and group
// present in either report. A group missing on one side, or undefined on
// either, has a NaN delta. Attributes follow base order, then any
// candidate-only attributes.
func Compare(base, candidate *Report) []AttributeDelta {
	var order []string
	seen := make(map[string]bool)
	for _, r := range append(append([]ReportRow(nil), base.Rows...), candidate.Rows...) {
		if !seen[r.Attribute] {
			seen[r.Attribute] = true
			order = append(order, r.Attribute)
		}
	}

	deltas := make([]AttributeDelta, 0, len(order))
	for _, attr := range order {
		b, _ := base.Row(attr)
		c, _ := candidate.Row(attr)
		deltas = append(deltas, AttributeDelta{
			Attribute: attr,
			FNR:       diffRates(b.FNR, c.FNR),
			FPR:       diffRates(b.FPR, c.FPR),
		})
	}
	return deltas
}

func diffRates(base, candidate map[string]float64) map[string]float64 {
	keys := make(map[string]struct{}, len(base)+len(candidate))
	for k := range base {
		keys[k] = struct{}{}
	}
	for k := range candidate {
		keys[k] = struct{}{}
	}

	out := make(map[string]float64, len(keys))
	for k := range keys {
		b, okB := base[k]
		c, okC := candidate[k]
		if !okB || !okC {
			out[k] = math.NaN()
			continue
		}
		out[k] = c - b
	}
	return out
}
