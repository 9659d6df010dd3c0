package metrics

import (
	"fmt"
	"math"

	"github.com/rohankatakam/fairlens/internal/dataset"
)

// Classifier is the fitted binary model under audit
type Classifier interface {
	// Predict returns one {0,1} prediction per table row, in row order.
	Predict(table *dataset.Table) ([]int, error)
}

// AttributeKind says how groups are derived for an attribute
type AttributeKind int

const (
	KindUnknown AttributeKind = iota
	KindNumeric
	KindCategorical
)

// String returns the string representation of AttributeKind
func (k AttributeKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// NumericGroupPolicy decides how a numeric protected attribute is split into
// groups for FNR/FPR.
type NumericGroupPolicy string

const (
	// NumericWholePopulation treats the whole column as one group named "all"
	NumericWholePopulation NumericGroupPolicy = "whole-population"
	// NumericExclude leaves numeric attributes out of FNR/FPR
	NumericExclude NumericGroupPolicy = "exclude"
	// NumericQuantile uses the statistical-parity quantile bins as groups
	NumericQuantile NumericGroupPolicy = "quantile"
)

// Valid reports whether p is a known policy
func (p NumericGroupPolicy) Valid() bool {
	switch p {
	case NumericWholePopulation, NumericExclude, NumericQuantile:
		return true
	}
	return false
}

const (
	// WholePopulationGroup names the single group of a numeric attribute
	// under NumericWholePopulation.
	WholePopulationGroup = "all"

	// DefaultParityBins is the number of quantile bins for numeric parity
	DefaultParityBins = 5
)

// Config names the attributes under audit. Categorical names are base names
// ("sex"), not their one-hot columns ("sex_female").
type Config struct {
	Numeric       []string
	Categorical   []string
	Protected     []string
	NumericGroups NumericGroupPolicy
	ParityBins    int
}

// Kind classifies an attribute. A name declared both numeric and categorical
// is numeric.
func (c Config) Kind(attribute string) AttributeKind {
	for _, n := range c.Numeric {
		if n == attribute {
			return KindNumeric
		}
	}
	for _, n := range c.Categorical {
		if n == attribute {
			return KindCategorical
		}
	}
	return KindUnknown
}

func (c Config) clone() Config {
	out := c
	out.Numeric = append([]string(nil), c.Numeric...)
	out.Categorical = append([]string(nil), c.Categorical...)
	out.Protected = append([]string(nil), c.Protected...)
	if out.NumericGroups == "" {
		out.NumericGroups = NumericWholePopulation
	}
	if out.ParityBins == 0 {
		out.ParityBins = DefaultParityBins
	}
	return out
}

// Group is one population subgroup of an attribute. Members is aligned to
// table rows. Values carries a copy of the raw column for the
// whole-population group of a numeric attribute and is nil otherwise.
type Group struct {
	Name    string
	Members []bool
	Values  []float64
}

// Size returns the number of member rows
func (g Group) Size() int {
	n := 0
	for _, m := range g.Members {
		if m {
			n++
		}
	}
	return n
}

// Rates maps attribute → group → rate. Undefined rates are NaN.
type Rates map[string]map[string]float64

// ParityResult is the statistical parity of one attribute
type ParityResult struct {
	Attribute string  `json:"attribute"`
	Parity    float64 `json:"parity"`
}

// ReportRow is one protected attribute in the consolidated report
type ReportRow struct {
	Attribute   string             `json:"attribute"`
	Kind        AttributeKind      `json:"-"`
	Correlation float64            `json:"correlation"`
	FNR         map[string]float64 `json:"fnr"`
	FPR         map[string]float64 `json:"fpr"`
}

// Report is the consolidated per-attribute view. Parity is reported separately.
type Report struct {
	Samples int         `json:"samples"`
	Rows    []ReportRow `json:"rows"`
}

// Row returns the row for an attribute
func (r *Report) Row(attribute string) (ReportRow, bool) {
	for _, row := range r.Rows {
		if row.Attribute == attribute {
			return row, true
		}
	}
	return ReportRow{}, false
}

// MaxGap returns the largest spread between defined group rates in m, and
// false when fewer than two groups are defined.
func MaxGap(m map[string]float64) (float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, v := range m {
		if math.IsNaN(v) {
			continue
		}
		n++
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if n < 2 {
		return 0, false
	}
	return hi - lo, true
}

// FormatRate renders a rate with NaN spelled out
func FormatRate(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}
