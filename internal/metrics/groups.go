package metrics

import (
	"fmt"
	"strings"
)

// Groups derives the population subgroups of an attribute.
//
// Categorical attributes yield one group per one-hot column, in table column
// order, named by the column suffix after "<attribute>_"; membership is
// "column value == 1". Numeric attributes follow the configured
// NumericGroupPolicy. Attributes with no matching columns, unknown
// attributes, and numeric attributes under NumericExclude yield no groups.
//
// Rows violating the one-hot invariant (no active column, or several) are a
// caller precondition violation: such a row belongs to zero or several
// groups here.
func (e *Engine) Groups(attribute string) []Group {
	switch e.cfg.Kind(attribute) {
	case KindNumeric:
		return e.numericGroups(attribute)
	case KindCategorical:
		return e.categoricalGroups(attribute)
	default:
		return nil
	}
}

func (e *Engine) categoricalGroups(attribute string) []Group {
	cols := e.columns[attribute]
	if len(cols) == 0 {
		return nil
	}

	prefix := attribute + "_"
	groups := make([]Group, 0, len(cols))
	for _, name := range cols {
		values, _ := e.table.Column(name)
		members := make([]bool, len(values))
		for i, v := range values {
			members[i] = v == 1
		}
		groups = append(groups, Group{
			Name:    strings.TrimPrefix(name, prefix),
			Members: members,
		})
	}
	return groups
}

func (e *Engine) numericGroups(attribute string) []Group {
	values, ok := e.table.Column(attribute)
	if !ok {
		return nil
	}

	switch e.cfg.NumericGroups {
	case NumericExclude:
		return nil

	case NumericQuantile:
		bins, k := quantileBins(values, e.cfg.ParityBins)
		groups := make([]Group, k)
		for b := range groups {
			groups[b] = Group{
				Name:    fmt.Sprintf("q%d", b+1),
				Members: make([]bool, len(values)),
			}
		}
		for i, b := range bins {
			if b >= 0 {
				groups[b].Members[i] = true
			}
		}
		return groups

	default:
		members := make([]bool, len(values))
		for i := range members {
			members[i] = true
		}
		return []Group{{
			Name:    WholePopulationGroup,
			Members: members,
			Values:  append([]float64(nil), values...),
		}}
	}
}
