package model

import (
	"fmt"

	"github.com/rohankatakam/fairlens/internal/dataset"
)

// Precomputed replays predictions produced outside fairlens, typically a
// prediction column stored next to the labels in the dataset.
type Precomputed struct {
	predictions []int
}

// NewPrecomputed wraps a prediction vector. The slice is copied.
func NewPrecomputed(predictions []int) *Precomputed {
	return &Precomputed{predictions: append([]int(nil), predictions...)}
}

// Predict returns the stored predictions, failing when their length does not
// match the table.
func (p *Precomputed) Predict(table *dataset.Table) ([]int, error) {
	if len(p.predictions) != table.Rows() {
		return nil, fmt.Errorf("have %d precomputed predictions for %d rows", len(p.predictions), table.Rows())
	}
	return append([]int(nil), p.predictions...), nil
}
