package model

import (
	"fmt"

	"github.com/rohankatakam/fairlens/internal/dataset"
)

// Constant predicts the same class for every row. An always-negative
// Constant is the baseline used when only label-derived metrics are needed.
type Constant struct {
	Class int
}

// Predict returns Class for each table row
func (c Constant) Predict(table *dataset.Table) ([]int, error) {
	if c.Class != 0 && c.Class != 1 {
		return nil, fmt.Errorf("constant class must be 0 or 1, got %d", c.Class)
	}
	preds := make([]int, table.Rows())
	for i := range preds {
		preds[i] = c.Class
	}
	return preds, nil
}
