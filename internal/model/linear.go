// Package model provides the classifiers fairlens can audit without an
// external model server: a linear/logistic scorer loaded from YAML and a
// pass-through for predictions computed elsewhere.
package model

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/fairlens/internal/dataset"
	ferrors "github.com/rohankatakam/fairlens/internal/errors"
)

// Link selects how the linear score is turned into a decision value
type Link string

const (
	// LinkLogistic applies the sigmoid before thresholding
	LinkLogistic Link = "logistic"
	// LinkIdentity thresholds the raw score
	LinkIdentity Link = "identity"
)

// Linear is a fitted linear classifier: predict 1 when
// link(w·x + bias) >= threshold. Weights are keyed by feature column name;
// table columns without a weight contribute nothing.
type Linear struct {
	Link      Link               `yaml:"link"`
	Bias      float64            `yaml:"bias"`
	Threshold float64            `yaml:"threshold"`
	Weights   map[string]float64 `yaml:"weights"`
}

// LoadLinear reads a Linear model from a YAML file
func LoadLinear(path string) (*Linear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.FileSystemError(err, "failed to read model file")
	}
	m, err := ParseLinear(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseLinear decodes a Linear model from YAML. The threshold defaults to
// 0.5 for the logistic link and 0 for the identity link.
func ParseLinear(data []byte) (*Linear, error) {
	var raw struct {
		Link      Link               `yaml:"link"`
		Bias      float64            `yaml:"bias"`
		Threshold *float64           `yaml:"threshold"`
		Weights   map[string]float64 `yaml:"weights"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ferrors.ModelError(err, "invalid model file")
	}

	m := Linear{Link: raw.Link, Bias: raw.Bias, Weights: raw.Weights}
	if m.Link == "" {
		m.Link = LinkLogistic
	}
	switch m.Link {
	case LinkLogistic:
		m.Threshold = 0.5
	case LinkIdentity:
		m.Threshold = 0
	default:
		return nil, ferrors.ModelErrorf(fmt.Errorf("unknown link %q", m.Link), "invalid model file")
	}
	if raw.Threshold != nil {
		m.Threshold = *raw.Threshold
	}
	if len(m.Weights) == 0 {
		return nil, ferrors.ModelError(fmt.Errorf("no weights"), "invalid model file")
	}
	return &m, nil
}

// Predict scores every table row. It fails if a weight names a column the
// table does not have.
func (m *Linear) Predict(table *dataset.Table) ([]int, error) {
	columns := table.Columns()
	w := make([]float64, len(columns))
	used := 0
	for j, name := range columns {
		if v, ok := m.Weights[name]; ok {
			w[j] = v
			used++
		}
	}
	if used != len(m.Weights) {
		for name := range m.Weights {
			if !table.Has(name) {
				return nil, fmt.Errorf("model weight %q has no matching column", name)
			}
		}
	}

	preds := make([]int, table.Rows())
	if table.Rows() == 0 {
		return preds, nil
	}

	scores := make([]float64, table.Rows())
	if len(columns) > 0 {
		var s mat.VecDense
		s.MulVec(table.Matrix(), mat.NewVecDense(len(w), w))
		for i := range scores {
			scores[i] = s.AtVec(i)
		}
	}

	for i, z := range scores {
		if m.decision(z+m.Bias) >= m.Threshold {
			preds[i] = 1
		}
	}
	return preds, nil
}

func (m *Linear) decision(z float64) float64 {
	if m.Link == LinkIdentity {
		return z
	}
	return 1 / (1 + math.Exp(-z))
}
