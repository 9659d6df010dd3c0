package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/fairlens/internal/dataset"
	ferrors "github.com/rohankatakam/fairlens/internal/errors"
	"github.com/rohankatakam/fairlens/internal/metrics"
)

var (
	_ metrics.Classifier = (*Linear)(nil)
	_ metrics.Classifier = (*Precomputed)(nil)
	_ metrics.Classifier = Constant{}
)

func testTable(t *testing.T) *dataset.Table {
	table, err := dataset.NewTable(
		[]string{"age", "sex_female", "sex_male"},
		[][]float64{
			{20, 41, 60, 35},
			{1, 0, 1, 0},
			{0, 1, 0, 1},
		},
	)
	require.NoError(t, err)
	return table
}

func TestParseLinearDefaults(t *testing.T) {
	m, err := ParseLinear([]byte("bias: -2\nweights:\n  age: 0.05\n"))
	require.NoError(t, err)
	assert.Equal(t, LinkLogistic, m.Link)
	assert.Equal(t, 0.5, m.Threshold)

	m, err = ParseLinear([]byte("link: identity\nweights:\n  age: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Threshold)

	m, err = ParseLinear([]byte("link: logistic\nthreshold: 0\nweights:\n  age: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Threshold, "explicit zero threshold is kept")
}

func TestParseLinearErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"bad yaml":     "weights: [",
		"unknown link": "link: probit\nweights:\n  age: 1\n",
		"no weights":   "bias: 1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLinear([]byte(doc))
			require.Error(t, err)
			assert.Equal(t, ferrors.ErrorTypeModel, ferrors.GetType(err))
		})
	}
}

func TestLinearPredictLogistic(t *testing.T) {
	// sigmoid(0.05*age - 2 + 0.5*female) >= 0.5  ⇔  0.05*age + 0.5*female >= 2
	m := &Linear{
		Link:      LinkLogistic,
		Bias:      -2,
		Threshold: 0.5,
		Weights:   map[string]float64{"age": 0.05, "sex_female": 0.5},
	}

	preds, err := m.Predict(testTable(t))
	require.NoError(t, err)
	// ages 20(f) 41(m) 60(f) 35(m): 1.5, 2.05, 3.5, 1.75
	assert.Equal(t, []int{0, 1, 1, 0}, preds)
}

func TestLinearPredictIdentity(t *testing.T) {
	m := &Linear{Link: LinkIdentity, Threshold: 1, Weights: map[string]float64{"sex_male": 1}}

	preds, err := m.Predict(testTable(t))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1}, preds)
}

func TestLinearPredictUnknownWeight(t *testing.T) {
	m := &Linear{Link: LinkLogistic, Threshold: 0.5, Weights: map[string]float64{"income": 1}}

	_, err := m.Predict(testTable(t))
	assert.ErrorContains(t, err, `"income"`)
}

func TestLoadLinear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bias: -2\nweights:\n  age: 0.05\n  sex_female: 0.5\n"), 0644))

	m, err := LoadLinear(path)
	require.NoError(t, err)
	assert.Len(t, m.Weights, 2)

	_, err = LoadLinear(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ferrors.ErrorTypeFileSystem, ferrors.GetType(err))
}

func TestPrecomputed(t *testing.T) {
	src := []int{1, 0, 1, 1}
	p := NewPrecomputed(src)
	src[0] = 0

	preds, err := p.Predict(testTable(t))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1, 1}, preds)

	_, err = NewPrecomputed([]int{1}).Predict(testTable(t))
	assert.Error(t, err)
}

func TestConstant(t *testing.T) {
	preds, err := Constant{Class: 1}.Predict(testTable(t))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, preds)

	preds, err = Constant{}.Predict(testTable(t))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, preds)

	_, err = Constant{Class: 2}.Predict(testTable(t))
	assert.Error(t, err)
}
