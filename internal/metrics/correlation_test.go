package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsPearson(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"identical", []float64{0, 1, 0, 1, 1}, []float64{0, 1, 0, 1, 1}, 1},
		{"inverted", []float64{1, 0, 1, 0}, []float64{0, 1, 0, 1}, 1},
		{"linear", []float64{1, 2, 3, 4}, []float64{2, 4, 6, 8}, 1},
		{"uncorrelated", []float64{1, 2, 1, 2}, []float64{1, 1, 2, 2}, 0},
		{"constant column", []float64{3, 3, 3, 3}, []float64{0, 1, 0, 1}, math.NaN()},
		{"constant labels", []float64{1, 2, 3, 4}, []float64{1, 1, 1, 1}, math.NaN()},
		{"single sample", []float64{1}, []float64{1}, math.NaN()},
		{"empty", nil, nil, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := absPearson(tt.x, tt.y)
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(got), "got %v", got)
				return
			}
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCorrelationNumericMatchesLabels(t *testing.T) {
	labels := []int{1, 0, 0, 1, 1, 0}
	table := mustTable(t, []string{"flag", "age"},
		[]float64{1, 0, 0, 1, 1, 0},
		[]float64{30, 30, 30, 30, 30, 30},
	)
	cfg := Config{Numeric: []string{"flag", "age"}, Protected: []string{"flag", "age"}}
	e := newTestEngine(t, table, labels, labels, cfg)

	assert.InDelta(t, 1.0, e.Correlation("flag"), 1e-9)
	assert.True(t, math.IsNaN(e.Correlation("age")), "zero variance column")
}

func TestCorrelationCategoricalAveragesDefinedColumns(t *testing.T) {
	labels := []int{1, 1, 0, 0, 1, 0}
	table := mustTable(t, []string{"race_a", "race_b", "race_c"},
		// race_a matches labels exactly: |r| = 1
		[]float64{1, 1, 0, 0, 1, 0},
		// race_b is the complement: |r| = 1
		[]float64{0, 0, 1, 1, 0, 1},
		// race_c is never active: undefined, skipped
		[]float64{0, 0, 0, 0, 0, 0},
	)
	cfg := Config{Categorical: []string{"race"}, Protected: []string{"race"}}
	e := newTestEngine(t, table, labels, labels, cfg)

	assert.InDelta(t, 1.0, e.Correlation("race"), 1e-9)
}

func TestCorrelationPartial(t *testing.T) {
	labels := []int{1, 0, 1, 0}
	table := mustTable(t, []string{"g_x", "g_y"},
		[]float64{1, 1, 0, 0},
		[]float64{0, 0, 1, 1},
	)
	e := newTestEngine(t, table, labels, labels, Config{Categorical: []string{"g"}, Protected: []string{"g"}})

	assert.InDelta(t, 0.0, e.Correlation("g"), 1e-9)
}

func TestCorrelationUndefinedCases(t *testing.T) {
	labels := []int{1, 0, 1}
	table := mustTable(t, []string{"age"}, []float64{20, 30, 40})
	cfg := Config{
		Numeric:     []string{"age"},
		Categorical: []string{"marital"},
		Protected:   []string{"age", "marital"},
	}
	e := newTestEngine(t, table, labels, labels, cfg)

	assert.True(t, math.IsNaN(e.Correlation("marital")), "no one-hot columns")
	assert.True(t, math.IsNaN(e.Correlation("unknown")))

	all := e.Correlations()
	assert.Len(t, all, 2)
	for attr, r := range all {
		if !math.IsNaN(r) {
			assert.GreaterOrEqual(t, r, 0.0, attr)
			assert.LessOrEqual(t, r, 1.0, attr)
		}
	}
}
