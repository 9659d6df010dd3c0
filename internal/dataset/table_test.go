package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	data := [][]float64{{25, 40, 33}, {1, 0, 1}}
	table, err := NewTable([]string{"age", "sex_female"}, data)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, []string{"age", "sex_female"}, table.Columns())
	assert.True(t, table.Has("age"))
	assert.False(t, table.Has("sex"))

	// caller mutation does not leak into the table
	data[0][0] = 99
	age, ok := table.Column("age")
	require.True(t, ok)
	assert.Equal(t, []float64{25, 40, 33}, age)

	v, ok := table.Value(1, "age")
	require.True(t, ok)
	assert.Equal(t, 40.0, v)
	_, ok = table.Value(3, "age")
	assert.False(t, ok)
}

func TestNewTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		data    [][]float64
	}{
		{"name/data mismatch", []string{"a"}, [][]float64{{1}, {2}}},
		{"ragged columns", []string{"a", "b"}, [][]float64{{1, 2}, {3}}},
		{"duplicate column", []string{"a", "a"}, [][]float64{{1}, {2}}},
		{"empty name", []string{""}, [][]float64{{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.columns, tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMatrix(t *testing.T) {
	table, err := NewTable([]string{"a", "b"}, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	m := table.Matrix()
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 2.0, m.At(1, 0))
	assert.Equal(t, 6.0, m.At(2, 1))
}
