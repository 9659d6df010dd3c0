// Package dataset holds the encoded feature table consumed by the fairness
// engine and the loaders that build it from CSV files or SQL queries.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Table is an immutable, column-oriented feature table. Row order is sample
// identity; column order is the order columns were declared.
type Table struct {
	columns []string
	index   map[string]int
	data    [][]float64
	rows    int
}

// NewTable builds a table from column names and column-major data.
// The slices are copied so later mutation by the caller has no effect.
func NewTable(columns []string, data [][]float64) (*Table, error) {
	if len(columns) != len(data) {
		return nil, fmt.Errorf("table has %d column names but %d data columns", len(columns), len(data))
	}

	t := &Table{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
		data:    make([][]float64, len(data)),
	}
	copy(t.columns, columns)

	for i, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		t.index[name] = i

		if i == 0 {
			t.rows = len(data[i])
		} else if len(data[i]) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(data[i]), t.rows)
		}
		t.data[i] = append([]float64(nil), data[i]...)
	}

	return t, nil
}

// Rows returns the number of samples
func (t *Table) Rows() int { return t.rows }

// Columns returns the column names in table order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the table has a column with the given name
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the values of a column. The returned slice is shared with
// the table and must be treated as read-only.
func (t *Table) Column(name string) ([]float64, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.data[i], true
}

// Value returns a single cell
func (t *Table) Value(row int, column string) (float64, bool) {
	col, ok := t.Column(column)
	if !ok || row < 0 || row >= t.rows {
		return 0, false
	}
	return col[row], true
}

// Matrix returns a rows×columns dense copy of the table, in column order.
func (t *Table) Matrix() *mat.Dense {
	if t.rows == 0 || len(t.columns) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(t.rows, len(t.columns), nil)
	for j, col := range t.data {
		m.SetCol(j, col)
	}
	return m
}
