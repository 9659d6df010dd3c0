package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	ferrors "github.com/rohankatakam/fairlens/internal/errors"
)

// LoadOptions controls how raw records become a feature table
type LoadOptions struct {
	// LabelColumn holds the true {0,1} labels and is removed from the features
	LabelColumn string
	// PredictionColumn optionally holds precomputed {0,1} predictions
	PredictionColumn string
	// Encode lists raw categorical columns to one-hot encode as <column>_<value>
	Encode []string
	// Drop lists columns to ignore entirely (identifiers, free text)
	Drop []string
}

// Dataset is a loaded feature table with its aligned label vector and,
// when the source carried them, precomputed predictions.
type Dataset struct {
	Table       *Table
	Labels      []int
	Predictions []int
}

// frame is the string-typed intermediate every loader produces
type frame struct {
	header  []string
	records [][]string
}

func (f *frame) build(opts LoadOptions) (*Dataset, error) {
	if opts.LabelColumn == "" {
		return nil, ferrors.ConfigError("label column is required")
	}

	pos := make(map[string]int, len(f.header))
	for i, h := range f.header {
		if _, dup := pos[h]; dup {
			return nil, ferrors.DatasetErrorf(fmt.Errorf("duplicate header %q", h), "invalid dataset header")
		}
		pos[h] = i
	}

	labelIdx, ok := pos[opts.LabelColumn]
	if !ok {
		return nil, ferrors.DatasetErrorf(fmt.Errorf("column %q not found", opts.LabelColumn), "missing label column")
	}

	for i, rec := range f.records {
		if len(rec) != len(f.header) {
			return nil, ferrors.DatasetErrorf(
				fmt.Errorf("row %d has %d fields, header has %d", i+1, len(rec), len(f.header)),
				"malformed dataset")
		}
	}

	ds := &Dataset{}

	labels, err := f.binaryColumn(labelIdx)
	if err != nil {
		return nil, ferrors.DatasetErrorf(err, "invalid label column %q", opts.LabelColumn)
	}
	ds.Labels = labels

	skip := map[string]bool{opts.LabelColumn: true}
	for _, d := range opts.Drop {
		skip[d] = true
	}

	if opts.PredictionColumn != "" {
		predIdx, ok := pos[opts.PredictionColumn]
		if !ok {
			return nil, ferrors.DatasetErrorf(fmt.Errorf("column %q not found", opts.PredictionColumn), "missing prediction column")
		}
		preds, err := f.binaryColumn(predIdx)
		if err != nil {
			return nil, ferrors.DatasetErrorf(err, "invalid prediction column %q", opts.PredictionColumn)
		}
		ds.Predictions = preds
		skip[opts.PredictionColumn] = true
	}

	encode := make(map[string]bool, len(opts.Encode))
	for _, e := range opts.Encode {
		if _, ok := pos[e]; !ok {
			return nil, ferrors.DatasetErrorf(fmt.Errorf("column %q not found", e), "cannot encode column")
		}
		encode[e] = true
	}

	var (
		names []string
		data  [][]float64
	)
	for j, h := range f.header {
		if skip[h] {
			continue
		}
		if encode[h] {
			encNames, encData, err := oneHot(h, f.column(j))
			if err != nil {
				return nil, ferrors.DatasetErrorf(err, "cannot encode column %q", h)
			}
			names = append(names, encNames...)
			data = append(data, encData...)
			continue
		}
		col, err := f.floatColumn(j)
		if err != nil {
			return nil, ferrors.DatasetErrorf(err, "invalid feature column %q", h)
		}
		names = append(names, h)
		data = append(data, col)
	}

	table, err := NewTable(names, data)
	if err != nil {
		return nil, ferrors.DatasetError(err, "failed to build feature table")
	}
	ds.Table = table
	if len(names) == 0 {
		ds.Table = emptyTable(len(f.records))
	}

	return ds, nil
}

func (f *frame) column(j int) []string {
	out := make([]string, len(f.records))
	for i, rec := range f.records {
		out[i] = rec[j]
	}
	return out
}

func (f *frame) floatColumn(j int) ([]float64, error) {
	out := make([]float64, len(f.records))
	for i, rec := range f.records {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[j]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func (f *frame) binaryColumn(j int) ([]int, error) {
	out := make([]int, len(f.records))
	for i, rec := range f.records {
		v, err := parseBinary(rec[j])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// parseBinary accepts 0/1 in integer or float form and true/false.
func parseBinary(s string) (int, error) {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a binary value", s)
	}
	switch v {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	}
	return 0, fmt.Errorf("%q is not a binary value", s)
}

// oneHot expands a raw categorical column into <name>_<value> indicator
// columns, one per distinct value in sorted order. Blank values are rejected:
// every row must activate exactly one indicator column.
func oneHot(name string, values []string) ([]string, [][]float64, error) {
	seen := make(map[string]int)
	var cats []string
	for i, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil, fmt.Errorf("row %d: blank category", i+1)
		}
		if _, ok := seen[v]; !ok {
			seen[v] = 0
			cats = append(cats, v)
		}
	}
	sort.Strings(cats)
	for i, c := range cats {
		seen[c] = i
	}

	names := make([]string, len(cats))
	data := make([][]float64, len(cats))
	for i, c := range cats {
		names[i] = name + "_" + c
		data[i] = make([]float64, len(values))
	}
	for row, v := range values {
		data[seen[strings.TrimSpace(v)]][row] = 1
	}
	return names, data, nil
}

func emptyTable(rows int) *Table {
	return &Table{index: map[string]int{}, rows: rows}
}
