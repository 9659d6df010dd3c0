package metrics

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rohankatakam/fairlens/internal/dataset"
	ferrors "github.com/rohankatakam/fairlens/internal/errors"
)

// Engine computes fairness metrics for one classifier over one dataset.
// Everything it holds is read-only after NewEngine returns, so an Engine is
// safe for concurrent use.
type Engine struct {
	table       *dataset.Table
	labels      []int
	labelValues []float64
	predictions []int
	cfg         Config
	columns     map[string][]string
	logger      *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine validates the inputs, builds the categorical column index and
// runs the classifier once over the table.
func NewEngine(clf Classifier, table *dataset.Table, labels []int, cfg Config, opts ...Option) (*Engine, error) {
	if clf == nil {
		return nil, ferrors.ValidationError("classifier is required")
	}
	if table == nil {
		return nil, ferrors.ValidationError("feature table is required")
	}
	if len(labels) != table.Rows() {
		return nil, ferrors.ValidationErrorf("label vector has %d rows, feature table has %d", len(labels), table.Rows())
	}
	if err := checkBinary("label", labels); err != nil {
		return nil, err
	}

	cfg = cfg.clone()
	if err := validateConfig(cfg, table); err != nil {
		return nil, err
	}

	e := &Engine{
		table:       table,
		labels:      append([]int(nil), labels...),
		labelValues: make([]float64, len(labels)),
		cfg:         cfg,
		columns:     buildColumnIndex(table.Columns(), cfg),
		logger:      slog.Default().With("component", "metrics"),
	}
	for _, opt := range opts {
		opt(e)
	}
	for i, y := range labels {
		e.labelValues[i] = float64(y)
	}

	preds, err := clf.Predict(table)
	if err != nil {
		return nil, ferrors.ModelError(err, "classifier prediction failed")
	}
	if len(preds) != table.Rows() {
		return nil, ferrors.ValidationErrorf("classifier returned %d predictions for %d rows", len(preds), table.Rows())
	}
	if err := checkBinary("prediction", preds); err != nil {
		return nil, err
	}
	e.predictions = append([]int(nil), preds...)

	for _, attr := range cfg.Protected {
		if cfg.Kind(attr) == KindCategorical && len(e.columns[attr]) == 0 {
			e.logger.Warn("no one-hot columns for categorical attribute", "attribute", attr)
		}
	}
	e.logger.Debug("engine ready",
		"rows", table.Rows(),
		"columns", len(table.Columns()),
		"protected", len(cfg.Protected),
		"numeric_groups", cfg.NumericGroups,
	)

	return e, nil
}

func checkBinary(what string, values []int) error {
	for i, v := range values {
		if v != 0 && v != 1 {
			return ferrors.ValidationErrorf("%s at row %d is %d, want 0 or 1", what, i, v)
		}
	}
	return nil
}

func validateConfig(cfg Config, table *dataset.Table) error {
	if !cfg.NumericGroups.Valid() {
		return ferrors.ConfigErrorf("unknown numeric group policy %q", cfg.NumericGroups)
	}
	if cfg.ParityBins < 1 {
		return ferrors.ConfigErrorf("parity bins must be positive, got %d", cfg.ParityBins)
	}
	for _, attr := range cfg.Protected {
		if cfg.Kind(attr) == KindUnknown {
			return ferrors.ConfigErrorf("protected attribute %q is neither numeric nor categorical", attr)
		}
	}
	for _, attr := range cfg.Numeric {
		if !table.Has(attr) {
			return ferrors.ValidationErrorf("numeric attribute %q has no column in the feature table", attr)
		}
	}
	return nil
}

// buildColumnIndex maps each categorical attribute to its one-hot columns in
// table order. A column matching several attribute prefixes belongs to the
// longest attribute name, so "age_group_young" goes to "age_group" rather
// than "age". Columns declared numeric are never category columns.
func buildColumnIndex(columns []string, cfg Config) map[string][]string {
	var attrs []string
	for _, a := range cfg.Categorical {
		if cfg.Kind(a) == KindCategorical {
			attrs = append(attrs, a)
		}
	}
	sort.SliceStable(attrs, func(i, j int) bool { return len(attrs[i]) > len(attrs[j]) })

	index := make(map[string][]string, len(attrs))
	for _, col := range columns {
		if cfg.Kind(col) == KindNumeric {
			continue
		}
		for _, a := range attrs {
			prefix := a + "_"
			if len(col) > len(prefix) && strings.HasPrefix(col, prefix) {
				index[a] = append(index[a], col)
				break
			}
		}
	}
	return index
}

// Rows returns the number of samples
func (e *Engine) Rows() int { return e.table.Rows() }

// Config returns a copy of the engine configuration
func (e *Engine) Config() Config { return e.cfg.clone() }

// Predictions returns a copy of the prediction vector
func (e *Engine) Predictions() []int { return append([]int(nil), e.predictions...) }

// Labels returns a copy of the label vector
func (e *Engine) Labels() []int { return append([]int(nil), e.labels...) }

// EncodedColumns returns the one-hot columns of a categorical attribute
func (e *Engine) EncodedColumns(attribute string) []string {
	return append([]string(nil), e.columns[attribute]...)
}

// Accuracy is the share of rows where prediction equals label
func (e *Engine) Accuracy() float64 {
	if len(e.labels) == 0 {
		return nan()
	}
	hits := 0
	for i, y := range e.labels {
		if e.predictions[i] == y {
			hits++
		}
	}
	return float64(hits) / float64(len(e.labels))
}

func (e *Engine) attributes(attrs []string) []string {
	if len(attrs) == 0 {
		return e.cfg.Protected
	}
	return attrs
}

func (e *Engine) String() string {
	return fmt.Sprintf("metrics.Engine{rows: %d, protected: %v}", e.table.Rows(), e.cfg.Protected)
}
