package config

import (
	"fmt"
	"strings"

	"github.com/rohankatakam/fairlens/internal/errors"
	"github.com/rohankatakam/fairlens/internal/metrics"
)

// ValidationContext specifies what configuration is required
type ValidationContext string

const (
	// ValidationContextAudit - fairlens audit needs a dataset, labels and predictions
	ValidationContextAudit ValidationContext = "audit"
	// ValidationContextParity - fairlens parity needs a dataset and labels only
	ValidationContextParity ValidationContext = "parity"
	// ValidationContextCompare - fairlens compare needs a base and a candidate model
	ValidationContextCompare ValidationContext = "compare"
	// ValidationContextAll - validate all configuration
	ValidationContextAll ValidationContext = "all"
)

// ValidationResult holds validation results
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...interface{}) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// AddWarning adds a warning to the validation result
func (vr *ValidationResult) AddWarning(format string, args ...interface{}) {
	vr.Warnings = append(vr.Warnings, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid || len(vr.Errors) > 0
}

// Error returns a formatted error message
func (vr *ValidationResult) Error() string {
	if !vr.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")
	for _, err := range vr.Errors {
		sb.WriteString(fmt.Sprintf("  ❌ %s\n", err))
	}

	if len(vr.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warn := range vr.Warnings {
			sb.WriteString(fmt.Sprintf("  ⚠️  %s\n", warn))
		}
	}

	return sb.String()
}

// Err returns the result as a config error, or nil when valid
func (vr *ValidationResult) Err() error {
	if !vr.HasErrors() {
		return nil
	}
	return errors.ConfigError(strings.TrimSpace(vr.Error()))
}

// Validate validates configuration for the given context
func (c *Config) Validate(ctx ValidationContext) *ValidationResult {
	result := &ValidationResult{Valid: true}

	switch ctx {
	case ValidationContextAudit:
		c.validateDataset(result)
		c.validateColumns(result)
		c.validateFairness(result)
		c.validatePredictions(result, true)
	case ValidationContextParity:
		c.validateDataset(result)
		c.validateColumns(result)
		c.validateFairness(result)
	case ValidationContextCompare:
		c.validateDataset(result)
		c.validateColumns(result)
		c.validateFairness(result)
		c.validatePredictions(result, true)
		if c.Model.Candidate == "" {
			result.AddError("model.candidate is required for compare")
		}
	case ValidationContextAll:
		c.validateDataset(result)
		c.validateColumns(result)
		c.validateFairness(result)
		c.validatePredictions(result, false)
	default:
		result.AddError("unknown validation context %q", ctx)
	}

	c.validateOutput(result)
	return result
}

func (c *Config) validateDataset(result *ValidationResult) {
	switch c.Dataset.Driver {
	case DriverCSV:
		if c.Dataset.Path == "" {
			result.AddError("dataset.path is required for the csv driver")
		}
		if c.Dataset.Query != "" {
			result.AddWarning("dataset.query is ignored by the csv driver")
		}
	case DriverSQLite, DriverPostgres:
		if c.Dataset.DSN == "" {
			result.AddError("dataset.dsn is required for the %s driver. Set it in the config file or via FAIRLENS_DATASET_DSN.", c.Dataset.Driver)
		}
		if c.Dataset.Query == "" {
			result.AddError("dataset.query is required for the %s driver", c.Dataset.Driver)
		}
		if c.Dataset.Driver == DriverPostgres && strings.Contains(c.Dataset.DSN, "sslmode=disable") {
			result.AddWarning("PostgreSQL DSN has sslmode=disable")
		}
	default:
		result.AddError("dataset.driver must be one of csv, sqlite3, pgx. Got %q", c.Dataset.Driver)
	}

	if c.Dataset.LabelColumn == "" {
		result.AddError("dataset.label_column is required")
	}
	for _, name := range c.Dataset.Drop {
		if name == c.Dataset.LabelColumn {
			result.AddError("dataset.drop removes the label column %q", name)
		}
	}
}

func (c *Config) validateColumns(result *ValidationResult) {
	if len(c.Columns.Protected) == 0 {
		result.AddError("columns.protected must name at least one attribute")
	}

	numeric := make(map[string]bool, len(c.Columns.Numeric))
	for _, name := range c.Columns.Numeric {
		numeric[name] = true
	}
	categorical := make(map[string]bool, len(c.Columns.Categorical))
	for _, name := range c.Columns.Categorical {
		categorical[name] = true
		if numeric[name] {
			result.AddWarning("%q is declared numeric and categorical; it will be treated as numeric", name)
		}
	}

	for _, name := range c.Columns.Protected {
		if !numeric[name] && !categorical[name] {
			result.AddError("protected attribute %q is neither numeric nor categorical", name)
		}
		if name == c.Dataset.LabelColumn {
			result.AddError("the label column %q cannot be a protected attribute", name)
		}
	}
}

func (c *Config) validateFairness(result *ValidationResult) {
	if !metrics.NumericGroupPolicy(c.Fairness.NumericGroups).Valid() {
		result.AddError("fairness.numeric_groups must be one of whole-population, exclude, quantile. Got %q", c.Fairness.NumericGroups)
	}
	if c.Fairness.ParityBins < 1 {
		result.AddError("fairness.parity_bins must be at least 1, got %d", c.Fairness.ParityBins)
	}
}

func (c *Config) validatePredictions(result *ValidationResult, required bool) {
	hasModel := c.Model.Path != ""
	hasColumn := c.Dataset.PredictionColumn != ""

	switch {
	case hasModel && hasColumn:
		result.AddWarning("both model.path and dataset.prediction_column are set; the model is used")
	case !hasModel && !hasColumn:
		if required {
			result.AddError("either model.path or dataset.prediction_column is required")
		} else {
			result.AddWarning("no model or prediction column configured; only parity can be computed")
		}
	}

	if hasColumn && c.Dataset.PredictionColumn == c.Dataset.LabelColumn {
		result.AddError("dataset.prediction_column must differ from the label column")
	}
}

func (c *Config) validateOutput(result *ValidationResult) {
	switch c.Output.Format {
	case "", "standard", "quiet", "json":
	default:
		result.AddError("output.format must be one of standard, quiet, json. Got %q", c.Output.Format)
	}
}
