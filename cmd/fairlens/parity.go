package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/fairlens/internal/config"
	"github.com/rohankatakam/fairlens/internal/model"
	"github.com/rohankatakam/fairlens/internal/output"
)

// parityCmd ranks attributes by statistical parity. Parity depends on the
// labels only, so no model is needed.
var parityCmd = &cobra.Command{
	Use:   "parity",
	Short: "Rank attributes by statistical parity of the true label",
	RunE:  runParity,
}

var parityAll bool

func init() {
	parityCmd.Flags().BoolVar(&parityAll, "all-attributes", false, "rank every declared attribute, not only the protected ones")
}

func runParity(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result := cfg.Validate(config.ValidationContextParity)
	for _, warn := range result.Warnings {
		logger.Warn(warn)
	}
	if err := result.Err(); err != nil {
		return err
	}

	ds, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Parity never reads predictions, so an always-negative baseline stands
	// in for the model.
	engine, err := newEngine(model.Constant{}, ds, cfg, "parity")
	if err != nil {
		return err
	}

	var attrs []string
	if parityAll {
		attrs = declaredAttributes(cfg)
	}
	doc := output.NewDocument(datasetName(cfg), engine.Rows())
	doc.Parity = engine.StatisticalParity(attrs...)
	return writeDocument(cmd.OutOrStdout(), cfg, doc)
}

// declaredAttributes lists numeric then categorical names without repeats
func declaredAttributes(c *config.Config) []string {
	seen := make(map[string]bool)
	var attrs []string
	for _, name := range append(append([]string(nil), c.Columns.Numeric...), c.Columns.Categorical...) {
		if !seen[name] {
			seen[name] = true
			attrs = append(attrs, name)
		}
	}
	return attrs
}
