package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rohankatakam/fairlens/internal/config"
	"github.com/rohankatakam/fairlens/internal/metrics"
	"github.com/rohankatakam/fairlens/internal/output"
)

// auditCmd runs the full report: correlation, FNR and FPR per protected
// attribute, plus statistical parity.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report per-group error rates, correlation and parity",
	Long: `Loads the dataset, runs the configured classifier and reports, for every
protected attribute:
  - |Pearson correlation| with the true label
  - False negative rate per group
  - False positive rate per group
  - Statistical parity (spread of the label mean across groups)

Exits non-zero when --max-gap is set and any attribute's FNR or FPR gap
exceeds it.`,
	RunE: runAudit,
}

var (
	auditModel  string
	auditMaxGap float64
)

func init() {
	auditCmd.Flags().StringVar(&auditModel, "model", "", "model file (overrides model.path)")
	auditCmd.Flags().Float64Var(&auditMaxGap, "max-gap", 0, "fail when any FNR/FPR gap between groups exceeds this value (0 disables)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if auditModel != "" {
		cfg.Model.Path = auditModel
	}
	result := cfg.Validate(config.ValidationContextAudit)
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
	clf, err := classifierFor(cfg.Model.Path, ds)
	if err != nil {
		return err
	}
	engine, err := newEngine(clf, ds, cfg, "base")
	if err != nil {
		return err
	}

	doc := output.NewDocument(datasetName(cfg), engine.Rows())
	doc.Accuracy = engine.Accuracy()

	// Report and parity only read the engine, so they run side by side
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc.Report = engine.Report()
		return nil
	})
	g.Go(func() error {
		doc.Parity = engine.StatisticalParity()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"run_id":     doc.RunID,
		"rows":       doc.Samples,
		"attributes": len(doc.Report.Rows),
	}).Debug("Audit complete")

	if err := writeDocument(cmd.OutOrStdout(), cfg, doc); err != nil {
		return err
	}

	if auditMaxGap > 0 {
		return checkGaps(doc.Report, auditMaxGap)
	}
	return nil
}

// checkGaps fails when any attribute's FNR or FPR spread exceeds limit
func checkGaps(report *metrics.Report, limit float64) error {
	for _, row := range report.Rows {
		checks := []struct {
			name  string
			rates map[string]float64
		}{{"FNR", row.FNR}, {"FPR", row.FPR}}
		for _, c := range checks {
			if gap, ok := metrics.MaxGap(c.rates); ok && gap > limit {
				return fmt.Errorf("%s gap for %q is %s, above the limit %s",
					c.name, row.Attribute, metrics.FormatRate(gap), metrics.FormatRate(limit))
			}
		}
	}
	return nil
}
