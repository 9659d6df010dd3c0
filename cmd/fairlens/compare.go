package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rohankatakam/fairlens/internal/config"
	"github.com/rohankatakam/fairlens/internal/dataset"
	"github.com/rohankatakam/fairlens/internal/metrics"
	"github.com/rohankatakam/fairlens/internal/output"
)

// compareCmd audits two models on the same dataset and reports the per-group
// change in FNR and FPR.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare per-group error rates of a candidate model against the base model",
	Long: `Runs the base model (model.path or the dataset's prediction column) and a
candidate model on the same dataset and reports candidate − base FNR and FPR
for every protected group. Deltas involving an undefined rate are NaN.`,
	RunE: runCompare,
}

var compareCandidate string

func init() {
	compareCmd.Flags().StringVar(&compareCandidate, "candidate", "", "candidate model file (overrides model.candidate)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if compareCandidate != "" {
		cfg.Model.Candidate = compareCandidate
	}
	result := cfg.Validate(config.ValidationContextCompare)
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

	var base, candidate *metrics.Engine
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		base, err = buildEngine(cfg.Model.Path, ds, "base")
		return err
	})
	g.Go(func() error {
		var err error
		candidate, err = buildEngine(cfg.Model.Candidate, ds, "candidate")
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	doc := output.NewDocument(datasetName(cfg), candidate.Rows())
	doc.Accuracy = candidate.Accuracy()
	doc.Report = candidate.Report()
	doc.Deltas = metrics.Compare(base.Report(), doc.Report)

	logger.WithFields(logrus.Fields{
		"run_id":             doc.RunID,
		"base_accuracy":      base.Accuracy(),
		"candidate_accuracy": doc.Accuracy,
	}).Debug("Comparison complete")

	return writeDocument(cmd.OutOrStdout(), cfg, doc)
}

func buildEngine(modelPath string, ds *dataset.Dataset, name string) (*metrics.Engine, error) {
	clf, err := classifierFor(modelPath, ds)
	if err != nil {
		return nil, fmt.Errorf("%s model: %w", name, err)
	}
	return newEngine(clf, ds, cfg, name)
}
