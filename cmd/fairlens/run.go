package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/fairlens/internal/config"
	"github.com/rohankatakam/fairlens/internal/dataset"
	ferrors "github.com/rohankatakam/fairlens/internal/errors"
	"github.com/rohankatakam/fairlens/internal/metrics"
	"github.com/rohankatakam/fairlens/internal/model"
	"github.com/rohankatakam/fairlens/internal/output"
)

// loadDataset reads the configured source
func loadDataset(ctx context.Context, c *config.Config, log *logrus.Logger) (*dataset.Dataset, error) {
	start := time.Now()

	var (
		ds  *dataset.Dataset
		err error
	)
	switch c.Dataset.Driver {
	case config.DriverCSV:
		ds, err = dataset.LoadCSV(c.Dataset.Path, c.LoadOptions())
	default:
		ds, err = dataset.LoadSQL(ctx, dataset.SQLSource{
			Driver: c.Dataset.Driver,
			DSN:    c.Dataset.DSN,
			Query:  c.Dataset.Query,
		}, c.LoadOptions(), log)
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"source":   datasetName(c),
		"rows":     ds.Table.Rows(),
		"features": len(ds.Table.Columns()),
		"duration": time.Since(start),
	}).Debug("Dataset loaded")
	return ds, nil
}

func datasetName(c *config.Config) string {
	if c.Dataset.Driver == config.DriverCSV {
		return c.Dataset.Path
	}
	return c.Dataset.Driver + " query"
}

// classifierFor picks the model file when given, then the dataset's
// prediction column.
func classifierFor(modelPath string, ds *dataset.Dataset) (metrics.Classifier, error) {
	if modelPath != "" {
		return model.LoadLinear(modelPath)
	}
	if ds.Predictions != nil {
		return model.NewPrecomputed(ds.Predictions), nil
	}
	// validation requires one of the two before a dataset is loaded
	return nil, ferrors.InternalErrorf("no model or prediction column configured")
}

func newEngine(clf metrics.Classifier, ds *dataset.Dataset, c *config.Config, name string) (*metrics.Engine, error) {
	return metrics.NewEngine(clf, ds.Table, ds.Labels, c.MetricsConfig(),
		metrics.WithLogger(slog.Default().With("component", "metrics", "model", name)))
}

// writeDocument renders doc in the configured format
func writeDocument(w io.Writer, c *config.Config, doc *output.Document) error {
	format, err := output.ParseFormat(c.Output.Format)
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(doc, w)
}
