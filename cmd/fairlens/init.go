package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/fairlens/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a fairlens configuration file",
	Long: `Writes .fairlens/config.yaml (or the --config path) with defaults and the
values given on the command line.

Examples:
  fairlens init --dataset adult.csv --label income --categorical sex,race --numeric age --protected sex,race,age`,
	RunE: runInit,
}

var (
	initForce       bool
	initDataset     string
	initLabel       string
	initNumeric     []string
	initCategorical []string
	initProtected   []string
	initModel       string
)

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	initCmd.Flags().StringVar(&initDataset, "dataset", "", "CSV dataset path")
	initCmd.Flags().StringVar(&initLabel, "label", "", "label column")
	initCmd.Flags().StringSliceVar(&initNumeric, "numeric", nil, "numeric attributes")
	initCmd.Flags().StringSliceVar(&initCategorical, "categorical", nil, "categorical attributes (one-hot base names)")
	initCmd.Flags().StringSliceVar(&initProtected, "protected", nil, "protected attributes")
	initCmd.Flags().StringVar(&initModel, "model", "", "model file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := cfgFile
	if configPath == "" {
		configPath = filepath.Join(".fairlens", "config.yaml")
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("configuration file already exists at %s (use --force to overwrite)", configPath)
	}

	c := config.Default()
	c.Dataset.Path = initDataset
	c.Dataset.LabelColumn = initLabel
	c.Dataset.Encode = initCategorical
	c.Columns.Numeric = initNumeric
	c.Columns.Categorical = initCategorical
	c.Columns.Protected = initProtected
	c.Model.Path = initModel

	if err := c.Save(configPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Created configuration file: %s\n", configPath)

	result := c.Validate(config.ValidationContextAudit)
	if result.HasErrors() {
		fmt.Fprintln(out, "\n💡 Still missing before 'fairlens audit' can run:")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  - %s\n", strings.TrimSpace(e))
		}
	}
	return nil
}
