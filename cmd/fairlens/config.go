package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/fairlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective fairlens configuration",
	Long:  `Prints the configuration after config file, .env files and FAIRLENS_* overrides are applied.`,
	RunE:  runConfigList,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [audit|parity|compare|all]",
	Short: "Validate configuration for a command",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	printConfig(cmd.OutOrStdout(), cfg)
	return nil
}

func printConfig(w io.Writer, c *config.Config) {
	fmt.Fprintln(w, "📋 fairlens Configuration")
	fmt.Fprintln(w, "════════════════════════")

	fmt.Fprintf(w, "\n💾 Dataset:\n")
	fmt.Fprintf(w, "  dataset.driver = %s\n", c.Dataset.Driver)
	if c.Dataset.Path != "" {
		fmt.Fprintf(w, "  dataset.path = %s\n", c.Dataset.Path)
	}
	if c.Dataset.DSN != "" {
		fmt.Fprintf(w, "  dataset.dsn = %s\n", maskDSN(c.Dataset.DSN))
	}
	if c.Dataset.Query != "" {
		fmt.Fprintf(w, "  dataset.query = %s\n", c.Dataset.Query)
	}
	fmt.Fprintf(w, "  dataset.label_column = %s\n", orUnset(c.Dataset.LabelColumn))
	fmt.Fprintf(w, "  dataset.prediction_column = %s\n", orUnset(c.Dataset.PredictionColumn))
	fmt.Fprintf(w, "  dataset.encode = %s\n", list(c.Dataset.Encode))
	fmt.Fprintf(w, "  dataset.drop = %s\n", list(c.Dataset.Drop))

	fmt.Fprintf(w, "\n🏷️  Columns:\n")
	fmt.Fprintf(w, "  columns.numeric = %s\n", list(c.Columns.Numeric))
	fmt.Fprintf(w, "  columns.categorical = %s\n", list(c.Columns.Categorical))
	fmt.Fprintf(w, "  columns.protected = %s\n", list(c.Columns.Protected))

	fmt.Fprintf(w, "\n⚖️  Fairness:\n")
	fmt.Fprintf(w, "  fairness.numeric_groups = %s\n", c.Fairness.NumericGroups)
	fmt.Fprintf(w, "  fairness.parity_bins = %d\n", c.Fairness.ParityBins)

	fmt.Fprintf(w, "\n🤖 Model:\n")
	fmt.Fprintf(w, "  model.path = %s\n", orUnset(c.Model.Path))
	fmt.Fprintf(w, "  model.candidate = %s\n", orUnset(c.Model.Candidate))

	fmt.Fprintf(w, "\n📤 Output:\n")
	fmt.Fprintf(w, "  output.format = %s\n", orUnset(c.Output.Format))
	fmt.Fprintf(w, "  logging.level = %s\n", c.Logging.Level)
	if c.Logging.File != "" {
		fmt.Fprintf(w, "  logging.file = %s\n", c.Logging.File)
	}
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	ctx := config.ValidationContextAll
	if len(args) == 1 {
		ctx = config.ValidationContext(args[0])
	}

	result := cfg.Validate(ctx)
	out := cmd.OutOrStdout()
	if result.HasErrors() {
		fmt.Fprint(out, result.Error())
		return fmt.Errorf("configuration is not valid for %s", ctx)
	}

	for _, warn := range result.Warnings {
		fmt.Fprintf(out, "  ⚠️  %s\n", warn)
	}
	fmt.Fprintf(out, "✅ Configuration is valid for %s\n", ctx)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func list(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}

// maskDSN hides the password in URL and key=value connection strings
func maskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=***"
		}
	}
	return strings.Join(fields, " ")
}
