package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/fairlens/internal/config"
	"github.com/rohankatakam/fairlens/internal/logging"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile      string
	verbose      bool
	outputFormat string
	logger       *logrus.Logger
	cfg          *config.Config
)

func main() {
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fairlens",
	Short: "fairlens - fairness audits for binary classifiers",
	Long: `fairlens measures how a fitted binary classifier treats protected groups:
per-group false negative and false positive rates, the correlation of each
protected attribute with the true label, and statistical parity.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			if cfgFile != "" {
				return err
			}
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
		if outputFormat != "" {
			cfg.Output.Format = outputFormat
		}

		if err := logging.Initialize(loggingConfig(cfg.Logging, verbose)); err != nil {
			return err
		}
		if path := logging.GetLogFilePath(); path != "" {
			slog.Debug("writing logs to file", "path", path)
		}
		return nil
	},
}

// loggingConfig maps the logging section onto the slog logger. A log file
// switches to the production layout; --verbose adds debug level and source.
func loggingConfig(lc config.LoggingConfig, verbose bool) logging.Config {
	lcfg := logging.Config{JSONFormat: lc.JSON}
	if lc.File != "" {
		lcfg = logging.ProductionConfig(lc.File)
	}
	lcfg.Level = logging.ParseLevel(lc.Level)
	lcfg.AddSource = lc.AddSource
	if lc.MaxSizeMB > 0 {
		lcfg.MaxSize = int64(lc.MaxSizeMB) * 1024 * 1024
	}
	if lc.MaxBackups > 0 {
		lcfg.MaxBackups = lc.MaxBackups
	}
	if verbose {
		debug := logging.DebugConfig()
		lcfg.Level = debug.Level
		lcfg.AddSource = debug.AddSource
	}
	lcfg.Writer = os.Stderr
	return lcfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .fairlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", "", "output format: standard, quiet, json (default: json when piped)")

	// Set custom version template
	rootCmd.SetVersionTemplate(`fairlens {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	// Add subcommands
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(parityCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}
