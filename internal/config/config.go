package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rohankatakam/fairlens/internal/dataset"
	"github.com/rohankatakam/fairlens/internal/metrics"
)

// Dataset drivers. CSV reads a file; the others run a SQL query.
const (
	DriverCSV      = "csv"
	DriverSQLite   = dataset.DriverSQLite
	DriverPostgres = dataset.DriverPostgres
)

// Config holds all configuration settings for an audit
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset" mapstructure:"dataset"`
	Columns  ColumnsConfig  `yaml:"columns" mapstructure:"columns"`
	Fairness FairnessConfig `yaml:"fairness" mapstructure:"fairness"`
	Model    ModelConfig    `yaml:"model" mapstructure:"model"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

type DatasetConfig struct {
	Driver           string   `yaml:"driver" mapstructure:"driver"` // "csv", "sqlite3", "pgx"
	Path             string   `yaml:"path" mapstructure:"path"`
	DSN              string   `yaml:"dsn" mapstructure:"dsn"`
	Query            string   `yaml:"query" mapstructure:"query"`
	LabelColumn      string   `yaml:"label_column" mapstructure:"label_column"`
	PredictionColumn string   `yaml:"prediction_column" mapstructure:"prediction_column"`
	Encode           []string `yaml:"encode" mapstructure:"encode"`
	Drop             []string `yaml:"drop" mapstructure:"drop"`
}

// ColumnsConfig names attributes. Categorical entries are base names; their
// one-hot columns are found by the "<name>_" prefix.
type ColumnsConfig struct {
	Numeric     []string `yaml:"numeric" mapstructure:"numeric"`
	Categorical []string `yaml:"categorical" mapstructure:"categorical"`
	Protected   []string `yaml:"protected" mapstructure:"protected"`
}

type FairnessConfig struct {
	NumericGroups string `yaml:"numeric_groups" mapstructure:"numeric_groups"`
	ParityBins    int    `yaml:"parity_bins" mapstructure:"parity_bins"`
}

type ModelConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	Candidate string `yaml:"candidate" mapstructure:"candidate"`
}

type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "", "standard", "quiet", "json"
}

// LoggingConfig controls the slog logger. Log files are written as JSON and
// rotated once they reach MaxSizeMB, keeping MaxBackups old files.
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	File       string `yaml:"file" mapstructure:"file"`
	JSON       bool   `yaml:"json" mapstructure:"json"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	AddSource  bool   `yaml:"add_source" mapstructure:"add_source"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Driver: DriverCSV,
		},
		Fairness: FairnessConfig{
			NumericGroups: string(metrics.NumericWholePopulation),
			ParityBins:    metrics.DefaultParityBins,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from file, then applies environment overrides
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("dataset.driver", cfg.Dataset.Driver)
	v.SetDefault("fairness.numeric_groups", cfg.Fairness.NumericGroups)
	v.SetDefault("fairness.parity_bins", cfg.Fairness.ParityBins)
	v.SetDefault("logging.level", cfg.Logging.Level)

	v.SetEnvPrefix("FAIRLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".fairlens")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".fairlens"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence. godotenv never
// overwrites variables that are already set, so earlier files win.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".fairlens", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		_ = godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if driver := os.Getenv("FAIRLENS_DATASET_DRIVER"); driver != "" {
		cfg.Dataset.Driver = driver
	}
	if path := os.Getenv("FAIRLENS_DATASET_PATH"); path != "" {
		cfg.Dataset.Path = expandPath(path)
	}
	// DSNs usually carry credentials, so the conventional variable is honoured
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && cfg.Dataset.DSN == "" {
		cfg.Dataset.DSN = dsn
	}
	if dsn := os.Getenv("FAIRLENS_DATASET_DSN"); dsn != "" {
		cfg.Dataset.DSN = dsn
	}
	if label := os.Getenv("FAIRLENS_LABEL_COLUMN"); label != "" {
		cfg.Dataset.LabelColumn = label
	}

	if protected := os.Getenv("FAIRLENS_PROTECTED"); protected != "" {
		cfg.Columns.Protected = splitList(protected)
	}

	if policy := os.Getenv("FAIRLENS_NUMERIC_GROUPS"); policy != "" {
		cfg.Fairness.NumericGroups = policy
	}
	if bins := os.Getenv("FAIRLENS_PARITY_BINS"); bins != "" {
		if n, err := strconv.Atoi(bins); err == nil {
			cfg.Fairness.ParityBins = n
		}
	}

	if path := os.Getenv("FAIRLENS_MODEL_PATH"); path != "" {
		cfg.Model.Path = expandPath(path)
	}
	if format := os.Getenv("FAIRLENS_OUTPUT_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if level := os.Getenv("FAIRLENS_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("FAIRLENS_LOG_FILE"); file != "" {
		cfg.Logging.File = expandPath(file)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// MetricsConfig converts the column and fairness sections into the engine's
// immutable configuration.
func (c *Config) MetricsConfig() metrics.Config {
	return metrics.Config{
		Numeric:       append([]string(nil), c.Columns.Numeric...),
		Categorical:   append([]string(nil), c.Columns.Categorical...),
		Protected:     append([]string(nil), c.Columns.Protected...),
		NumericGroups: metrics.NumericGroupPolicy(c.Fairness.NumericGroups),
		ParityBins:    c.Fairness.ParityBins,
	}
}

// LoadOptions converts the dataset section into loader options
func (c *Config) LoadOptions() dataset.LoadOptions {
	return dataset.LoadOptions{
		LabelColumn:      c.Dataset.LabelColumn,
		PredictionColumn: c.Dataset.PredictionColumn,
		Encode:           append([]string(nil), c.Dataset.Encode...),
		Drop:             append([]string(nil), c.Dataset.Drop...),
	}
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("dataset", c.Dataset)
	v.Set("columns", c.Columns)
	v.Set("fairness", c.Fairness)
	v.Set("model", c.Model)
	v.Set("output", c.Output)
	v.Set("logging", c.Logging)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
