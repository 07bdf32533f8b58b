package config

import (
	"os"
	"path/filepath"
	"strconv"

	"trackplume/internal/errors"

	"github.com/joho/godotenv"
)

// DefaultDataFile is the workbook looked up next to the executable
const DefaultDataFile = "Dataset.xlsx"

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Charts ChartConfig
	Log    LogConfig
}

// DataConfig locates the statistics workbook
type DataConfig struct {
	File  string
	Sheet string
}

// ChartConfig controls chart output
type ChartConfig struct {
	Dir     string
	Enabled bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
	Env   string
}

// LoadDotEnv reads a .env file if one exists; a missing file is not an error
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(err, "failed to load .env file")
	}
	return nil
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:   *loadDataConfig(),
		Charts: *loadChartConfig(),
		Log:    *loadLogConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:  ResolveDataFile(getEnvOrDefault("DATASET_FILE", DefaultDataFile)),
		Sheet: getEnvOrDefault("DATASET_SHEET", ""),
	}
}

func loadChartConfig() *ChartConfig {
	return &ChartConfig{
		Dir:     getEnvOrDefault("CHART_DIR", "charts"),
		Enabled: getEnvBoolOrDefault("CHARTS_ENABLED", true),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		Env:   getEnvOrDefault("ENV", "development"),
	}
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("dataset file is required")
	}
	if config.Charts.Enabled && config.Charts.Dir == "" {
		return errors.ConfigInvalid("chart directory is required when charts are enabled")
	}
	return nil
}

// ResolveDataFile resolves a relative dataset path against the executable's directory,
// falling back to the path as given (relative to the working directory) when no file
// exists there. Absolute paths are returned unchanged.
func ResolveDataFile(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return name
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
