package config

import (
	"os"
	"strconv"

	"solareda/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Server ServerConfig
}

// DataConfig holds dataset processing settings. BaseDir is explicit
// configuration: the loader never guesses a project root from the
// source layout.
type DataConfig struct {
	BaseDir          string
	FillStrategy     string  // "median" or "mean"
	OutlierThreshold float64 // Z-score threshold for outlier detection
	MissingThreshold float64 // fraction above which a column is flagged high-missing
}

// ServerConfig holds report API server settings
type ServerConfig struct {
	Port string
}

// Default thresholds mirror the analysis settings the station datasets
// were originally processed with.
const (
	DefaultFillStrategy     = "median"
	DefaultOutlierThreshold = 3.0
	DefaultMissingThreshold = 0.05
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			BaseDir:          getEnvOrDefault("DATA_DIR", "data"),
			FillStrategy:     getEnvOrDefault("FILL_METHOD", DefaultFillStrategy),
			OutlierThreshold: getEnvFloatOrDefault("OUTLIER_THRESHOLD", DefaultOutlierThreshold),
			MissingThreshold: getEnvFloatOrDefault("MISSING_THRESHOLD", DefaultMissingThreshold),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.BaseDir == "" {
		return errors.ConfigInvalid("data directory is required")
	}
	if config.Data.FillStrategy != "median" && config.Data.FillStrategy != "mean" {
		return errors.ConfigInvalid("FILL_METHOD must be 'median' or 'mean'")
	}
	if config.Data.OutlierThreshold <= 0 {
		return errors.ConfigInvalid("OUTLIER_THRESHOLD must be positive")
	}
	if config.Data.MissingThreshold < 0 || config.Data.MissingThreshold > 1 {
		return errors.ConfigInvalid("MISSING_THRESHOLD must be in [0,1]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
