package config

import (
	"os"
	"strconv"

	"gowoe/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Database DatabaseConfig
	Data     DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AnalysisConfig holds the binning and orchestration defaults
type AnalysisConfig struct {
	// MinLeafFraction is the tree's minimum leaf size as a fraction of
	// the row count
	MinLeafFraction float64
	// ComplexityThreshold is the minimum information gain a split must
	// produce to be kept
	ComplexityThreshold float64
	// ContinueOnError collects per-variable failures instead of
	// aborting the run
	ContinueOnError bool
	// Parallelism caps concurrent variable pipelines; 0 means NumCPU
	Parallelism int
}

// DatabaseConfig holds database connection settings; only required
// when the Postgres table source is used
type DatabaseConfig struct {
	URL string
}

// DataConfig holds data file settings
type DataConfig struct {
	File string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Analysis: AnalysisConfig{
			MinLeafFraction:     getEnvFloatOrDefault("WOE_MIN_LEAF_FRACTION", 0.10),
			ComplexityThreshold: getEnvFloatOrDefault("WOE_COMPLEXITY_THRESHOLD", 0.0),
			ContinueOnError:     getEnvBoolOrDefault("WOE_CONTINUE_ON_ERROR", false),
			Parallelism:         getEnvIntOrDefault("WOE_PARALLELISM", 0),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Data: DataConfig{
			File: getEnvOrDefault("DATA_FILE", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if f := config.Analysis.MinLeafFraction; f <= 0 || f >= 1 {
		return errors.ConfigInvalid("WOE_MIN_LEAF_FRACTION must be in (0, 1)")
	}
	if config.Analysis.ComplexityThreshold < 0 {
		return errors.ConfigInvalid("WOE_COMPLEXITY_THRESHOLD must be >= 0")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
