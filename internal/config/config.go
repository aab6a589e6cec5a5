package config

import (
	"os"
	"strconv"
	"strings"

	"tabscope/domain/table"
	"tabscope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Ingestion IngestionConfig
	Charts    ChartConfig
	Profiling ProfilingConfig
	Database  DatabaseConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	GinMode     string
	MaxUploadMB int
}

// MaxUploadBytes returns the upload limit in bytes
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// IngestionConfig controls how raw files become tables
type IngestionConfig struct {
	NAValues   []string
	ExcelSheet string
}

// NASet builds the absent-token set for readers
func (c IngestionConfig) NASet() table.NASet {
	return table.NewNASet(c.NAValues)
}

// ChartConfig holds aggregation defaults applied when a request leaves them unset
type ChartConfig struct {
	HistogramBins int
	TopN          int
}

// ProfilingConfig controls column summary parallelism
type ProfilingConfig struct {
	Workers int
}

// DatabaseConfig holds the optional SQL source settings
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:        getEnvOrDefault("PORT", "8080"),
			GinMode:     getEnvOrDefault("GIN_MODE", "release"),
			MaxUploadMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 32),
		},
		Ingestion: IngestionConfig{
			NAValues:   getEnvListOrDefault("NA_VALUES", table.DefaultNATokens),
			ExcelSheet: getEnvOrDefault("EXCEL_SHEET", ""),
		},
		Charts: ChartConfig{
			HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", 20),
			TopN:          getEnvIntOrDefault("TOP_N", 10),
		},
		Profiling: ProfilingConfig{
			Workers: getEnvIntOrDefault("PROFILE_WORKERS", 4),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Charts.HistogramBins <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	if config.Charts.TopN <= 0 {
		return errors.ConfigInvalid("TOP_N must be positive")
	}
	if config.Profiling.Workers <= 0 {
		return errors.ConfigInvalid("PROFILE_WORKERS must be positive")
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

// getEnvListOrDefault splits a comma-separated list. Entries are kept
// verbatim apart from surrounding spaces, so "" can't be listed.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		out := make([]string, len(defaultValue))
		copy(out, defaultValue)
		return out
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
