package api

import (
	"fmt"
	"time"
)

// SourceConfig describes a JSON endpoint that returns an array of records
type SourceConfig struct {
	URL        string            `json:"url"`
	DataPath   string            `json:"data_path"` // gjson path to the record array, empty for the root
	Headers    map[string]string `json:"headers"`
	AuthMethod string            `json:"auth_method"` // "", "bearer", "api_key"
	AuthToken  string            `json:"-"`
	Timeout    time.Duration     `json:"timeout"`
}

// DefaultSourceConfig returns a config for url with a 30s timeout
func DefaultSourceConfig(url string) SourceConfig {
	return SourceConfig{URL: url, Timeout: 30 * time.Second}
}

// Validate checks if the configuration is valid
func (c SourceConfig) Validate() error {
	if c.URL == "" {
		return &ValidationError{Field: "URL", Message: "is required"}
	}
	if c.Timeout <= 0 {
		return &ValidationError{Field: "Timeout", Message: "must be positive"}
	}
	switch c.AuthMethod {
	case "", "bearer", "api_key":
	default:
		return &ValidationError{Field: "AuthMethod", Message: fmt.Sprintf("unknown method %q", c.AuthMethod)}
	}
	return nil
}

// ValidationError reports an invalid source config field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
