package config

import (
	"os"
	"time"

	"github.com/ccollicutt/telbill/internal/logging"
)

// Default values for configuration.
const (
	DefaultOutputFormat   = "text"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvLogLevel     = "TELBILL_LOG_LEVEL"
	EnvOutputFormat = "TELBILL_OUTPUT_FORMAT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
		Logging: logging.DefaultConfig(),
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvironmentOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}

	if format := os.Getenv(EnvOutputFormat); format != "" {
		c.Output.Format = format
	}
}
