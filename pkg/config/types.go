// Package config provides configuration loading and validation for telbill.
package config

import (
	"time"

	"github.com/ccollicutt/telbill/internal/logging"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Output   OutputConfig    `yaml:"output"`
	Logging  logging.Config  `yaml:"logging"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// OutputConfig controls how bills are rendered.
type OutputConfig struct {
	// Format is text or json.
	Format string `yaml:"format"`

	// Verbose lists every call with its minute breakdown.
	Verbose bool `yaml:"verbose"`

	// Quiet prints the total only.
	Quiet bool `yaml:"quiet"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnCharge fires only when the bill total is non-zero (default).
	WebhookTriggerOnCharge WebhookTrigger = "on_charge"
	// WebhookTriggerAlways fires after every calculation.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives bill reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_charge" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
