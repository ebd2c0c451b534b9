package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOutputFormat, "")

	content := `
output:
  format: json
  verbose: true
logging:
  level: debug
  format: json
  output: stdout
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if !cfg.Output.Verbose {
		t.Error("Output.Verbose = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Logging.Output = %q, want stdout", cfg.Logging.Output)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOutputFormat, "")

	path := writeTempFile(t, "config.yaml", "output:\n  quiet: true\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != DefaultOutputFormat {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, DefaultOutputFormat)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("Logging.Output = %q, want stderr", cfg.Logging.Output)
	}
	if !cfg.Output.Quiet {
		t.Error("Output.Quiet = false, want true")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvOutputFormat, "json")

	path := writeTempFile(t, "config.yaml", "output:\n  format: text\nlogging:\n  level: info\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error", cfg.Logging.Level)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOutputFormat, "xml")

	path := writeTempFile(t, "config.yaml", "output:\n  format: text\n")
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Fatal("Load() expected error for invalid env format")
	}
	if !strings.Contains(err.Error(), "output") {
		t.Errorf("error = %v, want output section", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			modify: func(*Config) {},
		},
		{
			name:    "unknown output format",
			modify:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "invalid format",
		},
		{
			name: "verbose and quiet",
			modify: func(c *Config) {
				c.Output.Verbose = true
				c.Output.Quiet = true
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "invalid level",
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid format",
		},
		{
			name:   "empty output format defaults to text",
			modify: func(c *Config) { c.Output.Format = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want text", cfg.Output.Format)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if len(cfg.Webhooks) != 0 {
		t.Errorf("Webhooks = %d, want 0", len(cfg.Webhooks))
	}
}

func TestValidate_Webhook_Valid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{
		{
			Name:    "billing",
			URL:     "https://example.com/webhook",
			Token:   "secret",
			Trigger: WebhookTriggerAlways,
			Timeout: 5 * time.Second,
		},
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_Webhook_ValidHTTP(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "http://localhost:8080/webhook"}}

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_Webhook_Errors(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr string
	}{
		{"missing url", WebhookConfig{Name: "hook"}, "url is required"},
		{"invalid scheme", WebhookConfig{URL: "ftp://example.com/webhook"}, "scheme"},
		{"missing host", WebhookConfig{URL: "https:///webhook"}, "host"},
		{"invalid trigger", WebhookConfig{URL: "https://example.com", Trigger: "on_issues"}, "invalid trigger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Webhooks = []WebhookConfig{tt.webhook}

			err := Validate(cfg)
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), "webhooks[0]") {
				t.Errorf("Validate() error = %v, want webhook index", err)
			}
		})
	}
}

func TestValidate_Webhook_AllTriggers(t *testing.T) {
	triggers := []WebhookTrigger{WebhookTriggerOnCharge, WebhookTriggerAlways, WebhookTriggerNever}

	for _, trigger := range triggers {
		t.Run(string(trigger), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Webhooks = []WebhookConfig{{URL: "https://example.com/webhook", Trigger: trigger}}

			if err := Validate(cfg); err != nil {
				t.Errorf("Validate() error = %v for trigger %q", err, trigger)
			}
		})
	}
}

func TestValidate_Webhook_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://example.com/webhook"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Webhooks[0].Trigger != WebhookTriggerOnCharge {
		t.Errorf("Trigger = %q, want %q", cfg.Webhooks[0].Trigger, WebhookTriggerOnCharge)
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Webhooks[0].Timeout, DefaultWebhookTimeout)
	}
}

func TestValidateTrigger(t *testing.T) {
	if err := ValidateTrigger(WebhookTriggerNever); err != nil {
		t.Errorf("ValidateTrigger(never) error = %v", err)
	}
	if err := ValidateTrigger("sometimes"); err == nil {
		t.Error("ValidateTrigger(sometimes) expected error")
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret-value")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_WEBHOOK_TOKEN}", "secret-value"},
		{"$TEST_WEBHOOK_TOKEN", "secret-value"},
		{"plain-value", "plain-value"},
		{"", ""},
		{"${NONEXISTENT_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_WithWebhooks(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvOutputFormat, "")
	t.Setenv("TELBILL_TEST_TOKEN", "abc123")

	content := `
webhooks:
  - name: billing
    url: "https://example.com/webhook"
    token: ${TELBILL_TEST_TOKEN}
    trigger: on_charge
    timeout: 30s
  - url: "https://backup.example.com/webhook"
    trigger: always
`
	path := writeTempFile(t, "config-with-webhooks.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Webhooks) != 2 {
		t.Fatalf("Webhooks = %d, want 2", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Name != "billing" {
		t.Errorf("Webhook[0].Name = %q, want %q", cfg.Webhooks[0].Name, "billing")
	}
	if cfg.Webhooks[0].Token != "abc123" {
		t.Errorf("Webhook[0].Token = %q, want expanded token", cfg.Webhooks[0].Token)
	}
	if cfg.Webhooks[0].Timeout != 30*time.Second {
		t.Errorf("Webhook[0].Timeout = %v, want 30s", cfg.Webhooks[0].Timeout)
	}
	if cfg.Webhooks[1].Trigger != WebhookTriggerAlways {
		t.Errorf("Webhook[1].Trigger = %v, want %v", cfg.Webhooks[1].Trigger, WebhookTriggerAlways)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
