// Package config provides configuration loading and validation for the server and the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Defaults
const (
	DefaultPort       = 8080
	DefaultSessionDir = ".landing-sessions"
)

// Config is the configuration that can be loaded from a JSON file or the environment.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Webhooks
	GenerateWebhookURL   string            `json:"generate_webhook_url,omitempty"`
	RegenerateWebhookURL string            `json:"regenerate_webhook_url,omitempty"`
	WebhookTimeout       string            `json:"webhook_timeout,omitempty"` // Go duration; empty or "0" means no timeout
	WebhookHeaders       map[string]string `json:"webhook_headers,omitempty"` // Extra headers sent on every webhook call

	// Storage
	Store       string `json:"store,omitempty"`        // memory, file or postgres
	SessionDir  string `json:"session_dir,omitempty"`  // Directory for the file store
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	Port int `json:"port,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from environment variables.
// Unset variables leave the field empty.
func FromEnv() Config {
	cfg := Config{
		GenerateWebhookURL:   os.Getenv("GENERATE_WEBHOOK_URL"),
		RegenerateWebhookURL: os.Getenv("REGENERATE_WEBHOOK_URL"),
		WebhookTimeout:       os.Getenv("WEBHOOK_TIMEOUT"),
		Store:                os.Getenv("SESSION_STORE"),
		SessionDir:           os.Getenv("SESSION_DIR"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if token := os.Getenv("WEBHOOK_TOKEN"); token != "" {
		cfg.WebhookHeaders = map[string]string{"X-Webhook-Token": token}
	}
	return cfg
}

// Load merges a config file (optional) over the environment.
// Values in the file take precedence; the environment fills what the file leaves empty.
func Load(path string) (Config, error) {
	env := FromEnv()
	if path == "" {
		return env.MergeWithDefaults(Config{}), nil
	}

	fileCfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	return fileCfg.MergeWithDefaults(env), nil
}

// Validate checks that the configuration has valid values.
// Webhook URLs are not required here: a missing URL is reported when the webhook is called.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"generate_webhook_url":   c.GenerateWebhookURL,
		"regenerate_webhook_url": c.RegenerateWebhookURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config error: '%s' must be an absolute http(s) URL", name)
		}
	}

	if _, err := c.Timeout(); err != nil {
		return err
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.Store {
	case "", StoreMemory, StoreFile:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	default:
		return fmt.Errorf("config error: unknown store %q", c.Store)
	}

	return nil
}

// Timeout parses WebhookTimeout. Empty means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.WebhookTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.WebhookTimeout)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'webhook_timeout' %q: %w", c.WebhookTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'webhook_timeout' must be non-negative")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GenerateWebhookURL == "" {
		result.GenerateWebhookURL = defaults.GenerateWebhookURL
	}
	if result.RegenerateWebhookURL == "" {
		result.RegenerateWebhookURL = defaults.RegenerateWebhookURL
	}
	if result.WebhookTimeout == "" {
		result.WebhookTimeout = defaults.WebhookTimeout
	}
	if len(result.WebhookHeaders) == 0 {
		result.WebhookHeaders = defaults.WebhookHeaders
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SessionDir == "" {
		result.SessionDir = defaults.SessionDir
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.SessionDir == "" {
		result.SessionDir = DefaultSessionDir
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.Store == "" && result.DatabaseURL != "" {
		result.Store = StorePostgres
	}

	return result
}
