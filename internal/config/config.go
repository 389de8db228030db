// Package config provides application configuration management.
// It loads settings from environment variables (optionally seeded from a .env file)
// and provides defaults for the server, Graph API client and observability sinks.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// It is built once at startup and passed to constructors; nothing reads the
// environment after Load returns.
type Config struct {
	// Messenger Configuration
	VerifyToken     string // Secret echoed by the platform during webhook verification
	PageAccessToken string // Page token used as access_token on every Graph API call

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Graph API Configuration
	GraphBaseURL string        // Default: https://graph.facebook.com
	GraphVersion string        // Default: v8.0
	GraphTimeout time.Duration // Per-request timeout

	// Responder content
	PortfolioURL  string
	RepositoryURL string

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Error tracking (Sentry SDK against Better Stack)
	SentryToken       string
	SentryHost        string
	SentryEnvironment string
	SentrySampleRate  float64

	// Log shipping
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := fromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadGraph is Load for tools that only call the Graph API, such as the
// provisioning CLI. Server-only settings are not validated.
func LoadGraph() (*Config, error) {
	_ = godotenv.Load()

	cfg := fromEnv()
	if err := errors.Join(cfg.graphErrors()...); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		VerifyToken:     getEnv(EnvVerifyToken, ""),
		PageAccessToken: getEnv(EnvPageAccessToken, ""),

		Port:            getEnv(EnvPort, "1337"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),

		GraphBaseURL: strings.TrimRight(getEnv(EnvGraphBaseURL, "https://graph.facebook.com"), "/"),
		GraphVersion: getEnv(EnvGraphVersion, "v8.0"),
		GraphTimeout: getDurationEnv(EnvGraphTimeout, GraphRequest),

		PortfolioURL:  getEnv(EnvPortfolioURL, "https://github.com/garyellow"),
		RepositoryURL: getEnv(EnvRepositoryURL, "https://github.com/garyellow/messenger-portfolio-bot"),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.VerifyToken == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvVerifyToken))
	}
	errs = append(errs, c.graphErrors()...)
	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvPort))
	} else if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("%s must be a valid TCP port, got %q", EnvPort, c.Port))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	if c.SentryToken != "" && c.SentryHost == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is set", EnvSentryHost, EnvSentryToken))
	}
	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", EnvSentrySampleRate, c.SentrySampleRate))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// graphErrors checks the settings every Graph API caller needs.
func (c *Config) graphErrors() []error {
	var errs []error
	if c.PageAccessToken == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvPageAccessToken))
	}
	if u, err := url.Parse(c.GraphBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", EnvGraphBaseURL, c.GraphBaseURL))
	}
	if !strings.HasPrefix(c.GraphVersion, "v") {
		errs = append(errs, fmt.Errorf("%s must look like v8.0, got %q", EnvGraphVersion, c.GraphVersion))
	}
	if c.GraphTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvGraphTimeout, c.GraphTimeout))
	}
	return errs
}

// MetricsAuthEnabled reports whether /metrics requires Basic Auth.
func (c *Config) MetricsAuthEnabled() bool {
	return c.MetricsPassword != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
