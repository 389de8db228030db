// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Core (Required)
	EnvVerifyToken     = "VERIFY_TOKEN"
	EnvPageAccessToken = "PAGE_ACCESS_TOKEN"

	// Server
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	// Graph API
	EnvGraphBaseURL = "GRAPH_API_BASE_URL"
	EnvGraphVersion = "GRAPH_API_VERSION"
	EnvGraphTimeout = "GRAPH_TIMEOUT"

	// Responder content
	EnvPortfolioURL  = "PORTFOLIO_URL"
	EnvRepositoryURL = "REPOSITORY_URL"

	// Sentry Feature (Better Stack errors)
	EnvSentryToken       = "SENTRY_TOKEN"
	EnvSentryHost        = "SENTRY_HOST"
	EnvSentryEnvironment = "SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "SENTRY_SAMPLE_RATE"

	// Better Stack Feature (logs)
	EnvBetterStackToken    = "BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsUsername = "METRICS_USERNAME"
	EnvMetricsPassword = "METRICS_PASSWORD"
)
