// Package main provides the Messenger bot server entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/garyellow/messenger-portfolio-bot/internal/app"
	"github.com/garyellow/messenger-portfolio-bot/internal/buildinfo"
	"github.com/garyellow/messenger-portfolio-bot/internal/config"
	"github.com/garyellow/messenger-portfolio-bot/internal/sentry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Release(),
		SampleRate:  cfg.SentrySampleRate,
		Debug:       cfg.LogLevel == "debug",
	}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to initialize Sentry: %v\n", err)
		os.Exit(1)
	}

	application, err := app.Initialize(context.Background(), cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Server stopped with error: %v\n", err)
		os.Exit(1)
	}
}
