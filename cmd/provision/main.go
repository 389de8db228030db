// Command provision configures the Messenger page from an operator's shell:
// the page-wide profile (Get Started, greeting, menu), per-user guest menus,
// and a token sanity check.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/garyellow/messenger-portfolio-bot/internal/config"
	"github.com/garyellow/messenger-portfolio-bot/internal/graph"
	"github.com/garyellow/messenger-portfolio-bot/internal/logger"
)

// Platform is what the commands need from the Graph client.
type Platform interface {
	graphPage
	graphProfile
	graphMenu
}

func main() {
	if err := newRootCmd(defaultPlatform).Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultPlatform() (Platform, error) {
	cfg, err := config.LoadGraph()
	if err != nil {
		return nil, err
	}
	return graph.NewFromConfig(cfg, nil), nil
}

func newRootCmd(platform func() (Platform, error)) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "provision",
		Short:        "Configure the Messenger page used by the portfolio bot",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	log := func() *logger.Logger {
		return logger.NewWithWriter(logLevel, root.ErrOrStderr()).WithModule("provision")
	}

	root.AddCommand(whoamiCmd(platform))
	root.AddCommand(profileCmd(platform, log))
	root.AddCommand(menuCmd(platform, log))
	return root
}
