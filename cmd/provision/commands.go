package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garyellow/messenger-portfolio-bot/internal/logger"
	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
	"github.com/garyellow/messenger-portfolio-bot/internal/stringutil"
)

// defaultGreeting is shown before a user starts the conversation.
// {{user_first_name}} is substituted by Messenger.
const defaultGreeting = "Hi {{user_first_name}}! Tap Get Started to learn about my work."

// menuConcurrency bounds parallel menu installs.
const menuConcurrency = 4

type graphPage interface {
	Me(ctx context.Context) (*messenger.PageInfo, error)
}

type graphProfile interface {
	SetMessengerProfile(ctx context.Context, profile messenger.MessengerProfile) error
}

type graphMenu interface {
	SetUserPersistentMenu(ctx context.Context, psid string, menu []messenger.PersistentMenu) error
}

func whoamiCmd(platform func() (Platform, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the page the access token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := platform()
			if err != nil {
				return err
			}
			page, err := p.Me(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", page.Name, page.ID)
			return nil
		},
	}
}

func profileCmd(platform func() (Platform, error), log func() *logger.Logger) *cobra.Command {
	var greeting string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Install the page-wide Get Started button, greeting and persistent menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := platform()
			if err != nil {
				return err
			}

			var page *messenger.PageInfo
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				page, err = p.Me(ctx)
				return err
			})
			g.Go(func() error {
				return p.SetMessengerProfile(ctx, messenger.PageProfile(greeting))
			})
			if err := g.Wait(); err != nil {
				log().WithError(err).Error("Profile provisioning failed")
				return err
			}

			log().WithField("page_id", page.ID).Info("Messenger profile installed")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile installed on %s (%s)\n", page.Name, page.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&greeting, "greeting", defaultGreeting, "greeting text shown before the conversation starts")
	return cmd
}

func menuCmd(platform func() (Platform, error), log func() *logger.Logger) *cobra.Command {
	var psids []string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Install the guest persistent menu for one or more users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := normalizePSIDs(psids)
			if err != nil {
				return err
			}
			p, err := platform()
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(menuConcurrency)
			for _, psid := range targets {
				g.Go(func() error {
					if err := p.SetUserPersistentMenu(ctx, psid, messenger.GuestMenu()); err != nil {
						return err
					}
					log().WithField("psid", psid).Info("Guest menu installed")
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				log().WithError(err).Error("Menu provisioning failed")
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "menu installed for %d user(s)\n", len(targets))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&psids, "psid", nil, "page-scoped user ID (repeatable)")
	_ = cmd.MarkFlagRequired("psid")
	return cmd
}

// normalizePSIDs trims and deduplicates PSIDs, rejecting any that are not numeric.
func normalizePSIDs(psids []string) ([]string, error) {
	trimmed := lo.Compact(lo.Map(psids, func(p string, _ int) string { return strings.TrimSpace(p) }))
	if bad := lo.Reject(trimmed, func(p string, _ int) bool { return stringutil.IsNumeric(p) }); len(bad) > 0 {
		return nil, fmt.Errorf("invalid psid(s): %s", strings.Join(bad, ", "))
	}
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("at least one --psid is required")
	}
	return lo.Uniq(trimmed), nil
}
