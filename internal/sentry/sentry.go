// Package sentry reports webhook processing failures to Better Stack Errors
// through the Sentry Go SDK.
package sentry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/garyellow/messenger-portfolio-bot/internal/ctxutil"
	domerrors "github.com/garyellow/messenger-portfolio-bot/internal/errors"
)

// Config holds the Better Stack Errors settings.
type Config struct {
	Token       string // application token; empty disables reporting
	Host        string // ingesting host, e.g. "errors.betterstack.com"
	Environment string
	Release     string
	SampleRate  float64 // 0 means 1.0
	Debug       bool
}

// Initialize sets up the SDK. An empty Token disables reporting and returns nil.
func Initialize(cfg Config) error {
	if cfg.Token == "" {
		return nil
	}
	if cfg.Host == "" {
		return fmt.Errorf("sentry host is required when token is provided")
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	return sentry.Init(sentry.ClientOptions{
		// Better Stack ignores the project id but the SDK requires one.
		Dsn:              fmt.Sprintf("https://%s@%s/1", cfg.Token, cfg.Host),
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	})
}

// Middleware attaches a hub to each request and re-panics so gin.Recovery
// still answers 500.
func Middleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	})
}

// Flush waits up to timeout for queued events to be delivered.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// IsEnabled reports whether Initialize configured a client.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// Capture reports err tagged with the event trace in ctx and, for Graph API
// failures, the endpoint and status that failed.
func Capture(ctx context.Context, err error) {
	if err == nil || !IsEnabled() {
		return
	}
	hub := hubFor(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		decorate(scope, ctx, err)
		hub.CaptureException(err)
	})
}

// RecoverPanic reports a value returned by recover().
func RecoverPanic(ctx context.Context, recovered any) {
	if recovered == nil || !IsEnabled() {
		return
	}
	hub := hubFor(ctx)
	hub.WithScope(func(scope *sentry.Scope) {
		decorate(scope, ctx, nil)
		hub.RecoverWithContext(ctx, recovered)
	})
}

func hubFor(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub().Clone()
}

func decorate(scope *sentry.Scope, ctx context.Context, err error) {
	if psid := ctxutil.TraceFrom(ctx).PSID; psid != "" {
		scope.SetUser(sentry.User{ID: psid})
	}
	scope.SetTags(tagsFor(ctx, err))
}

// tagsFor lists the searchable tags for an event. Empty values are omitted.
func tagsFor(ctx context.Context, err error) map[string]string {
	trace := ctxutil.TraceFrom(ctx)
	tags := make(map[string]string)
	set := func(k, v string) {
		if v != "" {
			tags[k] = v
		}
	}
	set("request_id", trace.RequestID)
	set("event_id", trace.EventID)
	set("event_kind", trace.EventKind)
	set("operation", domerrors.OperationOf(err))
	if ge, ok := domerrors.AsGraphError(err); ok {
		set("graph_endpoint", ge.Endpoint)
		set("graph_status", strconv.Itoa(ge.StatusCode))
		if ge.Code != 0 {
			set("graph_code", strconv.Itoa(ge.Code))
		}
	}
	return tags
}
