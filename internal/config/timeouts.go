// Package config provides centralized timeout constants for the application.
//
// Messenger Platform constraints:
//   - Webhook deliveries must be acknowledged with 200 OK quickly, otherwise the
//     platform retries and eventually disables the subscription.
//   - The reply is sent through the Send API after the acknowledgement, so event
//     processing is decoupled from the webhook request lifetime.
package config

import "time"

// Conversation pacing
const (
	// TypingPacingDelay is how long the typing indicator is shown before a reply is built.
	// It is a pacing device, not a timeout: once started it always elapses.
	TypingPacingDelay = 750 * time.Millisecond
)

// Webhook HTTP server timeouts
const (
	// WebhookHTTPRead is the HTTP server read timeout for webhook requests.
	// Should be short since Messenger sends small JSON payloads.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	// The webhook handler acknowledges before doing any outbound work.
	WebhookHTTPWrite = 15 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)

// Graph API timeouts
const (
	// GraphRequest is the default timeout for a single Graph API call.
	GraphRequest = 10 * time.Second
)

// Health checks
const (
	// ReadinessCheckTimeout bounds the work done by /readyz.
	ReadinessCheckTimeout = 3 * time.Second
)

// Graceful shutdown
const (
	// GracefulShutdown is the default timeout for graceful server shutdown.
	// Allows in-flight event processing to finish before the process exits.
	GracefulShutdown = 30 * time.Second
)
