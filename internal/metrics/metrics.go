// Package metrics defines the Prometheus metrics exported by the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookEventsTotal     *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec
	VerificationsTotal     *prometheus.CounterVec

	// Graph API metrics
	GraphRequestsTotal   *prometheus.CounterVec
	GraphDurationSeconds *prometheus.HistogramVec

	// Guest menu provisioning
	MenuProvisionsTotal *prometheus.CounterVec

	// Panics recovered in event goroutines
	PanicsTotal prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "messenger_webhook_requests_total",
				Help: "Total number of webhook batches by outcome",
			},
			[]string{"status"}, // status: accepted, not_page, malformed
		),

		WebhookEventsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "messenger_webhook_events_total",
				Help: "Total number of messaging events by kind and outcome",
			},
			[]string{"kind", "status"}, // status: sent, profile_error, responder_error, send_error, skipped, invalid
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "messenger_webhook_event_duration_seconds",
				Help:    "End-to-end event processing duration in seconds, including the typing delay",
				Buckets: []float64{0.1, 0.5, 0.75, 1, 1.5, 2, 5, 10},
			},
			[]string{"kind"},
		),

		VerificationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "messenger_webhook_verifications_total",
				Help: "Total number of webhook subscription challenges by result",
			},
			[]string{"result"}, // result: verified, forbidden, bad_request
		),

		GraphRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "messenger_graph_requests_total",
				Help: "Total number of Graph API calls by endpoint and status",
			},
			[]string{"endpoint", "status"}, // status: success, api_error, transport_error
		),

		GraphDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "messenger_graph_duration_seconds",
				Help:    "Graph API call duration in seconds by endpoint",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"endpoint"}, // endpoint: profile, sender_action, messages, custom_user_settings, messenger_profile, me
		),

		MenuProvisionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "messenger_guest_menu_provisions_total",
				Help: "Total number of persistent menu installs for guest users by status",
			},
			[]string{"status"},
		),

		PanicsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "messenger_event_panics_total",
				Help: "Total number of panics recovered while processing events",
			},
		),
	}

	return m
}

// RecordWebhookRequest records a webhook batch outcome
func (m *Metrics) RecordWebhookRequest(status string) {
	if m == nil {
		return
	}
	m.WebhookRequestsTotal.WithLabelValues(status).Inc()
}

// RecordEvent records a processed messaging event
func (m *Metrics) RecordEvent(kind, status string, duration float64) {
	if m == nil {
		return
	}
	m.WebhookEventsTotal.WithLabelValues(kind, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(kind).Observe(duration)
}

// RecordVerification records a subscription challenge result
func (m *Metrics) RecordVerification(result string) {
	if m == nil {
		return
	}
	m.VerificationsTotal.WithLabelValues(result).Inc()
}

// RecordGraphRequest records a Graph API call
func (m *Metrics) RecordGraphRequest(endpoint, status string, duration float64) {
	if m == nil {
		return
	}
	m.GraphRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.GraphDurationSeconds.WithLabelValues(endpoint).Observe(duration)
}

// RecordMenuProvision records a guest menu install attempt
func (m *Metrics) RecordMenuProvision(status string) {
	if m == nil {
		return
	}
	m.MenuProvisionsTotal.WithLabelValues(status).Inc()
}

// RecordPanic records a recovered panic
func (m *Metrics) RecordPanic() {
	if m == nil {
		return
	}
	m.PanicsTotal.Inc()
}
