package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	assert.NotNil(t, m.WebhookRequestsTotal)
	assert.NotNil(t, m.WebhookEventsTotal)
	assert.NotNil(t, m.WebhookDurationSeconds)
	assert.NotNil(t, m.VerificationsTotal)
	assert.NotNil(t, m.GraphRequestsTotal)
	assert.NotNil(t, m.GraphDurationSeconds)
	assert.NotNil(t, m.MenuProvisionsTotal)
	assert.NotNil(t, m.PanicsTotal)
}

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordWebhookRequest("accepted")
	m.RecordWebhookRequest("accepted")
	m.RecordEvent("text", "sent", 0.8)
	m.RecordVerification("forbidden")
	m.RecordGraphRequest("messages", "success", 0.12)
	m.RecordGraphRequest("messages", "transport_error", 0.5)
	m.RecordMenuProvision("error")
	m.RecordPanic()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.WebhookRequestsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookEventsTotal.WithLabelValues("text", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationsTotal.WithLabelValues("forbidden")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GraphRequestsTotal.WithLabelValues("messages", "transport_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MenuProvisionsTotal.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PanicsTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(m.GraphRequestsTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordWebhookRequest("accepted")
		m.RecordEvent("postback", "sent", 1)
		m.RecordVerification("verified")
		m.RecordGraphRequest("profile", "success", 0.1)
		m.RecordMenuProvision("success")
		m.RecordPanic()
	})
}
