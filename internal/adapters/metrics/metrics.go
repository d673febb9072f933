// Package metrics holds the Prometheus collectors the portal exports on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "clinic_portal"

type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	Renders          *prometheus.CounterVec
}

// New registers the portal collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Calls made to the clinic API, by resource, operation and outcome.",
		}, []string{"resource", "operation", "outcome"}),
		UpstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of clinic API calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "operation"}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Templates rendered, by template name.",
		}, []string{"template"}),
	}
	reg.MustRegister(m.UpstreamRequests, m.UpstreamLatency, m.Renders)
	return m
}

// ObserveUpstream records one clinic API call. A nil receiver is a no-op.
func (m *Metrics) ObserveUpstream(resource, operation, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(resource, operation, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(resource, operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveRender(name string) {
	if m == nil {
		return
	}
	m.Renders.WithLabelValues(name).Inc()
}
