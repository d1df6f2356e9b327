package dispatcher

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the dispatcher's request counters, mirroring the teacher's
// services/metrics_service.go CounterVec/HistogramVec pair but keyed by
// method/appId/outcome instead of a single "service" label, and recorded
// at the dispatcher boundary so both transports share one set of series.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics builds the dispatcher's metrics and, if reg is non-nil,
// registers them. Tests typically pass nil or a fresh prometheus.Registry
// to avoid colliding with the process-wide default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hosted_requests_total",
				Help: "Total wire requests handled by the dispatcher.",
			},
			[]string{"method", "appId", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hosted_request_duration_seconds",
				Help:    "Dispatch latency per method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(method, appID, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, appID, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(seconds)
}
