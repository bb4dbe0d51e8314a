// Package metrics holds the Prometheus collectors shared by the upstream
// client and the refresh loop.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "livescore"

type Metrics struct {
	Cycles         *prometheus.CounterVec
	StaleResults   prometheus.Counter
	UpstreamCalls  *prometheus.HistogramVec
	UpstreamErrors *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_cycles_total",
			Help:      "Completed refresh cycles by result.",
		}, []string{"result"}),
		StaleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_total",
			Help:      "Cycle results discarded because a newer cycle had started.",
		}),
		UpstreamCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Sleeper API request latency by resource.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Sleeper API failures by resource and kind.",
		}, []string{"resource", "kind"}),
	}

	if reg != nil {
		reg.MustRegister(m.Cycles, m.StaleResults, m.UpstreamCalls, m.UpstreamErrors)
	}
	return m
}

func (m *Metrics) ObserveUpstream(resource string, start time.Time) {
	if m == nil {
		return
	}
	m.UpstreamCalls.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}

func (m *Metrics) UpstreamFailed(resource, kind string) {
	if m == nil {
		return
	}
	m.UpstreamErrors.WithLabelValues(resource, kind).Inc()
}

func (m *Metrics) CycleDone(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.Cycles.WithLabelValues(result).Inc()
}

func (m *Metrics) StaleDiscarded() {
	if m == nil {
		return
	}
	m.StaleResults.Inc()
}
