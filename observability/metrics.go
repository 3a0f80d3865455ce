// Package observability exposes Prometheus metrics for the swap pipeline and
// the HTTP gateway.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline and gateway instruments.
type Metrics struct {
	QuotesTotal     *prometheus.CounterVec
	SwapsSubmitted  *prometheus.CounterVec
	PollResults     *prometheus.CounterVec
	StageDuration   *prometheus.HistogramVec
	UpstreamErrors  prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New registers the metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		QuotesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swap_quotes_total",
			Help: "Quote requests by outcome.",
		}, []string{"outcome"}),

		SwapsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swap_submissions_total",
			Help: "Swap submissions by chain kind and outcome.",
		}, []string{"kind", "outcome"}),

		PollResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "swap_poll_results_total",
			Help: "Terminal polling results by status.",
		}, []string{"status"}),

		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swap_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"stage"}),

		UpstreamErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "swap_upstream_errors_total",
			Help: "Provider requests that returned an error status.",
		}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Gateway request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
}

// ObserveStage records one stage duration. Nil-safe so the pipeline can run
// without metrics wired.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// CountQuote records one quote request outcome.
func (m *Metrics) CountQuote(outcome string) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(outcome).Inc()
}

// CountSubmission records one submission outcome.
func (m *Metrics) CountSubmission(kind, outcome string) {
	if m == nil {
		return
	}
	m.SwapsSubmitted.WithLabelValues(kind, outcome).Inc()
}

// CountPollResult records one terminal polling status.
func (m *Metrics) CountPollResult(status string) {
	if m == nil {
		return
	}
	m.PollResults.WithLabelValues(status).Inc()
}

// CountUpstreamError records one provider error response.
func (m *Metrics) CountUpstreamError() {
	if m == nil {
		return
	}
	m.UpstreamErrors.Inc()
}
