// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes, one per terminal workflow state.
const (
	OutcomeSucceeded      = "succeeded"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeWindowClosed   = "window_closed"
	OutcomeUserNotFound   = "user_not_found"
	OutcomeDuplicate      = "duplicate"
	OutcomeStorageFailure = "storage_failure"
)

// Metrics service collectors. A nil *Metrics records nothing.
type Metrics struct {
	submissions     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "submissions_total",
			Help:      "Attendance submissions by terminal outcome.",
		}, []string{"outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "attendance",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.submissions, m.requestDuration)
	return m
}

// ObserveSubmission counts one finished submission.
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
