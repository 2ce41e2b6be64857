package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-regform/pkg/model"
)

// Submission outcomes recorded by RecordSubmission.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// Metrics holds the Prometheus collectors of the host process on a private
// registry.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "regform",
			Name:      "submissions_total",
			Help:      "Submit attempts by outcome.",
		}, []string{"outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "regform",
			Name:      "field_rejections_total",
			Help:      "Validation failures by field.",
		}, []string{"field"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "regform",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	m.registry.MustRegister(m.submissions, m.rejections, m.requests)
	return m
}

// RecordSubmission counts one submit attempt and, for rejections, every
// failing field.
func (m *Metrics) RecordSubmission(outcome string, errs model.ErrorMap) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	for _, field := range errs.Fields() {
		m.rejections.WithLabelValues(string(field)).Inc()
	}
}

// RecordRequest observes the latency of one HTTP request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Submissions returns the submit outcome counter.
func (m *Metrics) Submissions() *prometheus.CounterVec {
	return m.submissions
}

// Rejections returns the per-field rejection counter.
func (m *Metrics) Rejections() *prometheus.CounterVec {
	return m.rejections
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
