package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the service on a private registry.
type Metrics struct {
	Registry            *prometheus.Registry
	requestCount        *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	errorCount          *prometheus.CounterVec
	complaintsSubmitted *prometheus.CounterVec
	validationRejected  *prometheus.CounterVec
	statusTransitions   *prometheus.CounterVec
	staleRefreshes      prometheus.Counter
	auditFailures       prometheus.Counter
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_desk_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fraud_desk_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_desk_http_errors_total",
			Help: "HTTP errors by route, method and error code",
		}, []string{"route", "method", "code"}),
		complaintsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_desk_complaints_submitted_total",
			Help: "Complaints accepted by scam type",
		}, []string{"scam_type"}),
		validationRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_desk_validation_rejections_total",
			Help: "Rejected submissions by offending field",
		}, []string{"field"}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_desk_status_transitions_total",
			Help: "Operator status changes by source and target status",
		}, []string{"from", "to"}),
		staleRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fraud_desk_stale_refreshes_total",
			Help: "Store list responses dropped because a newer one was applied",
		}),
		auditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fraud_desk_transition_log_failures_total",
			Help: "Status changes applied to the store whose log entry could not be written",
		}),
	}
	reg.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.errorCount,
		m.complaintsSubmitted,
		m.validationRejected,
		m.statusTransitions,
		m.staleRefreshes,
		m.auditFailures,
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordSubmission counts an accepted complaint.
func (m *Metrics) RecordSubmission(scamType string) {
	if m == nil {
		return
	}
	m.complaintsSubmitted.WithLabelValues(scamType).Inc()
}

// RecordRejection counts each field that failed validation.
func (m *Metrics) RecordRejection(fields []string) {
	if m == nil {
		return
	}
	for _, f := range fields {
		m.validationRejected.WithLabelValues(f).Inc()
	}
}

// RecordTransition counts a status change.
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

// RecordStaleRefresh counts a dropped list response.
func (m *Metrics) RecordStaleRefresh() {
	if m == nil {
		return
	}
	m.staleRefreshes.Inc()
}

// RecordAuditFailure counts a status change missing from the transition log.
func (m *Metrics) RecordAuditFailure() {
	if m == nil {
		return
	}
	m.auditFailures.Inc()
}
