package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/complaints", "POST", 201, 12*time.Millisecond)
	m.RecordRequest("/api/complaints", "POST", 201, 8*time.Millisecond)
	m.RecordSubmission("crypto")
	m.RecordRejection([]string{"email", "name"})
	m.RecordTransition("pending", "closed")
	m.RecordStaleRefresh()
	m.RecordAuditFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCount.WithLabelValues("/api/complaints", "POST", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.complaintsSubmitted.WithLabelValues("crypto")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationRejected.WithLabelValues("email")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("pending", "closed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.staleRefreshes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.auditFailures))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordSubmission("crypto")
		m.RecordTransition("a", "b")
		m.RecordStaleRefresh()
		m.RecordAuditFailure()
	})
}
