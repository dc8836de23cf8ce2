package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveAllocation(OutcomeOK)
	m.ObserveAllocation(OutcomeOK)
	m.ObserveAllocation(OutcomeMismatch)
	m.ObserveRPC("/billsplit.v1.ReceiptService/GetReceipt", "ok", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.allocations.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.allocations.WithLabelValues(OutcomeMismatch)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.rpcRequests.WithLabelValues("/billsplit.v1.ReceiptService/GetReceipt", "ok")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `billsplit_allocations_total{outcome="mismatch"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAllocation(OutcomeError)
		m.ObserveRPC("x", "ok", time.Second)
	})
}
