package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStatusUpdate(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveStatusUpdate("", ResultApplied)
	m.ObserveStatusUpdate("cancel", ResultApplied)
	m.ObserveStatusUpdate("cancel", ResultApplied)
	m.ObserveStatusUpdate("refund", ResultRejected)

	if got := testutil.ToFloat64(m.StatusUpdates.WithLabelValues("none", ResultApplied)); got != 1 {
		t.Fatalf("none/applied: got %v want 1", got)
	}
	if got := testutil.ToFloat64(m.StatusUpdates.WithLabelValues("cancel", ResultApplied)); got != 2 {
		t.Fatalf("cancel/applied: got %v want 2", got)
	}
	if got := testutil.ToFloat64(m.StatusUpdates.WithLabelValues("refund", ResultRejected)); got != 1 {
		t.Fatalf("refund/rejected: got %v want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveStatusUpdate("cancel", ResultApplied)
	m.ObserveNotification(ResultApplied)
}
