// Package metrics exposes Prometheus collectors for inventory operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
)

// ResultOK labels operations that completed without error.
const ResultOK = "ok"

// EngineMetrics records engine operation outcomes and ledger growth.
type EngineMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	history    *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
// A nil registerer yields a recorder that drops everything.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evidenca_operations_total",
		Help: "Inventory engine operations by outcome.",
	}, []string{"operation", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "evidenca_operation_duration_seconds",
		Help:    "Duration of inventory engine operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	history := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evidenca_history_entries_total",
		Help: "History entries appended, by field.",
	}, []string{"field"})
	reg.MustRegister(operations, duration, history)
	return &EngineMetrics{
		operations: operations,
		duration:   duration,
		history:    history,
	}
}

// Observe records one operation. The result label is the error code, or
// ResultOK when err is nil.
func (m *EngineMetrics) Observe(operation string, err error, d time.Duration) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(operation, Result(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncHistory counts one appended history entry.
func (m *EngineMetrics) IncHistory(field string) {
	if m == nil || m.history == nil {
		return
	}
	m.history.WithLabelValues(field).Inc()
}

// Result returns the label used for err.
func Result(err error) string {
	if err == nil {
		return ResultOK
	}
	return string(pkgerrors.CodeOf(err))
}
