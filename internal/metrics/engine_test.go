package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	pkgerrors "github.com/erazemk/evidenca/internal/errors"
)

func TestEngineMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)

	m.Observe("create_item", nil, 20*time.Millisecond)
	m.Observe("create_item", pkgerrors.New(pkgerrors.CodeNotFound, "no type"), time.Millisecond)
	m.IncHistory("created")
	m.IncHistory("created")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "evidenca_operations_total", map[string]string{"operation": "create_item", "result": "ok"}); err != nil {
		t.Fatalf("fetch ok: %v", err)
	} else if got != 1 {
		t.Fatalf("expected ok=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "evidenca_operations_total", map[string]string{"operation": "create_item", "result": "NOT_FOUND"}); err != nil {
		t.Fatalf("fetch not found: %v", err)
	} else if got != 1 {
		t.Fatalf("expected NOT_FOUND=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "evidenca_history_entries_total", map[string]string{"field": "created"}); err != nil {
		t.Fatalf("fetch history: %v", err)
	} else if got != 2 {
		t.Fatalf("expected history=2, got %f", got)
	}

	mf := findMetricFamily(mfs, "evidenca_operation_duration_seconds")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatalf("expected one duration series")
	}
	if mf.GetMetric()[0].GetHistogram().GetSampleCount() != 2 {
		t.Fatalf("expected two duration samples")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *EngineMetrics
	m.Observe("open", nil, time.Second)
	m.IncHistory("name")

	NewEngineMetrics(nil).Observe("open", nil, time.Second)
}

func TestResult(t *testing.T) {
	if Result(nil) != ResultOK {
		t.Fatal("nil error should be ok")
	}
	if Result(errors.New("disk")) != "STORAGE_FAILURE" {
		t.Fatal("uncoded error should be a storage failure")
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
