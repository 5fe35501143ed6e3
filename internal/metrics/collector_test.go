package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	c.ObserveRecord("success")
	c.ObserveRecord("success")
	c.ObserveRecord("timeout")
	c.SetCounters(2, 1)

	if got := testutil.ToFloat64(c.records.WithLabelValues("success")); got != 2 {
		t.Errorf("expected 2 success records, got %v", got)
	}
	if got := testutil.ToFloat64(c.records.WithLabelValues("timeout")); got != 1 {
		t.Errorf("expected 1 timeout record, got %v", got)
	}
	if got := testutil.ToFloat64(c.retries); got != 1 {
		t.Errorf("expected retry gauge 1, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.ObserveRecord("out_of_scope")
	c.ObserveIteration(IterationMetrics{Start: time.Now().Add(-time.Second), End: time.Now()})

	path := filepath.Join(t.TempDir(), "reconpipe.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	body := string(data)
	for _, want := range []string{
		`reconpipe_records_total{kind="out_of_scope"} 1`,
		"reconpipe_iteration_duration_seconds_count 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("textfile missing %q:\n%s", want, body)
		}
	}
}

func TestFinalize(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	it := IterationMetrics{Start: start, End: start.Add(1500 * time.Millisecond)}
	it.Finalize()
	if it.DurationMs != 1500 {
		t.Errorf("expected 1500ms, got %d", it.DurationMs)
	}
	run := RunMetrics{Start: start, End: start.Add(2 * time.Second)}
	run.Finalize()
	if run.DurationMs != 2000 {
		t.Errorf("expected 2000ms, got %d", run.DurationMs)
	}
}
