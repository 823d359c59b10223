package observ

import (
	"os"
	"testing"
)

func TestCounterLabelsCanonicalized(t *testing.T) {
	IncCounter("test_events_total", map[string]string{"b": "2", "a": "1"})
	IncCounter("test_events_total", map[string]string{"a": "1", "b": "2"})
	if got := CounterValue("test_events_total", map[string]string{"b": "2", "a": "1"}); got != 2 {
		t.Fatalf("label order must not split the series, got %d", got)
	}
}

func TestCounterNoLabels(t *testing.T) {
	IncCounter("test_plain_total", nil)
	IncCounter("test_plain_total", map[string]string{})
	if got := CounterValue("test_plain_total", nil); got != 2 {
		t.Fatalf("nil and empty labels share a series, got %d", got)
	}
}

func TestSnapshotKeys(t *testing.T) {
	IncCounter("test_snap_total", map[string]string{"kind": "x"})
	snap := Snapshot()
	if snap["test_snap_total{kind=x}"] < 1 {
		t.Fatalf("snapshot missing labeled key: %v", snap)
	}
}

func TestObserveAccumulates(t *testing.T) {
	Observe("test_obs", 2.0, map[string]string{"k": "v"})
	Observe("test_obs", 3.5, map[string]string{"k": "v"})
	count, sum := ObservationStats("test_obs", map[string]string{"k": "v"})
	if count != 2 || sum != 5.5 {
		t.Fatalf("want count 2 sum 5.5, got %d %v", count, sum)
	}
}

func TestGaugeOverwrites(t *testing.T) {
	SetGauge("test_gauge", 1.5, nil)
	SetGauge("test_gauge", 2.5, nil)
	reg.mu.Lock()
	got := reg.gauges["test_gauge"][""]
	reg.mu.Unlock()
	if got != 2.5 {
		t.Fatalf("gauge must overwrite, got %v", got)
	}
}

func TestLogDoesNotPanic(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	SetOutput(f)
	defer SetOutput(os.Stdout)

	Log("test_event", map[string]any{"k": 1, "s": "v"})
	Warn("test_warn", nil)
}
