package observ

import (
	"sort"
	"strings"
	"sync"
)

type observation struct {
	count int64
	sum   float64
}

type registry struct {
	mu           sync.Mutex
	counters     map[string]map[string]int64
	gauges       map[string]map[string]float64
	observations map[string]map[string]observation
}

var reg = &registry{
	counters:     map[string]map[string]int64{},
	gauges:       map[string]map[string]float64{},
	observations: map[string]map[string]observation{},
}

// canonicalize label map so key order is stable
func canonLabels(lbl map[string]string) string {
	if len(lbl) == 0 {
		return ""
	}
	keys := make([]string, 0, len(lbl))
	for k := range lbl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(lbl[k])
	}
	return b.String()
}

func IncCounter(name string, labels map[string]string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	m, ok := reg.counters[name]
	if !ok {
		m = map[string]int64{}
		reg.counters[name] = m
	}
	m[canonLabels(labels)]++
}

func SetGauge(name string, value float64, labels map[string]string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	m, ok := reg.gauges[name]
	if !ok {
		m = map[string]float64{}
		reg.gauges[name] = m
	}
	m[canonLabels(labels)] = value
}

// Observe accumulates a value distribution as count and sum.
func Observe(name string, value float64, labels map[string]string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	m, ok := reg.observations[name]
	if !ok {
		m = map[string]observation{}
		reg.observations[name] = m
	}
	o := m[canonLabels(labels)]
	o.count++
	o.sum += value
	m[canonLabels(labels)] = o
}

// ObservationStats reads back an observation series as (count, sum).
func ObservationStats(name string, labels map[string]string) (int64, float64) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	o := reg.observations[name][canonLabels(labels)]
	return o.count, o.sum
}

// CounterValue reads a counter back; used by tests and the CLI summary.
func CounterValue(name string, labels map[string]string) int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.counters[name][canonLabels(labels)]
}

// Snapshot returns a copy of all counters keyed "name{labels}".
func Snapshot() map[string]int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	out := make(map[string]int64)
	for name, m := range reg.counters {
		for lbl, v := range m {
			key := name
			if lbl != "" {
				key = name + "{" + lbl + "}"
			}
			out[key] = v
		}
	}
	return out
}
