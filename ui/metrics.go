package ui

import (
	"sort"
	"sync"
	"time"
)

// LatencyTracker keeps a bounded ring of durations for percentile estimates.
type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	count   int
	idx     int
}

func NewLatencyTracker(size int) *LatencyTracker {
	if size <= 0 {
		size = 256
	}
	return &LatencyTracker{samples: make([]time.Duration, size)}
}

func (t *LatencyTracker) Observe(d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.samples[t.idx] = d
	t.idx = (t.idx + 1) % len(t.samples)
	if t.count < len(t.samples) {
		t.count++
	}
	t.mu.Unlock()
}

// LatencySnapshot summarizes a tracker at one instant.
type LatencySnapshot struct {
	P50 time.Duration
	P99 time.Duration
	N   int
}

func (t *LatencyTracker) Snapshot() LatencySnapshot {
	if t == nil {
		return LatencySnapshot{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		return LatencySnapshot{}
	}
	values := make([]time.Duration, t.count)
	copy(values, t.samples[:t.count])
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return LatencySnapshot{
		P50: values[t.count/2],
		P99: values[int(float64(t.count-1)*0.99)],
		N:   t.count,
	}
}

// Metrics tracks the two latencies the status line reports: how long polls
// take against the endpoint and how long queued draws wait for the screen.
type Metrics struct {
	fetchLatency  *LatencyTracker
	renderLatency *LatencyTracker
}

func NewMetrics() *Metrics {
	return &Metrics{
		fetchLatency:  NewLatencyTracker(512),
		renderLatency: NewLatencyTracker(512),
	}
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchLatency.Observe(d)
}

func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.renderLatency.Observe(d)
}

func (m *Metrics) FetchSnapshot() LatencySnapshot {
	if m == nil {
		return LatencySnapshot{}
	}
	return m.fetchLatency.Snapshot()
}

func (m *Metrics) RenderSnapshot() LatencySnapshot {
	if m == nil {
		return LatencySnapshot{}
	}
	return m.renderLatency.Snapshot()
}
