package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rivo/tview"

	"netdash/chart"
	"netdash/stats"
	"netdash/telemetry"
	"netdash/ui"
)

const validBody = `{"scales":["10:00:00","10:00:05","10:00:10"],` +
	`"series_vec":[{"name":"Upload","data":[0,512,2048],"show_avg_line":true}]}`

type recordingSurface struct {
	mu      sync.Mutex
	applied []chart.Config
}

func (s *recordingSurface) Primitive() tview.Primitive { return nil }
func (s *recordingSurface) Apply(cfg chart.Config) {
	s.mu.Lock()
	s.applied = append(s.applied, cfg)
	s.mu.Unlock()
}
func (s *recordingSurface) Reflow(int, int) {}
func (s *recordingSurface) Dispose()        {}

func (s *recordingSurface) applyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applied)
}

type recordingHost struct {
	mu           sync.Mutex
	placeholders []string
}

func (h *recordingHost) MountSurface(ui.Surface) {}
func (h *recordingHost) MountPlaceholder(text string) {
	h.mu.Lock()
	h.placeholders = append(h.placeholders, text)
	h.mu.Unlock()
}
func (h *recordingHost) ClearSlot() {}

func (h *recordingHost) lastPlaceholder() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.placeholders) == 0 {
		return ""
	}
	return h.placeholders[len(h.placeholders)-1]
}

func newTestPoller(url string) (*poller, *recordingHost, *recordingSurface) {
	host := &recordingHost{}
	surface := &recordingSurface{}
	manager := ui.NewManager(host, func() ui.Surface { return surface })
	fetcher := telemetry.NewFetcher(url, time.Second)
	return newPoller(fetcher, manager, stats.NewTracker(), ui.NewMetrics(), 5*time.Second), host, surface
}

func TestPollerRendersPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validBody))
	}))
	defer server.Close()

	p, _, surface := newTestPoller(server.URL)
	p.poll(context.Background())

	if got := p.State(); got != stateRendered {
		t.Fatalf("state = %v, want rendered", got)
	}
	if surface.applyCount() != 1 {
		t.Fatalf("applies = %d, want 1", surface.applyCount())
	}
	if p.tracker.Rendered() != 1 || p.tracker.Polls() != 1 {
		t.Fatalf("rendered/polls = %d/%d", p.tracker.Rendered(), p.tracker.Polls())
	}
}

func TestPollerEmptyPayloadPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scales":[],"series_vec":[]}`))
	}))
	defer server.Close()

	p, host, surface := newTestPoller(server.URL)
	p.poll(context.Background())

	if got := p.State(); got != stateEmpty {
		t.Fatalf("state = %v, want empty", got)
	}
	if got := host.lastPlaceholder(); got != "no data yet, wait 10 seconds" {
		t.Fatalf("placeholder = %q", got)
	}
	if surface.applyCount() != 0 {
		t.Fatalf("empty payload must not render a chart")
	}
}

func TestPollerFailureThenRecovery(t *testing.T) {
	var mu sync.Mutex
	failing := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		bad := failing
		mu.Unlock()
		if bad {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(validBody))
	}))
	defer server.Close()

	p, host, surface := newTestPoller(server.URL)
	p.poll(context.Background())

	if got := p.State(); got != stateFailed {
		t.Fatalf("state = %v, want failed", got)
	}
	if got := host.lastPlaceholder(); got != "failed to fetch data" {
		t.Fatalf("placeholder = %q", got)
	}

	// Next cycle succeeds without any intervention.
	mu.Lock()
	failing = false
	mu.Unlock()
	p.poll(context.Background())

	if got := p.State(); got != stateRendered {
		t.Fatalf("state after recovery = %v, want rendered", got)
	}
	if surface.applyCount() != 1 {
		t.Fatalf("applies = %d, want 1", surface.applyCount())
	}
	if p.tracker.Failed() != 1 || p.tracker.Rendered() != 1 {
		t.Fatalf("failed/rendered = %d/%d", p.tracker.Failed(), p.tracker.Rendered())
	}
}

func TestPollerSkipsIdenticalPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validBody))
	}))
	defer server.Close()

	p, _, surface := newTestPoller(server.URL)
	p.poll(context.Background())
	p.poll(context.Background())

	if surface.applyCount() != 1 {
		t.Fatalf("applies = %d, identical payload must not re-render", surface.applyCount())
	}
	if p.tracker.Unchanged() != 1 {
		t.Fatalf("unchanged = %d, want 1", p.tracker.Unchanged())
	}
	if got := p.State(); got != stateRendered {
		t.Fatalf("state = %v, want rendered after skip", got)
	}
}

func TestPollerContractErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scales":["a","b"],"series_vec":[{"name":"Upload","data":[1]}]}`))
	}))
	defer server.Close()

	p, host, _ := newTestPoller(server.URL)
	p.poll(context.Background())

	if got := p.State(); got != stateFailed {
		t.Fatalf("state = %v, want failed", got)
	}
	if got := host.lastPlaceholder(); got != "failed to fetch data" {
		t.Fatalf("placeholder = %q", got)
	}
}

func TestPollerStartMountsInitialPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validBody))
	}))
	defer server.Close()

	host := &recordingHost{}
	surface := &recordingSurface{}
	manager := ui.NewManager(host, func() ui.Surface { return surface })
	fetcher := telemetry.NewFetcher(server.URL, time.Second)
	p := newPoller(fetcher, manager, stats.NewTracker(), ui.NewMetrics(), 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	deadline := time.After(2 * time.Second)
	for surface.applyCount() == 0 {
		select {
		case <-deadline:
			t.Fatalf("first poll never rendered")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if host.lastPlaceholder() != "no data yet, wait 10 seconds" {
		t.Fatalf("initial placeholder = %q", host.lastPlaceholder())
	}
}
