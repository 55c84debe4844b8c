package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"netdash/chart"
	"netdash/stats"
	"netdash/telemetry"
	"netdash/ui"
)

const failedPlaceholder = "failed to fetch data"

type pollState int

const (
	stateIdle pollState = iota
	stateFetching
	stateRendered
	stateEmpty
	stateFailed
)

func (s pollState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateFetching:
		return "fetching"
	case stateRendered:
		return "rendered"
	case stateEmpty:
		return "empty"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// poller drives the fetch/shape/render cycle. Each tick fetches the payload,
// adapts it into a chart configuration and hands it to the surface manager,
// or swaps in a placeholder when the payload is empty or the cycle fails.
// Polls run synchronously inside the loop goroutine, so a slow fetch delays
// the next tick instead of stacking requests.
type poller struct {
	fetcher *telemetry.Fetcher
	manager *ui.Manager
	tracker *stats.Tracker
	metrics *ui.Metrics
	period  time.Duration

	mu              sync.Mutex
	state           pollState
	lastTerminal    pollState
	lastFingerprint uint64
}

func newPoller(fetcher *telemetry.Fetcher, manager *ui.Manager, tracker *stats.Tracker, metrics *ui.Metrics, period time.Duration) *poller {
	if period <= 0 {
		period = 5 * time.Second
	}
	return &poller{
		fetcher:      fetcher,
		manager:      manager,
		tracker:      tracker,
		metrics:      metrics,
		period:       period,
		state:        stateIdle,
		lastTerminal: stateIdle,
	}
}

// Start mounts the initial placeholder, polls once immediately, then keeps
// polling on the period until ctx is cancelled.
func (p *poller) Start(ctx context.Context) {
	p.manager.ShowPlaceholder(p.emptyPlaceholder())
	go func() {
		p.poll(ctx)
		ticker := time.NewTicker(p.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

// State reports the current cycle state for the status line.
func (p *poller) State() pollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	p.setState(stateFetching)
	p.tracker.CountPoll()

	start := time.Now()
	body, changed, err := p.fetcher.Fetch(ctx)
	p.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.fail(err)
		return
	}
	p.tracker.AddBytes(int64(len(body)))

	if !changed {
		p.unchanged("not modified")
		return
	}
	fingerprint := telemetry.Fingerprint(body)
	p.mu.Lock()
	identical := fingerprint == p.lastFingerprint && p.lastTerminal == stateRendered
	p.mu.Unlock()
	if identical {
		p.unchanged("identical payload")
		return
	}

	payload, err := telemetry.Decode(body)
	if err != nil {
		p.fail(err)
		return
	}
	if payload.Empty() {
		p.tracker.CountEmpty()
		p.manager.ShowPlaceholder(p.emptyPlaceholder())
		p.settle(stateEmpty, 0)
		return
	}

	cfg, err := chart.Adapt(payload)
	if err != nil {
		p.fail(err)
		return
	}

	p.manager.EnsureSurface().Apply(cfg)
	p.tracker.CountRendered()
	p.settle(stateRendered, fingerprint)
}

// fail logs the cause and degrades the slot to the failure placeholder. The
// fingerprint resets so a recovered source re-renders even if its payload
// matches the last one drawn.
func (p *poller) fail(err error) {
	log.Printf("Poll failed: %v", err)
	p.tracker.CountFailed()
	p.manager.ShowPlaceholder(failedPlaceholder)
	p.settle(stateFailed, 0)
}

// unchanged keeps whatever the slot currently shows and restores the state
// reached by the last full cycle.
func (p *poller) unchanged(reason string) {
	p.tracker.CountUnchanged()
	p.mu.Lock()
	p.state = p.lastTerminal
	p.mu.Unlock()
	log.Printf("Poll unchanged (%s)", reason)
}

func (p *poller) setState(s pollState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

func (p *poller) settle(s pollState, fingerprint uint64) {
	p.mu.Lock()
	p.state = s
	p.lastTerminal = s
	p.lastFingerprint = fingerprint
	p.mu.Unlock()
}

// emptyPlaceholder names a wait that spans two poll periods, enough for the
// source to accumulate its first sample window.
func (p *poller) emptyPlaceholder() string {
	return fmt.Sprintf("no data yet, wait %d seconds", int(2*p.period/time.Second))
}
