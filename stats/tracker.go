// Package stats tracks poll-cycle counters for the status line. All counters
// are atomic so the poller and the UI read and write without locks.
package stats

import (
	"sync/atomic"
	"time"
)

type Tracker struct {
	started time.Time

	polls     atomic.Int64
	rendered  atomic.Int64
	empty     atomic.Int64
	failed    atomic.Int64
	unchanged atomic.Int64
	bytes     atomic.Int64
}

func NewTracker() *Tracker {
	return &Tracker{started: time.Now()}
}

// CountPoll records one completed poll cycle regardless of outcome.
func (t *Tracker) CountPoll() { t.polls.Add(1) }

// CountRendered records a cycle that produced a drawable chart.
func (t *Tracker) CountRendered() { t.rendered.Add(1) }

// CountEmpty records a cycle whose payload carried no samples.
func (t *Tracker) CountEmpty() { t.empty.Add(1) }

// CountFailed records a cycle that ended in a fetch, decode, contract or
// numeric error.
func (t *Tracker) CountFailed() { t.failed.Add(1) }

// CountUnchanged records a cycle short-circuited by a 304 or an identical
// payload fingerprint.
func (t *Tracker) CountUnchanged() { t.unchanged.Add(1) }

// AddBytes accumulates payload bytes received over the wire.
func (t *Tracker) AddBytes(n int64) { t.bytes.Add(n) }

func (t *Tracker) Polls() int64     { return t.polls.Load() }
func (t *Tracker) Rendered() int64  { return t.rendered.Load() }
func (t *Tracker) Empty() int64     { return t.empty.Load() }
func (t *Tracker) Failed() int64    { return t.failed.Load() }
func (t *Tracker) Unchanged() int64 { return t.unchanged.Load() }
func (t *Tracker) Bytes() int64     { return t.bytes.Load() }

func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
