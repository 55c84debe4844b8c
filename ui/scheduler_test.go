package ui

import (
	"sync"
	"testing"
	"time"
)

func TestSchedulerCoalescesById(t *testing.T) {
	s := newFrameScheduler(nil, 50, 0, nil)
	s.Start()
	defer s.Stop()

	var mu sync.Mutex
	runs := 0
	for i := 0; i < 10; i++ {
		s.Schedule("status", func() {
			mu.Lock()
			runs++
			mu.Unlock()
		})
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := runs
		mu.Unlock()
		if n > 0 {
			if n > 2 {
				t.Fatalf("runs = %d, rapid same-id updates should coalesce", n)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("scheduled op never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestSchedulerDistinctIdsAllRun(t *testing.T) {
	s := newFrameScheduler(nil, 50, 0, nil)
	s.Start()
	defer s.Stop()

	var wg sync.WaitGroup
	wg.Add(3)
	for _, id := range []string{"status", "slot", "log"} {
		s.Schedule(id, wg.Done)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("not all scheduled ops ran")
	}
}

func TestSchedulerStopFlushesPending(t *testing.T) {
	s := newFrameScheduler(nil, 1, 0, nil) // slow tick so Stop does the flushing
	s.Start()

	ran := make(chan struct{})
	s.Schedule("final", func() { close(ran) })
	s.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatalf("pending op lost on stop")
	}
}

func TestSchedulerStopIdempotent(t *testing.T) {
	s := newFrameScheduler(nil, 30, 0, nil)
	s.Start()
	s.Stop()
	s.Stop() // must not panic
}
