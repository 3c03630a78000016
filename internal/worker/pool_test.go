package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	id      int
	err     error
	execute func()
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) GetError() error { return r.err }

func (j *testJob) Execute(ctx context.Context) Result {
	if j.execute != nil {
		j.execute()
	}
	return &testResult{id: j.id, err: j.err}
}

func TestPoolExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed atomic.Int64
	for i := 0; i < 10; i++ {
		pool.Submit(&testJob{id: i, execute: func() { executed.Add(1) }})
	}

	results := pool.Wait()

	if executed.Load() != 10 {
		t.Errorf("expected 10 executions, got %d", executed.Load())
	}
	if len(results) != 10 {
		t.Errorf("expected 10 results, got %d", len(results))
	}
}

func TestPoolCollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&testJob{id: 1})
	pool.Submit(&testJob{id: 2, err: errors.New("failed")})

	results := pool.Wait()

	var failures int
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 2
	pool := NewPool(workers)
	pool.Start()

	var inFlight, peak atomic.Int64
	for i := 0; i < 8; i++ {
		pool.Submit(&testJob{id: i, execute: func() {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
		}})
	}

	pool.Wait()

	if peak.Load() > workers {
		t.Errorf("observed %d concurrent jobs with %d workers", peak.Load(), workers)
	}
}

func TestPoolShutdown(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Shutdown()

	// Submissions after shutdown are dropped rather than blocking
	done := make(chan struct{})
	go func() {
		pool.Submit(&testJob{id: 1})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked after shutdown")
	}
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&testJob{id: 1})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}
