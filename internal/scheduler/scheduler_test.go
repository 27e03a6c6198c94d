package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KnightlyTreasures_Go/internal/testing/leaktest"
	"github.com/osse101/KnightlyTreasures_Go/internal/worker"
)

// countingJob signals every run on done
type countingJob struct {
	runs atomic.Int32
	done chan struct{}
}

func newCountingJob() *countingJob {
	return &countingJob{done: make(chan struct{}, 10)}
}

func (j *countingJob) Process(context.Context) error {
	j.runs.Add(1)
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func (j *countingJob) waitRuns(t *testing.T, n int) {
	t.Helper()
	deadline := time.After(time.Second)
	for range n {
		select {
		case <-j.done:
		case <-deadline:
			t.Fatalf("job ran %d times, want %d", j.runs.Load(), n)
		}
	}
}

// refusingPool rejects everything, like a stopped worker pool
type refusingPool struct{ calls atomic.Int32 }

func (p *refusingPool) Enqueue(worker.Job) bool {
	p.calls.Add(1)
	return false
}

func TestScheduler(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := worker.NewPool(1, 10)
	pool.Start()

	sched := New(pool)
	job := newCountingJob()
	sched.Schedule("tick", 10*time.Millisecond, job)

	job.waitRuns(t, 2)
	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))

	sched.Stop()
	sched.Stop()
	pool.Stop()
	checker.Check(0)
}

func TestScheduleNow_RunsImmediately(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := newCountingJob()
	sched.ScheduleNow("tick", time.Hour, job)

	job.waitRuns(t, 1)
}

func TestScheduler_LoopExitsWhenPoolRefuses(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	pool := &refusingPool{}

	sched := New(pool)
	sched.ScheduleNow("refused", time.Hour, newCountingJob())

	require.Eventually(t, func() bool { return pool.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	checker.Check(0)
	sched.Stop()
}
