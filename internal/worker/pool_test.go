package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
	"github.com/osse101/KnightlyTreasures_Go/internal/testing/leaktest"
)

func TestPool_RunsQueuedJobs(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed atomic.Int32
	job := JobFunc(func(context.Context) error {
		executed.Add(1)
		return nil
	})

	pool := NewPool(2, 10)
	pool.Start()
	for range 5 {
		assert.True(t, pool.Enqueue(job))
	}
	require.Eventually(t, func() bool { return executed.Load() == 5 }, time.Second, 5*time.Millisecond)

	pool.Stop()
	pool.Stop()
	assert.False(t, pool.Enqueue(job), "stopped pool rejects jobs")
	checker.Check(0)
}

func TestPool_FailingJobKeepsWorkerAlive(t *testing.T) {
	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	failures := testutil.ToFloat64(metrics.JobsProcessed.WithLabelValues("always-fails", ResultError))

	var ran atomic.Bool
	pool.Enqueue(namedJob{name: "always-fails", fn: func(context.Context) error { return errors.New("boom") }})
	pool.Enqueue(JobFunc(func(context.Context) error {
		ran.Store(true)
		return nil
	}))

	require.Eventually(t, ran.Load, time.Second, 5*time.Millisecond)
	assert.Equal(t, failures+1, testutil.ToFloat64(metrics.JobsProcessed.WithLabelValues("always-fails", ResultError)))
}

func TestPool_StopCancelsRunningJob(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	started := make(chan struct{})
	var cancelled atomic.Bool
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}))

	<-started
	pool.Stop()
	assert.True(t, cancelled.Load())
}

func TestNewPool_AtLeastOneWorker(t *testing.T) {
	assert.Equal(t, 1, NewPool(0, 1).size)
	assert.Equal(t, 1, NewPool(-3, 1).size)
}

func TestJobName(t *testing.T) {
	assert.Equal(t, "reservation-expiry", jobName(NewReservationExpiryJob(nil)))
	assert.Equal(t, "worker.JobFunc", jobName(JobFunc(nil)))
}

type namedJob struct {
	name string
	fn   func(context.Context) error
}

func (j namedJob) Name() string                      { return j.name }
func (j namedJob) Process(ctx context.Context) error { return j.fn(ctx) }

type fakeExpirer struct {
	n   int
	err error
}

func (f fakeExpirer) ExpireReservations(context.Context) (int, error) { return f.n, f.err }

func TestReservationExpiryJob(t *testing.T) {
	assert.NoError(t, NewReservationExpiryJob(fakeExpirer{n: 2}).Process(context.Background()))
	assert.Error(t, NewReservationExpiryJob(fakeExpirer{err: errors.New("db")}).Process(context.Background()))
}
