// Package worker runs the shop's background jobs on a fixed set of goroutines.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
)

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Named jobs report under their own label in logs and metrics
type Named interface {
	Name() string
}

func jobName(j Job) string {
	if n, ok := j.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", j)
}

// Pool executes queued jobs. Stopping the pool cancels jobs that are running.
type Pool struct {
	size int
	jobs chan Job

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPool sizes the pool; at least one worker always runs
func NewPool(workers int, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		size:   max(workers, 1),
		jobs:   make(chan Job, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (p *Pool) Start() {
	p.wg.Add(p.size)
	for range p.size {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-p.ctx.Done():
					return
				case job := <-p.jobs:
					p.run(job)
				}
			}
		}()
	}
}

// run executes one job; a failing job never takes its worker down
func (p *Pool) run(job Job) {
	name := jobName(job)
	ctx, cancel := context.WithTimeout(p.ctx, JobTimeout)
	defer cancel()

	start := time.Now()
	err := job.Process(ctx)
	metrics.JobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	result := ResultOK
	if err != nil {
		result = ResultError
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", name, "error", err)
	}
	metrics.JobsProcessed.WithLabelValues(name, result).Inc()
}

// Enqueue queues job, blocking while the queue is full.
// It returns false once the pool has been stopped.
func (p *Pool) Enqueue(job Job) bool {
	if p.ctx.Err() != nil {
		logger.Warn(LogMsgQueueClosed, "job", jobName(job))
		return false
	}
	select {
	case p.jobs <- job:
		return true
	case <-p.ctx.Done():
		logger.Warn(LogMsgQueueClosed, "job", jobName(job))
		return false
	}
}

// Stop cancels running jobs and waits for every worker to exit. Safe to call more than once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}
