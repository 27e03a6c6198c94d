// Package scheduler feeds periodic jobs into the worker pool.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/worker"
)

// Enqueuer accepts jobs for execution. *worker.Pool satisfies it.
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

type entry struct {
	name      string
	interval  time.Duration
	job       worker.Job
	immediate bool
}

// Scheduler enqueues each registered job on its own ticker
type Scheduler struct {
	pool   Enqueuer
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(pool Enqueuer) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{pool: pool, ctx: ctx, cancel: cancel}
}

// Schedule runs job every interval, first one interval from now
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.start(entry{name: name, interval: interval, job: job})
}

// ScheduleNow is Schedule with an extra run right away
func (s *Scheduler) ScheduleNow(name string, interval time.Duration, job worker.Job) {
	s.start(entry{name: name, interval: interval, job: job, immediate: true})
}

func (s *Scheduler) start(e entry) {
	logger.Info("Job scheduled", "job", e.name, "interval", e.interval.String(), "immediate", e.immediate)
	s.wg.Add(1)
	go s.loop(e)
}

func (s *Scheduler) loop(e entry) {
	defer s.wg.Done()

	if e.immediate && !s.enqueue(e) {
		return
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			// Enqueue blocks on a full queue, so a slow job delays its next run
			if !s.enqueue(e) {
				return
			}
		}
	}
}

func (s *Scheduler) enqueue(e entry) bool {
	if s.ctx.Err() != nil {
		return false
	}
	return s.pool.Enqueue(e.job)
}

// Stop ends every schedule and waits for the loops to exit. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
