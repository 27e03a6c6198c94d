package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/shop"
	"github.com/osse101/KnightlyTreasures_Go/internal/utils"
)

// Refresher reloads shop state
type Refresher interface {
	Refresh(ctx context.Context, source string) error
}

// WeekRolloverWorker reloads the shop at each campaign week boundary so the new
// selection is published without waiting for a request.
type WeekRolloverWorker struct {
	shop          Refresher
	campaignStart time.Time
	clock         func() time.Time

	timer    *time.Timer
	shutdown chan struct{}
	stopped  bool
	wg       sync.WaitGroup
	mu       sync.Mutex
}

func NewWeekRolloverWorker(s Refresher, campaignStart time.Time, clock func() time.Time) *WeekRolloverWorker {
	if clock == nil {
		clock = time.Now
	}
	return &WeekRolloverWorker{
		shop:          s,
		campaignStart: campaignStart,
		clock:         clock,
		shutdown:      make(chan struct{}),
	}
}

func (w *WeekRolloverWorker) Start() {
	w.scheduleNext()
}

func (w *WeekRolloverWorker) scheduleNext() {
	now := w.clock()
	next := utils.NextWeekStart(now, w.campaignStart)
	duration := next.Sub(now)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.timer = time.AfterFunc(duration, func() {
		w.wg.Add(1)
		go w.executeRollover()
	})

	logger.Info(LogMsgWeekRolloverNext,
		"next_rollover", next.Format(time.RFC3339),
		"duration", duration.String())
}

func (w *WeekRolloverWorker) executeRollover() {
	defer w.wg.Done()

	select {
	case <-w.shutdown:
		return
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), JobTimeout)
	defer cancel()
	log := logger.FromContext(ctx)

	log.Info(LogMsgWeekRolloverStart)
	if err := w.shop.Refresh(ctx, shop.SourceRollover); err != nil {
		log.Error(LogMsgWeekRolloverFailed, "error", err)
	} else {
		log.Info(LogMsgWeekRolloverDone, "week", utils.WeekNumber(w.clock(), w.campaignStart))
	}

	w.scheduleNext()
}

func (w *WeekRolloverWorker) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
