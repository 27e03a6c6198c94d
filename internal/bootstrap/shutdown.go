package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
	"github.com/osse101/KnightlyTreasures_Go/internal/scheduler"
	"github.com/osse101/KnightlyTreasures_Go/internal/server"
	"github.com/osse101/KnightlyTreasures_Go/internal/sse"
	"github.com/osse101/KnightlyTreasures_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server         *server.Server
	CancelSync     context.CancelFunc
	Scheduler      *scheduler.Scheduler
	RolloverWorker *worker.WeekRolloverWorker
	WorkerPool     *worker.Pool
	Hub            *sse.Hub
	Store          repository.Store
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Change-feed sync, scheduler and rollover timer (no new work)
// 3. Worker pool (drain queued jobs)
// 4. SSE hub, then the store
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.CancelSync != nil {
		c.CancelSync()
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.RolloverWorker != nil {
		if err := c.RolloverWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgRolloverShutdownFail, "error", err)
		}
	}

	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Store != nil {
		c.Store.Close()
	}

	slog.Info(LogMsgServerStopped)
}
