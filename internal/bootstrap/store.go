package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/KnightlyTreasures_Go/internal/config"
	"github.com/osse101/KnightlyTreasures_Go/internal/database"
	"github.com/osse101/KnightlyTreasures_Go/internal/database/memory"
	"github.com/osse101/KnightlyTreasures_Go/internal/database/postgres"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
)

// StoreHandle is the store the app runs on.
// Pool is nil unless the store is postgres-backed.
type StoreHandle struct {
	Store     repository.Store
	Pool      database.Pool
	LocalOnly bool
}

// Swapped in tests so the fallback path runs without a database
var (
	openPool = func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return database.NewPool(ctx, database.PoolConfig{
			ConnString:      cfg.GetDBConnString(),
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		})
	}
	migrate = database.Migrate
)

// OpenStore picks the store for cfg. Local mode uses the in-memory store.
// In postgres mode an unreachable database degrades to the in-memory store
// with LocalOnly set; a failed migration on a reachable database is an error.
func OpenStore(ctx context.Context, cfg *config.Config) (*StoreHandle, error) {
	if cfg.LocalOnly() {
		slog.Info(LogMsgStoreLocalMode)
		return localHandle(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, StoreConnectTimeout)
	defer cancel()

	pool, err := openPool(connectCtx, cfg)
	if err != nil {
		slog.Warn(LogMsgStoreUnavailable, "error", err)
		return localHandle(), nil
	}

	if cfg.DBAutoMigrate {
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
	}

	slog.Info(LogMsgStoreConnected, "host", cfg.DBHost, "db", cfg.DBName)
	return &StoreHandle{Store: postgres.NewStore(pool), Pool: pool}, nil
}

func localHandle() *StoreHandle {
	return &StoreHandle{Store: memory.NewStore(), LocalOnly: true}
}
