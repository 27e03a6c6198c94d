package repository

import (
	"context"
	"errors"

	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rolling back after Commit is expected in deferred calls
		if !errors.Is(err, ErrTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
