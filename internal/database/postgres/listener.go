package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
)

const listenerBuffer = 16

// Subscribe takes a dedicated connection out of the pool and forwards every
// shop_changes notification. The channel closes when ctx ends or the
// connection fails; callers resubscribe on close.
func (s *Store) Subscribe(ctx context.Context) (<-chan domain.ChangeNotice, error) {
	pc, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAcquireListener, err)
	}
	// A LISTENing connection must never go back to the pool
	conn := pc.Hijack()

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		_ = conn.Close(context.Background())
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListen, err)
	}

	out := make(chan domain.ChangeNotice, listenerBuffer)
	go func() {
		defer close(out)
		defer conn.Close(context.Background())

		for {
			n, err := conn.WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.FromContext(ctx).Warn(LogMsgListenerStopped, "error", err)
				}
				return
			}
			select {
			case out <- domain.ChangeNotice{Source: domain.ChangeSource(n.Payload)}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
