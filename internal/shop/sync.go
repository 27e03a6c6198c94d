package shop

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/event"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
	"github.com/osse101/KnightlyTreasures_Go/internal/reservation"
	"github.com/osse101/KnightlyTreasures_Go/internal/state"
)

// Refresh reads every shared table and rebuilds the shop state from the result.
// Reservations found expired are deleted from the store.
func (s *service) Refresh(ctx context.Context, source string) error {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgSnapshotFailed, "source", source, "error", err)
		return err
	}
	metrics.SnapshotReloads.WithLabelValues(source).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, snap)
	s.releaseExpired(ctx, s.st.Expired)
	return nil
}

func (s *service) loadSnapshot(ctx context.Context) (state.Snapshot, error) {
	now := s.now()
	snap := state.Snapshot{Week: s.week(now), LoadedAt: now}

	var err error
	if snap.Purchases, err = s.store.ListPurchases(ctx); err != nil {
		return snap, fmt.Errorf("failed to load purchases: %w", err)
	}
	if snap.Reservations, err = s.store.ListReservations(ctx); err != nil {
		return snap, fmt.Errorf("failed to load reservations: %w", err)
	}
	if snap.Honor, err = s.store.GetHonor(ctx); err != nil {
		return snap, fmt.Errorf("failed to load honor: %w", err)
	}
	if snap.Quest, err = s.store.GetQuest(ctx); err != nil {
		return snap, fmt.Errorf("failed to load quest: %w", err)
	}
	if snap.Location, err = s.store.GetLocation(ctx); err != nil {
		return snap, fmt.Errorf("failed to load location: %w", err)
	}
	if snap.Characters, err = s.chars.ListCharacters(ctx); err != nil {
		return snap, fmt.Errorf("failed to load characters: %w", err)
	}
	return snap, nil
}

// apply swaps in the reduced state and announces selection changes. Caller holds s.mu.
func (s *service) apply(ctx context.Context, snap state.Snapshot) {
	prev := s.st
	s.st = state.ApplyRemoteSnapshot(prev, snap, s.gen)

	ids := s.st.SelectionIDs()
	switch {
	case prev.Week != 0 && prev.Week != s.st.Week:
		s.publish(ctx, event.NewSelectionEvent(event.WeekRollover, s.st.Week, ids, snap.LoadedAt))
	case !slices.Equal(prev.SelectionIDs(), ids):
		s.publish(ctx, event.NewSelectionEvent(event.SelectionChanged, s.st.Week, ids, snap.LoadedAt))
	default:
		return
	}
	logger.FromContext(ctx).Info(LogMsgSelectionRecomputed, "week", s.st.Week, "items", len(ids))
}

// releaseExpired deletes lapsed holds. A hold another client already removed is not an error.
func (s *service) releaseExpired(ctx context.Context, expired []domain.ReservationRecord) int {
	released := 0
	for _, r := range expired {
		if err := s.store.DeleteReservation(ctx, r.ItemID); err != nil {
			logger.FromContext(ctx).Warn(LogMsgRemoteWriteFailed, "operation", OpExpireReservation, "item_id", r.ItemID, "error", err)
			metrics.RemoteWriteFailures.WithLabelValues(OpExpireReservation).Inc()
			continue
		}
		released++
		metrics.ReservationsExpired.Inc()
		logger.FromContext(ctx).Info(LogMsgReservationExpired, "item_id", r.ItemID, "reserved_by", r.ReservedBy)
		s.publish(ctx, event.NewItemEvent(event.ReservationReleased, r.ItemID, r.ReservedBy, 0, s.now()))
	}
	return released
}

// ExpireReservations deletes every hold older than reservation.Duration and
// returns how many this call removed.
func (s *service) ExpireReservations(ctx context.Context) (int, error) {
	records, err := s.store.ListReservations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load reservations: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	_, expired := reservation.Partition(records, now)
	if len(expired) == 0 {
		return 0, nil
	}

	released := s.releaseExpired(ctx, expired)
	s.applyLocal(ctx, func(snap *state.Snapshot) {
		for _, r := range expired {
			removeReservation(snap, r.ItemID)
		}
	})
	return released, nil
}

// Run keeps the state in step with the store until ctx is cancelled.
// A dropped subscription is reopened after ResubscribeDelay, followed by a full reload
// since notices may have been missed in between.
func (s *service) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	for {
		notices, err := s.store.Subscribe(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			log.Warn(LogMsgSubscribeFailed, "error", err)
		} else {
			_ = s.Refresh(ctx, SourceManual)
			for notice := range notices {
				_ = s.Refresh(ctx, string(notice.Source))
			}
			if ctx.Err() != nil {
				return nil
			}
			log.Warn(LogMsgSubscriptionClosed)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(ResubscribeDelay):
		}
	}
}
