package shop

import (
	"context"
	"fmt"
	"maps"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/event"
	"github.com/osse101/KnightlyTreasures_Go/internal/honor"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/state"
)

// Admin operations: they change shared campaign state and never touch a purse.

// RestorePurchase deletes the purchase record so the item can appear in future weeks
func (s *service) RestorePurchase(ctx context.Context, itemID string) (*Result, error) {
	logger.FromContext(ctx).Info("RestorePurchase called", "item_id", itemID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.Purchased[itemID]; !ok {
		return nil, fmt.Errorf("%w: no purchase record for %s", domain.ErrItemNotFound, itemID)
	}

	res := s.newResult()
	res.ItemID = itemID
	if err := s.store.DeletePurchase(ctx, itemID); err != nil {
		s.remoteWriteFailed(ctx, res, OpRestorePurchase, err)
	}

	s.applyLocal(ctx, func(snap *state.Snapshot) {
		out := snap.Purchases[:0:0]
		for _, p := range snap.Purchases {
			if p.ItemID != itemID {
				out = append(out, p)
			}
		}
		snap.Purchases = out
	})
	s.publish(ctx, event.NewItemEvent(event.PurchaseRestored, itemID, "", 0, s.now()))
	return res, nil
}

// SetHonor records the party's standing with clan
func (s *service) SetHonor(ctx context.Context, clan string, score int) (*Result, error) {
	logger.FromContext(ctx).Info("SetHonor called", "clan", clan, "score", score)
	if clan == "" || score < honor.MinScore || score > honor.MaxScore {
		return nil, fmt.Errorf("%w: honor score must be between %d and %d", domain.ErrInvalidInput, honor.MinScore, honor.MaxScore)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.newResult()
	if err := s.store.SetHonor(ctx, clan, score); err != nil {
		s.remoteWriteFailed(ctx, res, OpSetHonor, err)
	}

	s.applyLocal(ctx, func(snap *state.Snapshot) {
		scores := maps.Clone(snap.Honor)
		if scores == nil {
			scores = map[string]int{}
		}
		scores[clan] = score
		snap.Honor = scores
	})
	s.publish(ctx, event.NewWorldUpdatedEvent(event.WorldPayloadV1{Field: "honor", Clan: clan, Score: score}, s.now()))
	return res, nil
}

// SetQuest replaces the active quest; nil clears it
func (s *service) SetQuest(ctx context.Context, quest *domain.ActiveQuest) (*Result, error) {
	logger.FromContext(ctx).Info("SetQuest called", "quest", quest)

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.newResult()
	if err := s.store.SetQuest(ctx, quest); err != nil {
		s.remoteWriteFailed(ctx, res, OpSetQuest, err)
	}

	s.applyLocal(ctx, func(snap *state.Snapshot) { snap.Quest = quest })
	s.publish(ctx, event.NewWorldUpdatedEvent(event.WorldPayloadV1{Field: "quest"}, s.now()))
	return res, nil
}

// SetLocation moves the party; nil clears it
func (s *service) SetLocation(ctx context.Context, loc *domain.PartyLocation) (*Result, error) {
	logger.FromContext(ctx).Info("SetLocation called", "location", loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.newResult()
	if err := s.store.SetLocation(ctx, loc); err != nil {
		s.remoteWriteFailed(ctx, res, OpSetLocation, err)
	}

	s.applyLocal(ctx, func(snap *state.Snapshot) { snap.Location = loc })
	s.publish(ctx, event.NewWorldUpdatedEvent(event.WorldPayloadV1{Field: "location"}, s.now()))
	return res, nil
}
