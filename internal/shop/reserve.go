package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/KnightlyTreasures_Go/internal/currency"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/event"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
	"github.com/osse101/KnightlyTreasures_Go/internal/reservation"
	"github.com/osse101/KnightlyTreasures_Go/internal/state"
)

// Reserve holds a rare or legendary item for characterID against a deposit.
// The full price is fixed at reservation time.
func (s *service) Reserve(ctx context.Context, characterID, itemID string) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info("Reserve called", "character_id", characterID, "item_id", itemID)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item, ok := s.st.InSelection(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if !item.Rarity.IsUnique() {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrNotReservable, itemID, item.Rarity)
	}
	if held, ok := liveReservation(s.st, item.ID, now); ok {
		if held.ReservedBy == characterID {
			return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyReserved, itemID)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrItemReserved, itemID)
	}

	price, canTrade := s.priceFor(s.st, item)
	if !canTrade {
		return nil, domain.ErrNoTrade
	}

	var res *Result
	err := s.withCharacter(ctx, characterID, func(c domain.Character) error {
		rec := reservation.New(item.ID, characterID, price, s.opts.DepositRate, now)
		res = s.newResult()
		res.ItemID = item.ID
		res.Price = rec.DepositPaid
		res.PriceLabel = currency.FormatPrice(float64(rec.DepositPaid))

		if !currency.CanAfford(c.Purse, float64(rec.DepositPaid)) {
			res.Success = false
			res.Reason = ReasonInsufficientFunds
			res.Purse = &c.Purse
			return nil
		}

		currency.Deduct(&c.Purse, float64(rec.DepositPaid))
		c.UpdatedAt = now

		if err := s.commitReservation(ctx, c, rec); err != nil {
			if errors.Is(err, domain.ErrAlreadyReserved) {
				return fmt.Errorf("%w: %s", domain.ErrItemReserved, itemID)
			}
			s.chars.Hold(c)
			s.remoteWriteFailed(ctx, res, OpReserve, err)
		}

		s.applyLocal(ctx, func(snap *state.Snapshot) {
			putCharacter(snap, c)
			removeReservation(snap, item.ID)
			snap.Reservations = append(snap.Reservations, rec)
		})

		res.Purse = &c.Purse
		s.publish(ctx, event.NewItemEvent(event.ItemReserved, item.ID, characterID, rec.FullPrice, now))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) commitReservation(ctx context.Context, c domain.Character, rec domain.ReservationRecord) error {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.CreateReservation(ctx, rec); err != nil {
		return err
	}
	if err := tx.SaveCharacter(ctx, c); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.chars.Release(c.ID)
	return nil
}

// CancelReservation releases characterID's hold on itemID. The deposit is forfeit.
func (s *service) CancelReservation(ctx context.Context, characterID, itemID string) (*Result, error) {
	logger.FromContext(ctx).Info("CancelReservation called", "character_id", characterID, "item_id", itemID)

	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.st.Reservations[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationNotFound, itemID)
	}
	if held.ReservedBy != characterID {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotReserver, itemID)
	}

	res := s.newResult()
	res.ItemID = itemID
	if err := s.store.DeleteReservation(ctx, itemID); err != nil {
		s.remoteWriteFailed(ctx, res, OpCancelReservation, err)
	}

	s.applyLocal(ctx, func(snap *state.Snapshot) { removeReservation(snap, itemID) })
	s.publish(ctx, event.NewItemEvent(event.ReservationReleased, itemID, characterID, 0, s.now()))
	return res, nil
}
