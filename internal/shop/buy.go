package shop

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/currency"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/event"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
	"github.com/osse101/KnightlyTreasures_Go/internal/state"
)

// Buy purchases itemID for characterID at the honor-adjusted price.
// A character completing their own reservation pays only the outstanding balance.
// Rare and legendary purchases are recorded with a conditional insert in the same
// transaction as the character save; losing that race returns domain.ErrAlreadyPurchased.
func (s *service) Buy(ctx context.Context, characterID, itemID string) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info("Buy called", "character_id", characterID, "item_id", itemID)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item, ok := s.st.InSelection(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	price, canTrade := s.priceFor(s.st, item)
	if !canTrade {
		metrics.PurchasesDeclined.WithLabelValues(ReasonNoTrade).Inc()
		return nil, domain.ErrNoTrade
	}

	held, reserved := liveReservation(s.st, item.ID, now)
	if reserved && held.ReservedBy != characterID {
		metrics.PurchasesDeclined.WithLabelValues(ReasonReserved).Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrItemReserved, itemID)
	}
	cost := price
	if reserved {
		cost = held.Balance()
	}

	var res *Result
	err := s.withCharacter(ctx, characterID, func(c domain.Character) error {
		var err error
		res, err = s.completePurchase(ctx, c, item, cost, reserved, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// completePurchase charges c and records the sale. Caller holds s.mu and the character lock.
func (s *service) completePurchase(ctx context.Context, c domain.Character, item domain.Item, cost int, reserved bool, now time.Time) (*Result, error) {
	res := s.newResult()
	res.ItemID = item.ID
	res.Price = cost
	res.PriceLabel = currency.FormatPrice(float64(cost))

	if !currency.CanAfford(c.Purse, float64(cost)) {
		metrics.PurchasesDeclined.WithLabelValues(ReasonInsufficientFunds).Inc()
		res.Success = false
		res.Reason = ReasonInsufficientFunds
		res.Purse = &c.Purse
		return res, nil
	}

	currency.Deduct(&c.Purse, float64(cost))
	c.Backpack = append(c.Backpack, item.ID)
	c.UpdatedAt = now

	var rec *domain.PurchaseRecord
	if item.Rarity.IsUnique() {
		rec = &domain.PurchaseRecord{
			ItemID:      item.ID,
			PurchasedBy: c.ID,
			PurchasedAt: now,
			Week:        s.st.Week,
		}
	}

	if err := s.commitPurchase(ctx, c, item.ID, rec, reserved); err != nil {
		if errors.Is(err, domain.ErrAlreadyPurchased) {
			metrics.PurchaseConflicts.Inc()
			logger.FromContext(ctx).Warn(LogMsgPurchaseConflict, "character_id", c.ID, "item_id", item.ID)
			return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyPurchased, item.ID)
		}
		s.chars.Hold(c)
		s.remoteWriteFailed(ctx, res, OpBuy, err)
	}

	s.applyLocal(ctx, func(snap *state.Snapshot) {
		putCharacter(snap, c)
		if rec != nil {
			snap.Purchases = append(snap.Purchases, *rec)
		}
		if reserved {
			removeReservation(snap, item.ID)
		}
	})

	res.Purse = &c.Purse
	s.publish(ctx, event.NewItemEvent(event.ItemBought, item.ID, c.ID, cost, now))
	return res, nil
}

func (s *service) commitPurchase(ctx context.Context, c domain.Character, itemID string, rec *domain.PurchaseRecord, reserved bool) error {
	if rec == nil && !reserved {
		return s.chars.SaveCharacter(ctx, c)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if rec != nil {
		if err := tx.CreatePurchase(ctx, *rec); err != nil {
			return err
		}
	}
	if err := tx.SaveCharacter(ctx, c); err != nil {
		return err
	}
	if reserved {
		if err := tx.DeleteReservation(ctx, itemID); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.chars.Release(c.ID)
	return nil
}

// Sell removes one copy of an item from the character's backpack and credits the
// sell ratio of its catalog price, rounded down to the copper.
// itemID may also be the item's display name.
func (s *service) Sell(ctx context.Context, characterID, itemID string) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info("Sell called", "character_id", characterID, "item_id", itemID)

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.catalogItem(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	var res *Result
	err := s.withCharacter(ctx, characterID, func(c domain.Character) error {
		idx := slices.Index(c.Backpack, item.ID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", domain.ErrItemNotInBackpack, item.ID)
		}
		c.Backpack = slices.Delete(c.Backpack, idx, idx+1)
		if !slices.Contains(c.Backpack, item.ID) {
			c.Attuned = slices.DeleteFunc(c.Attuned, func(id string) bool { return id == item.ID })
			c.Equipment = slices.DeleteFunc(c.Equipment, func(id string) bool { return id == item.ID })
		}

		copper := int(math.Floor(float64(item.Price) * s.opts.SellRatio * currency.CopperPerGold))
		amountGP := float64(copper) / currency.CopperPerGold
		currency.Add(&c.Purse, amountGP)
		c.UpdatedAt = s.now()

		res = s.newResult()
		res.ItemID = item.ID
		res.Price = copper / currency.CopperPerGold
		res.PriceLabel = currency.FormatPrice(amountGP)

		if err := s.chars.SaveCharacter(ctx, c); err != nil {
			s.remoteWriteFailed(ctx, res, OpSell, err)
		}

		s.applyLocal(ctx, func(snap *state.Snapshot) { putCharacter(snap, c) })

		res.Purse = &c.Purse
		s.publish(ctx, event.NewItemEvent(event.ItemSold, item.ID, characterID, res.Price, c.UpdatedAt))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) catalogItem(idOrName string) (domain.Item, bool) {
	if item, ok := inventory.Find(s.st.Catalog, idOrName); ok {
		return item, true
	}
	for _, item := range s.st.Catalog {
		if item.Name == idOrName {
			return item, true
		}
	}
	return domain.Item{}, false
}
