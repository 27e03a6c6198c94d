package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/currency"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/reservation"
	"github.com/osse101/KnightlyTreasures_Go/internal/state"
	"github.com/osse101/KnightlyTreasures_Go/internal/utils"
)

// Listing is one shelf entry as a client renders it
type Listing struct {
	Item         domain.Item `json:"item"`
	Icon         string      `json:"icon"`
	Price        int         `json:"price"`
	PriceLabel   string      `json:"price_label"`
	CompactPrice string      `json:"compact_price"`
	CanTrade     bool        `json:"can_trade"`
	Status       string      `json:"status"`
	ReservedBy   string      `json:"reserved_by,omitempty"`
	ExpiresAt    *time.Time  `json:"expires_at,omitempty"`
	Balance      int         `json:"balance,omitempty"`
	Wishlisted   bool        `json:"wishlisted,omitempty"`
}

// WeekInfo describes the current shop week
type WeekInfo struct {
	Week         int                   `json:"week"`
	NextRollover time.Time             `json:"next_rollover"`
	ItemCount    int                   `json:"item_count"`
	Quest        *domain.ActiveQuest   `json:"quest,omitempty"`
	Location     *domain.PartyLocation `json:"location,omitempty"`
	LocalOnly    bool                  `json:"local_only"`
}

func (s *service) Week(ctx context.Context) WeekInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return WeekInfo{
		Week:         s.st.Week,
		NextRollover: utils.NextWeekStart(s.now(), s.opts.CampaignStart),
		ItemCount:    len(s.st.Selection),
		Quest:        s.st.Quest,
		Location:     s.st.Location,
		LocalOnly:    s.opts.LocalOnly,
	}
}

func (s *service) Selection(ctx context.Context) []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Item(nil), s.st.Selection...)
}

// Listing returns the filtered selection in display order with prices at the
// party's location. characterID, when set, marks that character's holds and wishlist.
func (s *service) Listing(ctx context.Context, filter inventory.Filter, characterID string) []Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	items := inventory.SortForDisplay(filter.Apply(s.st.Selection))
	out := make([]Listing, 0, len(items))
	for _, item := range items {
		out = append(out, s.listingFor(s.st, item, characterID, now))
	}
	return out
}

// Item returns one entry of the current selection
func (s *service) Item(ctx context.Context, itemID, characterID string) (*Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.st.InSelection(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	l := s.listingFor(s.st, item, characterID, s.now())
	return &l, nil
}

// Export renders an item of the current selection as importable text at its local price
func (s *service) Export(ctx context.Context, itemID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.st.InSelection(itemID)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	price, canTrade := s.priceFor(s.st, item)
	if !canTrade {
		price = item.Price
	}
	return inventory.ExportText(item, price), nil
}

func (s *service) Party(ctx context.Context) []state.PartyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]state.PartyMember(nil), s.st.Party...)
}

func (s *service) listingFor(st state.AppState, item domain.Item, characterID string, now time.Time) Listing {
	price, canTrade := s.priceFor(st, item)
	l := Listing{
		Item:     item,
		Icon:     inventory.Icon(item),
		CanTrade: canTrade,
		Status:   StatusAvailable,
	}
	if canTrade {
		l.Price = price
		l.PriceLabel = currency.FormatPrice(float64(price))
		l.CompactPrice = currency.FormatCompact(price)
	}

	if r, ok := liveReservation(st, item.ID, now); ok {
		expires := reservation.ExpiresAt(r)
		l.ExpiresAt = &expires
		l.ReservedBy = r.ReservedBy
		l.Status = StatusReserved
		if r.ReservedBy == characterID {
			l.Status = StatusReservedBy
			l.Balance = r.Balance()
		}
	}

	if c, ok := st.Characters[characterID]; ok {
		for _, id := range c.Wishlist {
			if id == item.ID {
				l.Wishlisted = true
				break
			}
		}
	}
	return l
}
