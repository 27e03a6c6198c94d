// Package shop runs the weekly shop: it keeps the application state in step with the
// shared store and turns buy, sell and reserve requests into ledger and store writes.
package shop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/character"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/event"
	"github.com/osse101/KnightlyTreasures_Go/internal/honor"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
	"github.com/osse101/KnightlyTreasures_Go/internal/reservation"
	"github.com/osse101/KnightlyTreasures_Go/internal/state"
	"github.com/osse101/KnightlyTreasures_Go/internal/utils"
)

// Result is returned by every mutating shop operation.
// Success is false with a Reason when the shop declines without an error.
type Result struct {
	Success    bool              `json:"success"`
	Reason     string            `json:"reason,omitempty"`
	ItemID     string            `json:"item_id,omitempty"`
	Price      int               `json:"price,omitempty"`
	PriceLabel string            `json:"price_label,omitempty"`
	Purse      *domain.CoinPurse `json:"purse,omitempty"`
	Warning    string            `json:"warning,omitempty"`
	Notice     string            `json:"notice,omitempty"`
}

// Service defines the interface for shop operations
type Service interface {
	Week(ctx context.Context) WeekInfo
	Selection(ctx context.Context) []domain.Item
	Listing(ctx context.Context, filter inventory.Filter, characterID string) []Listing
	Item(ctx context.Context, itemID, characterID string) (*Listing, error)
	Export(ctx context.Context, itemID string) (string, error)
	Party(ctx context.Context) []state.PartyMember

	Buy(ctx context.Context, characterID, itemID string) (*Result, error)
	Sell(ctx context.Context, characterID, itemID string) (*Result, error)
	Reserve(ctx context.Context, characterID, itemID string) (*Result, error)
	CancelReservation(ctx context.Context, characterID, itemID string) (*Result, error)

	RestorePurchase(ctx context.Context, itemID string) (*Result, error)
	SetHonor(ctx context.Context, clan string, score int) (*Result, error)
	SetQuest(ctx context.Context, quest *domain.ActiveQuest) (*Result, error)
	SetLocation(ctx context.Context, loc *domain.PartyLocation) (*Result, error)

	ExpireReservations(ctx context.Context) (int, error)
	Refresh(ctx context.Context, source string) error
	Run(ctx context.Context) error
}

// Options tunes shop rules. Zero values fall back to the defaults.
type Options struct {
	CampaignStart time.Time
	DepositRate   float64
	SellRatio     float64
	// LocalOnly attaches domain.LocalOnlyNotice to every mutating result
	LocalOnly bool
	Clock     func() time.Time
	// Characters is shared with the character service; nil wraps store privately
	Characters *character.Store
}

type service struct {
	store  repository.Store
	chars  *character.Store
	gen    state.Generator
	pricer *honor.Pricer
	bus    event.Bus
	opts   Options

	mu sync.RWMutex
	st state.AppState
}

// NewService creates a new shop service. Call Refresh before serving requests.
func NewService(store repository.Store, catalog []domain.Item, gen state.Generator, pricer *honor.Pricer, bus event.Bus, opts Options) Service {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.DepositRate == 0 {
		opts.DepositRate = reservation.DefaultDepositRate
	}
	if opts.SellRatio == 0 {
		opts.SellRatio = DefaultSellRatio
	}
	chars := opts.Characters
	if chars == nil {
		chars = character.NewStore(store, nil)
	}
	return &service{
		store:  store,
		chars:  chars,
		gen:    gen,
		pricer: pricer,
		bus:    bus,
		opts:   opts,
		st:     state.New(catalog),
	}
}

// DefaultSellRatio is the share of the list price paid for an item sold back
const DefaultSellRatio = 0.5

func (s *service) now() time.Time {
	return s.opts.Clock()
}

func (s *service) week(now time.Time) int {
	return utils.WeekNumber(now, s.opts.CampaignStart)
}

// newResult starts a result carrying the local-only notice when persistence is off
func (s *service) newResult() *Result {
	r := &Result{Success: true}
	if s.opts.LocalOnly {
		r.Notice = domain.LocalOnlyNotice
	}
	return r
}

// remoteWriteFailed records a store error that the caller recovers from locally
func (s *service) remoteWriteFailed(ctx context.Context, res *Result, op string, err error) {
	logger.FromContext(ctx).Warn(LogMsgRemoteWriteFailed, "operation", op, "error", err)
	metrics.RemoteWriteFailures.WithLabelValues(op).Inc()
	res.Warning = fmt.Sprintf(WarnFmtRemoteWrite, err)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

// locationName is the party's current trading post, empty when unset
func locationName(st state.AppState) string {
	if st.Location == nil {
		return ""
	}
	return st.Location.Name
}

// priceFor returns the honor-adjusted price at the party's location
func (s *service) priceFor(st state.AppState, item domain.Item) (int, bool) {
	if s.pricer == nil {
		return item.Price, true
	}
	return s.pricer.AdjustedPrice(item.Price, locationName(st), st.Honor)
}

// liveReservation returns the unexpired hold on itemID
func liveReservation(st state.AppState, itemID string, now time.Time) (domain.ReservationRecord, bool) {
	r, ok := st.Reservations[itemID]
	if !ok || reservation.IsExpired(r, now) {
		return domain.ReservationRecord{}, false
	}
	return r, true
}

// withCharacter runs fn on the freshest copy of a character while holding its edit lock
func (s *service) withCharacter(ctx context.Context, id string, fn func(c domain.Character) error) error {
	return s.chars.WithLock(id, func() error {
		c, err := s.character(ctx, id)
		if err != nil {
			return err
		}
		return fn(c)
	})
}

// character returns the freshest copy of a character: the shared store when
// reachable, otherwise the last snapshot.
func (s *service) character(ctx context.Context, id string) (domain.Character, error) {
	c, err := s.chars.GetCharacter(ctx, id)
	if err == nil {
		return c.Clone(), nil
	}
	if local, ok := s.st.Characters[id]; ok {
		logger.FromContext(ctx).Warn("Falling back to cached character", "character_id", id, "error", err)
		return local.Clone(), nil
	}
	return domain.Character{}, err
}

// applyLocal rebuilds state after an in-process change. mutate edits a snapshot of the
// current state; the reducer then recomputes every derived field. Caller holds s.mu.
func (s *service) applyLocal(ctx context.Context, mutate func(*state.Snapshot)) {
	snap := snapshotOf(s.st, s.now())
	mutate(&snap)
	s.apply(ctx, snap)
}

func snapshotOf(st state.AppState, now time.Time) state.Snapshot {
	snap := state.Snapshot{
		Week:         st.Week,
		LoadedAt:     now,
		Purchases:    make([]domain.PurchaseRecord, 0, len(st.Purchased)),
		Reservations: make([]domain.ReservationRecord, 0, len(st.Reservations)),
		Honor:        st.Honor,
		Quest:        st.Quest,
		Location:     st.Location,
		Characters:   st.CharacterList(),
	}
	for _, p := range st.Purchased {
		snap.Purchases = append(snap.Purchases, p)
	}
	for _, r := range st.Reservations {
		snap.Reservations = append(snap.Reservations, r)
	}
	return snap
}

func removeReservation(snap *state.Snapshot, itemID string) {
	out := snap.Reservations[:0:0]
	for _, r := range snap.Reservations {
		if r.ItemID != itemID {
			out = append(out, r)
		}
	}
	snap.Reservations = out
}

func putCharacter(snap *state.Snapshot, c domain.Character) {
	for i := range snap.Characters {
		if snap.Characters[i].ID == c.ID {
			snap.Characters[i] = c
			return
		}
	}
	snap.Characters = append(snap.Characters, c)
}
