// Package character edits character sheets: hit points, coins, items and attunement.
// Every change is written through to the store.
package character

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/event"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
	"github.com/osse101/KnightlyTreasures_Go/internal/utils"
)

// Result carries the character after a change
type Result struct {
	Character domain.Character `json:"character"`
	Warning   string           `json:"warning,omitempty"`
	Notice    string           `json:"notice,omitempty"`
}

// Service defines the interface for character operations
type Service interface {
	Get(ctx context.Context, id string) (*domain.Character, error)
	List(ctx context.Context) ([]domain.Character, error)
	Create(ctx context.Context, c domain.Character) (*Result, error)

	AdjustHP(ctx context.Context, id string, delta int) (*Result, error)
	SetCurrency(ctx context.Context, id string, purse domain.CoinPurse) (*Result, error)
	AddItem(ctx context.Context, id, itemID string) (*Result, error)
	RemoveItem(ctx context.Context, id, itemID string) (*Result, error)
	Equip(ctx context.Context, id, itemID string) (*Result, error)
	Unequip(ctx context.Context, id, itemID string) (*Result, error)
	Attune(ctx context.Context, id, itemID string) (*Result, error)
	Unattune(ctx context.Context, id, itemID string) (*Result, error)
	ToggleWishlist(ctx context.Context, id, itemID string) (*Result, error)
}

// ItemLookup resolves catalog ids
type ItemLookup interface {
	Get(id string) (domain.Item, bool)
}

type service struct {
	store     *Store
	items     ItemLookup
	bus       event.Bus
	validate  *validator.Validate
	clock     func() time.Time
	localOnly bool
}

// NewService creates a new character service. store is shared with the shop so
// purchases and sheet edits of one character never interleave.
func NewService(store *Store, items ItemLookup, bus event.Bus, clock func() time.Time, localOnly bool) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{
		store:     store,
		items:     items,
		bus:       bus,
		validate:  validator.New(),
		clock:     clock,
		localOnly: localOnly,
	}
}

func (s *service) Get(ctx context.Context, id string) (*domain.Character, error) {
	c, err := s.store.GetCharacter(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, id)
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return c, nil
}

// List returns every character ordered by name
func (s *service) List(ctx context.Context) ([]domain.Character, error) {
	chars, err := s.store.ListCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	sort.Slice(chars, func(i, j int) bool {
		if chars[i].Name != chars[j].Name {
			return chars[i].Name < chars[j].Name
		}
		return chars[i].ID < chars[j].ID
	})
	return chars, nil
}

// Create stores a new character. An empty id is filled with a fresh UUID.
func (s *service) Create(ctx context.Context, c domain.Character) (*Result, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.AttunementSlots == 0 {
		c.AttunementSlots = domain.DefaultAttunementSlots
	}
	if c.Stats.Level == 0 {
		c.Stats.Level = 1
	}
	if c.Stats.HPCurrent == 0 {
		c.Stats.HPCurrent = c.Stats.HPMax
	}
	if err := s.validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.save(ctx, c), nil
}

// AdjustHP adds delta to current hit points, clamped to [0, max]
func (s *service) AdjustHP(ctx context.Context, id string, delta int) (*Result, error) {
	return s.mutate(ctx, id, func(c *domain.Character) error {
		c.Stats.HPCurrent = utils.Clamp(c.Stats.HPCurrent+delta, 0, c.Stats.HPMax)
		return nil
	})
}

// SetCurrency replaces the purse. Negative counts are rejected.
func (s *service) SetCurrency(ctx context.Context, id string, purse domain.CoinPurse) (*Result, error) {
	if err := s.validate.Struct(purse); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.mutate(ctx, id, func(c *domain.Character) error {
		c.Purse = purse
		return nil
	})
}

// AddItem puts a catalog item in the backpack
func (s *service) AddItem(ctx context.Context, id, itemID string) (*Result, error) {
	if _, ok := s.items.Get(itemID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return s.mutate(ctx, id, func(c *domain.Character) error {
		c.Backpack = append(c.Backpack, itemID)
		return nil
	})
}

// RemoveItem drops one copy from the backpack. Removing the last copy also
// unequips and unattunes it.
func (s *service) RemoveItem(ctx context.Context, id, itemID string) (*Result, error) {
	return s.mutate(ctx, id, func(c *domain.Character) error {
		idx := slices.Index(c.Backpack, itemID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", domain.ErrItemNotInBackpack, itemID)
		}
		c.Backpack = slices.Delete(c.Backpack, idx, idx+1)
		if !slices.Contains(c.Backpack, itemID) {
			c.Equipment = without(c.Equipment, itemID)
			c.Attuned = without(c.Attuned, itemID)
		}
		return nil
	})
}

// Equip marks a carried item as worn or wielded
func (s *service) Equip(ctx context.Context, id, itemID string) (*Result, error) {
	return s.mutate(ctx, id, func(c *domain.Character) error {
		if !slices.Contains(c.Backpack, itemID) {
			return fmt.Errorf("%w: %s", domain.ErrItemNotInBackpack, itemID)
		}
		if !slices.Contains(c.Equipment, itemID) {
			c.Equipment = append(c.Equipment, itemID)
		}
		return nil
	})
}

func (s *service) Unequip(ctx context.Context, id, itemID string) (*Result, error) {
	return s.mutate(ctx, id, func(c *domain.Character) error {
		c.Equipment = without(c.Equipment, itemID)
		return nil
	})
}

// Attune binds a carried item, up to the character's attunement slots
func (s *service) Attune(ctx context.Context, id, itemID string) (*Result, error) {
	return s.mutate(ctx, id, func(c *domain.Character) error {
		if !slices.Contains(c.Backpack, itemID) {
			return fmt.Errorf("%w: %s", domain.ErrItemNotInBackpack, itemID)
		}
		if slices.Contains(c.Attuned, itemID) {
			return nil
		}
		if len(c.Attuned) >= c.AttunementSlots {
			return fmt.Errorf("%w: %d of %d slots used", domain.ErrAttunementFull, len(c.Attuned), c.AttunementSlots)
		}
		c.Attuned = append(c.Attuned, itemID)
		return nil
	})
}

func (s *service) Unattune(ctx context.Context, id, itemID string) (*Result, error) {
	return s.mutate(ctx, id, func(c *domain.Character) error {
		if !slices.Contains(c.Attuned, itemID) {
			return fmt.Errorf("%w: %s", domain.ErrNotAttuned, itemID)
		}
		c.Attuned = without(c.Attuned, itemID)
		return nil
	})
}

// ToggleWishlist adds itemID to the wishlist, or removes it if already there
func (s *service) ToggleWishlist(ctx context.Context, id, itemID string) (*Result, error) {
	if _, ok := s.items.Get(itemID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return s.mutate(ctx, id, func(c *domain.Character) error {
		if slices.Contains(c.Wishlist, itemID) {
			c.Wishlist = without(c.Wishlist, itemID)
		} else {
			c.Wishlist = append(c.Wishlist, itemID)
		}
		return nil
	})
}

// mutate loads a character, applies fn and writes the result through.
// Mutations of the same character are serialized.
func (s *service) mutate(ctx context.Context, id string, fn func(*domain.Character) error) (*Result, error) {
	var res *Result
	err := s.store.WithLock(id, func() error {
		c, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		next := c.Clone()
		if err := fn(&next); err != nil {
			return err
		}
		res = s.save(ctx, next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// save writes c through to the store. A failed write keeps c locally and returns a warning.
func (s *service) save(ctx context.Context, c domain.Character) *Result {
	c.UpdatedAt = s.clock()
	res := &Result{Character: c}
	if s.localOnly {
		res.Notice = domain.LocalOnlyNotice
	}

	if err := s.store.SaveCharacter(ctx, c); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRemoteWriteFailed, "character_id", c.ID, "error", err)
		metrics.RemoteWriteFailures.WithLabelValues(OpSaveCharacter).Inc()
		res.Warning = fmt.Sprintf(WarnFmtRemoteWrite, err)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewCharacterUpdatedEvent(c.ID, c.UpdatedAt)); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "character_id", c.ID, "error", err)
		}
	}
	return res
}

func without(ids []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(x string) bool { return x == id })
}
