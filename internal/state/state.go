// Package state holds the application state value and the pure functions that derive it.
package state

import (
	"slices"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/reservation"
)

// Generator computes a weekly selection. Both inventory.Generator and
// inventory.CachedGenerator satisfy it.
type Generator interface {
	Generate(in inventory.Input) []domain.Item
}

// Snapshot is a full read of every shared table at one instant
type Snapshot struct {
	Week         int
	LoadedAt     time.Time
	Purchases    []domain.PurchaseRecord
	Reservations []domain.ReservationRecord
	Honor        map[string]int
	Quest        *domain.ActiveQuest
	Location     *domain.PartyLocation
	Characters   []domain.Character
}

// AppState is everything the shop shows.
// Values are replaced wholesale by ApplyRemoteSnapshot, never patched in place.
type AppState struct {
	Catalog      []domain.Item
	Week         int
	Purchased    map[string]domain.PurchaseRecord
	Reservations map[string]domain.ReservationRecord
	Honor        map[string]int
	Quest        *domain.ActiveQuest
	Location     *domain.PartyLocation
	Characters   map[string]domain.Character
	Selection    []domain.Item
	Party        []PartyMember
	// Expired lists reservations dropped by the last snapshot; the service deletes them remotely
	Expired []domain.ReservationRecord
}

// New returns an empty state over catalog
func New(catalog []domain.Item) AppState {
	return AppState{
		Catalog:      catalog,
		Purchased:    map[string]domain.PurchaseRecord{},
		Reservations: map[string]domain.ReservationRecord{},
		Honor:        map[string]int{},
		Characters:   map[string]domain.Character{},
	}
}

// ApplyRemoteSnapshot rebuilds s from snap. Every derived field is recomputed
// from the snapshot alone, so applying the same snapshot twice is a no-op.
func ApplyRemoteSnapshot(s AppState, snap Snapshot, gen Generator) AppState {
	next := AppState{
		Catalog:      s.Catalog,
		Week:         snap.Week,
		Purchased:    make(map[string]domain.PurchaseRecord, len(snap.Purchases)),
		Reservations: make(map[string]domain.ReservationRecord, len(snap.Reservations)),
		Honor:        make(map[string]int, len(snap.Honor)),
		Characters:   make(map[string]domain.Character, len(snap.Characters)),
	}

	for _, p := range snap.Purchases {
		next.Purchased[p.ItemID] = p
	}

	live, expired := reservation.Partition(snap.Reservations, snap.LoadedAt)
	for _, r := range live {
		next.Reservations[r.ItemID] = r
	}
	next.Expired = expired

	for clan, score := range snap.Honor {
		next.Honor[clan] = score
	}

	if snap.Quest != nil {
		q := *snap.Quest
		q.Tags = slices.Clone(q.Tags)
		next.Quest = &q
	}
	if snap.Location != nil {
		l := *snap.Location
		l.ProvinceTags = slices.Clone(l.ProvinceTags)
		next.Location = &l
	}

	for _, c := range snap.Characters {
		next.Characters[c.ID] = c.Clone()
	}

	next.Selection = gen.Generate(next.Input())
	next.Party = PartyHP(next.CharacterList())
	return next
}

// Input is the generator input described by s
func (s AppState) Input() inventory.Input {
	purchased := mapset.NewThreadUnsafeSetWithSize[string](len(s.Purchased))
	for id := range s.Purchased {
		purchased.Add(id)
	}
	return inventory.Input{
		Catalog:   s.Catalog,
		Week:      s.Week,
		Purchased: purchased,
		Quest:     s.Quest,
		Location:  s.Location,
	}
}

// CharacterList returns characters ordered by name, then id
func (s AppState) CharacterList() []domain.Character {
	out := make([]domain.Character, 0, len(s.Characters))
	for _, c := range s.Characters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// InSelection returns the selected item with id
func (s AppState) InSelection(id string) (domain.Item, bool) {
	return inventory.Find(s.Selection, id)
}

// SelectionIDs lists the ids of the current selection in display order
func (s AppState) SelectionIDs() []string {
	return inventory.IDs(s.Selection)
}
