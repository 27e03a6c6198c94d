package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/reservation"
)

// countingGenerator records how often it ran and with what input
type countingGenerator struct {
	calls int
	last  inventory.Input
	gen   *inventory.Generator
}

func (c *countingGenerator) Generate(in inventory.Input) []domain.Item {
	c.calls++
	c.last = in
	return c.gen.Generate(in)
}

func testCatalog() []domain.Item {
	return []domain.Item{
		{ID: "vorpal", Name: "Vorpal Sword", Category: domain.CategoryWeapon, Rarity: domain.RarityLegendary, Price: 50000, SuitableFor: []string{"Fighter"}},
		{ID: "cloak", Name: "Cloak of Elvenkind", Category: domain.CategoryArmor, Rarity: domain.RarityRare, Price: 4000, SuitableFor: []string{"Rogue"}},
		{ID: "rope", Name: "Rope", Category: domain.CategoryGear, Rarity: domain.RarityCommon, Price: 1, SuitableFor: []string{"Ranger"}},
	}
}

func testSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Week:      3,
		LoadedAt:  now,
		Purchases: []domain.PurchaseRecord{{ItemID: "cloak", PurchasedBy: "c1", PurchasedAt: now, Week: 2}},
		Reservations: []domain.ReservationRecord{
			{ItemID: "vorpal", ReservedBy: "c1", ReservedAt: now.Add(-24 * time.Hour), DepositPaid: 5000, FullPrice: 50000},
			{ItemID: "old", ReservedBy: "c2", ReservedAt: now.Add(-reservation.Duration - time.Hour)},
		},
		Honor:    map[string]int{"Ashford": 2},
		Quest:    &domain.ActiveQuest{ID: "q1", Name: "The Drowned Crypt", Tags: []string{"undead"}},
		Location: &domain.PartyLocation{Name: "Port Vell", Province: "Vell", ProvinceTags: []string{"coastal"}},
		Characters: []domain.Character{
			{ID: "c2", Name: "Brin", Class: "Rogue", Stats: domain.CombatStats{HPCurrent: 5, HPMax: 20}},
			{ID: "c1", Name: "Aldric", Class: "Fighter", Stats: domain.CombatStats{HPCurrent: 30, HPMax: 30}, Backpack: []string{"Rope"}},
		},
	}
}

func TestApplyRemoteSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := &countingGenerator{gen: inventory.NewGenerator(inventory.DefaultConfig(), nil)}

	got := ApplyRemoteSnapshot(New(testCatalog()), testSnapshot(now), gen)

	assert.Equal(t, 3, got.Week)
	assert.Contains(t, got.Purchased, "cloak")
	assert.Contains(t, got.Reservations, "vorpal")
	assert.NotContains(t, got.Reservations, "old", "expired reservations are dropped")
	require.Len(t, got.Expired, 1)
	assert.Equal(t, "old", got.Expired[0].ItemID)
	assert.Equal(t, 2, got.Honor["Ashford"])
	require.NotNil(t, got.Quest)
	assert.Equal(t, "q1", got.Quest.ID)

	assert.Equal(t, 1, gen.calls)
	assert.True(t, gen.last.Purchased.Contains("cloak"))
	assert.Equal(t, 3, gen.last.Week)

	assert.NotContains(t, got.SelectionIDs(), "cloak", "purchased rare item is excluded")
	_, ok := got.InSelection("vorpal")
	assert.True(t, ok)

	require.Len(t, got.Party, 2)
	assert.Equal(t, "Aldric", got.Party[0].Name)
	assert.Equal(t, 25, got.Party[1].Percent)
}

func TestApplyRemoteSnapshot_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := inventory.NewGenerator(inventory.DefaultConfig(), nil)
	snap := testSnapshot(now)

	once := ApplyRemoteSnapshot(New(testCatalog()), snap, gen)
	twice := ApplyRemoteSnapshot(once, snap, gen)

	assert.Equal(t, once, twice)
}

func TestApplyRemoteSnapshot_DoesNotAliasSnapshot(t *testing.T) {
	now := time.Now()
	snap := testSnapshot(now)
	got := ApplyRemoteSnapshot(New(testCatalog()), snap, inventory.NewGenerator(inventory.DefaultConfig(), nil))

	snap.Quest.Tags[0] = "changed"
	snap.Characters[1].Backpack[0] = "changed"
	snap.Honor["Ashford"] = -5

	assert.Equal(t, "undead", got.Quest.Tags[0])
	assert.Equal(t, "Rope", got.Characters["c1"].Backpack[0])
	assert.Equal(t, 2, got.Honor["Ashford"])
}

func TestApplyRemoteSnapshot_ClearsRemovedRows(t *testing.T) {
	now := time.Now()
	gen := inventory.NewGenerator(inventory.DefaultConfig(), nil)
	first := ApplyRemoteSnapshot(New(testCatalog()), testSnapshot(now), gen)

	empty := Snapshot{Week: 3, LoadedAt: now}
	got := ApplyRemoteSnapshot(first, empty, gen)

	assert.Empty(t, got.Purchased)
	assert.Empty(t, got.Reservations)
	assert.Nil(t, got.Quest)
	assert.Nil(t, got.Location)
	assert.Contains(t, got.SelectionIDs(), "cloak", "restored item returns to stock")
}

func TestPartyHP(t *testing.T) {
	tests := []struct {
		name    string
		current int
		max     int
		want    int
	}{
		{"full", 10, 10, 100},
		{"rounded", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"zero max", 0, 0, 0},
		{"overheal capped", 15, 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartyHP([]domain.Character{{ID: "x", Stats: domain.CombatStats{HPCurrent: tt.current, HPMax: tt.max}}})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Percent)
		})
	}
}
