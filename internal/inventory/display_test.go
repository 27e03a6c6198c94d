package inventory

import (
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestSortForDisplay(t *testing.T) {
	items := []domain.Item{
		item("torch", domain.CategoryGear, domain.RarityCommon, 1),
		item("cloak", domain.CategoryArmor, domain.RarityRare, 800),
		item("sword", domain.CategoryWeapon, domain.RarityLegendary, 20000),
		item("bow", domain.CategoryWeapon, domain.RarityRare, 1200),
		item("boots", domain.CategoryArmor, domain.RarityUncommon, 300),
		item("axe", domain.CategoryWeapon, domain.RarityRare, 800),
	}

	sorted := SortForDisplay(items)

	assert.Equal(t, []string{"sword", "bow", "axe", "cloak", "boots", "torch"}, IDs(sorted))
	assert.Equal(t, "torch", items[0].ID, "input is left untouched")
}

func TestFilter(t *testing.T) {
	items := []domain.Item{
		item("sword", domain.CategoryWeapon, domain.RarityRare, 10),
		item("shield", domain.CategoryArmor, domain.RarityRare, 10),
		item("dagger", domain.CategoryWeapon, domain.RarityCommon, 10),
	}

	assert.Len(t, Filter{}.Apply(items), 3)
	assert.Len(t, Filter{Category: "all", Rarity: "all"}.Apply(items), 3)
	assert.Equal(t, []string{"sword", "dagger"}, IDs(Filter{Category: "weapon"}.Apply(items)))
	assert.Equal(t, []string{"sword", "shield"}, IDs(Filter{Rarity: "Rare"}.Apply(items)))
	assert.Equal(t, []string{"sword"}, IDs(Filter{Category: "weapon", Rarity: "rare"}.Apply(items)))
	assert.Empty(t, Filter{Category: "gear"}.Apply(items))
}

func TestFind(t *testing.T) {
	items := []domain.Item{item("a", domain.CategoryGear, domain.RarityCommon, 1)}

	got, ok := Find(items, "a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = Find(items, "missing")
	assert.False(t, ok)
}

func TestExportText(t *testing.T) {
	t.Run("full item", func(t *testing.T) {
		it := domain.Item{
			ID: "flame-tongue", Name: "Flame Tongue", Category: domain.CategoryWeapon, Rarity: domain.RarityRare, Price: 5000,
			Type:        strPtr("Weapon (longsword)"),
			Properties:  strPtr("Versatile"),
			Attunement:  strPtr("Yes"),
			Damage:      strPtr("1d8 slashing + 2d6 fire"),
			Flavour:     strPtr("Forged in the Ashfall."),
			Description: strPtr("Speak the command word to ignite."),
		}

		want := "**Flame Tongue**\n" +
			"Weapon (longsword), rare\n" +
			"Cost: 4,500 gp\n" +
			"Properties: Versatile\n" +
			"Requires Attunement: Yes\n" +
			"Damage: 1d8 slashing + 2d6 fire\n" +
			"\n" +
			"*Forged in the Ashfall.*\n\n" +
			"Speak the command word to ignite."
		assert.Equal(t, want, ExportText(it, 4500))
	})

	t.Run("bare item falls back to category", func(t *testing.T) {
		it := item("rope", domain.CategoryGear, domain.RarityCommon, 1)
		assert.Equal(t, "**rope**\ngear, common\nCost: 1 gp\n\n", ExportText(it, 1))
	})
}

func TestIconAndDescription(t *testing.T) {
	bare := item("rope", domain.CategoryGear, domain.RarityCommon, 1)
	assert.Equal(t, DefaultIcon, Icon(bare))
	assert.Equal(t, DefaultDescription, Description(bare))

	bare.Icon = strPtr("https://example.com/rope.svg")
	assert.Equal(t, "https://example.com/rope.svg", Icon(bare))
}

func TestRenderDescription(t *testing.T) {
	got := RenderDescription("**Sharp.** Cuts well.\n\nSecond <para>\nline")
	assert.Equal(t, "<strong>Sharp.</strong> Cuts well.</p><p>Second &lt;para&gt;<br>line", got)
}

func TestCachedGenerator(t *testing.T) {
	cached := NewCachedGenerator(NewGenerator(DefaultConfig(), nil), 8, time.Minute)
	catalog := bigCatalog(4)

	first := cached.Generate(Input{Catalog: catalog, Week: 1})
	second := cached.Generate(Input{Catalog: catalog, Week: 1})
	assert.Equal(t, IDs(first), IDs(second))
	assert.Equal(t, 1, cached.Len())

	purchased := mapset.NewThreadUnsafeSet(first[0].ID)
	third := cached.Generate(Input{Catalog: catalog, Week: 1, Purchased: purchased})
	assert.NotContains(t, IDs(third), first[0].ID)
	assert.Equal(t, 2, cached.Len())

	cached.Purge()
	assert.Equal(t, 0, cached.Len())
}
