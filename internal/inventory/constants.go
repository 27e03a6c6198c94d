package inventory

import "github.com/osse101/KnightlyTreasures_Go/internal/domain"

// SeedMultiplier turns a week number into the base seed for that week
const SeedMultiplier = 1000

// Sub-seed offsets added to the week's base seed, one range per draw
const (
	LegendarySeedOffset = 100 // + class index
	RareClassSeedOffset = 200 // + class index
	RareFillSeedOffset  = 300 // + category index
	UncommonSeedOffset  = 400 // + category index
	CommonSeedOffset    = 500 // + category index
	RelevantSeedOffset  = 50  // added to a tier's fill seed
)

// Relevance weights
const (
	QuestTagWeight      = 10
	ProvinceMatchWeight = 5
	GeneralTagWeight    = 1

	DefaultRelevanceThreshold  = 5
	DefaultMinRelevantFraction = 0.5
)

// ItemsPerWeek is the size of a full selection under the default quotas
const ItemsPerWeek = 30

// DefaultIcon is shown for items without their own artwork
const DefaultIcon = "https://api.iconify.design/game-icons/swap-bag.svg?color=%23ffffff"

// DefaultDescription is used when an item has no description
const DefaultDescription = "A fine item from the Scarlett Isles."

// DefaultClasses is the party's class order for per-class guarantees
var DefaultClasses = []string{"Fighter", "Wizard", "Rogue", "Cleric", "Ranger", "Paladin", "Bard", "Barbarian"}

// TierConfig sets how many items a rarity tier shows and how they spread across categories
type TierConfig struct {
	Quota          int
	CategoryCounts map[domain.Category]int
}

// Config holds the generator's quotas and party
type Config struct {
	Classes             []string
	Rare                TierConfig
	Uncommon            TierConfig
	Common              TierConfig
	MinRelevantFraction float64
	RelevanceThreshold  int
}

// DefaultConfig returns the campaign's standard quotas
func DefaultConfig() Config {
	return Config{
		Classes: append([]string(nil), DefaultClasses...),
		Rare: TierConfig{
			Quota: 8,
			CategoryCounts: map[domain.Category]int{
				domain.CategoryWeapon: 3, domain.CategoryArmor: 2, domain.CategoryGear: 3,
			},
		},
		Uncommon: TierConfig{
			Quota: 10,
			CategoryCounts: map[domain.Category]int{
				domain.CategoryWeapon: 4, domain.CategoryArmor: 3, domain.CategoryGear: 3,
			},
		},
		Common: TierConfig{
			Quota: 12,
			CategoryCounts: map[domain.Category]int{
				domain.CategoryWeapon: 4, domain.CategoryArmor: 4, domain.CategoryGear: 4,
			},
		},
		MinRelevantFraction: DefaultMinRelevantFraction,
		RelevanceThreshold:  DefaultRelevanceThreshold,
	}
}
