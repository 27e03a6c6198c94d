package domain

// Category groups catalog items into shop shelves
type Category string

const (
	CategoryWeapon Category = "weapon"
	CategoryArmor  Category = "armor"
	CategoryGear   Category = "gear"
)

// Categories is the fixed shelf order used by the generator and the catalog schema
var Categories = []Category{CategoryWeapon, CategoryArmor, CategoryGear}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Rarity represents the tier of an item. Legendary sorts first.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every rarity from most to least prized
var Rarities = []Rarity{RarityLegendary, RarityRare, RarityUncommon, RarityCommon}

// DisplayRank returns the sort rank used by the shop list (legendary 0 .. common 3).
// Unknown rarities sort after common.
func (r Rarity) DisplayRank() int {
	for i, known := range Rarities {
		if r == known {
			return i
		}
	}
	return len(Rarities)
}

// Valid reports whether r is a known rarity
func (r Rarity) Valid() bool {
	return r.DisplayRank() < len(Rarities)
}

// IsUnique is true for rarities whose purchase removes the item from future weeks
func (r Rarity) IsUnique() bool {
	return r == RarityRare || r == RarityLegendary
}

// Item is a catalog entry. Items are immutable once the catalog is loaded.
// Optional presentation fields are nil when the catalog omits them.
type Item struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Rarity       Rarity   `json:"rarity"`
	Price        int      `json:"price"` // gold pieces
	SuitableFor  []string `json:"suitableFor"`
	QuestTags    []string `json:"questTags,omitempty"`
	ProvinceTags []string `json:"provinceTags,omitempty"`

	Type        *string           `json:"type,omitempty"`
	Icon        *string           `json:"icon,omitempty"`
	Flavour     *string           `json:"flavour,omitempty"`
	Properties  *string           `json:"properties,omitempty"`
	Attunement  *string           `json:"attunement,omitempty"`
	Damage      *string           `json:"damage,omitempty"`
	Stats       map[string]string `json:"stats,omitempty"`
	Description *string           `json:"description,omitempty"`
}

// SuitsClass reports whether the item lists class among its suitable classes
func (i Item) SuitsClass(class string) bool {
	for _, c := range i.SuitableFor {
		if c == class {
			return true
		}
	}
	return false
}

// TypeLabel returns the item's type line, falling back to the category
func (i Item) TypeLabel() string {
	if i.Type != nil && *i.Type != "" {
		return *i.Type
	}
	return string(i.Category)
}
