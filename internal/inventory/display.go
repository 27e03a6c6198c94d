package inventory

import (
	"sort"
	"strings"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// FilterAll matches every category or rarity
const FilterAll = "all"

// Filter narrows a selection by category and rarity. Empty or "all" matches everything.
type Filter struct {
	Category string `json:"category,omitempty"`
	Rarity   string `json:"rarity,omitempty"`
}

// Matches reports whether item passes the filter
func (f Filter) Matches(item domain.Item) bool {
	if f.Category != "" && f.Category != FilterAll && !strings.EqualFold(f.Category, string(item.Category)) {
		return false
	}
	if f.Rarity != "" && f.Rarity != FilterAll && !strings.EqualFold(f.Rarity, string(item.Rarity)) {
		return false
	}
	return true
}

// Apply returns the items passing the filter, preserving order
func (f Filter) Apply(items []domain.Item) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortForDisplay returns a copy ordered legendary first, then by price descending.
// Ties fall back to id so the order is total.
func SortForDisplay(items []domain.Item) []domain.Item {
	out := append([]domain.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rarity.DisplayRank(), out[j].Rarity.DisplayRank()
		if ri != rj {
			return ri < rj
		}
		if out[i].Price != out[j].Price {
			return out[i].Price > out[j].Price
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Find returns the item with id from items
func Find(items []domain.Item, id string) (domain.Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Item{}, false
}
