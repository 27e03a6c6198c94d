package domain

import "time"

// DefaultAttunementSlots is the number of items a character may attune to at once
const DefaultAttunementSlots = 3

// CoinPurse holds a character's coins. Counts are never negative.
type CoinPurse struct {
	PP int `json:"pp" validate:"gte=0"`
	GP int `json:"gp" validate:"gte=0"`
	EP int `json:"ep" validate:"gte=0"`
	SP int `json:"sp" validate:"gte=0"`
	CP int `json:"cp" validate:"gte=0"`
}

// CombatStats is the subset of the sheet the party display needs
type CombatStats struct {
	Level     int `json:"level" validate:"gte=1,lte=20"`
	HPCurrent int `json:"hpCurrent" validate:"gte=0"`
	HPMax     int `json:"hpMax" validate:"gte=1"`
	AC        int `json:"ac" validate:"gte=0"`
}

// Character is the aggregate persisted as one document per player
type Character struct {
	ID              string      `json:"id" validate:"required"`
	Name            string      `json:"name" validate:"required,max=100"`
	Class           string      `json:"class" validate:"required"`
	Stats           CombatStats `json:"stats"`
	Purse           CoinPurse   `json:"purse"`
	Equipment       []string    `json:"equipment"`
	Backpack        []string    `json:"backpack"`
	Attuned         []string    `json:"attuned"`
	AttunementSlots int         `json:"attunementSlots" validate:"gte=0"`
	Wishlist        []string    `json:"wishlist"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Clone returns a deep copy so callers can mutate without touching shared state
func (c Character) Clone() Character {
	out := c
	out.Equipment = append([]string(nil), c.Equipment...)
	out.Backpack = append([]string(nil), c.Backpack...)
	out.Attuned = append([]string(nil), c.Attuned...)
	out.Wishlist = append([]string(nil), c.Wishlist...)
	return out
}
