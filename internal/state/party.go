package state

import (
	"math"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// PartyMember is one row of the party HP display
type PartyMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	HPCurrent int    `json:"hpCurrent"`
	HPMax     int    `json:"hpMax"`
	Percent   int    `json:"percent"`
}

// PartyHP summarises characters in the order given
func PartyHP(characters []domain.Character) []PartyMember {
	out := make([]PartyMember, 0, len(characters))
	for _, c := range characters {
		out = append(out, PartyMember{
			ID:        c.ID,
			Name:      c.Name,
			Class:     c.Class,
			HPCurrent: c.Stats.HPCurrent,
			HPMax:     c.Stats.HPMax,
			Percent:   hpPercent(c.Stats.HPCurrent, c.Stats.HPMax),
		})
	}
	return out
}

func hpPercent(current, maxHP int) int {
	if maxHP <= 0 {
		return 0
	}
	pct := int(math.Round(float64(current) * 100 / float64(maxHP)))
	return min(max(pct, 0), 100)
}
