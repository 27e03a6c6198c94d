package honor

import (
	"math"

	"github.com/osse101/KnightlyTreasures_Go/internal/utils"
)

// Modifier is a price adjustment for one honor score.
// NoTrade means the clan will not deal with the party at all.
type Modifier struct {
	Percent float64 `yaml:"percent" json:"percent"`
	NoTrade bool    `yaml:"noTrade" json:"noTrade"`
}

// Table maps an exact honor score to its modifier
type Table map[int]Modifier

// DefaultTable is used when the world file does not override it
func DefaultTable() Table {
	return Table{
		-5: {NoTrade: true},
		-4: {Percent: 0.50},
		-3: {Percent: 0.30},
		-2: {Percent: 0.20},
		-1: {Percent: 0.10},
		0:  {Percent: 0},
		1:  {Percent: -0.05},
		2:  {Percent: -0.10},
		3:  {Percent: -0.15},
		4:  {Percent: -0.20},
		5:  {Percent: -0.25},
	}
}

// Lookup returns the modifier for score, clamping to the table's range
func (t Table) Lookup(score int) Modifier {
	if m, ok := t[utils.Clamp(score, MinScore, MaxScore)]; ok {
		return m
	}
	return Modifier{}
}

// Pricer applies honor adjustments to catalog prices.
// It never mutates the catalog: prices are adjusted per call.
type Pricer struct {
	table     Table
	locations map[string]string // location name -> clan
}

// NewPricer builds a pricer from a modifier table and a location to clan mapping
func NewPricer(table Table, locations map[string]string) *Pricer {
	if table == nil {
		table = DefaultTable()
	}
	return &Pricer{table: table, locations: locations}
}

// ModifierAt returns the modifier in effect at location given the current clan scores.
// Unknown locations and clans trade at list price.
func (p *Pricer) ModifierAt(location string, scores map[string]int) Modifier {
	clan, ok := p.locations[location]
	if !ok {
		return Modifier{}
	}
	score, ok := scores[clan]
	if !ok {
		return Modifier{}
	}
	return p.table.Lookup(score)
}

// AdjustedPrice returns round(base*(1+modifier)) and whether trade is allowed at all
func (p *Pricer) AdjustedPrice(base int, location string, scores map[string]int) (int, bool) {
	m := p.ModifierAt(location, scores)
	if m.NoTrade {
		return 0, false
	}
	return Apply(base, m.Percent), true
}

// ClanFor returns the clan controlling location
func (p *Pricer) ClanFor(location string) (string, bool) {
	clan, ok := p.locations[location]
	return clan, ok
}

// Apply adjusts base by percent and rounds half away from zero
func Apply(base int, percent float64) int {
	adjusted := math.Round(float64(base) * (1 + percent))
	if adjusted < 0 {
		return 0
	}
	return int(adjusted)
}
