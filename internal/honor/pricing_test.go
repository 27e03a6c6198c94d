package honor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustedPrice(t *testing.T) {
	pricer := NewPricer(DefaultTable(), map[string]string{
		"Scarlett Harbour": "Redmane",
		"Ashfall Keep":     "Cinderborn",
	})

	tests := []struct {
		name      string
		base      int
		location  string
		scores    map[string]int
		wantPrice int
		wantTrade bool
	}{
		{"neutral clan trades at list", 100, "Scarlett Harbour", map[string]int{"Redmane": 0}, 100, true},
		{"friendly clan discounts", 100, "Scarlett Harbour", map[string]int{"Redmane": 2}, 90, true},
		{"best friends", 250, "Scarlett Harbour", map[string]int{"Redmane": 5}, 188, true},
		{"wary clan surcharges", 75, "Ashfall Keep", map[string]int{"Cinderborn": -1}, 83, true},
		{"hostile clan refuses", 100, "Ashfall Keep", map[string]int{"Cinderborn": -5}, 0, false},
		{"scores past the table clamp", 100, "Ashfall Keep", map[string]int{"Cinderborn": -9}, 0, false},
		{"unknown location trades at list", 100, "Nowhere", map[string]int{"Redmane": 5}, 100, true},
		{"unknown clan score trades at list", 100, "Scarlett Harbour", map[string]int{}, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := pricer.AdjustedPrice(tt.base, tt.location, tt.scores)
			assert.Equal(t, tt.wantTrade, ok)
			assert.Equal(t, tt.wantPrice, price)
		})
	}
}

func TestAdjustedPrice_DoesNotTouchBase(t *testing.T) {
	pricer := NewPricer(nil, map[string]string{"A": "clan"})
	base := 40
	_, _ = pricer.AdjustedPrice(base, "A", map[string]int{"clan": -4})
	assert.Equal(t, 40, base)
}

func TestTableLookup(t *testing.T) {
	table := DefaultTable()
	assert.True(t, table.Lookup(-5).NoTrade)
	assert.InDelta(t, 0.5, table.Lookup(-4).Percent, 1e-9)
	assert.InDelta(t, -0.25, table.Lookup(12).Percent, 1e-9)
	assert.Equal(t, Modifier{}, Table{}.Lookup(0))
}

func TestParseWorld(t *testing.T) {
	doc := []byte(`
partyClasses: [Fighter, Wizard]
locations:
  - name: Scarlett Harbour
    province: Crimson Coast
    clan: Redmane
    provinceTags: [coast, general]
  - name: Ashfall Keep
    province: Cinder Reach
    clan: Cinderborn
initialHonor:
  Redmane: 1
  Cinderborn: -2
modifiers:
  0:
    percent: 0.05
`)

	w, err := ParseWorld(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"Fighter", "Wizard"}, w.PartyClasses)
	assert.Equal(t, map[string]string{"Scarlett Harbour": "Redmane", "Ashfall Keep": "Cinderborn"}, w.ClanMap())
	assert.InDelta(t, 0.05, w.Table().Lookup(0).Percent, 1e-9)
	assert.True(t, w.Table().Lookup(-5).NoTrade, "defaults stay in place")

	loc, ok := w.FindLocation("Scarlett Harbour")
	require.True(t, ok)
	assert.Equal(t, "Crimson Coast", loc.Province)
}

func TestParseWorld_Rejects(t *testing.T) {
	_, err := ParseWorld([]byte("locations:\n  - name: A\n  - name: A\n"))
	assert.ErrorContains(t, err, "duplicate location")

	_, err = ParseWorld([]byte("initialHonor:\n  Redmane: 9\n"))
	assert.ErrorContains(t, err, "out of range")

	_, err = ParseWorld([]byte("locations: [\n"))
	assert.Error(t, err)
}
