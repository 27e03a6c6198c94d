package honor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Location is a trading post the party can visit
type Location struct {
	Name         string   `yaml:"name"`
	Province     string   `yaml:"province"`
	Clan         string   `yaml:"clan"`
	ProvinceTags []string `yaml:"provinceTags"`
}

// World is the static campaign geography and starting honor
type World struct {
	Locations    []Location       `yaml:"locations"`
	InitialHonor map[string]int   `yaml:"initialHonor"`
	Modifiers    map[int]Modifier `yaml:"modifiers"`
	PartyClasses []string         `yaml:"partyClasses"`
}

// LoadWorld reads and validates the world file at path
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	return ParseWorld(data)
}

// ParseWorld decodes a world definition from YAML
func ParseWorld(data []byte) (*World, error) {
	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse world file: %w", err)
	}

	seen := make(map[string]bool, len(w.Locations))
	for _, loc := range w.Locations {
		if loc.Name == "" {
			return nil, fmt.Errorf("world file: location with empty name")
		}
		if seen[loc.Name] {
			return nil, fmt.Errorf("world file: duplicate location %q", loc.Name)
		}
		seen[loc.Name] = true
	}
	for clan, score := range w.InitialHonor {
		if score < MinScore || score > MaxScore {
			return nil, fmt.Errorf("world file: honor for %q out of range [%d, %d]: %d", clan, MinScore, MaxScore, score)
		}
	}
	return &w, nil
}

// ClanMap returns location name -> clan
func (w *World) ClanMap() map[string]string {
	out := make(map[string]string, len(w.Locations))
	for _, loc := range w.Locations {
		if loc.Clan != "" {
			out[loc.Name] = loc.Clan
		}
	}
	return out
}

// Table returns the modifier table, with the file's entries layered over the defaults
func (w *World) Table() Table {
	t := DefaultTable()
	for score, m := range w.Modifiers {
		t[score] = m
	}
	return t
}

// FindLocation returns the location with the given name
func (w *World) FindLocation(name string) (Location, bool) {
	for _, loc := range w.Locations {
		if loc.Name == name {
			return loc, true
		}
	}
	return Location{}, false
}
