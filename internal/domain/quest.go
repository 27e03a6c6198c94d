package domain

// ActiveQuest is the quest the party is currently pursuing.
// Its tags steer the quest-aware shop selection.
type ActiveQuest struct {
	ID   string   `json:"id" validate:"required"`
	Name string   `json:"name" validate:"required"`
	Tags []string `json:"tags"`
}

// PartyLocation is where the party is trading this week
type PartyLocation struct {
	Name         string   `json:"name" validate:"required"`
	Province     string   `json:"province"`
	ProvinceTags []string `json:"provinceTags"`
}

// GeneralProvinceTag marks items that sell anywhere in the Isles
const GeneralProvinceTag = "general"
