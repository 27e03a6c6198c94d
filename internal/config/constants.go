package config

const (
	// Configuration file paths
	ConfigPathItems = "configs/items/items.json"
	ConfigPathWorld = "configs/world.yaml"
)

// Store modes
const (
	StoreModePostgres = "postgres"
	StoreModeLocal    = "local"
)

const (
	DefaultServiceName   = "knightly-treasures"
	DefaultCampaignStart = "2026-02-03"
)
