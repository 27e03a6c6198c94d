package utils

import "time"

// Random source names accepted by NewRandomSource (config SHOP_RNG)
const (
	RandomSourceSine     = "sine"
	RandomSourceSplitMix = "splitmix"
)

const (
	sineScale = 10000

	splitMixGamma = 0x9E3779B97F4A7C15
	splitMixMul1  = 0xBF58476D1CE4E5B9
	splitMixMul2  = 0x94D049BB133111EB
)

// CampaignWeek is the length of one shop rotation
const CampaignWeek = 7 * 24 * time.Hour
