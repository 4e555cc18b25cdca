package data

import "github.com/wojons/ptp-core/internal/typechart"

// qualityWeight is the per-type uniqueness multiplier used by the carry
// score's type-uniqueness term (Electric/Psychic weighted highest,
// Normal/Rock lowest). This table is small and fixed at compile time
// rather than TOML-loaded: unlike the item/move catalogs it has no
// hand-editable-data character, it is a closed enumeration over
// typechart.Order.
var qualityWeight = map[typechart.Type18]float64{
	typechart.Electric: 1.5,
	typechart.Psychic:  1.4,
	typechart.Ice:      1.3,
	typechart.Ghost:    1.3,
	typechart.Dragon:   1.3,
	typechart.Dark:     1.1,
	typechart.Steel:    1.1,
	typechart.Fairy:    1.1,
	typechart.Fighting:  1.0,
	typechart.Fire:      1.0,
	typechart.Water:     1.0,
	typechart.Grass:     1.0,
	typechart.Ground:    1.0,
	typechart.Flying:    1.0,
	typechart.Bug:       0.8,
	typechart.Poison:    0.7,
	typechart.Normal:    0.6,
	typechart.Rock:      0.6,
}

// QualityWeight returns the type-uniqueness weight for t, defaulting to
// 1.0 for any type absent from the table.
func QualityWeight(t typechart.Type18) float64 {
	if w, ok := qualityWeight[t]; ok {
		return w
	}
	return 1.0
}

// RarityTier classifies a species for the carry score's rarity
// multiplier.
type RarityTier string

const (
	RarityEarlyCommon      RarityTier = "early_common"
	RarityStandard         RarityTier = "standard"
	RarityStarter          RarityTier = "starter"
	RarityPseudoLegendary  RarityTier = "pseudo_legendary"
	RarityLegendary        RarityTier = "legendary"
)

// RarityMultiplier returns the carry-score rarity multiplier for a
// tier, per spec.md §4.4's lookup (starters 1.15, legendaries 1.30,
// pseudo-legendaries 1.20, early commons 0.6-0.8).
func RarityMultiplier(tier RarityTier) float64 {
	switch tier {
	case RarityStarter:
		return 1.15
	case RarityLegendary:
		return 1.30
	case RarityPseudoLegendary:
		return 1.20
	case RarityEarlyCommon:
		return 0.7
	default:
		return 1.0
	}
}
