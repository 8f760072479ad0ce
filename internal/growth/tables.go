// Tuning tables and rate constants for the growth engine. Kept as data so
// balancing changes never touch control flow.
package growth

import "github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"

// Growth-rate factor bounds.
const (
	tempFactorMin  = 0.1
	tempFactorMax  = 1.2
	humFactorMin   = 0.2
	humFactorMax   = 1.2
	soilFactorMin  = 0.3
	soilFactorMax  = 1.5
	lightFactorMin = 0.3
	lightFactorMax = 1.2

	difficultyPenalty = 0.3 // Max growth-rate loss from species difficulty
)

// Consumption model.
const (
	waterDrainCoeff    = 0.1  // Level drained per unit need per second
	nutrientDrainCoeff = 0.05
	heatWaterScale     = 0.03 // Extra water need per degree above 20C
	comfortTemp        = 20.0

	floweringWindowLow  = 0.3 // Water need doubles inside this window
	floweringWindowHigh = 0.8
	activeGrowthLow     = 0.2 // Nutrient need boosted inside this window
	activeGrowthHigh    = 0.7
	activeNutrientBoost = 1.8
	matureNutrientCut   = 0.6
)

// Pest and disease onset/progression.
const (
	pestBaseRate     = 0.1  // Infection probability per second at ideal climate
	diseaseBaseRate  = 0.05
	pestGrowthRate   = 0.05 // Severity gain per second once infected
	diseaseGrowth    = 0.03
	infectionSevMin  = 0.1
	infectionSevMax  = 0.3
	treatedThreshold = 0.1 // Below this, treatment clears the subtype
)

// Health deltas per second.
const (
	dehydrationRate   = 0.08 // Water below lowWaterBand
	overwaterRate     = 0.03 // Water above highWaterBand
	hydratedBonus     = 0.01
	malnutritionRate  = 0.05 // Nutrients below lowNutrientBand
	wellFedBonus      = 0.01
	stressHealthScale = 0.1 // Environmental stress → health drain

	lowWaterBand    = 0.2
	highWaterBand   = 0.8
	lowNutrientBand = 0.2
	wellFedBand     = 0.7
)

// Environmental stress contribution caps.
const (
	stressCapTemp     = 0.3
	stressCapHumidity = 0.2
	stressCapSoil     = 0.25
	stressCapLight    = 0.25
)

// Quality modifier drift.
const (
	QualityMin       = 0.5
	QualityMax       = 1.5
	qualityGainRate  = 0.01 // Per second while health > qualityGainBand
	qualityLossRate  = 0.02 // Per second while health < qualityLossBand
	qualityGainBand  = 0.8
	qualityLossBand  = 0.5
)

// Harvest math.
const (
	pestYieldPenalty    = 0.5
	diseaseYieldPenalty = 0.7
)

// fertilizerFactor maps fertilizer kinds to their growth-rate multiplier.
// Specialized fertilizer is handled separately: 1.2 when it matches the
// species preference, 0.7 otherwise.
var fertilizerFactor = map[catalog.FertilizerKind]float64{
	catalog.FertilizerBasic:     0.6,
	catalog.FertilizerPremium:   0.9,
	catalog.FertilizerOrganic:   0.7,
	catalog.FertilizerSynthetic: 0.8,
}

const (
	specializedMatch    = 1.2
	specializedMismatch = 0.7
)

// pestDamage is health loss per second at full severity, by subtype.
var pestDamage = map[PestKind]float64{
	PestAphids:  0.02,
	PestMites:   0.025,
	PestBeetles: 0.03,
	PestLocusts: 0.04,
}

// diseaseDamage is health loss per second at full severity, by subtype.
var diseaseDamage = map[DiseaseKind]float64{
	DiseaseBlight: 0.03,
	DiseaseMildew: 0.015,
	DiseaseRot:    0.025,
	DiseaseRust:   0.02,
}

// FertilizerEffectiveness returns the multiplier applied both to the growth
// rate and to nutrient delivery for the given fertilizer and species.
func FertilizerEffectiveness(kind catalog.FertilizerKind, sp *catalog.CropSpecies) float64 {
	if kind == catalog.FertilizerSpecialized {
		if sp != nil && sp.PreferredFertilizer == catalog.FertilizerSpecialized {
			return specializedMatch
		}
		return specializedMismatch
	}
	if f, ok := fertilizerFactor[kind]; ok {
		return f
	}
	return fertilizerFactor[catalog.FertilizerBasic]
}
