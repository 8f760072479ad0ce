// Package catalog provides the static crop species database: per-species
// growth timing, environmental preferences, resource needs, resistances,
// and economics. Records are immutable and shared by reference.
package catalog

// Category groups species by their end use in the colony.
type Category uint8

const (
	CategoryFood       Category = iota
	CategoryMedical
	CategoryIndustrial
	CategoryIllegal
	CategorySpecial
)

// CategoryName returns a human-readable category name.
func CategoryName(c Category) string {
	switch c {
	case CategoryFood:
		return "Food"
	case CategoryMedical:
		return "Medical"
	case CategoryIndustrial:
		return "Industrial"
	case CategoryIllegal:
		return "Illegal"
	case CategorySpecial:
		return "Special"
	default:
		return "Unknown"
	}
}

// FertilizerKind enumerates fertilizer products available to growers.
type FertilizerKind uint8

const (
	FertilizerBasic       FertilizerKind = iota
	FertilizerPremium
	FertilizerOrganic
	FertilizerSynthetic
	FertilizerSpecialized
)

// FertilizerName returns a human-readable fertilizer name.
func FertilizerName(k FertilizerKind) string {
	switch k {
	case FertilizerBasic:
		return "Basic"
	case FertilizerPremium:
		return "Premium"
	case FertilizerOrganic:
		return "Organic"
	case FertilizerSynthetic:
		return "Synthetic"
	case FertilizerSpecialized:
		return "Specialized"
	default:
		return "Unknown"
	}
}

// StageThresholds holds the cumulative growth-progress boundaries at which a
// crop enters each stage. All five are data-driven per species and must be
// strictly increasing in (0, 1].
type StageThresholds struct {
	SproutAt     float64 `json:"sprout_at"`     // Seed below this
	VegetativeAt float64 `json:"vegetative_at"`
	FloweringAt  float64 `json:"flowering_at"`
	FruitingAt   float64 `json:"fruiting_at"`
	MatureAt     float64 `json:"mature_at"` // Normally 1.0
}

// DefaultTail returns thresholds with the standard late-stage boundaries,
// taking only the early-stage fractions from the caller.
func DefaultTail(sproutAt, vegetativeAt float64) StageThresholds {
	return StageThresholds{
		SproutAt:     sproutAt,
		VegetativeAt: vegetativeAt,
		FloweringAt:  0.9,
		FruitingAt:   0.97,
		MatureAt:     1.0,
	}
}

// CropSpecies is one immutable row of the catalog.
type CropSpecies struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`

	// Growth timing.
	GrowthTime float64         `json:"growth_time"` // Base duration in sim-seconds
	Stages     StageThresholds `json:"stages"`

	// Environmental preferences.
	OptimalTemp     float64 `json:"optimal_temp"`     // Celsius
	TempTolerance   float64 `json:"temp_tolerance"`   // Celsius band
	OptimalHumidity float64 `json:"optimal_humidity"` // 0.0–1.0
	LightRequired   float64 `json:"light_required"`   // 0.0–1.0
	SeasonPosition  float64 `json:"season_position"`  // 0.0–1.0 cyclical

	// Resource needs.
	WaterNeed       float64 `json:"water_need"`       // 0.0–1.0
	NutrientNeed    float64 `json:"nutrient_need"`    // 0.0–1.0
	SoilRequirement float64 `json:"soil_requirement"` // Minimum soil quality 0.0–1.0

	// Nutrient demand for soil suitability scoring (absolute fractions).
	NitrogenReq   float64 `json:"nitrogen_req"`
	PhosphorusReq float64 `json:"phosphorus_req"`
	PotassiumReq  float64 `json:"potassium_req"`

	// Resistances and difficulty.
	PestResistance    float64 `json:"pest_resistance"`    // 0.0–1.0
	DiseaseResistance float64 `json:"disease_resistance"` // 0.0–1.0
	Difficulty        float64 `json:"difficulty"`         // 0.0–1.0

	// Economics.
	BaseYield   int     `json:"base_yield"`
	MarketValue float64 `json:"market_value"` // Credits per unit

	// Care.
	PreferredFertilizer FertilizerKind `json:"preferred_fertilizer"`

	// Hardy species bypass soil suitability scoring entirely.
	Hardy bool `json:"hardy"`
}
