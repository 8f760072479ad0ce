// Catalog queries: lookup with fail-closed default, filters by category,
// season, and environment, and fuzzy name resolution for callers that pass
// display names instead of ids.
package catalog

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Environment filter constants.
const (
	humidityWindow = 0.3 // |humidity − optimal| must be within this
	lightSlack     = 0.8 // light must be at least this fraction of required
	seasonWindow   = 0.125
)

// species is the full static table, loaded once. Wheat is first: it doubles
// as the fail-closed fallback record for unknown ids.
var species = []*CropSpecies{
	{
		ID: "wheat", Name: "Wheat", Category: CategoryFood,
		GrowthTime: 60, Stages: DefaultTail(0.15, 0.4),
		OptimalTemp: 20, TempTolerance: 10, OptimalHumidity: 0.6,
		LightRequired: 0.8, SeasonPosition: 0.25,
		WaterNeed: 0.5, NutrientNeed: 0.5, SoilRequirement: 0.4,
		NitrogenReq: 0.03, PhosphorusReq: 0.02, PotassiumReq: 0.025,
		PestResistance: 0.5, DiseaseResistance: 0.5, Difficulty: 0.3,
		BaseYield: 8, MarketValue: 3,
		PreferredFertilizer: FertilizerBasic,
	},
	{
		ID: "potato", Name: "Potato", Category: CategoryFood,
		GrowthTime: 90, Stages: DefaultTail(0.1, 0.35),
		OptimalTemp: 16, TempTolerance: 8, OptimalHumidity: 0.65,
		LightRequired: 0.6, SeasonPosition: 0.15,
		WaterNeed: 0.6, NutrientNeed: 0.6, SoilRequirement: 0.45,
		NitrogenReq: 0.035, PhosphorusReq: 0.03, PotassiumReq: 0.04,
		PestResistance: 0.6, DiseaseResistance: 0.4, Difficulty: 0.25,
		BaseYield: 12, MarketValue: 2,
		PreferredFertilizer: FertilizerOrganic,
	},
	{
		ID: "tomato", Name: "Tomato", Category: CategoryFood,
		GrowthTime: 120, Stages: DefaultTail(0.12, 0.38),
		OptimalTemp: 24, TempTolerance: 6, OptimalHumidity: 0.7,
		LightRequired: 0.9, SeasonPosition: 0.45,
		WaterNeed: 0.7, NutrientNeed: 0.7, SoilRequirement: 0.55,
		NitrogenReq: 0.04, PhosphorusReq: 0.035, PotassiumReq: 0.045,
		PestResistance: 0.35, DiseaseResistance: 0.35, Difficulty: 0.5,
		BaseYield: 15, MarketValue: 4,
		PreferredFertilizer: FertilizerPremium,
	},
	{
		ID: "corn", Name: "Corn", Category: CategoryFood,
		GrowthTime: 150, Stages: DefaultTail(0.1, 0.45),
		OptimalTemp: 26, TempTolerance: 8, OptimalHumidity: 0.55,
		LightRequired: 0.85, SeasonPosition: 0.5,
		WaterNeed: 0.65, NutrientNeed: 0.75, SoilRequirement: 0.5,
		NitrogenReq: 0.045, PhosphorusReq: 0.025, PotassiumReq: 0.03,
		PestResistance: 0.45, DiseaseResistance: 0.55, Difficulty: 0.35,
		BaseYield: 20, MarketValue: 3,
		PreferredFertilizer: FertilizerSynthetic,
	},
	{
		ID: "rice", Name: "Rice", Category: CategoryFood,
		GrowthTime: 140, Stages: DefaultTail(0.14, 0.42),
		OptimalTemp: 28, TempTolerance: 5, OptimalHumidity: 0.85,
		LightRequired: 0.8, SeasonPosition: 0.55,
		WaterNeed: 0.9, NutrientNeed: 0.55, SoilRequirement: 0.4,
		NitrogenReq: 0.035, PhosphorusReq: 0.02, PotassiumReq: 0.025,
		PestResistance: 0.4, DiseaseResistance: 0.45, Difficulty: 0.45,
		BaseYield: 18, MarketValue: 3,
		PreferredFertilizer: FertilizerBasic,
	},
	{
		ID: "soybean", Name: "Soybean", Category: CategoryFood,
		GrowthTime: 110, Stages: DefaultTail(0.12, 0.4),
		OptimalTemp: 25, TempTolerance: 7, OptimalHumidity: 0.6,
		LightRequired: 0.75, SeasonPosition: 0.4,
		WaterNeed: 0.55, NutrientNeed: 0.4, SoilRequirement: 0.45,
		NitrogenReq: 0.02, PhosphorusReq: 0.03, PotassiumReq: 0.035,
		PestResistance: 0.55, DiseaseResistance: 0.6, Difficulty: 0.3,
		BaseYield: 14, MarketValue: 3,
		PreferredFertilizer: FertilizerOrganic,
	},
	{
		ID: "medleaf", Name: "Medleaf", Category: CategoryMedical,
		GrowthTime: 180, Stages: DefaultTail(0.18, 0.5),
		OptimalTemp: 22, TempTolerance: 4, OptimalHumidity: 0.75,
		LightRequired: 0.7, SeasonPosition: 0.6,
		WaterNeed: 0.6, NutrientNeed: 0.65, SoilRequirement: 0.65,
		NitrogenReq: 0.04, PhosphorusReq: 0.04, PotassiumReq: 0.035,
		PestResistance: 0.3, DiseaseResistance: 0.3, Difficulty: 0.7,
		BaseYield: 6, MarketValue: 18,
		PreferredFertilizer: FertilizerSpecialized,
	},
	{
		ID: "aloe", Name: "Colony Aloe", Category: CategoryMedical,
		GrowthTime: 160, Stages: DefaultTail(0.2, 0.5),
		OptimalTemp: 30, TempTolerance: 9, OptimalHumidity: 0.3,
		LightRequired: 0.85, SeasonPosition: 0.65,
		WaterNeed: 0.25, NutrientNeed: 0.35, SoilRequirement: 0.35,
		NitrogenReq: 0.02, PhosphorusReq: 0.015, PotassiumReq: 0.02,
		PestResistance: 0.7, DiseaseResistance: 0.65, Difficulty: 0.4,
		BaseYield: 8, MarketValue: 10,
		PreferredFertilizer: FertilizerOrganic,
	},
	{
		ID: "fibercane", Name: "Fibercane", Category: CategoryIndustrial,
		GrowthTime: 130, Stages: DefaultTail(0.1, 0.35),
		OptimalTemp: 27, TempTolerance: 10, OptimalHumidity: 0.6,
		LightRequired: 0.75, SeasonPosition: 0.5,
		WaterNeed: 0.6, NutrientNeed: 0.7, SoilRequirement: 0.4,
		NitrogenReq: 0.045, PhosphorusReq: 0.02, PotassiumReq: 0.035,
		PestResistance: 0.6, DiseaseResistance: 0.55, Difficulty: 0.35,
		BaseYield: 25, MarketValue: 2,
		PreferredFertilizer: FertilizerSynthetic,
	},
	{
		ID: "resinshrub", Name: "Resin Shrub", Category: CategoryIndustrial,
		GrowthTime: 200, Stages: DefaultTail(0.15, 0.45),
		OptimalTemp: 29, TempTolerance: 6, OptimalHumidity: 0.8,
		LightRequired: 0.65, SeasonPosition: 0.7,
		WaterNeed: 0.7, NutrientNeed: 0.6, SoilRequirement: 0.5,
		NitrogenReq: 0.035, PhosphorusReq: 0.03, PotassiumReq: 0.03,
		PestResistance: 0.5, DiseaseResistance: 0.4, Difficulty: 0.55,
		BaseYield: 10, MarketValue: 8,
		PreferredFertilizer: FertilizerPremium,
	},
	{
		ID: "nightshade", Name: "Pale Nightshade", Category: CategoryIllegal,
		GrowthTime: 220, Stages: DefaultTail(0.2, 0.55),
		OptimalTemp: 18, TempTolerance: 3, OptimalHumidity: 0.8,
		LightRequired: 0.4, SeasonPosition: 0.85,
		WaterNeed: 0.5, NutrientNeed: 0.8, SoilRequirement: 0.7,
		NitrogenReq: 0.05, PhosphorusReq: 0.045, PotassiumReq: 0.04,
		PestResistance: 0.25, DiseaseResistance: 0.2, Difficulty: 0.85,
		BaseYield: 4, MarketValue: 45,
		PreferredFertilizer: FertilizerSpecialized,
	},
	{
		ID: "voidbloom", Name: "Voidbloom", Category: CategorySpecial,
		GrowthTime: 300, Stages: DefaultTail(0.25, 0.6),
		OptimalTemp: 12, TempTolerance: 15, OptimalHumidity: 0.4,
		LightRequired: 0.3, SeasonPosition: 0.95,
		WaterNeed: 0.2, NutrientNeed: 0.25, SoilRequirement: 0.2,
		NitrogenReq: 0.015, PhosphorusReq: 0.015, PotassiumReq: 0.015,
		PestResistance: 0.9, DiseaseResistance: 0.9, Difficulty: 0.6,
		BaseYield: 3, MarketValue: 60,
		PreferredFertilizer: FertilizerSpecialized,
		Hardy:               true,
	},
	{
		ID: "glowcap", Name: "Glowcap Fungus", Category: CategorySpecial,
		GrowthTime: 80, Stages: DefaultTail(0.2, 0.5),
		OptimalTemp: 14, TempTolerance: 12, OptimalHumidity: 0.9,
		LightRequired: 0.1, SeasonPosition: 0.1,
		WaterNeed: 0.75, NutrientNeed: 0.3, SoilRequirement: 0.25,
		NitrogenReq: 0.02, PhosphorusReq: 0.02, PotassiumReq: 0.015,
		PestResistance: 0.8, DiseaseResistance: 0.7, Difficulty: 0.5,
		BaseYield: 10, MarketValue: 7,
		PreferredFertilizer: FertilizerOrganic,
		Hardy:               true,
	},
}

var byID = func() map[string]*CropSpecies {
	m := make(map[string]*CropSpecies, len(species))
	for _, sp := range species {
		m[sp.ID] = sp
	}
	return m
}()

// Find returns the species for id, reporting whether it exists.
func Find(id string) (*CropSpecies, bool) {
	sp, ok := byID[id]
	return sp, ok
}

// Lookup returns the species for id, falling back to the default wheat
// record when the id is unknown. Callers that need to distinguish unknown
// ids use Find.
func Lookup(id string) *CropSpecies {
	if sp, ok := byID[id]; ok {
		return sp
	}
	return species[0]
}

// Default returns the fallback record (wheat).
func Default() *CropSpecies {
	return species[0]
}

// All returns every species in catalog order.
func All() []*CropSpecies {
	out := make([]*CropSpecies, len(species))
	copy(out, species)
	return out
}

// ByCategory returns species in the given category.
func ByCategory(c Category) []*CropSpecies {
	var out []*CropSpecies
	for _, sp := range species {
		if sp.Category == c {
			out = append(out, sp)
		}
	}
	return out
}

// BySeason returns species whose preferred season position lies within the
// season window of pos on the 0–1 cyclical scale.
func BySeason(pos float64) []*CropSpecies {
	var out []*CropSpecies
	for _, sp := range species {
		d := math.Abs(sp.SeasonPosition - pos)
		if d > 0.5 {
			d = 1 - d // cyclical distance
		}
		if d <= seasonWindow {
			out = append(out, sp)
		}
	}
	return out
}

// ByEnvironment returns species that can grow under the given conditions:
// temperature within tolerance, humidity within the fixed window, and light
// at least 80% of the species requirement.
func ByEnvironment(temp, humidity, light float64) []*CropSpecies {
	var out []*CropSpecies
	for _, sp := range species {
		if math.Abs(temp-sp.OptimalTemp) > sp.TempTolerance {
			continue
		}
		if math.Abs(humidity-sp.OptimalHumidity) > humidityWindow {
			continue
		}
		if light < lightSlack*sp.LightRequired {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// FindByName resolves a display name or id to a species, tolerating small
// typos. Exact id and case-insensitive name matches win; otherwise the
// nearest name within edit distance 2 is returned.
func FindByName(name string) (*CropSpecies, bool) {
	if sp, ok := byID[name]; ok {
		return sp, true
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, false
	}
	for _, sp := range species {
		if strings.ToLower(sp.Name) == needle {
			return sp, true
		}
	}
	best := -1
	var bestSp *CropSpecies
	for _, sp := range species {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(sp.Name))
		if best == -1 || d < best {
			best = d
			bestSp = sp
		}
	}
	if best >= 0 && best <= 2 {
		return bestSp, true
	}
	return nil, false
}
