// The per-tick update pipeline: growth rate, progress/stage, consumption,
// pest/disease onset, health, and quality drift.
package growth

import (
	"math"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/entropy"
)

// Environment is the live input to one tick: ambient conditions plus the
// soil quality scalar the plot derives from its shared soil pool.
type Environment struct {
	Temperature float64 `json:"temperature"` // Celsius
	Humidity    float64 `json:"humidity"`    // 0.0–1.0
	SoilQuality float64 `json:"soil_quality"`
	Light       float64 `json:"light"` // 0.0–1.0
}

// Engine advances crop instances. The random source is an explicit
// dependency so pest/disease draws are reproducible under a fixed seed.
type Engine struct {
	rng *entropy.Source
}

// NewEngine creates an engine using the given random source. A nil source
// falls back to the process-global generator.
func NewEngine(rng *entropy.Source) *Engine {
	return &Engine{rng: rng}
}

// Update advances one crop instance by dt seconds under env.
func (e *Engine) Update(in *Instance, env Environment, dt float64) {
	if in == nil || dt <= 0 {
		return
	}
	sp := in.Species
	if sp == nil {
		in.Rebind()
		sp = in.Species
	}

	rate := GrowthRate(in, env)
	in.Progress = clamp01(in.Progress + rate*dt)
	in.Stage = StageFor(sp, in.Progress)

	e.consume(in, env, dt)
	e.rollInfections(in, env, dt)
	e.applyHealth(in, env, dt)
	e.driftQuality(in, dt)
}

// GrowthRate computes progress gained per second. It is never negative:
// every factor has a positive floor and the product is floored at zero.
func GrowthRate(in *Instance, env Environment) float64 {
	sp := in.Species
	if sp == nil {
		sp = catalog.Lookup(in.SpeciesID)
	}
	if sp.GrowthTime <= 0 {
		return 0
	}

	rate := 1.0 / sp.GrowthTime
	rate *= TempFactor(sp, env.Temperature)
	rate *= HumidityFactor(sp, env.Humidity)
	rate *= SoilFactor(env.SoilQuality)
	rate *= LightFactor(sp, env.Light)
	rate *= FertilizerEffectiveness(in.Fertilizer, sp)
	rate *= 1 - sp.Difficulty*difficultyPenalty

	return math.Max(0, rate)
}

// TempFactor penalizes deviation from the species optimum linearly across
// its tolerance band. Growth never fully halts from temperature alone and
// can slightly exceed 1.0 near the optimum.
func TempFactor(sp *catalog.CropSpecies, temp float64) float64 {
	tol := sp.TempTolerance
	if tol <= 0 {
		tol = 1
	}
	return clampRange(1-math.Abs(temp-sp.OptimalTemp)/tol, tempFactorMin, tempFactorMax)
}

// HumidityFactor penalizes humidity mismatch twice as hard as temperature.
func HumidityFactor(sp *catalog.CropSpecies, humidity float64) float64 {
	return clampRange(1-2*math.Abs(humidity-sp.OptimalHumidity), humFactorMin, humFactorMax)
}

// SoilFactor passes the soil quality scalar through its clamp band.
func SoilFactor(quality float64) float64 {
	return clampRange(quality, soilFactorMin, soilFactorMax)
}

// LightFactor rates available light against the species requirement.
func LightFactor(sp *catalog.CropSpecies, light float64) float64 {
	req := sp.LightRequired
	if req <= 0 {
		req = 0.1
	}
	return clampRange(light/req, lightFactorMin, lightFactorMax)
}

// consume drains the water and nutrient buffers by the instantaneous need.
func (e *Engine) consume(in *Instance, env Environment, dt float64) {
	sp := in.Species

	waterNeed := sp.WaterNeed
	if env.Temperature > comfortTemp {
		waterNeed *= 1 + (env.Temperature-comfortTemp)*heatWaterScale
	}
	waterNeed *= 1.2 - 0.4*clamp01(env.Humidity) // humid air slows transpiration
	if in.Progress > floweringWindowLow && in.Progress < floweringWindowHigh {
		waterNeed *= 2
	}
	in.Water = clamp01(in.Water - waterNeed*dt*waterDrainCoeff)

	nutrientNeed := sp.NutrientNeed
	switch {
	case in.Progress >= activeGrowthHigh:
		nutrientNeed *= matureNutrientCut
	case in.Progress > activeGrowthLow:
		nutrientNeed *= activeNutrientBoost
	}
	in.Nutrients = clamp01(in.Nutrients - nutrientNeed*dt*nutrientDrainCoeff)
}

// NutrientDemand reports the instantaneous nutrient need used by the plot
// to deplete the shared soil pool in proportion to its crops.
func NutrientDemand(in *Instance) float64 {
	sp := in.Species
	if sp == nil {
		sp = catalog.Lookup(in.SpeciesID)
	}
	need := sp.NutrientNeed
	switch {
	case in.Progress >= activeGrowthHigh:
		need *= matureNutrientCut
	case in.Progress > activeGrowthLow:
		need *= activeNutrientBoost
	}
	return need
}

// rollInfections handles pest/disease onset and progression. Onset draws a
// uniform random number against probability × dt; existing infections grow
// linearly toward full severity.
func (e *Engine) rollInfections(in *Instance, env Environment, dt float64) {
	sp := in.Species

	if in.Pest == PestNone {
		p := pestClimate(env) * pestBaseRate * (1 - sp.PestResistance)
		if p > 0 && e.rng.Float() < p*dt {
			in.Pest = PestKind(1 + e.rng.IntN(4))
			in.PestLevel = e.rng.Range(infectionSevMin, infectionSevMax)
		}
	} else {
		in.PestLevel = clamp01(in.PestLevel + pestGrowthRate*dt)
	}

	if in.Disease == DiseaseNone {
		p := diseaseClimate(env) * diseaseBaseRate * (1 - sp.DiseaseResistance)
		if p > 0 && e.rng.Float() < p*dt {
			in.Disease = DiseaseKind(1 + e.rng.IntN(4))
			in.DiseaseLevel = e.rng.Range(infectionSevMin, infectionSevMax)
		}
	} else {
		in.DiseaseLevel = clamp01(in.DiseaseLevel + diseaseGrowth*dt)
	}
}

// pestClimate favors warm and humid conditions.
func pestClimate(env Environment) float64 {
	t := clamp01(1 - math.Abs(env.Temperature-28)/15)
	h := clamp01((env.Humidity - 0.2) / 0.6)
	return (t + h) / 2
}

// diseaseClimate favors moderate temperatures and high humidity.
func diseaseClimate(env Environment) float64 {
	t := clamp01(1 - math.Abs(env.Temperature-18)/12)
	h := clamp01((env.Humidity - 0.4) / 0.5)
	return (t + h) / 2
}

// applyHealth accumulates the independent health contributions for one tick.
func (e *Engine) applyHealth(in *Instance, env Environment, dt float64) {
	var delta float64

	switch {
	case in.Water < lowWaterBand:
		delta -= dehydrationRate * dt
	case in.Water > highWaterBand:
		delta -= overwaterRate * dt
	default:
		delta += hydratedBonus * dt
	}

	if in.Nutrients < lowNutrientBand {
		delta -= malnutritionRate * dt
	} else if in.Nutrients > wellFedBand {
		delta += wellFedBonus * dt
	}

	if in.Pest != PestNone {
		delta -= pestDamage[in.Pest] * in.PestLevel * dt
	}
	if in.Disease != DiseaseNone {
		delta -= diseaseDamage[in.Disease] * in.DiseaseLevel * dt
	}

	delta -= EnvironmentalStress(in.Species, env) * stressHealthScale * dt

	in.Health = clamp01(in.Health + delta)
}

// EnvironmentalStress sums capped deviation terms for temperature,
// humidity, soil, and light. Result is in [0, 1].
func EnvironmentalStress(sp *catalog.CropSpecies, env Environment) float64 {
	if sp == nil {
		sp = catalog.Default()
	}
	tol := sp.TempTolerance
	if tol <= 0 {
		tol = 1
	}
	tStress := math.Min(stressCapTemp, math.Abs(env.Temperature-sp.OptimalTemp)/tol*0.15)
	hStress := math.Min(stressCapHumidity, math.Abs(env.Humidity-sp.OptimalHumidity)*0.4)
	sStress := math.Min(stressCapSoil, math.Max(0, sp.SoilRequirement-env.SoilQuality)*0.5)
	lStress := math.Min(stressCapLight, math.Max(0, sp.LightRequired-env.Light)*0.5)
	return tStress + hStress + sStress + lStress
}

// driftQuality moves the care-history multiplier slowly toward its bounds
// depending on sustained health. It is never reset per tick.
func (e *Engine) driftQuality(in *Instance, dt float64) {
	switch {
	case in.Health > qualityGainBand:
		in.Quality = math.Min(QualityMax, in.Quality+qualityGainRate*dt)
	case in.Health < qualityLossBand:
		in.Quality = math.Max(QualityMin, in.Quality-qualityLossRate*dt)
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
