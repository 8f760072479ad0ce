// Package growth owns the per-tick update of a single planted crop: the
// growth-rate factor pipeline, water/nutrient consumption, pest and disease
// onset, health accumulation, and harvest math. It reads catalog data and is
// fed environment and soil values; it never owns soil state.
package growth

import (
	"math"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"
)

// Stage is the discrete growth phase derived from progress.
type Stage uint8

const (
	StageSeed       Stage = iota
	StageSprout
	StageVegetative
	StageFlowering
	StageFruiting
	StageMature
)

// StageName returns a human-readable stage name.
func StageName(s Stage) string {
	switch s {
	case StageSeed:
		return "Seed"
	case StageSprout:
		return "Sprout"
	case StageVegetative:
		return "Vegetative"
	case StageFlowering:
		return "Flowering"
	case StageFruiting:
		return "Fruiting"
	case StageMature:
		return "Mature"
	default:
		return "Unknown"
	}
}

// PestKind enumerates pest infestations.
type PestKind uint8

const (
	PestNone    PestKind = iota
	PestAphids
	PestMites
	PestBeetles
	PestLocusts
)

// PestName returns a human-readable pest name.
func PestName(k PestKind) string {
	switch k {
	case PestAphids:
		return "Aphids"
	case PestMites:
		return "Mites"
	case PestBeetles:
		return "Beetles"
	case PestLocusts:
		return "Locusts"
	default:
		return "None"
	}
}

// DiseaseKind enumerates crop diseases.
type DiseaseKind uint8

const (
	DiseaseNone   DiseaseKind = iota
	DiseaseBlight
	DiseaseMildew
	DiseaseRot
	DiseaseRust
)

// DiseaseName returns a human-readable disease name.
func DiseaseName(k DiseaseKind) string {
	switch k {
	case DiseaseBlight:
		return "Blight"
	case DiseaseMildew:
		return "Mildew"
	case DiseaseRot:
		return "Rot"
	case DiseaseRust:
		return "Rust"
	default:
		return "None"
	}
}

// Instance is the mutable state of one planted crop. It is owned by exactly
// one grid cell and mutated only by the engine tick and the care actions.
type Instance struct {
	SpeciesID string               `json:"species_id"`
	Species   *catalog.CropSpecies `json:"-"`

	Progress float64 `json:"progress"` // 0.0–1.0 lifecycle completion
	Stage    Stage   `json:"stage"`    // Derived from Progress, cached

	Health    float64 `json:"health"`    // 0.0–1.0
	Water     float64 `json:"water"`     // 0.0–1.0 buffered level
	Nutrients float64 `json:"nutrients"` // 0.0–1.0 buffered level

	PestLevel    float64     `json:"pest_level"` // 0.0–1.0 severity
	Pest         PestKind    `json:"pest"`
	DiseaseLevel float64     `json:"disease_level"`
	Disease      DiseaseKind `json:"disease"`

	// Quality is the slow-drifting care-history multiplier in [0.5, 1.5].
	Quality float64 `json:"quality"`

	Fertilizer  catalog.FertilizerKind `json:"fertilizer"` // Last kind applied
	PlantedTick uint64                 `json:"planted_tick"`

	Yield int `json:"yield"` // Populated only at harvest
}

// NewInstance plants a crop of the given species at tick.
func NewInstance(sp *catalog.CropSpecies, tick uint64) *Instance {
	if sp == nil {
		sp = catalog.Default()
	}
	return &Instance{
		SpeciesID:   sp.ID,
		Species:     sp,
		Health:      1.0,
		Water:       0.5,
		Nutrients:   0.5,
		Quality:     1.0,
		Fertilizer:  catalog.FertilizerBasic,
		PlantedTick: tick,
	}
}

// Rebind restores the species pointer after deserialization.
func (in *Instance) Rebind() {
	in.Species = catalog.Lookup(in.SpeciesID)
}

// StageFor derives the stage for a progress value from species thresholds.
func StageFor(sp *catalog.CropSpecies, progress float64) Stage {
	t := sp.Stages
	switch {
	case progress >= t.MatureAt:
		return StageMature
	case progress >= t.FruitingAt:
		return StageFruiting
	case progress >= t.FloweringAt:
		return StageFlowering
	case progress >= t.VegetativeAt:
		return StageVegetative
	case progress >= t.SproutAt:
		return StageSprout
	default:
		return StageSeed
	}
}

// AddWater adds to the water level, clamped to [0,1]. Zero amounts are
// no-ops, negative amounts are ignored.
func (in *Instance) AddWater(amount float64) {
	if amount <= 0 {
		return
	}
	in.Water = clamp01(in.Water + amount)
}

// ApplyFertilizer adds amount scaled by the fertilizer's effectiveness for
// this species to the nutrient level and records the active kind.
func (in *Instance) ApplyFertilizer(amount float64, kind catalog.FertilizerKind) {
	if amount <= 0 {
		return
	}
	in.Nutrients = clamp01(in.Nutrients + amount*FertilizerEffectiveness(kind, in.Species))
	in.Fertilizer = kind
}

// TreatPests reduces pest severity by effectiveness. Once severity falls
// below the treated threshold the subtype clears.
func (in *Instance) TreatPests(effectiveness float64) {
	if effectiveness <= 0 {
		return
	}
	in.PestLevel = clamp01(in.PestLevel - effectiveness)
	if in.PestLevel < treatedThreshold {
		in.Pest = PestNone
	}
}

// TreatDisease reduces disease severity by effectiveness, clearing the
// subtype below the treated threshold.
func (in *Instance) TreatDisease(effectiveness float64) {
	if effectiveness <= 0 {
		return
	}
	in.DiseaseLevel = clamp01(in.DiseaseLevel - effectiveness)
	if in.DiseaseLevel < treatedThreshold {
		in.Disease = DiseaseNone
	}
}

// Damage applies an external health loss (storms, temperature events).
func (in *Instance) Damage(amount float64) {
	if amount <= 0 {
		return
	}
	in.Health = clamp01(in.Health - amount)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
