// Harvest-time math: yield and quality are pure functions of the instance
// state at the moment of harvest.
package growth

import (
	"math"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"
)

// YieldFor computes the unit count a harvest produces. Pests and disease
// scale the count down; it never drops below one unit.
func YieldFor(in *Instance) int {
	sp := in.Species
	if sp == nil {
		sp = catalog.Lookup(in.SpeciesID)
	}
	y := float64(sp.BaseYield) *
		in.Health *
		in.Quality *
		(1 - pestYieldPenalty*in.PestLevel) *
		(1 - diseaseYieldPenalty*in.DiseaseLevel)
	n := int(math.Round(y))
	if n < 1 {
		n = 1
	}
	return n
}

// QualityFor computes the 0–1 quality grade of a harvest: the care-history
// multiplier weighted by final health, buffers, and infestation state.
func QualityFor(in *Instance) float64 {
	grade := in.Quality * (0.4*in.Health +
		0.2*in.Water +
		0.2*in.Nutrients +
		0.1*(1-in.PestLevel) +
		0.1*(1-in.DiseaseLevel))
	return clamp01(grade)
}
