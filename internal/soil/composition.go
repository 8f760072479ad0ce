// Package soil models soil composition and quality: texture fractions,
// organic matter, pH, and N/P/K chemistry, with derived scores and pure
// degradation/improvement operators. Every function is total: out-of-range
// inputs are clamped, never rejected.
package soil

import (
	"math"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"
)

// Domain bounds and design targets.
const (
	PHMin = 4.0 // Raw composition domain
	PHMax = 9.0

	phOptimalLow  = 6.0
	phOptimalHigh = 7.0

	// Ideal share of each nutrient in the N+P+K total.
	idealNitrogenRatio   = 0.4
	idealPhosphorusRatio = 0.3
	idealPotassiumRatio  = 0.3

	// Fertility normalization targets.
	targetNitrogen   = 0.04
	targetPhosphorus = 0.03
	targetPotassium  = 0.04
	targetOrganic    = 0.15

	// Domain caps for direct nutrient additions.
	capNitrogen   = 0.08
	capPhosphorus = 0.06
	capPotassium  = 0.08
	capOrganic    = 0.30

	// Hardy crops skip suitability scoring and get this fixed value.
	hardySuitability = 0.9
)

// Quality is the coarse soil quality tier.
type Quality uint8

const (
	QualityPoor     Quality = iota
	QualityFair
	QualityGood
	QualityExcellent
	QualityPristine
)

// QualityName returns a human-readable tier name.
func QualityName(q Quality) string {
	switch q {
	case QualityPristine:
		return "Pristine"
	case QualityExcellent:
		return "Excellent"
	case QualityGood:
		return "Good"
	case QualityFair:
		return "Fair"
	default:
		return "Poor"
	}
}

// Composition is a value type describing one parcel of soil. Operators
// return new values and never mutate in place.
type Composition struct {
	Clay float64 `json:"clay"` // Texture fractions, sum ~1
	Sand float64 `json:"sand"`
	Silt float64 `json:"silt"`

	Organic float64 `json:"organic"` // Organic matter fraction
	PH      float64 `json:"ph"`      // 4.0–9.0

	Nitrogen   float64 `json:"nitrogen"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
}

// Normalize clamps chemistry to its domain and renormalizes texture with
// sand as the residual fraction. The model tolerates drift in stored values;
// every derived score goes through a normalized copy.
func (c Composition) Normalize() Composition {
	c.Clay = clamp(c.Clay, 0, 1)
	c.Silt = clamp(c.Silt, 0, 1)
	if c.Clay+c.Silt > 1 {
		total := c.Clay + c.Silt
		c.Clay /= total
		c.Silt /= total
	}
	c.Sand = 1 - c.Clay - c.Silt

	c.Organic = clamp(c.Organic, 0, capOrganic)
	c.PH = clamp(c.PH, PHMin, PHMax)
	c.Nitrogen = clamp(c.Nitrogen, 0, capNitrogen)
	c.Phosphorus = clamp(c.Phosphorus, 0, capPhosphorus)
	c.Potassium = clamp(c.Potassium, 0, capPotassium)
	return c
}

// StructureScore rates how close the texture is to a balanced loam, with an
// organic-matter bonus capped at 0.3. Pure sand or pure clay scores near 0.
func (c Composition) StructureScore() float64 {
	c = c.Normalize()
	dev := math.Abs(c.Clay-1.0/3.0) + math.Abs(c.Sand-1.0/3.0) + math.Abs(c.Silt-1.0/3.0)
	bonus := math.Min(0.3, c.Organic*2)
	return clamp(1-dev+bonus, 0, 1)
}

// NutrientBalance rates how close the N:P:K split is to the ideal ratios.
func (c Composition) NutrientBalance() float64 {
	c = c.Normalize()
	total := c.Nitrogen + c.Phosphorus + c.Potassium
	if total <= 0 {
		return 0
	}
	n := 1 - math.Abs(c.Nitrogen/total-idealNitrogenRatio)
	p := 1 - math.Abs(c.Phosphorus/total-idealPhosphorusRatio)
	k := 1 - math.Abs(c.Potassium/total-idealPotassiumRatio)
	return clamp((n+p+k)/3, 0, 1)
}

// PHScore is 1.0 inside the optimal 6.0–7.0 band and decays linearly to 0
// at the domain extremes.
func (c Composition) PHScore() float64 {
	return PHScoreOf(c.PH)
}

// PHScoreOf scores a bare pH value against the optimal band.
func PHScoreOf(ph float64) float64 {
	ph = clamp(ph, PHMin, PHMax)
	switch {
	case ph >= phOptimalLow && ph <= phOptimalHigh:
		return 1.0
	case ph < phOptimalLow:
		return clamp(ph/phOptimalLow, 0, 1)
	default:
		return clamp((PHMax-ph)/(PHMax-phOptimalHigh), 0, 1)
	}
}

// Fertility averages the four nutrient sufficiency ratios against their
// design targets, each clamped to [0,1].
func (c Composition) Fertility() float64 {
	c = c.Normalize()
	n := clamp(c.Nitrogen/targetNitrogen, 0, 1)
	p := clamp(c.Phosphorus/targetPhosphorus, 0, 1)
	k := clamp(c.Potassium/targetPotassium, 0, 1)
	o := clamp(c.Organic/targetOrganic, 0, 1)
	return (n + p + k + o) / 4
}

// QualityScore is the overall 0–1 quality composite.
func (c Composition) QualityScore() float64 {
	return (c.StructureScore() + c.NutrientBalance() + c.PHScore() + c.Fertility()) / 4
}

// QualityTier buckets the quality score into the coarse tier enum.
func (c Composition) QualityTier() Quality {
	return TierOf(c.QualityScore())
}

// TierOf buckets a 0–1 quality score.
func TierOf(score float64) Quality {
	switch {
	case score >= 0.9:
		return QualityPristine
	case score >= 0.75:
		return QualityExcellent
	case score >= 0.6:
		return QualityGood
	case score >= 0.4:
		return QualityFair
	default:
		return QualityPoor
	}
}

// WaterRetention estimates how well this soil holds water, in [0.1, 0.9].
func (c Composition) WaterRetention() float64 {
	c = c.Normalize()
	r := c.Clay*0.8 + c.Sand*0.2 + c.Silt*0.5 + c.Organic*2.0
	return clamp(r, 0.1, 0.9)
}

// Suitability scores this soil for a specific species: the average of the
// pH score, three nutrient sufficiency ratios against the species' demand,
// and the structure score. Hardy species bypass the formula.
func (c Composition) Suitability(sp *catalog.CropSpecies) float64 {
	if sp == nil {
		sp = catalog.Default()
	}
	if sp.Hardy {
		return hardySuitability
	}
	c = c.Normalize()
	n := ratioScore(c.Nitrogen, sp.NitrogenReq)
	p := ratioScore(c.Phosphorus, sp.PhosphorusReq)
	k := ratioScore(c.Potassium, sp.PotassiumReq)
	return clamp((c.PHScore()+n+p+k+c.StructureScore())/5, 0, 1)
}

// Classify returns the human-readable textural class label.
func (c Composition) Classify() string {
	c = c.Normalize()
	switch {
	case c.Clay >= 0.5:
		return "Clay"
	case c.Sand >= 0.6:
		return "Sand"
	case c.Silt >= 0.6:
		return "Silt"
	case c.Clay >= 0.3 && c.Sand < 0.5:
		return "Clay Loam"
	case c.Sand >= 0.45:
		return "Sandy Loam"
	case c.Silt >= 0.45:
		return "Silty Loam"
	default:
		return "Loam"
	}
}

func ratioScore(actual, required float64) float64 {
	if required <= 0 {
		return 1
	}
	return clamp(actual/required, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
