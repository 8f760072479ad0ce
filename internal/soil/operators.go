// Degradation and improvement operators. All of them take a Composition by
// value and return the adjusted copy; none can fail.
package soil

import "math"

// Operator domain for pH adjustments (tighter than the raw composition domain).
const (
	opPHMin = 5.0
	opPHMax = 9.0
)

// Nutrient depletion ratio N:P:K = 4:2:3 per unit of crop consumption.
const (
	depleteUnit      = 0.001
	depleteNitrogen  = 4
	depletePhosphor  = 2
	depletePotassium = 3
)

// ApplyErosion removes material proportional to rainfall and slope. Organic
// matter and nutrients wash out faster than structure degrades, and silt and
// clay are stripped preferentially, shifting the texture toward sand.
func ApplyErosion(c Composition, rainfall, slope float64) Composition {
	c = c.Normalize()
	intensity := clamp(rainfall, 0, 1) * clamp(slope, 0, 1)
	if intensity <= 0 {
		return c
	}

	loss := intensity * 0.1
	c.Organic *= 1 - loss*2
	c.Nitrogen *= 1 - loss*1.5
	c.Phosphorus *= 1 - loss*1.5
	c.Potassium *= 1 - loss*1.5

	// Fines wash away first.
	shift := loss * 0.5
	c.Clay *= 1 - shift
	c.Silt *= 1 - shift*1.2

	return c.Normalize()
}

// DepleteNutrients removes N/P/K in the fixed 4:2:3 ratio proportional to
// the given crop consumption scalar.
func DepleteNutrients(c Composition, consumption float64) Composition {
	c = c.Normalize()
	if consumption <= 0 {
		return c
	}
	unit := consumption * depleteUnit
	c.Nitrogen = math.Max(0, c.Nitrogen-unit*depleteNitrogen)
	c.Phosphorus = math.Max(0, c.Phosphorus-unit*depletePhosphor)
	c.Potassium = math.Max(0, c.Potassium-unit*depletePotassium)
	return c
}

// ApplyCompaction reduces organic-matter effectiveness and N/P availability
// proportional to traffic. Impact is capped at 30% no matter the input.
func ApplyCompaction(c Composition, traffic float64) Composition {
	c = c.Normalize()
	impact := math.Min(0.3, clamp(traffic, 0, 10)*0.05)
	if impact <= 0 {
		return c
	}
	c.Organic *= 1 - impact
	c.Nitrogen *= 1 - impact*0.5
	c.Phosphorus *= 1 - impact*0.5
	return c
}

// ApplyFertilizer adds N/P/K directly, clamped to the domain caps.
func ApplyFertilizer(c Composition, n, p, k float64) Composition {
	c = c.Normalize()
	c.Nitrogen = clamp(c.Nitrogen+math.Max(0, n), 0, capNitrogen)
	c.Phosphorus = clamp(c.Phosphorus+math.Max(0, p), 0, capPhosphorus)
	c.Potassium = clamp(c.Potassium+math.Max(0, k), 0, capPotassium)
	return c
}

// ApplyCompost adds organic matter plus a small nutrient boost and nudges pH
// toward neutral proportionally to the gap from 7.0.
func ApplyCompost(c Composition, amount float64) Composition {
	c = c.Normalize()
	amount = clamp(amount, 0, 1)
	if amount <= 0 {
		return c
	}
	c.Organic = clamp(c.Organic+amount*0.05, 0, capOrganic)
	c.Nitrogen = clamp(c.Nitrogen+amount*0.005, 0, capNitrogen)
	c.Phosphorus = clamp(c.Phosphorus+amount*0.003, 0, capPhosphorus)
	c.Potassium = clamp(c.Potassium+amount*0.004, 0, capPotassium)
	c.PH += (7.0 - c.PH) * 0.05 * amount
	c.PH = clamp(c.PH, opPHMin, opPHMax)
	return c
}

// Till nudges the texture fractions 10% of the way toward the balanced 1/3
// target and aerates in a small organic and N/P boost.
func Till(c Composition) Composition {
	c = c.Normalize()
	const target = 1.0 / 3.0
	c.Clay += (target - c.Clay) * 0.1
	c.Silt += (target - c.Silt) * 0.1
	c.Sand = 1 - c.Clay - c.Silt

	c.Organic = clamp(c.Organic+0.005, 0, capOrganic)
	c.Nitrogen = clamp(c.Nitrogen+0.001, 0, capNitrogen)
	c.Phosphorus = clamp(c.Phosphorus+0.001, 0, capPhosphorus)
	return c
}

// AdjustPH moves the pH 10% of the way toward target per application.
// Repeated applications converge; a single call is never instantaneous.
func AdjustPH(c Composition, target float64) Composition {
	c = c.Normalize()
	target = clamp(target, opPHMin, opPHMax)
	c.PH += (target - c.PH) * 0.1
	c.PH = clamp(c.PH, opPHMin, opPHMax)
	return c
}
