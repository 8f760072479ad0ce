// Package weather supplies the ambient conditions that drive the farm
// simulation: a deterministic synthetic stream from layered simplex noise,
// plus an optional OpenWeatherMap client for live-driven runs.
package weather

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Conditions is one sample of ambient state fed into the plot each tick.
type Conditions struct {
	Temperature   float64 `json:"temperature"` // Celsius
	Humidity      float64 `json:"humidity"`    // 0.0–1.0
	Light         float64 `json:"light"`       // 0.0–1.0
	Precipitation float64 `json:"precipitation"`
	Storm         bool    `json:"storm"`
	Description   string  `json:"description"`
}

// Generator produces a deterministic weather stream over simulation time.
// The same seed and sim-time always yield the same conditions.
type Generator struct {
	temp   opensimplex.Noise
	hum    opensimplex.Noise
	precip opensimplex.Noise

	BaseTemp    float64 // Daily mean temperature
	TempSwing   float64 // Day/night amplitude
	SeasonSwing float64 // Summer/winter amplitude
	DayLength   float64 // Sim-seconds per day/night cycle
	YearLength  float64 // Sim-seconds per seasonal cycle
}

// NewGenerator creates a weather stream from seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		temp:        opensimplex.NewNormalized(seed),
		hum:         opensimplex.NewNormalized(seed + 1),
		precip:      opensimplex.NewNormalized(seed + 2),
		BaseTemp:    20,
		TempSwing:   8,
		SeasonSwing: 4,
		DayLength:   600,
		YearLength:  36000, // 60 days
	}
}

// Season returns the 0–1 cyclical season position at simTime, matching the
// scale the crop catalog uses for preferred planting windows.
func (g *Generator) Season(simTime float64) float64 {
	s := math.Mod(simTime/g.YearLength, 1)
	if s < 0 {
		s += 1
	}
	return s
}

// At samples conditions at the given simulation time.
func (g *Generator) At(simTime float64) Conditions {
	phase := simTime / g.DayLength * 2 * math.Pi
	daylight := (math.Sin(phase) + 1) / 2 // 0 at midnight, 1 at noon

	t := simTime * 0.001
	drift := (g.temp.Eval2(t, 0) - 0.5) * 10 // slow weather fronts
	seasonal := math.Sin(g.Season(simTime)*2*math.Pi) * g.SeasonSwing

	c := Conditions{
		Temperature: g.BaseTemp + (daylight-0.5)*2*g.TempSwing + seasonal + drift,
		Humidity:    clamp01(0.35 + g.hum.Eval2(t, 7)*0.5),
		Light:       clamp01(daylight*1.1 - 0.05),
	}

	wet := g.precip.Eval2(t, 13)
	switch {
	case wet > 0.85:
		c.Precipitation = (wet - 0.85) * 6
		c.Storm = true
		c.Description = "storm"
	case wet > 0.65:
		c.Precipitation = (wet - 0.65) * 2
		c.Description = "rain"
	default:
		c.Description = "clear"
	}
	if c.Precipitation > 0 {
		c.Humidity = clamp01(c.Humidity + 0.2)
		c.Light *= 0.6
	}
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
