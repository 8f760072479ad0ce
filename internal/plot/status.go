// Read-only status queries and the weather pass-through hooks.
package plot

import (
	"math"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/growth"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/soil"
)

// CellStatus is the read-only view of one cell for UI and alert callers.
type CellStatus struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	HasCrop     bool    `json:"has_crop"`
	SpeciesID   string  `json:"species_id,omitempty"`
	SpeciesName string  `json:"species_name,omitempty"`
	Stage       string  `json:"stage,omitempty"`
	Progress    float64 `json:"progress"`
	Health      float64 `json:"health"`
	NeedsWater  bool    `json:"needs_water"`
	HasPests    bool    `json:"has_pests"`
}

// CellStatusAt returns the status of the cell at (x, y). The boolean is
// false for out-of-range coordinates.
func (p *FarmPlot) CellStatusAt(x, y int) (CellStatus, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.inBounds(x, y) {
		return CellStatus{}, false
	}
	return p.cellStatusLocked(p.cellAt(x, y)), true
}

// AllCellStatus returns the status of every cell in row-major order.
func (p *FarmPlot) AllCellStatus() []CellStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]CellStatus, len(p.cells))
	for i := range p.cells {
		out[i] = p.cellStatusLocked(&p.cells[i])
	}
	return out
}

func (p *FarmPlot) cellStatusLocked(c *Cell) CellStatus {
	st := CellStatus{X: c.X, Y: c.Y}
	in := c.Crop
	if in == nil {
		return st
	}
	st.HasCrop = true
	st.SpeciesID = in.SpeciesID
	st.SpeciesName = speciesOf(in).Name
	st.Stage = growth.StageName(in.Stage)
	st.Progress = in.Progress
	st.Health = in.Health
	st.NeedsWater = c.NeedsWater
	st.HasPests = c.HasPests
	return st
}

// Statistics is the plot-level aggregate view.
type Statistics struct {
	TotalCells    int     `json:"total_cells"`
	PlantedCells  int     `json:"planted_cells"`
	MatureCrops   int     `json:"mature_crops"`
	NeedWater     int     `json:"need_water"`
	Infested      int     `json:"infested"`
	AvgHealth     float64 `json:"avg_health"`
	AvgGrowth     float64 `json:"avg_growth"`
	SoilQuality   float64 `json:"soil_quality"`
	SoilFertility float64 `json:"soil_fertility"`
	SoilWater     float64 `json:"soil_water"`
	SoilPH        float64 `json:"soil_ph"`
	SoilClass     string  `json:"soil_class"`
	SoilTier      string  `json:"soil_tier"`
	Totals        Totals  `json:"totals"`
	Tick          uint64  `json:"tick"`
	SimTime       float64 `json:"sim_time"`
}

// Stats computes the current aggregate statistics.
func (p *FarmPlot) Stats() Statistics {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := Statistics{
		TotalCells:    len(p.cells),
		SoilQuality:   p.soilState.Quality,
		SoilFertility: p.soilState.Fertility,
		SoilWater:     p.soilState.Water,
		SoilPH:        p.soilState.Composition.PH,
		SoilClass:     p.soilState.Composition.Classify(),
		SoilTier:      soil.QualityName(p.soilState.Composition.QualityTier()),
		Totals:        p.totals,
		Tick:          p.tick,
		SimTime:       p.simTime,
	}

	var healthSum, growthSum float64
	for i := range p.cells {
		c := &p.cells[i]
		in := c.Crop
		if in == nil {
			continue
		}
		st.PlantedCells++
		healthSum += in.Health
		growthSum += in.Progress
		if in.Stage == growth.StageMature {
			st.MatureCrops++
		}
		if c.NeedsWater {
			st.NeedWater++
		}
		if c.HasPests {
			st.Infested++
		}
	}
	if st.PlantedCells > 0 {
		st.AvgHealth = healthSum / float64(st.PlantedCells)
		st.AvgGrowth = growthSum / float64(st.PlantedCells)
	}
	return st
}

// Soil returns a copy of the shared soil pool state.
func (p *FarmPlot) Soil() SoilState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.soilState
}

// Tick returns the number of Advance calls processed.
func (p *FarmPlot) Tick() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tick
}

// SimTime returns the accumulated simulation seconds.
func (p *FarmPlot) SimTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.simTime
}

// ApplyRain routes precipitation into the water pool and the crops' water
// buffers, and erodes the soil on heavy rain. An additional stress source,
// not a separate mechanic.
func (p *FarmPlot) ApplyRain(precipitation, dt float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if precipitation <= 0 || dt <= 0 {
		return
	}
	retention := p.soilState.Composition.WaterRetention()
	p.soilState.Water = clamp01(p.soilState.Water + precipitation*dt*0.05*retention)
	for i := range p.cells {
		if c := p.cells[i].Crop; c != nil {
			c.AddWater(precipitation * dt * 0.02)
		}
	}
	p.soilState.Composition = soil.ApplyErosion(p.soilState.Composition, precipitation*dt*0.1, p.slope)
	p.soilState.recompute()
}

// ApplyStorm damages every crop proportional to intensity.
func (p *FarmPlot) ApplyStorm(intensity, dt float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if intensity <= 0 || dt <= 0 {
		return
	}
	for i := range p.cells {
		if c := p.cells[i].Crop; c != nil {
			c.Damage(intensity * 0.05 * dt)
		}
	}
}

// ApplyTemperatureStress damages crops whose tolerance band the sustained
// temperature exceeds, at the configured rate.
func (p *FarmPlot) ApplyTemperatureStress(temperature, dt, rate float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if dt <= 0 || rate <= 0 {
		return
	}
	for i := range p.cells {
		in := p.cells[i].Crop
		if in == nil {
			continue
		}
		sp := speciesOf(in)
		if math.Abs(temperature-sp.OptimalTemp) > sp.TempTolerance {
			in.Damage(rate * dt)
		}
	}
}
