// Package plot owns the farm plot aggregate: an N×N grid of cells each
// optionally hosting one crop instance, the plot-wide shared soil pool, the
// per-tick update driver, and harvest bookkeeping. All mutation goes through
// the plot's entry points; one mutex makes the whole plot a critical section
// for multi-threaded hosts.
package plot

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/entropy"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/growth"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/soil"
)

// Cell thresholds for the fast UI/alert flags.
const (
	thirstyLevel    = 0.3
	historyCap      = 64
	defaultSlope    = 0.1
	soilRegenRate   = 0.002 // Fraction of nutrient deficit recovered per second
	evaporationBase = 0.001 // Plot water lost per second
	evaporationCrop = 0.0005 // Additional per planted cell
)

// Cell is one grid position. A cell hosts at most one crop instance and
// caches cheap flags for alert queries.
type Cell struct {
	X, Y       int
	Crop       *growth.Instance
	NeedsWater bool
	HasPests   bool

	lastProgress float64 // For stage-change edge detection
	sinceWater   float64 // Seconds since last explicit watering
	plantedSim   float64 // Sim-time at planting, for harvest duration
}

// SoilState is the plot-wide shared soil pool. Soil is not per-cell: every
// cell draws from and is scored against this one resource.
type SoilState struct {
	Composition soil.Composition `json:"composition"`
	Compaction  float64          `json:"compaction"` // 0.0–1.0
	Water       float64          `json:"water"`      // 0.0–1.0
	Quality     float64          `json:"quality"`    // Cached composite
	Fertility   float64          `json:"fertility"`  // Cached
}

func (s *SoilState) recompute() {
	base := s.Composition.QualityScore()
	s.Quality = clamp01(base * (1 - 0.3*s.Compaction))
	s.Fertility = s.Composition.Fertility()
}

// FarmPlot is the owning aggregate of a grid of cells plus one soil pool.
type FarmPlot struct {
	mu sync.Mutex

	id    uuid.UUID
	size  int
	slope float64
	cells []Cell // Row-major, len size*size

	soilState SoilState
	engine    *growth.Engine
	rng       *entropy.Source

	tick    uint64
	simTime float64 // Accumulated sim-seconds

	history []HarvestRecord // Bounded ring, newest last
	totals  Totals
}

// Totals are the running cumulative plot statistics.
type Totals struct {
	Planted        int     `json:"planted"`
	Harvested      int     `json:"harvested"`
	TotalYield     int     `json:"total_yield"`
	WaterUsed      float64 `json:"water_used"`
	FertilizerUsed float64 `json:"fertilizer_used"`
}

// New creates a plot of size×size cells seeded from a raw site composition.
// The seed drives all pest/disease randomness for the plot.
func New(size int, comp soil.Composition, seed int64) *FarmPlot {
	if size < 1 {
		size = 1
	}
	rng := entropy.NewSource(seed)
	p := &FarmPlot{
		id:     uuid.New(),
		size:   size,
		slope:  defaultSlope,
		cells:  make([]Cell, size*size),
		rng:    rng,
		engine: growth.NewEngine(rng),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := &p.cells[y*size+x]
			c.X, c.Y = x, y
		}
	}
	p.soilState.Composition = comp.Normalize()
	p.soilState.Water = comp.WaterRetention()
	p.soilState.recompute()
	return p
}

// NewGenerated creates a plot whose starting soil is sampled from the noise
// generator at the plot's site coordinates.
func NewGenerated(size int, gen *soil.Generator, siteX, siteY int, seed int64) *FarmPlot {
	return New(size, gen.At(siteX, siteY), seed)
}

// ID returns the plot identity.
func (p *FarmPlot) ID() uuid.UUID { return p.id }

// Size returns the grid edge length.
func (p *FarmPlot) Size() int { return p.size }

func (p *FarmPlot) inBounds(x, y int) bool {
	return x >= 0 && x < p.size && y >= 0 && y < p.size
}

func (p *FarmPlot) cellAt(x, y int) *Cell {
	return &p.cells[y*p.size+x]
}

// Plant places a new crop of the given species into an empty cell. It fails
// (with no side effects) on out-of-range coordinates, occupied cells, and
// unknown species ids.
func (p *FarmPlot) Plant(x, y int, speciesID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.inBounds(x, y) {
		return false
	}
	sp, ok := catalog.Find(speciesID)
	if !ok {
		return false
	}
	cell := p.cellAt(x, y)
	if cell.Crop != nil {
		return false
	}

	cell.Crop = growth.NewInstance(sp, p.tick)
	cell.lastProgress = 0
	cell.sinceWater = 0
	cell.plantedSim = p.simTime
	cell.NeedsWater = false
	cell.HasPests = false
	p.totals.Planted++

	slog.Debug("crop planted", "plot", p.id, "x", x, "y", y, "species", sp.ID)
	return true
}

// HarvestResult reports the outcome of a single-cell harvest.
type HarvestResult struct {
	OK        bool    `json:"ok"`
	SpeciesID string  `json:"species_id"`
	Yield     int     `json:"yield"`
	Quality   float64 `json:"quality"`
}

// Harvest extracts the crop at (x, y) if it has reached a harvestable
// stage, records the harvest, and clears the cell. Empty cells, bad
// coordinates, and immature crops fail with no side effects.
func (p *FarmPlot) Harvest(x, y int) HarvestResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.harvestLocked(x, y)
}

func (p *FarmPlot) harvestLocked(x, y int) HarvestResult {
	if !p.inBounds(x, y) {
		return HarvestResult{}
	}
	cell := p.cellAt(x, y)
	in := cell.Crop
	if in == nil {
		return HarvestResult{}
	}
	sp := in.Species
	if sp == nil {
		in.Rebind()
		sp = in.Species
	}
	// Harvestable once the terminal flowering threshold is reached.
	if in.Progress < sp.Stages.FloweringAt {
		return HarvestResult{}
	}

	in.Yield = growth.YieldFor(in)
	quality := growth.QualityFor(in)

	p.appendHarvest(HarvestRecord{
		ID:          uuid.New(),
		Tick:        p.tick,
		SimTime:     p.simTime,
		SpeciesID:   in.SpeciesID,
		Yield:       in.Yield,
		Quality:     quality,
		X:           x,
		Y:           y,
		Duration:    p.simTime - cell.plantedSim,
		SoilQuality: p.soilState.Quality,
	})

	p.totals.Harvested++
	p.totals.TotalYield += in.Yield

	res := HarvestResult{OK: true, SpeciesID: in.SpeciesID, Yield: in.Yield, Quality: quality}

	cell.Crop = nil
	cell.NeedsWater = false
	cell.HasPests = false
	cell.lastProgress = 0

	slog.Debug("crop harvested",
		"plot", p.id, "x", x, "y", y,
		"species", res.SpeciesID, "yield", res.Yield, "quality", res.Quality,
	)
	return res
}

// AggregateHarvest summarizes a whole-plot harvest pass.
type AggregateHarvest struct {
	Harvested  int     `json:"harvested"`
	TotalYield int     `json:"total_yield"`
	AvgQuality float64 `json:"avg_quality"`
}

// HarvestAll harvests every harvestable cell in the plot.
func (p *FarmPlot) HarvestAll() AggregateHarvest {
	p.mu.Lock()
	defer p.mu.Unlock()

	var agg AggregateHarvest
	var qualitySum float64
	for y := 0; y < p.size; y++ {
		for x := 0; x < p.size; x++ {
			res := p.harvestLocked(x, y)
			if !res.OK {
				continue
			}
			agg.Harvested++
			agg.TotalYield += res.Yield
			qualitySum += res.Quality
		}
	}
	if agg.Harvested > 0 {
		agg.AvgQuality = qualitySum / float64(agg.Harvested)
	}
	return agg
}

// WaterPlot waters every crop and tops up the shared water pool scaled by
// the soil's retention. Zero amounts are no-ops; negative amounts fail.
func (p *FarmPlot) WaterPlot(amount float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if amount < 0 {
		return false
	}
	if amount == 0 {
		return true
	}

	retention := p.soilState.Composition.WaterRetention()
	p.soilState.Water = clamp01(p.soilState.Water + amount*retention)
	for i := range p.cells {
		c := &p.cells[i]
		c.sinceWater = 0
		if c.Crop != nil {
			c.Crop.AddWater(amount)
			c.NeedsWater = c.Crop.Water < thirstyLevel
		}
	}
	p.totals.WaterUsed += amount
	return true
}

// FertilizePlot feeds every crop and enriches the soil pool. The N/P/K mix
// added to the pool follows the depletion ratio so sustained use holds the
// nutrient balance steady.
func (p *FarmPlot) FertilizePlot(amount float64, kind catalog.FertilizerKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if amount < 0 {
		return false
	}
	if amount == 0 {
		return true
	}

	p.soilState.Composition = soil.ApplyFertilizer(
		p.soilState.Composition,
		amount*0.008, amount*0.004, amount*0.006,
	)
	for i := range p.cells {
		if c := p.cells[i].Crop; c != nil {
			c.ApplyFertilizer(amount, kind)
		}
	}
	p.totals.FertilizerUsed += amount
	p.soilState.recompute()
	return true
}

// TreatPlot applies pesticide and fungicide at the given effectiveness to
// every planted crop. Negative amounts fail; zero amounts are no-ops.
func (p *FarmPlot) TreatPlot(pesticide, fungicide float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pesticide < 0 || fungicide < 0 {
		return false
	}
	for i := range p.cells {
		c := &p.cells[i]
		if c.Crop == nil {
			continue
		}
		c.Crop.TreatPests(pesticide)
		c.Crop.TreatDisease(fungicide)
		c.HasPests = c.Crop.Pest != growth.PestNone
	}
	return true
}

// TillPlot loosens the soil: texture moves toward balance and compaction
// halves.
func (p *FarmPlot) TillPlot() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.soilState.Composition = soil.Till(p.soilState.Composition)
	p.soilState.Compaction *= 0.5
	p.soilState.recompute()
}

// CompostPlot works compost into the soil pool.
func (p *FarmPlot) CompostPlot(amount float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if amount < 0 {
		return false
	}
	p.soilState.Composition = soil.ApplyCompost(p.soilState.Composition, amount)
	p.soilState.recompute()
	return true
}

// AdjustSoilPH nudges the pool pH 10% toward target.
func (p *FarmPlot) AdjustSoilPH(target float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.soilState.Composition = soil.AdjustPH(p.soilState.Composition, target)
	p.soilState.recompute()
}

// Advance is the single per-tick entry point: it advances every crop by dt
// seconds under the given ambient conditions and then settles the shared
// soil pool once. Larger dt values and repeated calls are equivalent apart
// from the explicit random draws.
func (p *FarmPlot) Advance(dt, temperature, humidity, light float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if dt <= 0 {
		return
	}

	env := growth.Environment{
		Temperature: temperature,
		Humidity:    humidity,
		SoilQuality: p.soilState.Quality,
		Light:       light,
	}

	planted := 0
	var demand float64
	for i := range p.cells {
		cell := &p.cells[i]
		cell.sinceWater += dt
		in := cell.Crop
		if in == nil {
			continue
		}
		planted++

		before := growth.StageFor(speciesOf(in), cell.lastProgress)
		p.engine.Update(in, env, dt)
		after := in.Stage
		if after != before {
			slog.Debug("stage transition",
				"plot", p.id, "x", cell.X, "y", cell.Y,
				"species", in.SpeciesID,
				"from", growth.StageName(before), "to", growth.StageName(after),
			)
		}
		cell.lastProgress = in.Progress
		cell.NeedsWater = in.Water < thirstyLevel
		cell.HasPests = in.Pest != growth.PestNone

		demand += growth.NutrientDemand(in)
	}

	p.settleSoil(demand, planted, dt)

	p.tick++
	p.simTime += dt
}

// settleSoil applies one tick of depletion, regeneration, evaporation, and
// compaction to the shared pool. Called with the plot lock held.
func (p *FarmPlot) settleSoil(demand float64, planted int, dt float64) {
	c := p.soilState.Composition

	if demand > 0 {
		c = soil.DepleteNutrients(c, demand*dt)
	}

	// Natural regeneration: a slow pull toward the fertility targets.
	c = soil.ApplyFertilizer(c,
		regen(c.Nitrogen, 0.04, dt),
		regen(c.Phosphorus, 0.03, dt),
		regen(c.Potassium, 0.04, dt),
	)

	evap := (evaporationBase + evaporationCrop*float64(planted)) * dt
	p.soilState.Water = clamp01(p.soilState.Water - evap)

	// Cultivation traffic compacts the soil very slowly.
	p.soilState.Compaction = clamp01(p.soilState.Compaction + float64(planted)*0.00002*dt)

	p.soilState.Composition = c
	p.soilState.recompute()
}

func regen(current, target, dt float64) float64 {
	if current >= target {
		return 0
	}
	return (target - current) * soilRegenRate * dt
}

func speciesOf(in *growth.Instance) *catalog.CropSpecies {
	if in.Species != nil {
		return in.Species
	}
	return catalog.Lookup(in.SpeciesID)
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
