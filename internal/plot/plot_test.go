package plot

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/growth"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/soil"
)

func testComposition() soil.Composition {
	return soil.Composition{
		Clay: 1.0 / 3.0, Silt: 1.0 / 3.0,
		Organic: 0.1, PH: 6.5,
		Nitrogen: 0.04, Phosphorus: 0.03, Potassium: 0.04,
	}
}

func testPlot(size int) *FarmPlot {
	return New(size, testComposition(), 42)
}

func TestPlantFailureModes(t *testing.T) {
	p := testPlot(4)

	if p.Plant(-1, 0, "wheat") {
		t.Error("out-of-bounds plant must fail")
	}
	if p.Plant(0, 4, "wheat") {
		t.Error("out-of-bounds plant must fail")
	}
	if p.Plant(1, 1, "no-such-crop") {
		t.Error("unknown species plant must fail")
	}
	if got := p.Totals().Planted; got != 0 {
		t.Errorf("failed plants must not count: planted = %d", got)
	}

	if !p.Plant(1, 1, "wheat") {
		t.Fatal("valid plant failed")
	}
	if p.Plant(1, 1, "potato") {
		t.Error("occupied cell plant must fail")
	}
	if got := p.Totals().Planted; got != 1 {
		t.Errorf("planted = %d, want 1", got)
	}
}

func TestHarvestFailureModes(t *testing.T) {
	p := testPlot(4)

	if res := p.Harvest(0, 0); res.OK {
		t.Error("empty-cell harvest must fail")
	}
	if res := p.Harvest(9, 9); res.OK {
		t.Error("out-of-bounds harvest must fail")
	}

	p.Plant(2, 2, "wheat")
	if res := p.Harvest(2, 2); res.OK {
		t.Error("immature harvest must fail")
	}
	st, _ := p.CellStatusAt(2, 2)
	if !st.HasCrop {
		t.Error("failed harvest must leave the crop in place")
	}
	if got := p.Totals().Harvested; got != 0 {
		t.Errorf("harvested = %d, want 0", got)
	}
}

func TestWaterAndFertilizeSemantics(t *testing.T) {
	p := testPlot(2)

	if p.WaterPlot(-1) {
		t.Error("negative watering must fail")
	}
	if !p.WaterPlot(0) {
		t.Error("zero watering is a successful no-op")
	}
	if got := p.Totals().WaterUsed; got != 0 {
		t.Errorf("no-op watering consumed %g", got)
	}

	before := p.Soil().Water
	if !p.WaterPlot(0.5) {
		t.Fatal("watering failed")
	}
	if p.Soil().Water <= before {
		t.Error("watering must raise the soil water pool")
	}

	if p.FertilizePlot(-1, catalog.FertilizerBasic) {
		t.Error("negative fertilizing must fail")
	}
	nBefore := p.Soil().Composition.Nitrogen
	if !p.FertilizePlot(1.0, catalog.FertilizerBasic) {
		t.Fatal("fertilizing failed")
	}
	if p.Soil().Composition.Nitrogen <= nBefore {
		t.Error("fertilizing must enrich the nitrogen pool")
	}
}

func TestAdvanceFlagsThirstyCrops(t *testing.T) {
	p := testPlot(2)
	p.Plant(0, 0, "wheat")

	// No watering: the 0.5 starting buffer drains below the thirsty level
	// within ten simulated seconds at these conditions.
	for i := 0; i < 5; i++ {
		p.Advance(2, 20, 0.6, 0.85)
	}
	st, _ := p.CellStatusAt(0, 0)
	if !st.NeedsWater {
		t.Error("expected thirsty flag after ten unwatered seconds")
	}

	stats := p.Stats()
	if stats.NeedWater != 1 {
		t.Errorf("stats thirsty count = %d, want 1", stats.NeedWater)
	}
	if stats.PlantedCells != 1 || stats.TotalCells != 4 {
		t.Errorf("stats cells = %d/%d, want 1/4", stats.PlantedCells, stats.TotalCells)
	}
}

func TestFullLifecycle(t *testing.T) {
	p := testPlot(4)
	if !p.Plant(1, 1, "wheat") {
		t.Fatal("plant failed")
	}

	// 600 simulated seconds of steady conditions with regular care is
	// enough for wheat to mature even at worst-case soil quality.
	for i := 0; i < 300; i++ {
		p.Advance(2, 20, 0.6, 0.85)
		p.WaterPlot(0.2)
		p.FertilizePlot(0.05, catalog.FertilizerBasic)
	}

	st, _ := p.CellStatusAt(1, 1)
	if st.Stage != "Mature" {
		t.Fatalf("stage = %s at progress %g, want Mature", st.Stage, st.Progress)
	}

	res := p.Harvest(1, 1)
	if !res.OK {
		t.Fatal("mature harvest failed")
	}
	if res.SpeciesID != "wheat" || res.Yield < 1 {
		t.Errorf("harvest = %+v", res)
	}
	if res.Quality < 0 || res.Quality > 1 {
		t.Errorf("harvest quality %g outside [0,1]", res.Quality)
	}

	hist := p.HarvestHistory(0)
	if len(hist) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist))
	}
	rec := hist[0]
	if rec.SpeciesID != "wheat" || rec.X != 1 || rec.Y != 1 {
		t.Errorf("record = %+v", rec)
	}
	if math.Abs(rec.Duration-600) > 1e-9 {
		t.Errorf("duration = %g, want 600 sim-seconds", rec.Duration)
	}

	stats := p.HarvestStatsFor("wheat")
	if stats.Count != 1 || stats.TotalYield != res.Yield || stats.BestYield != res.Yield {
		t.Errorf("stats = %+v", stats)
	}

	totals := p.Totals()
	if totals.Planted != 1 || totals.Harvested != 1 || totals.TotalYield != res.Yield {
		t.Errorf("totals = %+v", totals)
	}
	if math.Abs(totals.WaterUsed-60) > 1e-6 {
		t.Errorf("water used = %g, want 60", totals.WaterUsed)
	}

	if after := p.Stats(); after.PlantedCells != 0 {
		t.Errorf("planted cells after harvest = %d, want 0", after.PlantedCells)
	}
}

func TestHarvestAll(t *testing.T) {
	p := testPlot(3)
	p.Plant(0, 0, "wheat")
	p.Plant(2, 2, "wheat")
	p.Plant(1, 1, "medleaf") // far slower, stays immature

	for i := 0; i < 300; i++ {
		p.Advance(2, 20, 0.6, 0.85)
		p.WaterPlot(0.2)
		p.FertilizePlot(0.05, catalog.FertilizerBasic)
	}

	agg := p.HarvestAll()
	if agg.Harvested != 2 {
		t.Fatalf("harvested = %d, want exactly the two wheat cells", agg.Harvested)
	}
	if agg.TotalYield < agg.Harvested {
		t.Errorf("total yield %d below one unit per harvest", agg.TotalYield)
	}
	if agg.AvgQuality < 0 || agg.AvgQuality > 1 {
		t.Errorf("avg quality %g outside [0,1]", agg.AvgQuality)
	}

	if got := p.Stats().PlantedCells; got != 1 {
		t.Errorf("planted cells after harvest = %d, want the immature medleaf", got)
	}
	if empty := p.HarvestAll(); empty.Harvested != 0 {
		t.Errorf("second pass harvested %d, want 0", empty.Harvested)
	}
}

func TestAdvanceDepletesAndSettlesSoil(t *testing.T) {
	p := testPlot(2)
	p.Plant(0, 0, "corn") // heavy feeder

	nBefore := p.Soil().Composition.Nitrogen
	wBefore := p.Soil().Water
	for i := 0; i < 20; i++ {
		p.Advance(1, 20, 0.6, 0.85)
	}
	after := p.Soil()
	if after.Composition.Nitrogen >= nBefore {
		t.Errorf("nitrogen did not deplete: %g -> %g", nBefore, after.Composition.Nitrogen)
	}
	if after.Water >= wBefore {
		t.Errorf("water did not evaporate: %g -> %g", wBefore, after.Water)
	}
	if after.Compaction <= 0 {
		t.Error("cultivation traffic should compact the soil")
	}
	if p.Tick() != 20 || p.SimTime() != 20 {
		t.Errorf("tick/simTime = %d/%g, want 20/20", p.Tick(), p.SimTime())
	}

	p.TillPlot()
	if p.Soil().Compaction >= after.Compaction {
		t.Error("tilling must reduce compaction")
	}
}

func TestAdvanceDeterministicForSeed(t *testing.T) {
	run := func(seed int64) *FarmPlot {
		p := New(3, testComposition(), seed)
		p.Plant(0, 0, "wheat")
		p.Plant(1, 2, "tomato")
		for i := 0; i < 100; i++ {
			p.Advance(1, 26, 0.75, 0.9)
		}
		return p
	}

	a, b := run(7), run(7)
	if !reflect.DeepEqual(a.AllCellStatus(), b.AllCellStatus()) {
		t.Error("same seed produced different cell states")
	}
	if a.Soil() != b.Soil() {
		t.Error("same seed produced different soil state")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	p := testPlot(3)
	p.Plant(0, 1, "wheat")
	p.Plant(2, 2, "glowcap")
	for i := 0; i < 50; i++ {
		p.Advance(1, 18, 0.7, 0.6)
	}
	p.WaterPlot(0.3)

	snap := p.Snapshot()
	r := Restore(snap, 42)

	if r.ID() != p.ID() {
		t.Error("restore must preserve the plot identity")
	}
	if r.Tick() != p.Tick() || r.SimTime() != p.SimTime() {
		t.Errorf("restored clock %d/%g, want %d/%g", r.Tick(), r.SimTime(), p.Tick(), p.SimTime())
	}
	if r.Totals() != p.Totals() {
		t.Errorf("restored totals %+v, want %+v", r.Totals(), p.Totals())
	}
	if !reflect.DeepEqual(r.AllCellStatus(), p.AllCellStatus()) {
		t.Error("restored cell states diverge")
	}
	if r.Soil() != p.Soil() {
		t.Errorf("restored soil %+v, want %+v", r.Soil(), p.Soil())
	}

	// The snapshot holds copies: mutating the live plot must not touch it.
	p.Advance(1, 18, 0.7, 0.6)
	if snap.Tick == p.Tick() {
		t.Error("snapshot tick tracked the live plot")
	}
}

func TestHarvestHistoryRing(t *testing.T) {
	p := testPlot(2)
	for i := 0; i < 100; i++ {
		p.appendHarvest(HarvestRecord{ID: uuid.New(), Tick: uint64(i), SpeciesID: "wheat", Yield: 1})
	}

	all := p.HarvestHistory(0)
	if len(all) != historyCap {
		t.Fatalf("retained %d records, want cap %d", len(all), historyCap)
	}
	if all[len(all)-1].Tick != 99 {
		t.Errorf("newest record tick = %d, want 99", all[len(all)-1].Tick)
	}
	if all[0].Tick != 100-historyCap {
		t.Errorf("oldest retained tick = %d, want %d", all[0].Tick, 100-historyCap)
	}

	recent := p.HarvestHistory(10)
	if len(recent) != 10 || recent[9].Tick != 99 {
		t.Errorf("HarvestHistory(10) = %d records ending at tick %d", len(recent), recent[len(recent)-1].Tick)
	}
}

func TestWeatherHooks(t *testing.T) {
	p := testPlot(2)
	p.Plant(0, 0, "wheat")

	wBefore := p.Soil().Water
	st, _ := p.CellStatusAt(0, 0)
	p.ApplyRain(2.0, 1)
	if p.Soil().Water <= wBefore {
		t.Error("rain must raise the water pool")
	}

	p.ApplyStorm(1.0, 1)
	st2, _ := p.CellStatusAt(0, 0)
	if math.Abs((st.Health-st2.Health)-0.05) > 1e-9 {
		t.Errorf("storm damage = %g, want 0.05", st.Health-st2.Health)
	}

	// 35C is outside wheat's 20±10 band; 25C is inside.
	p.ApplyTemperatureStress(25, 1, 0.1)
	st3, _ := p.CellStatusAt(0, 0)
	if st3.Health != st2.Health {
		t.Error("in-band temperature must not damage crops")
	}
	p.ApplyTemperatureStress(35, 1, 0.1)
	st4, _ := p.CellStatusAt(0, 0)
	if math.Abs((st3.Health-st4.Health)-0.1) > 1e-9 {
		t.Errorf("heat damage = %g, want 0.1", st3.Health-st4.Health)
	}

	// Degenerate inputs are no-ops.
	p.ApplyRain(0, 1)
	p.ApplyStorm(-1, 1)
	p.ApplyTemperatureStress(35, 0, 0.1)
}

func TestTreatPlot(t *testing.T) {
	p := testPlot(2)
	p.Plant(0, 0, "wheat")

	// Force an infestation state through the instance care surface.
	st, _ := p.CellStatusAt(0, 0)
	if st.HasPests {
		t.Fatal("fresh crop should be clean")
	}
	p.cellAt(0, 0).Crop.Pest = growth.PestAphids
	p.cellAt(0, 0).Crop.PestLevel = 0.25
	p.cellAt(0, 0).HasPests = true

	if p.TreatPlot(-0.1, 0) {
		t.Error("negative pesticide must fail")
	}
	if !p.TreatPlot(0.2, 0.2) {
		t.Fatal("treatment failed")
	}
	st, _ = p.CellStatusAt(0, 0)
	if st.HasPests {
		t.Error("treatment below threshold must clear the pest flag")
	}
}

func TestCellStatusBounds(t *testing.T) {
	p := testPlot(2)
	if _, ok := p.CellStatusAt(5, 5); ok {
		t.Error("out-of-bounds status must report false")
	}
	if _, ok := p.CellStatusAt(1, 1); !ok {
		t.Error("in-bounds status must report true")
	}
	if got := len(p.AllCellStatus()); got != 4 {
		t.Errorf("AllCellStatus length = %d, want 4", got)
	}
}

func TestNewClampsSize(t *testing.T) {
	p := New(0, testComposition(), 1)
	if p.Size() != 1 {
		t.Errorf("size = %d, want floor of 1", p.Size())
	}
}
