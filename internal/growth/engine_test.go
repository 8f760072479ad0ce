package growth

import (
	"math"
	"testing"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/catalog"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/entropy"
)

// testSpecies is immune to pests and disease so numeric assertions stay
// exact regardless of random draws.
func testSpecies() *catalog.CropSpecies {
	return &catalog.CropSpecies{
		ID: "testcrop", Name: "Test Crop", Category: catalog.CategoryFood,
		GrowthTime: 100, Stages: catalog.DefaultTail(0.15, 0.4),
		OptimalTemp: 20, TempTolerance: 10, OptimalHumidity: 0.6,
		LightRequired: 0.8,
		WaterNeed:     0.5, NutrientNeed: 0.5, SoilRequirement: 0.4,
		PestResistance: 1, DiseaseResistance: 1,
		BaseYield:           10,
		PreferredFertilizer: catalog.FertilizerBasic,
	}
}

func idealEnv() Environment {
	return Environment{Temperature: 20, Humidity: 0.6, SoilQuality: 1.0, Light: 0.8}
}

func TestGrowthRateIdealConditions(t *testing.T) {
	sp := testSpecies()
	in := NewInstance(sp, 0)

	// Every factor is 1.0 under ideal conditions except basic fertilizer
	// at 0.6, so the rate is 0.6/GrowthTime.
	got := GrowthRate(in, idealEnv())
	want := 0.6 / sp.GrowthTime
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("GrowthRate = %g, want %g", got, want)
	}
}

func TestGrowthRateNeverNegative(t *testing.T) {
	wheat, _ := catalog.Find("wheat")
	in := NewInstance(wheat, 0)

	hostile := Environment{Temperature: 60, Humidity: 0, SoilQuality: 0, Light: 0}
	got := GrowthRate(in, hostile)
	if got <= 0 {
		t.Errorf("rate under hostile conditions = %g, want positive (floored factors)", got)
	}
	if ideal := GrowthRate(in, Environment{Temperature: 20, Humidity: 0.6, SoilQuality: 1, Light: 0.8}); got >= ideal {
		t.Errorf("hostile rate %g not below ideal rate %g", got, ideal)
	}
}

func TestFactorClamps(t *testing.T) {
	wheat, _ := catalog.Find("wheat")

	if got := TempFactor(wheat, 1000); got != tempFactorMin {
		t.Errorf("extreme heat temp factor = %g, want floor %g", got, tempFactorMin)
	}
	if got := TempFactor(wheat, wheat.OptimalTemp); got != 1.0 {
		t.Errorf("optimal temp factor = %g, want 1", got)
	}
	if got := HumidityFactor(wheat, 0); got != humFactorMin {
		t.Errorf("bone-dry humidity factor = %g, want floor %g", got, humFactorMin)
	}
	if got := SoilFactor(5); got != soilFactorMax {
		t.Errorf("soil factor ceiling = %g, want %g", got, soilFactorMax)
	}
	if got := SoilFactor(0); got != soilFactorMin {
		t.Errorf("soil factor floor = %g, want %g", got, soilFactorMin)
	}
	if got := LightFactor(wheat, 2.0); got != lightFactorMax {
		t.Errorf("light factor ceiling = %g, want %g", got, lightFactorMax)
	}
}

func TestUpdateSingleTick(t *testing.T) {
	e := NewEngine(entropy.NewSource(1))
	in := NewInstance(testSpecies(), 0)

	e.Update(in, idealEnv(), 1)

	if math.Abs(in.Progress-0.006) > 1e-9 {
		t.Errorf("progress = %g, want 0.006", in.Progress)
	}
	// Transpiration: need 0.5 × 0.96 humidity scaling × 0.1 drain coeff.
	if math.Abs(in.Water-0.452) > 1e-9 {
		t.Errorf("water = %g, want 0.452", in.Water)
	}
	// Nutrients: base need 0.5 × 0.05 drain coeff, no growth-window boost yet.
	if math.Abs(in.Nutrients-0.475) > 1e-9 {
		t.Errorf("nutrients = %g, want 0.475", in.Nutrients)
	}
	if in.Health != 1.0 {
		t.Errorf("health = %g, want 1 (hydrated bonus clamps at ceiling)", in.Health)
	}
	if math.Abs(in.Quality-1.01) > 1e-9 {
		t.Errorf("quality = %g, want 1.01 after one healthy second", in.Quality)
	}
	if in.Pest != PestNone || in.Disease != DiseaseNone {
		t.Error("immune species must never be infected")
	}
}

func TestUpdateProgressMonotonic(t *testing.T) {
	e := NewEngine(entropy.NewSource(3))
	in := NewInstance(testSpecies(), 0)
	hostile := Environment{Temperature: -40, Humidity: 0, SoilQuality: 0, Light: 0}

	prev := in.Progress
	for i := 0; i < 50; i++ {
		e.Update(in, hostile, 1)
		if in.Progress < prev {
			t.Fatalf("progress regressed: %g -> %g", prev, in.Progress)
		}
		prev = in.Progress
	}
	if in.Progress > 1 || in.Health < 0 || in.Health > 1 {
		t.Errorf("state left its domain: progress=%g health=%g", in.Progress, in.Health)
	}
}

func TestUpdateZeroAndNegativeDt(t *testing.T) {
	e := NewEngine(entropy.NewSource(1))
	in := NewInstance(testSpecies(), 0)
	before := *in

	e.Update(in, idealEnv(), 0)
	e.Update(in, idealEnv(), -5)
	if *in != before {
		t.Error("non-positive dt must be a no-op")
	}
	e.Update(nil, idealEnv(), 1) // must not panic
}

func TestStageForBoundaries(t *testing.T) {
	wheat, _ := catalog.Find("wheat") // thresholds 0.15 / 0.4 / 0.9 / 0.97 / 1.0
	cases := []struct {
		progress float64
		want     Stage
	}{
		{0.0, StageSeed},
		{0.14, StageSeed},
		{0.15, StageSprout},
		{0.4, StageVegetative},
		{0.89, StageVegetative},
		{0.9, StageFlowering},
		{0.97, StageFruiting},
		{1.0, StageMature},
	}
	for _, tc := range cases {
		if got := StageFor(wheat, tc.progress); got != tc.want {
			t.Errorf("StageFor(%g) = %s, want %s", tc.progress, StageName(got), StageName(tc.want))
		}
	}
}

func TestDehydrationDrainsHealth(t *testing.T) {
	e := NewEngine(entropy.NewSource(1))
	in := NewInstance(testSpecies(), 0)
	in.Water = 0

	e.Update(in, idealEnv(), 1)
	if math.Abs(in.Health-0.92) > 1e-9 {
		t.Errorf("dehydrated health = %g, want 0.92", in.Health)
	}
}

func TestOverwateringDrainsHealthSlowly(t *testing.T) {
	e := NewEngine(entropy.NewSource(1))
	dry := NewInstance(testSpecies(), 0)
	dry.Water = 0
	wet := NewInstance(testSpecies(), 0)
	wet.Water = 1.0

	e.Update(dry, idealEnv(), 1)
	e.Update(wet, idealEnv(), 1)
	if wet.Health <= dry.Health {
		t.Errorf("overwatering (%g) should hurt less than dehydration (%g)", wet.Health, dry.Health)
	}
	if wet.Health >= 1.0 {
		t.Error("overwatering should still cost health")
	}
}

func TestQualityDriftsDownWhenSick(t *testing.T) {
	e := NewEngine(entropy.NewSource(1))
	in := NewInstance(testSpecies(), 0)
	in.Health = 0.3
	in.Water = 0
	in.Nutrients = 0

	for i := 0; i < 200; i++ {
		e.Update(in, idealEnv(), 1)
	}
	if in.Quality != QualityMin {
		t.Errorf("quality = %g, want floor %g after sustained neglect", in.Quality, QualityMin)
	}
	if in.Health != 0 {
		t.Errorf("health = %g, want 0 after sustained neglect", in.Health)
	}
}

func TestEnvironmentalStressBounds(t *testing.T) {
	wheat, _ := catalog.Find("wheat")

	if got := EnvironmentalStress(wheat, Environment{Temperature: 20, Humidity: 0.6, SoilQuality: 1, Light: 1}); got != 0 {
		t.Errorf("ideal-conditions stress = %g, want 0", got)
	}

	awful := EnvironmentalStress(wheat, Environment{Temperature: 100, Humidity: 0, SoilQuality: 0, Light: 0})
	if awful <= 0.9 || awful > 1.0 {
		t.Errorf("worst-case stress = %g, want capped in (0.9, 1.0]", awful)
	}
}

func TestPestOnsetDeterministic(t *testing.T) {
	frail := testSpecies()
	frail.PestResistance = 0
	frail.DiseaseResistance = 0
	env := Environment{Temperature: 28, Humidity: 0.8, SoilQuality: 1, Light: 1}

	run := func(seed int64) *Instance {
		e := NewEngine(entropy.NewSource(seed))
		in := NewInstance(frail, 0)
		for i := 0; i < 300; i++ {
			e.Update(in, env, 1)
		}
		return in
	}

	a, b := run(7), run(7)
	if a.Pest == PestNone {
		t.Fatal("expected pest onset within 300s at peak pest climate")
	}
	if a.Pest != b.Pest || a.PestLevel != b.PestLevel ||
		a.Disease != b.Disease || a.DiseaseLevel != b.DiseaseLevel {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
	if a.PestLevel <= 0 || a.PestLevel > 1 {
		t.Errorf("pest severity %g outside (0, 1]", a.PestLevel)
	}
}

func TestAddWater(t *testing.T) {
	in := NewInstance(testSpecies(), 0)

	in.AddWater(0.3)
	if math.Abs(in.Water-0.8) > 1e-9 {
		t.Errorf("water = %g, want 0.8", in.Water)
	}
	in.AddWater(-1)
	if math.Abs(in.Water-0.8) > 1e-9 {
		t.Error("negative amount must be ignored")
	}
	in.AddWater(5)
	if in.Water != 1.0 {
		t.Errorf("water = %g, want clamped to 1", in.Water)
	}
}

func TestApplyFertilizerScalesByKind(t *testing.T) {
	in := NewInstance(testSpecies(), 0)

	in.ApplyFertilizer(0.2, catalog.FertilizerPremium)
	if math.Abs(in.Nutrients-0.68) > 1e-9 {
		t.Errorf("nutrients = %g, want 0.68 (0.5 + 0.2×0.9)", in.Nutrients)
	}
	if in.Fertilizer != catalog.FertilizerPremium {
		t.Error("active fertilizer kind not recorded")
	}
	in.ApplyFertilizer(0, catalog.FertilizerBasic)
	if in.Fertilizer != catalog.FertilizerPremium {
		t.Error("zero amount must not change the active kind")
	}
}

func TestFertilizerEffectiveness(t *testing.T) {
	medleaf, _ := catalog.Find("medleaf") // prefers specialized
	wheat, _ := catalog.Find("wheat")

	if got := FertilizerEffectiveness(catalog.FertilizerSpecialized, medleaf); got != 1.2 {
		t.Errorf("specialized match = %g, want 1.2", got)
	}
	if got := FertilizerEffectiveness(catalog.FertilizerSpecialized, wheat); got != 0.7 {
		t.Errorf("specialized mismatch = %g, want 0.7", got)
	}
	if got := FertilizerEffectiveness(catalog.FertilizerKind(99), wheat); got != 0.6 {
		t.Errorf("unknown kind = %g, want basic fallback 0.6", got)
	}
}

func TestTreatmentsClearBelowThreshold(t *testing.T) {
	in := NewInstance(testSpecies(), 0)
	in.Pest = PestAphids
	in.PestLevel = 0.25
	in.Disease = DiseaseBlight
	in.DiseaseLevel = 0.5

	in.TreatPests(0.2)
	if in.Pest != PestNone {
		t.Errorf("pest %s should clear at severity %g", PestName(in.Pest), in.PestLevel)
	}

	in.TreatDisease(0.2)
	if in.Disease != DiseaseBlight {
		t.Error("disease should persist above the treated threshold")
	}
	if math.Abs(in.DiseaseLevel-0.3) > 1e-9 {
		t.Errorf("disease level = %g, want 0.3", in.DiseaseLevel)
	}
	in.TreatDisease(0.25)
	if in.Disease != DiseaseNone {
		t.Error("disease should clear once severity drops below threshold")
	}
}

func TestNutrientDemandWindows(t *testing.T) {
	in := NewInstance(testSpecies(), 0)

	if got := NutrientDemand(in); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("seedling demand = %g, want base 0.5", got)
	}
	in.Progress = 0.5
	if got := NutrientDemand(in); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("active-growth demand = %g, want boosted 0.9", got)
	}
	in.Progress = 0.8
	if got := NutrientDemand(in); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("mature demand = %g, want cut 0.3", got)
	}
}

func TestYieldFor(t *testing.T) {
	sp := &catalog.CropSpecies{ID: "y", BaseYield: 20}

	in := &Instance{Species: sp, Health: 0.9, Quality: 1.2}
	if got := YieldFor(in); got != 22 {
		t.Errorf("yield = %d, want round(20×0.9×1.2) = 22", got)
	}

	in.PestLevel = 0.2
	if got := YieldFor(in); got != 19 {
		t.Errorf("pest-hit yield = %d, want 19", got)
	}

	ruined := &Instance{Species: sp, Health: 0.01, Quality: 0.5, PestLevel: 1, DiseaseLevel: 1}
	if got := YieldFor(ruined); got != 1 {
		t.Errorf("ruined yield = %d, want floor of 1", got)
	}
}

func TestQualityFor(t *testing.T) {
	in := &Instance{Species: testSpecies(), Health: 1, Water: 0.5, Nutrients: 0.5, Quality: 1}
	if got := QualityFor(in); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("grade = %g, want 0.8", got)
	}

	perfect := &Instance{Species: testSpecies(), Health: 1, Water: 1, Nutrients: 1, Quality: 1.5}
	if got := QualityFor(perfect); got != 1.0 {
		t.Errorf("perfect grade = %g, want clamped 1.0", got)
	}

	wrecked := &Instance{Species: testSpecies(), Quality: 0.5, PestLevel: 1, DiseaseLevel: 1}
	if got := QualityFor(wrecked); got != 0 {
		t.Errorf("wrecked grade = %g, want 0", got)
	}
}
