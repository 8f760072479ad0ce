package catalog

import "testing"

func TestLookupFailsClosedToWheat(t *testing.T) {
	sp := Lookup("no-such-species")
	if sp == nil {
		t.Fatal("Lookup must never return nil")
	}
	if sp.ID != "wheat" {
		t.Fatalf("expected wheat fallback, got %q", sp.ID)
	}

	if _, ok := Find("no-such-species"); ok {
		t.Fatal("Find must report unknown ids")
	}
	if sp, ok := Find("tomato"); !ok || sp.ID != "tomato" {
		t.Fatalf("Find(tomato) = %v, %v", sp, ok)
	}
}

func TestStageThresholdsMonotonic(t *testing.T) {
	for _, sp := range All() {
		s := sp.Stages
		if !(s.SproutAt > 0 && s.SproutAt < s.VegetativeAt &&
			s.VegetativeAt < s.FloweringAt &&
			s.FloweringAt < s.FruitingAt &&
			s.FruitingAt < s.MatureAt && s.MatureAt <= 1.0) {
			t.Errorf("%s: stage thresholds not strictly increasing: %+v", sp.ID, s)
		}
	}
}

func TestByEnvironmentFilters(t *testing.T) {
	// Cold conditions: wheat (20±10) qualifies, tomato (24±6) and rice
	// (28±5) do not.
	matches := ByEnvironment(10, 0.6, 0.8)

	found := map[string]bool{}
	for _, sp := range matches {
		found[sp.ID] = true
	}
	if !found["wheat"] {
		t.Error("expected wheat to tolerate 10C")
	}
	if found["tomato"] {
		t.Error("tomato should be excluded at 10C")
	}
	if found["rice"] {
		t.Error("rice should be excluded at 10C")
	}

	// No light: only very low light species qualify.
	dark := ByEnvironment(15, 0.6, 0.1)
	for _, sp := range dark {
		if 0.1 < 0.8*sp.LightRequired {
			t.Errorf("%s requires more light than filter allows", sp.ID)
		}
	}
}

func TestByCategory(t *testing.T) {
	for _, sp := range ByCategory(CategoryMedical) {
		if sp.Category != CategoryMedical {
			t.Errorf("%s has wrong category", sp.ID)
		}
	}
	if len(ByCategory(CategoryMedical)) == 0 {
		t.Fatal("expected medical species in catalog")
	}
}

func TestBySeasonCyclical(t *testing.T) {
	// Voidbloom sits at 0.95; position 0.05 is 0.1 away linearly but within
	// the window cyclically.
	found := false
	for _, sp := range BySeason(0.05) {
		if sp.ID == "voidbloom" {
			found = true
		}
	}
	if !found {
		t.Error("expected voidbloom within cyclical season window of 0.05")
	}
}

func TestFindByName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"wheat", "wheat", true},   // exact id
		{"Wheat", "wheat", true},   // exact name
		{"weat", "wheat", true},    // one edit away
		{"Potatoo", "potato", true},
		{"xyzzyplugh", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		sp, ok := FindByName(tc.in)
		if ok != tc.ok {
			t.Errorf("FindByName(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && sp.ID != tc.want {
			t.Errorf("FindByName(%q) = %s, want %s", tc.in, sp.ID, tc.want)
		}
	}
}
