// Triage derives deterministic care signals from a snapshot before any
// decision is made.
package caretaker

// Crisis levels in escalating order.
const (
	LevelHealthy  = "HEALTHY"
	LevelWatch    = "WATCH"
	LevelWarning  = "WARNING"
	LevelCritical = "CRITICAL"
)

// CareNeeds holds derived diagnostic signals computed from a FarmSnapshot.
type CareNeeds struct {
	ThirstyCells   int     // Cells flagged needs-water
	InfestedCells  int     // Cells flagged has-pests
	PlantedCells   int
	EmptyCells     int
	MatureCells    int     // Ready to harvest
	AvgHealth      float64
	SoilQuality    float64
	SoilWater      float64
	SoilFertility  float64
	ThirstFraction float64 // Thirsty / planted
	CrisisLevel    string
}

// Triage computes CareNeeds from a snapshot.
func Triage(snap *FarmSnapshot) *CareNeeds {
	n := &CareNeeds{
		AvgHealth:     snap.Status.AvgHealth,
		SoilQuality:   snap.Status.SoilQuality,
		SoilWater:     snap.Status.SoilWater,
		SoilFertility: snap.Status.SoilFertility,
		MatureCells:   snap.Status.MatureCrops,
	}

	for _, c := range snap.Cells {
		if !c.HasCrop {
			n.EmptyCells++
			continue
		}
		n.PlantedCells++
		if c.NeedsWater {
			n.ThirstyCells++
		}
		if c.HasPests {
			n.InfestedCells++
		}
	}
	if n.PlantedCells > 0 {
		n.ThirstFraction = float64(n.ThirstyCells) / float64(n.PlantedCells)
	}

	n.CrisisLevel = LevelHealthy
	switch {
	case n.PlantedCells > 0 && n.AvgHealth < 0.3:
		n.CrisisLevel = LevelCritical
	case n.ThirstFraction > 0.6:
		n.CrisisLevel = LevelCritical
	case n.PlantedCells > 0 && n.AvgHealth < 0.5:
		n.CrisisLevel = LevelWarning
	case n.ThirstFraction > 0.3 || n.InfestedCells > n.PlantedCells/2:
		n.CrisisLevel = LevelWarning
	case n.ThirstyCells > 0 || n.InfestedCells > 0:
		n.CrisisLevel = LevelWatch
	}

	return n
}
