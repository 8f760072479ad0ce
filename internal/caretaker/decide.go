// Rule-table decision layer: care needs in, prioritized actions out.
package caretaker

// ActionKind enumerates the interventions the caretaker can take.
type ActionKind string

const (
	ActionWater     ActionKind = "water"
	ActionTreat     ActionKind = "treat"
	ActionFertilize ActionKind = "fertilize"
	ActionHarvest   ActionKind = "harvest"
	ActionPlant     ActionKind = "plant"
	ActionTill      ActionKind = "till"
	ActionNone      ActionKind = "none"
)

// Action is one intervention to carry out.
type Action struct {
	Kind       ActionKind `json:"kind"`
	Amount     float64    `json:"amount,omitempty"`
	Fertilizer string     `json:"fertilizer,omitempty"`
	X          int        `json:"x,omitempty"`
	Y          int        `json:"y,omitempty"`
	Species    string     `json:"species,omitempty"`
	Reason     string     `json:"reason"`
}

// Decide maps care needs to actions, most urgent first. The rules are
// deliberately simple and deterministic; the interesting behavior lives in
// the simulation, not here.
func Decide(snap *FarmSnapshot, needs *CareNeeds) []Action {
	var actions []Action

	// Watering first: thirst compounds into health loss fastest.
	if needs.ThirstyCells > 0 {
		amount := 0.3
		if needs.CrisisLevel == LevelCritical {
			amount = 0.5
		}
		actions = append(actions, Action{
			Kind:   ActionWater,
			Amount: amount,
			Reason: "thirsty cells",
		})
	}

	// Knock infestations down before they spread into health loss.
	if needs.InfestedCells > 0 {
		actions = append(actions, Action{
			Kind:   ActionTreat,
			Amount: 0.3,
			Reason: "infested cells",
		})
	}

	// Harvest everything ready before it degrades.
	if needs.MatureCells > 0 {
		actions = append(actions, Action{
			Kind:   ActionHarvest,
			Reason: "mature crops ready",
		})
	}

	// Feed when the soil pool is running down.
	if needs.SoilFertility < 0.4 && needs.PlantedCells > 0 {
		actions = append(actions, Action{
			Kind:       ActionFertilize,
			Amount:     0.2,
			Fertilizer: "organic",
			Reason:     "soil fertility low",
		})
	}

	// Loosen a tired plot when nothing is growing in it yet.
	if needs.SoilQuality < 0.35 && needs.PlantedCells == 0 {
		actions = append(actions, Action{Kind: ActionTill, Reason: "soil quality low"})
	}

	// Replant empty cells while the farm is otherwise healthy.
	if needs.EmptyCells > 0 && needs.CrisisLevel == LevelHealthy {
		for _, c := range snap.Cells {
			if c.HasCrop {
				continue
			}
			actions = append(actions, Action{
				Kind:    ActionPlant,
				X:       c.X,
				Y:       c.Y,
				Species: "wheat",
				Reason:  "empty cell",
			})
			break // one planting per cycle keeps interventions observable
		}
	}

	if len(actions) == 0 {
		actions = append(actions, Action{Kind: ActionNone, Reason: "farm healthy"})
	}
	return actions
}
