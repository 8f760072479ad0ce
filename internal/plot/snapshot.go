// Snapshot/restore support. Persistence serializes the snapshot verbatim;
// it never reaches into live plot internals, preserving the single-writer
// invariant on the soil pool.
package plot

import (
	"github.com/google/uuid"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/growth"
)

// CellSnapshot is the persisted view of one cell.
type CellSnapshot struct {
	X    int              `json:"x"`
	Y    int              `json:"y"`
	Crop *growth.Instance `json:"crop,omitempty"`
}

// Snapshot is the full serializable plot state.
type Snapshot struct {
	ID      uuid.UUID       `json:"id"`
	Size    int             `json:"size"`
	Soil    SoilState       `json:"soil"`
	Tick    uint64          `json:"tick"`
	SimTime float64         `json:"sim_time"`
	Totals  Totals          `json:"totals"`
	Cells   []CellSnapshot  `json:"cells"`
	History []HarvestRecord `json:"history"`
}

// Snapshot captures the current plot state. Crop instances are deep-copied
// so the snapshot stays stable while the simulation keeps running.
func (p *FarmPlot) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := Snapshot{
		ID:      p.id,
		Size:    p.size,
		Soil:    p.soilState,
		Tick:    p.tick,
		SimTime: p.simTime,
		Totals:  p.totals,
		History: append([]HarvestRecord(nil), p.history...),
	}
	for i := range p.cells {
		c := &p.cells[i]
		if c.Crop == nil {
			continue
		}
		cp := *c.Crop
		snap.Cells = append(snap.Cells, CellSnapshot{X: c.X, Y: c.Y, Crop: &cp})
	}
	return snap
}

// Restore rebuilds a plot from a snapshot. The seed re-arms the random
// source; draws after a restore are not replayed from the saved run.
func Restore(snap Snapshot, seed int64) *FarmPlot {
	p := New(snap.Size, snap.Soil.Composition, seed)
	p.id = snap.ID
	p.soilState = snap.Soil
	p.soilState.recompute()
	p.tick = snap.Tick
	p.simTime = snap.SimTime
	p.totals = snap.Totals
	p.history = append([]HarvestRecord(nil), snap.History...)

	for _, cs := range snap.Cells {
		if !p.inBounds(cs.X, cs.Y) || cs.Crop == nil {
			continue
		}
		in := *cs.Crop
		in.Rebind()
		cell := p.cellAt(cs.X, cs.Y)
		cell.Crop = &in
		cell.lastProgress = in.Progress
		cell.NeedsWater = in.Water < thirstyLevel
		cell.HasPests = in.Pest != growth.PestNone
	}
	return p
}
