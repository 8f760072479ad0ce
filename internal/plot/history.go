// Harvest history ring and per-species aggregate statistics.
package plot

import "github.com/google/uuid"

// HarvestRecord is one entry in the bounded harvest history.
type HarvestRecord struct {
	ID          uuid.UUID `json:"id"`
	Tick        uint64    `json:"tick"`
	SimTime     float64   `json:"sim_time"`
	SpeciesID   string    `json:"species_id"`
	Yield       int       `json:"yield"`
	Quality     float64   `json:"quality"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Duration    float64   `json:"duration"`     // Sim-seconds from plant to harvest
	SoilQuality float64   `json:"soil_quality"` // Plot soil quality at harvest
}

func (p *FarmPlot) appendHarvest(rec HarvestRecord) {
	p.history = append(p.history, rec)
	if len(p.history) > historyCap {
		p.history = p.history[len(p.history)-historyCap:]
	}
}

// HarvestHistory returns up to maxCount of the most recent harvest records,
// newest last. maxCount <= 0 returns the full retained history.
func (p *FarmPlot) HarvestHistory(maxCount int) []HarvestRecord {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.history)
	if maxCount > 0 && maxCount < n {
		n = maxCount
	}
	out := make([]HarvestRecord, n)
	copy(out, p.history[len(p.history)-n:])
	return out
}

// HarvestStats summarizes retained harvests for one species.
type HarvestStats struct {
	SpeciesID  string  `json:"species_id"`
	Count      int     `json:"count"`
	TotalYield int     `json:"total_yield"`
	AvgYield   float64 `json:"avg_yield"`
	AvgQuality float64 `json:"avg_quality"`
	BestYield  int     `json:"best_yield"`
}

// HarvestStatsFor aggregates the retained history for speciesID.
func (p *FarmPlot) HarvestStatsFor(speciesID string) HarvestStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := HarvestStats{SpeciesID: speciesID}
	var qualitySum float64
	for _, rec := range p.history {
		if rec.SpeciesID != speciesID {
			continue
		}
		stats.Count++
		stats.TotalYield += rec.Yield
		qualitySum += rec.Quality
		if rec.Yield > stats.BestYield {
			stats.BestYield = rec.Yield
		}
	}
	if stats.Count > 0 {
		stats.AvgYield = float64(stats.TotalYield) / float64(stats.Count)
		stats.AvgQuality = qualitySum / float64(stats.Count)
	}
	return stats
}

// Totals returns the running cumulative counters.
func (p *FarmPlot) Totals() Totals {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totals
}
