// Package persistence provides SQLite-based snapshot storage for farm
// plots. It serializes plot snapshots verbatim and never touches live
// simulation state.
package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/plot"
)

// DB wraps a SQLite connection for plot persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plots (
		id TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		tick INTEGER NOT NULL,
		sim_time REAL NOT NULL,
		soil_json TEXT NOT NULL,
		totals_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cells (
		plot_id TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		crop_json TEXT NOT NULL,
		PRIMARY KEY (plot_id, x, y)
	);

	CREATE TABLE IF NOT EXISTS harvests (
		id TEXT PRIMARY KEY,
		plot_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		sim_time REAL NOT NULL,
		species_id TEXT NOT NULL,
		yield INTEGER NOT NULL,
		quality REAL NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		duration REAL NOT NULL,
		soil_quality REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_harvests_plot ON harvests(plot_id, tick);
	CREATE INDEX IF NOT EXISTS idx_cells_plot ON cells(plot_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SavePlot writes a plot snapshot (full replace within one transaction).
func (db *DB) SavePlot(snap plot.Snapshot) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	soilJSON, err := json.Marshal(snap.Soil)
	if err != nil {
		return fmt.Errorf("marshal soil: %w", err)
	}
	totalsJSON, err := json.Marshal(snap.Totals)
	if err != nil {
		return fmt.Errorf("marshal totals: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO plots (id, size, tick, sim_time, soil_json, totals_json)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		 size=excluded.size, tick=excluded.tick, sim_time=excluded.sim_time,
		 soil_json=excluded.soil_json, totals_json=excluded.totals_json`,
		snap.ID.String(), snap.Size, snap.Tick, snap.SimTime,
		string(soilJSON), string(totalsJSON),
	); err != nil {
		return fmt.Errorf("upsert plot: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM cells WHERE plot_id = ?", snap.ID.String()); err != nil {
		return err
	}
	for _, cell := range snap.Cells {
		cropJSON, err := json.Marshal(cell.Crop)
		if err != nil {
			return fmt.Errorf("marshal crop at (%d,%d): %w", cell.X, cell.Y, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO cells (plot_id, x, y, crop_json) VALUES (?, ?, ?, ?)",
			snap.ID.String(), cell.X, cell.Y, string(cropJSON),
		); err != nil {
			return fmt.Errorf("insert cell (%d,%d): %w", cell.X, cell.Y, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM harvests WHERE plot_id = ?", snap.ID.String()); err != nil {
		return err
	}
	for _, rec := range snap.History {
		if _, err := tx.Exec(
			`INSERT INTO harvests
			 (id, plot_id, tick, sim_time, species_id, yield, quality, x, y, duration, soil_quality)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID.String(), snap.ID.String(), rec.Tick, rec.SimTime,
			rec.SpeciesID, rec.Yield, rec.Quality, rec.X, rec.Y,
			rec.Duration, rec.SoilQuality,
		); err != nil {
			return fmt.Errorf("insert harvest %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

// LoadPlot reads the snapshot saved for plotID. The boolean reports whether
// a saved plot was found.
func (db *DB) LoadPlot(plotID uuid.UUID) (plot.Snapshot, bool, error) {
	var row struct {
		ID         string  `db:"id"`
		Size       int     `db:"size"`
		Tick       uint64  `db:"tick"`
		SimTime    float64 `db:"sim_time"`
		SoilJSON   string  `db:"soil_json"`
		TotalsJSON string  `db:"totals_json"`
	}
	err := db.conn.Get(&row, "SELECT * FROM plots WHERE id = ?", plotID.String())
	if err == sql.ErrNoRows {
		return plot.Snapshot{}, false, nil
	}
	if err != nil {
		return plot.Snapshot{}, false, fmt.Errorf("load plot: %w", err)
	}

	snap := plot.Snapshot{
		ID:      plotID,
		Size:    row.Size,
		Tick:    row.Tick,
		SimTime: row.SimTime,
	}
	if err := json.Unmarshal([]byte(row.SoilJSON), &snap.Soil); err != nil {
		return plot.Snapshot{}, false, fmt.Errorf("unmarshal soil: %w", err)
	}
	if err := json.Unmarshal([]byte(row.TotalsJSON), &snap.Totals); err != nil {
		return plot.Snapshot{}, false, fmt.Errorf("unmarshal totals: %w", err)
	}

	var cells []struct {
		X        int    `db:"x"`
		Y        int    `db:"y"`
		CropJSON string `db:"crop_json"`
	}
	if err := db.conn.Select(&cells,
		"SELECT x, y, crop_json FROM cells WHERE plot_id = ? ORDER BY y, x", plotID.String(),
	); err != nil {
		return plot.Snapshot{}, false, fmt.Errorf("load cells: %w", err)
	}
	for _, c := range cells {
		cs := plot.CellSnapshot{X: c.X, Y: c.Y}
		if err := json.Unmarshal([]byte(c.CropJSON), &cs.Crop); err != nil {
			return plot.Snapshot{}, false, fmt.Errorf("unmarshal crop (%d,%d): %w", c.X, c.Y, err)
		}
		snap.Cells = append(snap.Cells, cs)
	}

	var harvests []struct {
		ID          string  `db:"id"`
		Tick        uint64  `db:"tick"`
		SimTime     float64 `db:"sim_time"`
		SpeciesID   string  `db:"species_id"`
		Yield       int     `db:"yield"`
		Quality     float64 `db:"quality"`
		X           int     `db:"x"`
		Y           int     `db:"y"`
		Duration    float64 `db:"duration"`
		SoilQuality float64 `db:"soil_quality"`
	}
	if err := db.conn.Select(&harvests,
		`SELECT id, tick, sim_time, species_id, yield, quality, x, y, duration, soil_quality
		 FROM harvests WHERE plot_id = ? ORDER BY tick ASC`, plotID.String(),
	); err != nil {
		return plot.Snapshot{}, false, fmt.Errorf("load harvests: %w", err)
	}
	for _, h := range harvests {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			return plot.Snapshot{}, false, fmt.Errorf("parse harvest id: %w", err)
		}
		snap.History = append(snap.History, plot.HarvestRecord{
			ID: id, Tick: h.Tick, SimTime: h.SimTime,
			SpeciesID: h.SpeciesID, Yield: h.Yield, Quality: h.Quality,
			X: h.X, Y: h.Y, Duration: h.Duration, SoilQuality: h.SoilQuality,
		})
	}

	return snap, true, nil
}

// LatestPlotID returns the id of the most recently saved plot, if any.
func (db *DB) LatestPlotID() (uuid.UUID, bool, error) {
	var id string
	err := db.conn.Get(&id, "SELECT id FROM plots ORDER BY tick DESC LIMIT 1")
	if err == sql.ErrNoRows {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parse plot id: %w", err)
	}
	return parsed, true, nil
}

// SetMeta stores a key/value pair in the meta table.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
		key, value,
	)
	return err
}

// GetMeta retrieves a value from the meta table.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
