// Command farmsim runs the colony farm simulation: one plot, a weather
// stream, a periodic snapshot save, and the HTTP care API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/api"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/persistence"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/plot"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/sim"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/soil"
	"github.com/GhostDragonAlpha/Alexander-sub001/internal/weather"
)

func main() {
	var (
		seed     = flag.Int64("seed", 42, "simulation seed")
		size     = flag.Int("size", 8, "plot grid edge length")
		dbPath   = flag.String("db", "data/farm.db", "sqlite database path")
		port     = flag.Int("port", 8080, "HTTP API port")
		speed    = flag.Float64("speed", 1.0, "sim-seconds per real second")
		fresh    = flag.Bool("fresh", false, "ignore saved state and start a new plot")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	adminKey := os.Getenv("FARM_ADMIN_KEY")
	weatherKey := os.Getenv("OPENWEATHER_API_KEY")
	weatherLoc := os.Getenv("OPENWEATHER_LOCATION")

	slog.Info("colony farm simulation", "seed", *seed, "size", *size)

	// ── Database ──────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		slog.Error("create data dir", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── Load or generate the plot ─────────────────────────────────────
	var farm *plot.FarmPlot
	if !*fresh {
		if id, found, err := db.LatestPlotID(); err != nil {
			slog.Error("query saved plots", "error", err)
			os.Exit(1)
		} else if found {
			snap, ok, err := db.LoadPlot(id)
			if err != nil {
				slog.Error("load plot", "error", err)
				os.Exit(1)
			}
			if ok {
				farm = plot.Restore(snap, *seed)
				slog.Info("plot restored",
					"id", farm.ID(),
					"tick", snap.Tick,
					"planted", snap.Totals.Planted,
					"harvested", snap.Totals.Harvested,
				)
			}
		}
	}
	if farm == nil {
		gen := soil.NewGenerator(soil.GenConfig{Seed: *seed, Scale: 0.08})
		farm = plot.NewGenerated(*size, gen, 0, 0, *seed)
		st := farm.Soil()
		slog.Info("plot generated",
			"id", farm.ID(),
			"soil_class", st.Composition.Classify(),
			"soil_tier", soil.QualityName(st.Composition.QualityTier()),
			"soil_quality", fmt.Sprintf("%.2f", st.Quality),
		)
	}

	// ── Weather ───────────────────────────────────────────────────────
	wxGen := weather.NewGenerator(*seed)
	wxClient := weather.NewClient(weatherKey, weatherLoc)
	if wxClient != nil {
		slog.Info("live weather enabled", "location", weatherLoc)
	}

	// ── Engine ────────────────────────────────────────────────────────
	engine := sim.NewEngine()
	engine.Speed = *speed

	engine.OnTick = func(tick uint64, dt float64) {
		cond := wxGen.At(farm.SimTime())
		if wxClient != nil {
			if live, err := wxClient.Current(); err == nil {
				cond = *live
			}
		}

		farm.Advance(dt, cond.Temperature, cond.Humidity, cond.Light)
		if cond.Precipitation > 0 {
			farm.ApplyRain(cond.Precipitation, dt)
		}
		if cond.Storm {
			farm.ApplyStorm(1.0, dt)
		}
	}

	engine.OnMinute = func(tick uint64) {
		st := farm.Stats()
		slog.Info("farm status",
			"tick", tick,
			"season", fmt.Sprintf("%.2f", wxGen.Season(farm.SimTime())),
			"planted", st.PlantedCells,
			"mature", st.MatureCrops,
			"thirsty", st.NeedWater,
			"avg_health", fmt.Sprintf("%.2f", st.AvgHealth),
			"soil", fmt.Sprintf("%.2f", st.SoilQuality),
			"yield_total", humanize.Comma(int64(st.Totals.TotalYield)),
			"water_used", humanize.CommafWithDigits(st.Totals.WaterUsed, 1),
		)
	}

	engine.OnHour = func(tick uint64) {
		if err := db.SavePlot(farm.Snapshot()); err != nil {
			slog.Error("snapshot save failed", "error", err)
			return
		}
		season := fmt.Sprintf("%.4f", wxGen.Season(farm.SimTime()))
		if err := db.SetMeta("season_position", season); err != nil {
			slog.Error("meta save failed", "error", err)
		}
		slog.Info("snapshot saved", "tick", tick, "season", season)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	server := &api.Server{
		Plot:     farm,
		Port:     *port,
		AdminKey: adminKey,
	}
	server.Start()

	// ── Run until signalled ───────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown requested")
		engine.Stop()
	}()

	start := time.Now()
	engine.Run()

	if err := db.SavePlot(farm.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	slog.Info("simulation ended",
		"ran_for", humanize.RelTime(start, time.Now(), "", ""),
		"ticks", engine.Tick,
	)
}
