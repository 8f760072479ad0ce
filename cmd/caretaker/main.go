// Command caretaker runs the autonomous plot steward against a farmsim
// instance: observe, triage, decide, act, sleep, repeat.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/GhostDragonAlpha/Alexander-sub001/internal/caretaker"
)

func main() {
	var (
		baseURL  = flag.String("api", "http://localhost:8080", "farmsim API base URL")
		interval = flag.Duration("interval", 30*time.Second, "observation cycle interval")
		once     = flag.Bool("once", false, "run a single cycle and exit")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	adminKey := os.Getenv("FARM_ADMIN_KEY")
	if adminKey == "" {
		slog.Error("FARM_ADMIN_KEY not set; caretaker cannot act")
		os.Exit(1)
	}

	observer := caretaker.NewObserver(*baseURL)
	actor := caretaker.NewActor(*baseURL, adminKey)

	slog.Info("caretaker started", "api", *baseURL, "interval", *interval)

	for {
		cycle(observer, actor)
		if *once {
			return
		}
		time.Sleep(*interval)
	}
}

func cycle(observer *caretaker.Observer, actor *caretaker.Actor) {
	snap, err := observer.Observe()
	if err != nil {
		slog.Error("observe failed", "error", err)
		return
	}

	needs := caretaker.Triage(snap)
	slog.Info("triage",
		"crisis", needs.CrisisLevel,
		"planted", needs.PlantedCells,
		"thirsty", needs.ThirstyCells,
		"infested", needs.InfestedCells,
		"mature", needs.MatureCells,
		"soil_fertility", needs.SoilFertility,
	)

	for _, act := range caretaker.Decide(snap, needs) {
		if act.Kind == caretaker.ActionNone {
			continue
		}
		if err := actor.Apply(act); err != nil {
			slog.Error("action failed", "kind", act.Kind, "error", err)
			continue
		}
		slog.Info("action applied", "kind", act.Kind, "reason", act.Reason)
	}
}
