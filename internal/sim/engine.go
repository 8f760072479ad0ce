// Package sim provides the real-time driver that turns wall-clock frames
// into simulation ticks. Acceleration is just a larger dt per tick; the
// plot's Advance is the single code path either way.
package sim

import (
	"log/slog"
	"time"
)

// Layered callback cadence relative to the tick counter.
const (
	TicksPerMinute = 60
	TicksPerHour   = 3600
	TicksPerDay    = 86400
)

// Engine drives the simulation forward in real time.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic)
	Speed    float64       // Sim-seconds advanced per real second; 0 = paused
	Interval time.Duration // Base tick interval
	Running  bool

	// Callbacks for each tick layer — populated during setup.
	OnTick   func(tick uint64, dt float64) // Every tick
	OnMinute func(tick uint64)             // Every sim-minute
	OnHour   func(tick uint64)             // Every sim-hour
	OnDay    func(tick uint64)             // Every sim-day
}

// NewEngine creates an engine with default settings: one tick per second of
// wall time, one sim-second per tick.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.Step(e.Interval.Seconds() * e.Speed)

		elapsed := time.Since(start)
		if elapsed < e.Interval {
			time.Sleep(e.Interval - elapsed)
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current tick.
func (e *Engine) Stop() {
	e.Running = false
}

// Step advances exactly one tick of dt sim-seconds. Exposed so tests and
// fast-forward tools can drive the engine without the wall-clock loop.
func (e *Engine) Step(dt float64) {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick, dt)
	}
	if e.Tick%TicksPerMinute == 0 && e.OnMinute != nil {
		e.OnMinute(e.Tick)
	}
	if e.Tick%TicksPerHour == 0 && e.OnHour != nil {
		e.OnHour(e.Tick)
	}
	if e.Tick%TicksPerDay == 0 && e.OnDay != nil {
		e.OnDay(e.Tick)
	}
}
