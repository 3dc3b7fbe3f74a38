// Package engine provides the island simulation and its tick loop.
package engine

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultInterval is the wall-clock time between animal moves.
const DefaultInterval = 1500 * time.Millisecond

// Engine drives the simulation forward one tick at a time.
type Engine struct {
	Tick        uint64        // Last tick run (monotonic)
	Speed       float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval    time.Duration // Base tick interval; 0 runs as fast as possible
	MaxTicks    uint64        // Stop after this many ticks (0 = run until Stop)
	ReportEvery uint64        // OnReport period in ticks (0 = never)

	// Callbacks, populated during setup.
	OnTick   func(tick uint64)
	OnReport func(tick uint64)

	running atomic.Bool
}

// NewEngine creates an engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Speed:    1.0,
		Interval: DefaultInterval,
	}
}

// pausePoll is how often a paused engine rechecks Speed.
const pausePoll = 100 * time.Millisecond

// Run starts the tick loop. It blocks until Stop is called or MaxTicks
// ticks have run.
func (e *Engine) Run() {
	e.running.Store(true)
	defer e.running.Store(false)

	from := e.Tick
	slog.Info("engine running", "from_tick", from, "speed", e.Speed, "interval", e.Interval, "max_ticks", e.MaxTicks)

	for e.running.Load() && !e.finished() {
		if e.Speed <= 0 {
			time.Sleep(pausePoll)
			continue
		}
		next := time.Now().Add(e.period())
		e.step()
		if wait := time.Until(next); wait > 0 {
			time.Sleep(wait)
		}
	}

	slog.Info("engine halted", "tick", e.Tick, "ran", e.Tick-from)
}

// finished reports whether the tick budget is spent.
func (e *Engine) finished() bool {
	return e.MaxTicks > 0 && e.Tick >= e.MaxTicks
}

// period is the wall-clock length of one tick at the current speed. Zero
// means no pacing.
func (e *Engine) period() time.Duration {
	if e.Interval <= 0 {
		return 0
	}
	return time.Duration(float64(e.Interval) / e.Speed)
}

// Stop halts the loop after the current tick. Safe to call from another
// goroutine.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether Run is looping.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// step advances the simulation by one tick.
func (e *Engine) step() {
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}

	if e.ReportEvery > 0 && e.Tick%e.ReportEvery == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
}
