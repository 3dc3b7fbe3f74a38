// Command islandsim generates an island and runs its plants and animals.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/ilha/internal/engine"
	"github.com/talgya/ilha/internal/world"
)

var (
	width    = flag.Int("width", 120, "Island width in cells.")
	height   = flag.Int("height", 120, "Island height in cells.")
	land     = flag.Int("land", 2500, "Land cells grown from the center.")
	lakes    = flag.Int("lakes", 40, "Total lake cells carved into the land (0 = none).")
	noSmooth = flag.Bool("no-smooth", false, "Skip the terrain blur pass.")
	animals1 = flag.Int("animals1", 2, "Animals of the first kind.")
	animals2 = flag.Int("animals2", 2, "Animals of the second kind.")
	plants1  = flag.Int("plants1", 10, "Plants of the first kind.")
	plants2  = flag.Int("plants2", 10, "Plants of the second kind.")
	seed     = flag.Int64("seed", 0, "Random seed (0 = random).")
	speed    = flag.Float64("speed", 1, "Tick rate multiplier (0 = paused).")
	interval = flag.Duration("interval", engine.DefaultInterval, "Wall-clock time per tick (0 = as fast as possible).")
	ticks    = flag.Uint64("ticks", 0, "Stop after N ticks (0 = run until interrupted).")
	report   = flag.Uint64("report", 20, "Log a population report every N ticks (0 = never).")
	showMap  = flag.Bool("map", false, "Print the island map before and after the run.")
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn or error.")
)

func main() {
	flag.Parse()

	level, err := parseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg := engine.DefaultConfig()
	cfg.Seed = *seed
	cfg.Gen = world.GenConfig{
		Width:     *width,
		Height:    *height,
		LandCells: *land,
		LakeCells: *lakes,
		Smooth:    !*noSmooth,
	}
	cfg.Population = engine.Population{
		Animal1: *animals1,
		Animal2: *animals2,
		Plant1:  *plants1,
		Plant2:  *plants2,
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// ── Island ────────────────────────────────────────────────────────
	slog.Info("generating island...",
		"cells", humanize.Comma(int64(cfg.Gen.Width*cfg.Gen.Height)),
		"land", humanize.Comma(int64(cfg.Gen.LandCells)),
	)
	start := time.Now()
	sim := engine.NewSimulation(cfg)
	slog.Info("island ready",
		"run", sim.RunID,
		"seed", sim.Seed,
		"took", time.Since(start).Round(time.Millisecond),
	)

	if *showMap {
		printMap(sim)
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Speed = *speed
	eng.Interval = *interval
	eng.MaxTicks = *ticks
	eng.ReportEvery = *report
	eng.OnTick = sim.TickMinute
	eng.OnReport = sim.Report

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	counts := world.BandCounts(sim.HeightField())
	fmt.Printf("\nIlha is alive: %d animals and %d plants on %s land cells (%s lake, %s sea).\n",
		sim.Stats.Animals, sim.Stats.Plants,
		humanize.Comma(int64(counts[world.BandLand])),
		humanize.Comma(int64(counts[world.BandLake])),
		humanize.Comma(int64(counts[world.BandSea])),
	)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	sim.Report(eng.Tick)
	if *showMap {
		printMap(sim)
	}
	fmt.Printf("Simulation stopped after %s ticks.\n", humanize.Comma(int64(eng.Tick)))
}

func printMap(sim *engine.Simulation) {
	if err := sim.WriteMap(os.Stdout); err != nil {
		slog.Error("failed to print map", "error", err)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid -log-level %q: %w", s, err)
	}
	return level, nil
}
