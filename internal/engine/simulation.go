// Simulation ties the island, its plants and its animals together and
// advances the animals each tick.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/talgya/ilha/internal/agents"
	"github.com/talgya/ilha/internal/entropy"
	"github.com/talgya/ilha/internal/spatial"
	"github.com/talgya/ilha/internal/world"
)

// Seed offsets for the simulation's random streams.
const (
	movementSeedOffset = 200
)

// placementAttempts bounds the cell draws spent placing one entity.
const placementAttempts = 4096

// Population holds spawn counts per entity kind.
type Population struct {
	Animal1 int
	Animal2 int
	Plant1  int
	Plant2  int
}

// Count returns the spawn count for kind.
func (p Population) Count(kind agents.Kind) int {
	switch kind {
	case agents.KindAnimal1:
		return p.Animal1
	case agents.KindAnimal2:
		return p.Animal2
	case agents.KindPlant1:
		return p.Plant1
	case agents.KindPlant2:
		return p.Plant2
	default:
		return 0
	}
}

// Total returns the number of entities requested.
func (p Population) Total() int {
	return p.Animal1 + p.Animal2 + p.Plant1 + p.Plant2
}

// Config holds everything needed to build a simulation.
type Config struct {
	Seed       int64 // 0 = draw a seed
	Gen        world.GenConfig
	Move       agents.MoveConfig
	Population Population
}

// DefaultConfig returns the standard island with two animals of each kind
// and ten plants of each kind.
func DefaultConfig() Config {
	return Config{
		Gen:  world.DefaultGenConfig(),
		Move: agents.DefaultMoveConfig(),
		Population: Population{
			Animal1: 2,
			Animal2: 2,
			Plant1:  10,
			Plant2:  10,
		},
	}
}

// Validate checks the generation contract and that the requested
// population fits on the island.
func (cfg Config) Validate() error {
	if err := cfg.Gen.Validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if cfg.Move.Speed <= 0 {
		return fmt.Errorf("movement speed %v must be positive", cfg.Move.Speed)
	}
	p := cfg.Population
	if p.Animal1 < 0 || p.Animal2 < 0 || p.Plant1 < 0 || p.Plant2 < 0 {
		return errors.New("population counts must not be negative")
	}
	if p.Total() > cfg.Gen.LandCells {
		return fmt.Errorf("population %d on %d land cells: %w", p.Total(), cfg.Gen.LandCells, world.ErrCapacity)
	}
	return nil
}

// Stats summarizes the population after a tick.
type Stats struct {
	Tick    uint64 `json:"tick"`
	Plants  int    `json:"plants"`
	Animals int    `json:"animals"`
	Idle    int    `json:"idle"`
	Walking int    `json:"walking"`
}

// Simulation holds the island state. It is driven from a single goroutine.
type Simulation struct {
	RunID string
	Seed  int64
	Stats Stats

	field   *world.HeightField
	plants  *spatial.Tree
	animals []agents.Entity

	move    agents.MoveConfig
	spawner *agents.Spawner
	rng     entropy.Source // Animal decisions
	log     *slog.Logger
}

// NewSimulation generates the island and populates it.
func NewSimulation(cfg Config) *Simulation {
	seed := cfg.Seed
	if seed == 0 {
		seed = entropy.Seed()
	}
	hf := world.Generate(cfg.Gen, entropy.New(seed))
	cfg.Seed = seed
	return NewSimulationWithField(hf, cfg)
}

// NewSimulationWithField populates an existing island. The field is owned
// by the simulation from here on.
func NewSimulationWithField(hf *world.HeightField, cfg Config) *Simulation {
	seed := cfg.Seed
	if seed == 0 {
		seed = entropy.Seed()
	}

	runID := uuid.NewString()
	s := &Simulation{
		RunID:   runID,
		Seed:    seed,
		field:   hf,
		plants:  spatial.New(),
		move:    cfg.Move,
		spawner: agents.NewSpawner(seed),
		rng:     entropy.Stream(seed, movementSeedOffset),
		log:     slog.With("run", runID),
	}

	for _, kind := range agents.Kinds {
		s.Populate(cfg.Population.Count(kind), kind)
	}
	s.updateStats(0)

	s.log.Info("simulation ready",
		"seed", seed,
		"plants", s.plants.Len(),
		"plant_tree_depth", s.plants.Depth(),
		"animals", len(s.animals),
	)
	return s
}

// AddEntity fixes the entity's elevation from the grid and stores it:
// plants in the spatial tree, animals in the flat list.
func (s *Simulation) AddEntity(e agents.Entity) {
	e.FixElevation(s.field)
	if e.Kind.IsPlant() {
		s.plants.Insert(e)
		return
	}
	s.animals = append(s.animals, e)
}

// Populate places up to count entities of kind on random free cells high
// enough for animals to walk on. It returns the number placed; a crowded
// island places fewer and logs a warning.
func (s *Simulation) Populate(count int, kind agents.Kind) int {
	placed := 0
	for placed < count {
		x, z, ok := s.freeCell()
		if !ok {
			s.log.Warn("no free cell for entity",
				"kind", kind.String(),
				"placed", placed,
				"requested", count,
			)
			break
		}
		s.AddEntity(s.spawner.Spawn(kind, x, z))
		placed++
	}
	if placed > 0 {
		s.log.Debug("entities placed", "kind", kind.String(), "count", placed)
	}
	return placed
}

func (s *Simulation) freeCell() (x, z int, ok bool) {
	for i := 0; i < placementAttempts; i++ {
		x, z = s.spawner.Cell(s.field.Width(), s.field.Height())
		if s.field.At(x, z) < s.move.MinElevation {
			continue
		}
		fx, fz := float64(x), float64(z)
		if s.plants.CollidesAt(fx, fz) || agents.Occupied(s.animals, fx, fz) {
			continue
		}
		return x, z, true
	}
	return 0, 0, false
}

// SetRand replaces the animal decision source.
func (s *Simulation) SetRand(src entropy.Source) {
	s.rng = src
}

// AdvanceAnimals runs one state-machine step for every animal. All animals
// see their peers as they stood at the start of the tick.
func (s *Simulation) AdvanceAnimals() {
	snapshot := slices.Clone(s.animals)
	for i := range s.animals {
		s.animals[i].Advance(s.field, s.plants, snapshot, s.rng, s.move)
	}
}

// TickMinute is the engine callback: advance animals and refresh stats.
func (s *Simulation) TickMinute(tick uint64) {
	s.AdvanceAnimals()
	s.updateStats(tick)
	s.log.Debug("tick",
		"tick", tick,
		"walking", s.Stats.Walking,
		"idle", s.Stats.Idle,
	)
}

// Report logs the current population summary.
func (s *Simulation) Report(tick uint64) {
	s.log.Info("population report",
		"tick", tick,
		"animals", s.Stats.Animals,
		"walking", s.Stats.Walking,
		"idle", s.Stats.Idle,
		"plants", s.Stats.Plants,
	)
}

func (s *Simulation) updateStats(tick uint64) {
	st := Stats{Tick: tick, Plants: s.plants.Len(), Animals: len(s.animals)}
	for _, a := range s.animals {
		if a.Mode.State == agents.StateWalking {
			st.Walking++
		} else {
			st.Idle++
		}
	}
	s.Stats = st
}

// HeightField returns the island grid. Callers must not modify it.
func (s *Simulation) HeightField() *world.HeightField { return s.field }

// Plants returns the plant tree for occupancy queries and traversal.
func (s *Simulation) Plants() *spatial.Tree { return s.plants }

// Animals returns a copy of the animals in their current state.
func (s *Simulation) Animals() []agents.Entity {
	return slices.Clone(s.animals)
}

// ForEachEntity visits plants in tree order, then animals in insertion order.
func (s *Simulation) ForEachEntity(fn func(agents.Entity)) {
	s.plants.ForEach(fn)
	for _, a := range s.animals {
		fn(a)
	}
}

// Snapshot returns every entity in ForEachEntity order.
func (s *Simulation) Snapshot() []agents.Entity {
	out := make([]agents.Entity, 0, s.plants.Len()+len(s.animals))
	s.ForEachEntity(func(e agents.Entity) {
		out = append(out, e)
	})
	return out
}
