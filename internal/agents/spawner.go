// Entity spawning: uniform cell draws for placement and deterministic
// plant headings from simplex noise.
package agents

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/ilha/internal/entropy"
)

// Seed offsets for the spawner's streams.
const (
	placementSeedOffset = 300
	yawSeedOffset       = 301
)

// yawFrequency scales cell coordinates before sampling yaw noise.
const yawFrequency = 0.37

// Spawner creates entities for the simulation.
type Spawner struct {
	rng *rand.Rand
	yaw opensimplex.Noise
}

// NewSpawner creates a spawner with the given run seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		rng: entropy.Stream(seed, placementSeedOffset),
		yaw: opensimplex.NewNormalized(seed + yawSeedOffset),
	}
}

// Spawn creates an idle entity of kind at (x, z). Animals face 0 degrees;
// plants get a yaw in [0, 360) that depends only on the seed and cell.
// Elevation is left for the caller to fix from the grid.
func (s *Spawner) Spawn(kind Kind, x, z int) Entity {
	e := New(Vec3{X: float64(x), Z: float64(z)}, kind)
	if kind.IsPlant() {
		e.Rotation = s.PlantYaw(x, z)
	}
	return e
}

// PlantYaw samples the plant heading at (x, z).
func (s *Spawner) PlantYaw(x, z int) float64 {
	v := s.yaw.Eval2(float64(x)*yawFrequency, float64(z)*yawFrequency)
	yaw := v * 360
	if yaw >= 360 || yaw < 0 {
		yaw = 0
	}
	return yaw
}

// Cell draws a uniform cell on a w×h grid.
func (s *Spawner) Cell(w, h int) (x, z int) {
	return s.rng.Intn(w), s.rng.Intn(h)
}
