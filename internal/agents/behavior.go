// Animal behavior: a two-state machine evaluated once per tick.
// Idle animals pick a free neighboring cell; walking animals step toward it.
package agents

import (
	"math"

	"github.com/talgya/ilha/internal/entropy"
	"github.com/talgya/ilha/internal/world"
)

// HeadingStep is the rotation per neighbor-table index, in degrees.
const HeadingStep = 45.0

// Occupancy answers whether a stationary entity stands at (x, z).
type Occupancy interface {
	CollidesAt(x, z float64) bool
}

// MoveConfig tunes animal movement.
type MoveConfig struct {
	Speed        float64 // Distance per tick along each axis
	MinElevation float64 // Lowest elevation an animal may step onto
}

// DefaultMoveConfig returns the standard movement parameters.
func DefaultMoveConfig() MoveConfig {
	return MoveConfig{
		Speed:        0.25,
		MinElevation: world.Land,
	}
}

// Advance runs one tick of the state machine. peers are the animals as they
// stood at the start of the tick. Plants never change.
func (e *Entity) Advance(hf *world.HeightField, plants Occupancy, peers []Entity, rng entropy.Source, cfg MoveConfig) {
	if !e.Kind.IsAnimal() {
		return
	}

	switch e.Mode.State {
	case StateIdle:
		e.chooseTarget(hf, plants, peers, rng, cfg)
	case StateWalking:
		e.step(hf, cfg)
	}
}

// chooseTarget picks a random valid neighbor and starts walking to it.
// With no valid neighbor the animal stays idle.
func (e *Entity) chooseTarget(hf *world.HeightField, plants Occupancy, peers []Entity, rng entropy.Source, cfg MoveConfig) {
	valid := ValidMoves(e.CellPosition(), hf, plants, peers, cfg)
	if len(valid) == 0 {
		return
	}

	dir := valid[rng.Intn(len(valid))]
	target := world.Cell{
		X: e.CellPosition().X + world.Neighbor8Directions[dir].X,
		Z: e.CellPosition().Z + world.Neighbor8Directions[dir].Z,
	}
	e.Mode = WalkingTo(float64(target.X), float64(target.Z))
	e.Rotation = float64(dir) * HeadingStep
}

// step moves toward the walk target, or settles to idle on arrival.
// Each axis moves independently, so diagonal steps cover more ground.
func (e *Entity) step(hf *world.HeightField, cfg MoveConfig) {
	if e.SameCell(e.Mode.TargetX, e.Mode.TargetZ) {
		e.Mode = Idle()
		return
	}

	e.Position.X = approach(e.Position.X, e.Mode.TargetX, cfg.Speed)
	e.Position.Z = approach(e.Position.Z, e.Mode.TargetZ, cfg.Speed)
	e.FixElevation(hf)
}

// approach moves v toward target by at most speed.
func approach(v, target, speed float64) float64 {
	delta := target - v
	if math.Abs(delta) <= speed {
		return target
	}
	return v + math.Copysign(speed, delta)
}

// CellPosition returns the integer cell under the entity.
func (e Entity) CellPosition() world.Cell {
	return world.Cell{
		X: int(math.Floor(e.Position.X)),
		Z: int(math.Floor(e.Position.Z)),
	}
}

// FixElevation sets Y from the grid at the entity's cell. Off-grid
// entities keep their current Y.
func (e *Entity) FixElevation(hf *world.HeightField) {
	c := e.CellPosition()
	if hf.InBounds(c.X, c.Z) {
		e.Position.Y = hf.At(c.X, c.Z)
	}
}

// ValidMoves returns the indices into world.Neighbor8Directions of the cells
// around from that an animal may walk to: on the grid, high enough, not
// occupied by a plant or a peer, and not the target of a walking peer.
func ValidMoves(from world.Cell, hf *world.HeightField, plants Occupancy, peers []Entity, cfg MoveConfig) []int {
	var valid []int
	for i, n := range from.Neighbors8() {
		if !hf.InBounds(n.X, n.Z) || hf.At(n.X, n.Z) < cfg.MinElevation {
			continue
		}
		x, z := float64(n.X), float64(n.Z)
		if plants != nil && plants.CollidesAt(x, z) {
			continue
		}
		if Occupied(peers, x, z) || Claimed(peers, x, z) {
			continue
		}
		valid = append(valid, i)
	}
	return valid
}

// Occupied reports whether any entity in list stands at (x, z).
func Occupied(list []Entity, x, z float64) bool {
	for _, a := range list {
		if a.SameCell(x, z) {
			return true
		}
	}
	return false
}

// Claimed reports whether any walking entity in list is headed to (x, z).
func Claimed(list []Entity, x, z float64) bool {
	for _, a := range list {
		if a.Mode.State == StateWalking && a.Mode.TargetX == x && a.Mode.TargetZ == z {
			return true
		}
	}
	return false
}
