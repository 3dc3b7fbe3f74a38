package agents

import (
	"testing"

	"github.com/talgya/ilha/internal/entropy/entropytest"
	"github.com/talgya/ilha/internal/world"
)

// plantSet is a flat Occupancy used in place of the spatial tree.
type plantSet []Entity

func (p plantSet) CollidesAt(x, z float64) bool {
	return Occupied(p, x, z)
}

var noPlants = plantSet{New(Vec3{X: -100, Y: -100, Z: -100}, KindPlant1)}

func TestValidMovesOnOpenLand(t *testing.T) {
	hf := world.NewHeightField(5, 5, world.Land)
	cfg := DefaultMoveConfig()

	if got := ValidMoves(world.Cell{X: 2, Z: 2}, hf, noPlants, nil, cfg); len(got) != 8 {
		t.Fatalf("interior cell: %d valid moves, want 8", len(got))
	}
	if got := ValidMoves(world.Cell{X: 7, Z: 7}, hf, noPlants, nil, cfg); len(got) != 0 {
		t.Fatalf("off-grid cell: %d valid moves, want 0", len(got))
	}

	got := ValidMoves(world.Cell{X: 0, Z: 0}, hf, noPlants, nil, cfg)
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("corner cell: moves %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("corner cell: moves %v, want %v", got, want)
		}
	}
}

func TestValidMovesNeedsLand(t *testing.T) {
	cfg := DefaultMoveConfig()
	from := world.Cell{X: 1, Z: 1}

	lake := world.NewHeightField(5, 5, world.Lake)
	if got := ValidMoves(from, lake, noPlants, nil, cfg); len(got) != 0 {
		t.Fatalf("lake grid: %d valid moves, want 0", len(got))
	}

	land := world.NewHeightField(5, 5, world.Land)
	if got := ValidMoves(from, land, noPlants, nil, cfg); len(got) != 8 {
		t.Fatalf("land grid: %d valid moves, want 8", len(got))
	}

	shore := world.NewHeightField(5, 5, 0.99)
	if got := ValidMoves(from, shore, noPlants, nil, cfg); len(got) != 0 {
		t.Fatalf("shore grid: %d valid moves, want 0", len(got))
	}
}

func TestValidMovesAvoidOccupiedCells(t *testing.T) {
	hf := world.NewHeightField(5, 5, world.Land)
	cfg := DefaultMoveConfig()
	from := world.Cell{X: 1, Z: 1}

	plants := plantSet{New(Vec3{}, KindPlant2)}
	if got := ValidMoves(from, hf, plants, nil, cfg); len(got) != 7 {
		t.Fatalf("with plant: %d valid moves, want 7", len(got))
	}

	peers := []Entity{New(Vec3{}, KindAnimal2)}
	if got := ValidMoves(from, hf, noPlants, peers, cfg); len(got) != 7 {
		t.Fatalf("with animal: %d valid moves, want 7", len(got))
	}

	// Elevation is ignored when matching cells.
	peers = []Entity{New(Vec3{X: 2, Y: 9, Z: 2}, KindAnimal1)}
	if got := ValidMoves(from, hf, nil, peers, cfg); len(got) != 7 {
		t.Fatalf("with raised animal: %d valid moves, want 7", len(got))
	}
}

func TestValidMovesSkipWalkingPeerTarget(t *testing.T) {
	hf := world.NewHeightField(5, 5, world.Land)
	cfg := DefaultMoveConfig()
	from := world.Cell{X: 1, Z: 1}

	// Mid-step at (3.25, 2): its own cell matches nothing, its target does.
	walker := New(Vec3{X: 3.25, Y: 1, Z: 2}, KindAnimal1)
	walker.Mode = WalkingTo(2, 2)
	got := ValidMoves(from, hf, noPlants, []Entity{walker}, cfg)
	if len(got) != 7 {
		t.Fatalf("with walking peer: %d valid moves, want 7", len(got))
	}
	for _, i := range got {
		if d := world.Neighbor8Directions[i]; d.X == 1 && d.Z == 1 {
			t.Fatal("claimed cell (2,2) offered as a move")
		}
	}
}

func TestClaimed(t *testing.T) {
	walker := New(Vec3{X: 0.5, Z: 0}, KindAnimal1)
	walker.Mode = WalkingTo(1, 0)
	idle := New(Vec3{X: 3, Z: 3}, KindAnimal2)
	list := []Entity{walker, idle}

	if !Claimed(list, 1, 0) {
		t.Fatal("Claimed(1,0) = false, want true")
	}
	// An idle entity's zero target does not claim the origin.
	if Claimed(list, 0, 0) {
		t.Fatal("Claimed(0,0) = true, want false")
	}
	if Claimed(nil, 1, 0) {
		t.Fatal("Claimed on empty list = true")
	}
}

func TestOccupied(t *testing.T) {
	list := []Entity{New(Vec3{}, KindAnimal1)}

	if !Occupied(list, 0, 0) {
		t.Fatal("Occupied(0,0) = false, want true")
	}
	if Occupied(list, 1, 0) {
		t.Fatal("Occupied(1,0) = true, want false")
	}
	if Occupied(nil, 0, 0) {
		t.Fatal("Occupied on empty list = true")
	}
}

func TestAdvancePlantIsNoop(t *testing.T) {
	hf := world.NewHeightField(25, 25, world.Land)
	rng := entropytest.NewFixed(0)

	for _, kind := range []Kind{KindPlant1, KindPlant2} {
		p := New(Vec3{X: 3, Y: 1, Z: 3}, kind)
		before := p
		p.Advance(hf, noPlants, nil, rng, DefaultMoveConfig())
		if p != before {
			t.Fatalf("%s changed: %+v -> %+v", kind, before, p)
		}

		p.Mode = WalkingTo(4, 4)
		before = p
		p.Advance(hf, noPlants, nil, rng, DefaultMoveConfig())
		if p != before {
			t.Fatalf("walking %s changed: %+v -> %+v", kind, before, p)
		}
	}
	if rng.Draws() != 0 {
		t.Fatalf("plants consumed %d random draws", rng.Draws())
	}
}

func TestAdvanceIdleStartsWalking(t *testing.T) {
	hf := world.NewHeightField(25, 25, world.Land)
	a := New(Vec3{X: 0, Y: 1, Z: 0}, KindAnimal1)

	// Corner cell: valid directions are 0, 1 and 2; draw picks the second.
	a.Advance(hf, noPlants, nil, entropytest.NewFixed(1), DefaultMoveConfig())

	if a.Mode != WalkingTo(1, 1) {
		t.Fatalf("mode = %v, want WalkingTo(1, 1)", a.Mode)
	}
	if a.Rotation != 45 {
		t.Fatalf("rotation = %v, want 45", a.Rotation)
	}
	if a.Position != (Vec3{X: 0, Y: 1, Z: 0}) {
		t.Fatalf("position moved on target choice: %+v", a.Position)
	}
}

func TestAdvanceHeadingFollowsDirectionIndex(t *testing.T) {
	hf := world.NewHeightField(5, 5, world.Land)

	for dir := 0; dir < 8; dir++ {
		a := New(Vec3{X: 2, Y: 1, Z: 2}, KindAnimal2)
		a.Advance(hf, noPlants, nil, entropytest.NewFixed(dir), DefaultMoveConfig())

		d := world.Neighbor8Directions[dir]
		if a.Mode != WalkingTo(float64(2+d.X), float64(2+d.Z)) {
			t.Fatalf("dir %d: mode = %v", dir, a.Mode)
		}
		if want := float64(dir) * HeadingStep; a.Rotation != want {
			t.Fatalf("dir %d: rotation = %v, want %v", dir, a.Rotation, want)
		}
	}
}

func TestAdvanceTrappedAnimalStaysIdle(t *testing.T) {
	hf := world.NewHeightField(5, 5, world.Lake)
	hf.Set(2, 2, world.Land)
	hf.Set(3, 2, world.Land)

	a := New(Vec3{X: 2, Y: 1, Z: 2}, KindAnimal1)
	peers := []Entity{a, New(Vec3{X: 3, Y: 1, Z: 2}, KindAnimal2)}
	before := a
	rng := entropytest.NewFixed(0)

	a.Advance(hf, noPlants, peers, rng, DefaultMoveConfig())

	if a != before {
		t.Fatalf("trapped animal changed: %+v -> %+v", before, a)
	}
	if rng.Draws() != 0 {
		t.Fatalf("trapped animal consumed %d random draws", rng.Draws())
	}
}

func TestAdvanceWalkingSteps(t *testing.T) {
	hf := world.NewHeightField(25, 25, world.Land)
	a := New(Vec3{}, KindAnimal1)
	a.Mode = WalkingTo(1, 1)

	a.Advance(hf, noPlants, nil, entropytest.NewFixed(), DefaultMoveConfig())

	if a.Mode != WalkingTo(1, 1) {
		t.Fatalf("mode = %v, want still walking", a.Mode)
	}
	if a.Position.X != 0.25 || a.Position.Z != 0.25 {
		t.Fatalf("position = %+v, want (0.25, _, 0.25)", a.Position)
	}
	if a.Position.Y != world.Land {
		t.Fatalf("elevation = %v, want %v", a.Position.Y, world.Land)
	}
}

func TestAdvanceWalkArrivesThenSettles(t *testing.T) {
	hf := world.NewHeightField(5, 5, world.Land)
	hf.Set(1, 1, 1.5)
	cfg := DefaultMoveConfig()
	a := New(Vec3{Y: 1}, KindAnimal2)
	a.Mode = WalkingTo(1, 1)

	for i := 0; i < 4; i++ {
		a.Advance(hf, noPlants, nil, entropytest.NewFixed(), cfg)
	}
	if a.Position != (Vec3{X: 1, Y: 1.5, Z: 1}) {
		t.Fatalf("after 4 steps position = %+v, want (1, 1.5, 1)", a.Position)
	}
	if a.Mode.State != StateWalking {
		t.Fatalf("mode = %v before settle tick, want walking", a.Mode)
	}

	a.Advance(hf, noPlants, nil, entropytest.NewFixed(), cfg)
	if a.Mode != Idle() {
		t.Fatalf("mode = %v after arrival tick, want Idle", a.Mode)
	}
	if a.Position != (Vec3{X: 1, Y: 1.5, Z: 1}) {
		t.Fatalf("arrival tick moved animal to %+v", a.Position)
	}
}

func TestAdvanceAtTargetBecomesIdle(t *testing.T) {
	hf := world.NewHeightField(25, 25, world.Land)
	a := New(Vec3{}, KindAnimal1)
	a.Mode = WalkingTo(0, 0)

	a.Advance(hf, noPlants, nil, entropytest.NewFixed(), DefaultMoveConfig())

	if a.Mode != Idle() {
		t.Fatalf("mode = %v, want Idle", a.Mode)
	}
	if a.Position != (Vec3{}) {
		t.Fatalf("position = %+v, want unchanged", a.Position)
	}
}

func TestAdvanceAxisAligned(t *testing.T) {
	hf := world.NewHeightField(5, 5, world.Land)
	a := New(Vec3{X: 2, Y: 1, Z: 2}, KindAnimal1)
	a.Mode = WalkingTo(1, 2)

	a.Advance(hf, noPlants, nil, entropytest.NewFixed(), DefaultMoveConfig())

	if a.Position.X != 1.75 || a.Position.Z != 2 {
		t.Fatalf("position = %+v, want (1.75, _, 2)", a.Position)
	}
	// 1.75 floors to cell 1.
	if c := a.CellPosition(); c != (world.Cell{X: 1, Z: 2}) {
		t.Fatalf("cell = %v, want (1,2)", c)
	}
}

func TestApproachNeverOvershoots(t *testing.T) {
	tests := []struct {
		v, target, speed, want float64
	}{
		{0, 1, 0.25, 0.25},
		{0, -1, 0.25, -0.25},
		{0.9, 1, 0.25, 1},
		{1, 1, 0.25, 1},
		{0, 0.1, 0.3, 0.1},
	}
	for _, tt := range tests {
		if got := approach(tt.v, tt.target, tt.speed); got != tt.want {
			t.Fatalf("approach(%v, %v, %v) = %v, want %v", tt.v, tt.target, tt.speed, got, tt.want)
		}
	}
}
