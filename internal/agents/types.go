// Package agents provides the entity model for plants and animals and the
// per-tick animal state machine.
package agents

import "fmt"

// Kind identifies what an entity is.
type Kind uint8

const (
	KindAnimal1 Kind = iota
	KindAnimal2
	KindPlant1
	KindPlant2
)

// Kinds lists every kind in declaration order.
var Kinds = [4]Kind{KindAnimal1, KindAnimal2, KindPlant1, KindPlant2}

// IsAnimal reports whether entities of this kind move.
func (k Kind) IsAnimal() bool {
	return k == KindAnimal1 || k == KindAnimal2
}

// IsPlant reports whether entities of this kind are stationary.
func (k Kind) IsPlant() bool {
	return k == KindPlant1 || k == KindPlant2
}

func (k Kind) String() string {
	switch k {
	case KindAnimal1:
		return "Animal1"
	case KindAnimal2:
		return "Animal2"
	case KindPlant1:
		return "Plant1"
	case KindPlant2:
		return "Plant2"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// State is the behavioral state of an animal.
type State uint8

const (
	StateIdle State = iota
	StateWalking
)

func (s State) String() string {
	if s == StateWalking {
		return "WalkingTo"
	}
	return "Idle"
}

// Mode is an entity's state plus the walk target when walking.
type Mode struct {
	State   State   `json:"state"`
	TargetX float64 `json:"target_x,omitempty"`
	TargetZ float64 `json:"target_z,omitempty"`
}

// Idle returns the resting mode.
func Idle() Mode { return Mode{State: StateIdle} }

// WalkingTo returns the mode for an animal heading to (x, z).
func WalkingTo(x, z float64) Mode {
	return Mode{State: StateWalking, TargetX: x, TargetZ: z}
}

func (m Mode) String() string {
	if m.State == StateWalking {
		return fmt.Sprintf("WalkingTo(%g, %g)", m.TargetX, m.TargetZ)
	}
	return "Idle"
}

// Vec3 is a position. Y is elevation and is always looked up from the
// height grid.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Entity is a plant or an animal on the island.
type Entity struct {
	Position Vec3    `json:"position"`
	Rotation float64 `json:"rotation"` // Degrees around the vertical axis
	Kind     Kind    `json:"kind"`
	Mode     Mode    `json:"mode"`
}

// New creates an idle entity at position with zero rotation.
func New(position Vec3, kind Kind) Entity {
	return Entity{Position: position, Kind: kind, Mode: Idle()}
}

// SameCell reports whether e stands at (x, z), ignoring elevation.
func (e Entity) SameCell(x, z float64) bool {
	return e.Position.X == x && e.Position.Z == z
}
