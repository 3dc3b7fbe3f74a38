package engine

import (
	"io"

	"github.com/talgya/ilha/internal/agents"
	"github.com/talgya/ilha/internal/world"
)

// KindGlyph returns the map glyph for an entity kind.
func KindGlyph(k agents.Kind) rune {
	switch k {
	case agents.KindAnimal1:
		return 'A'
	case agents.KindAnimal2:
		return 'B'
	case agents.KindPlant1:
		return '*'
	case agents.KindPlant2:
		return '+'
	default:
		return '?'
	}
}

// Overlay marks each entity's current cell. Animals are drawn over plants.
func (s *Simulation) Overlay() world.Overlay {
	marks := make(map[world.Cell]rune, s.plants.Len()+len(s.animals))
	s.ForEachEntity(func(e agents.Entity) {
		marks[e.CellPosition()] = KindGlyph(e.Kind)
	})
	return func(x, z int) (rune, bool) {
		r, ok := marks[world.Cell{X: x, Z: z}]
		return r, ok
	}
}

// WriteMap draws the island with its entities.
func (s *Simulation) WriteMap(w io.Writer) error {
	return s.field.WriteASCII(w, s.move.MinElevation, s.Overlay())
}
