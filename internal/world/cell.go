// Package world provides the island height grid, its terrain bands and
// the generation pipeline that grows land, carves lakes and smooths the result.
// Coordinates are (x, z); elevation is the third axis.
package world

// Cell is an integer position on the height grid.
type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Neighbor4Directions are the orthogonal offsets used by land growth.
var Neighbor4Directions = [4]Cell{
	{X: 0, Z: -1},
	{X: -1, Z: 0},
	{X: 1, Z: 0},
	{X: 0, Z: 1},
}

// Neighbor8Directions are the eight surrounding offsets, counter-clockwise
// from +X. Animals use the index into this table as their heading
// (45 degrees per step).
var Neighbor8Directions = [8]Cell{
	{X: 1, Z: 0},
	{X: 1, Z: 1},
	{X: 0, Z: 1},
	{X: -1, Z: 1},
	{X: -1, Z: 0},
	{X: -1, Z: -1},
	{X: 0, Z: -1},
	{X: 1, Z: -1},
}

// Neighbors4 returns the four orthogonal neighbors. Results may be out of bounds.
func (c Cell) Neighbors4() [4]Cell {
	var result [4]Cell
	for i, dir := range Neighbor4Directions {
		result[i] = Cell{X: c.X + dir.X, Z: c.Z + dir.Z}
	}
	return result
}

// Neighbors8 returns the eight surrounding cells in Neighbor8Directions order.
// Results may be out of bounds.
func (c Cell) Neighbors8() [8]Cell {
	var result [8]Cell
	for i, dir := range Neighbor8Directions {
		result[i] = Cell{X: c.X + dir.X, Z: c.Z + dir.Z}
	}
	return result
}
