// Island generation: cellular land growth from the center, sea-avoiding
// lake carving, and a single box-blur smoothing pass.
package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/ilha/internal/entropy"
)

// Lake size bounds for a single carved lake.
const (
	MinLakeSize = 3
	MaxLakeSize = 12
)

// Smoothing kernel weights. The kernel is not normalized: a uniform
// interior neighborhood of v blurs to 11v/9.
const (
	smoothCenterWeight   = 1.0 / 3.0
	smoothNeighborWeight = 1.0 / 9.0
)

// ErrCapacity reports a generation request that the grid cannot satisfy.
var ErrCapacity = errors.New("request exceeds grid capacity")

// GenConfig holds island generation parameters.
type GenConfig struct {
	Width     int  // Cells along x
	Height    int  // Cells along z
	LandCells int  // Land cells grown from the center
	LakeCells int  // Total lake cells carved into land (0 = no lakes)
	Smooth    bool // Apply the blur pass after carving
}

// DefaultGenConfig returns the standard island.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:     120,
		Height:    120,
		LandCells: 2500,
		LakeCells: 40,
		Smooth:    true,
	}
}

// SmallTestConfig returns a tiny island for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:     24,
		Height:    24,
		LandCells: 150,
		LakeCells: 8,
		Smooth:    true,
	}
}

// Validate checks the sizes a configuration asks for. Whether the grown
// island has room for the lakes is only known after land growth, so
// Generate caps the lake total itself.
func (cfg GenConfig) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("grid %dx%d: dimensions must be positive", cfg.Width, cfg.Height)
	}
	if cfg.LandCells < 0 || cfg.LakeCells < 0 {
		return fmt.Errorf("negative cell counts (land=%d lakes=%d)", cfg.LandCells, cfg.LakeCells)
	}
	if cfg.LandCells >= cfg.Width*cfg.Height {
		return fmt.Errorf("land %d on %dx%d grid: %w", cfg.LandCells, cfg.Width, cfg.Height, ErrCapacity)
	}
	if cfg.LakeCells > 0 && ClampLakeCells(cfg.LakeCells) >= cfg.LandCells {
		return fmt.Errorf("lakes %d with %d land cells: %w", ClampLakeCells(cfg.LakeCells), cfg.LandCells, ErrCapacity)
	}
	return nil
}

// Generate runs the full pipeline: sea grid, land growth, lake carving and
// smoothing. All randomness comes from rng.
func Generate(cfg GenConfig, rng entropy.Source) *HeightField {
	hf := NewHeightField(cfg.Width, cfg.Height, Sea)

	GrowLand(hf, cfg.LandCells, rng)
	slog.Debug("land grown", "cells", hf.Count(Land))

	if cfg.LakeCells > 0 {
		if total := lakeBudget(hf, cfg.LakeCells); total > 0 {
			GrowLakes(hf, total, rng)
		}
		slog.Debug("lakes carved", "cells", hf.Count(Lake))
	}

	if cfg.Smooth {
		hf = Smooth(hf)
		slog.Debug("terrain smoothed")
	}

	counts := BandCounts(hf)
	slog.Info("island generated",
		"width", hf.Width(),
		"height", hf.Height(),
		"sea", counts[BandSea],
		"lake", counts[BandLake],
		"land", counts[BandLand],
	)
	return hf
}

// GrowLand seeds the center cell as Land, then promotes random non-land
// cells with an orthogonal Land neighbor until target Land cells exist.
// target must stay below the grid size.
func GrowLand(hf *HeightField, target int, rng entropy.Source) {
	hf.Set(hf.w/2, hf.h/2, Land)

	count := hf.Count(Land)
	attempts := 0
	for count < target {
		x := rng.Intn(hf.w)
		z := rng.Intn(hf.h)
		attempts++
		if !canGrowLand(hf, x, z) {
			continue
		}
		hf.Set(x, z, Land)
		count++
	}
	slog.Debug("land growth finished", "target", target, "attempts", attempts)
}

// canGrowLand reports whether (x, z) is not Land but touches Land on one
// of its four sides.
func canGrowLand(hf *HeightField, x, z int) bool {
	if hf.At(x, z) == Land {
		return false
	}
	for _, n := range (Cell{X: x, Z: z}).Neighbors4() {
		if hf.InBounds(n.X, n.Z) && hf.At(n.X, n.Z) == Land {
			return true
		}
	}
	return false
}

// ClampLakeCells returns the lake total GrowLakes actually carves for a
// request of total.
func ClampLakeCells(total int) int {
	return max(total, MinLakeSize+1)
}

// GrowLakes carves connected lakes into land until the cumulative number
// of Lake cells carved equals the clamped total. No Lake cell ends up with
// Sea in its 8-neighborhood. The clamped total must not exceed
// LakeCapacity(hf).
func GrowLakes(hf *HeightField, total int, rng entropy.Source) {
	total = ClampLakeCells(total)

	carved := 0
	lakes := 0
	for carved < total {
		seed := randomLakeSeed(hf, rng)
		size := MinLakeSize + rng.Intn(MaxLakeSize-MinLakeSize+1)
		size = min(size, total-carved)
		carved += growLake(hf, seed, size, rng)
		lakes++
	}
	slog.Debug("lake carving finished", "lakes", lakes, "cells", carved)
}

// LakeCapacity returns the number of cells that may currently become Lake.
// Carving a cell removes exactly that cell from the count.
func LakeCapacity(hf *HeightField) int {
	n := 0
	for z := 0; z < hf.h; z++ {
		for x := 0; x < hf.w; x++ {
			if isLakeCell(hf, Cell{X: x, Z: z}) {
				n++
			}
		}
	}
	return n
}

// lakeBudget returns the lake total GrowLakes can carve on hf for a request
// of requested, or 0 when the island cannot hold even the smallest total.
func lakeBudget(hf *HeightField, requested int) int {
	want := ClampLakeCells(requested)
	capacity := LakeCapacity(hf)
	if capacity >= want {
		return want
	}
	if capacity < ClampLakeCells(0) {
		slog.Warn("island too small for lakes", "requested", requested, "capacity", capacity)
		return 0
	}
	slog.Warn("lake total capped", "requested", requested, "capacity", capacity)
	return capacity
}

// randomLakeSeed draws cells until one can hold a lake.
func randomLakeSeed(hf *HeightField, rng entropy.Source) Cell {
	for {
		c := Cell{X: rng.Intn(hf.w), Z: rng.Intn(hf.h)}
		if isLakeCell(hf, c) {
			return c
		}
	}
}

// growLake grows one lake from seed with a frontier list and returns the
// number of cells it carved. It stops early when the frontier empties.
func growLake(hf *HeightField, seed Cell, size int, rng entropy.Source) int {
	hf.Set(seed.X, seed.Z, Lake)
	carved := 1
	frontier := pushNeighbors(hf, nil, seed)

	for carved < size && len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		c := frontier[i]
		last := len(frontier) - 1
		frontier[i] = frontier[last]
		frontier = frontier[:last]

		if !isLakeCell(hf, c) {
			continue
		}
		hf.Set(c.X, c.Z, Lake)
		carved++
		frontier = pushNeighbors(hf, frontier, c)
	}
	return carved
}

func pushNeighbors(hf *HeightField, frontier []Cell, c Cell) []Cell {
	for _, n := range c.Neighbors8() {
		if hf.InBounds(n.X, n.Z) {
			frontier = append(frontier, n)
		}
	}
	return frontier
}

// isLakeCell reports whether c may become Lake: on the grid, neither Sea
// nor Lake already, and with no Sea among its in-bounds 8 neighbors.
func isLakeCell(hf *HeightField, c Cell) bool {
	if !hf.InBounds(c.X, c.Z) {
		return false
	}
	if v := hf.At(c.X, c.Z); v == Sea || v == Lake {
		return false
	}
	for _, n := range c.Neighbors8() {
		if hf.InBounds(n.X, n.Z) && hf.At(n.X, n.Z) == Sea {
			return false
		}
	}
	return true
}

// Smooth returns a blurred copy of hf. Each cell becomes 1/3 of itself plus
// 1/9 of each in-bounds neighbor. Out-of-bounds neighbors are skipped, so
// edge and corner cells sum fewer samples. The copy keeps hf's bands.
func Smooth(hf *HeightField) *HeightField {
	out := &HeightField{w: hf.w, h: hf.h, data: make([]float64, len(hf.data)), bands: hf.bandMask()}

	for z := 0; z < hf.h; z++ {
		for x := 0; x < hf.w; x++ {
			sum := hf.At(x, z) * smoothCenterWeight
			for _, dir := range Neighbor8Directions {
				nx, nz := x+dir.X, z+dir.Z
				if hf.InBounds(nx, nz) {
					sum += hf.At(nx, nz) * smoothNeighborWeight
				}
			}
			out.Set(x, z, sum)
		}
	}
	return out
}
