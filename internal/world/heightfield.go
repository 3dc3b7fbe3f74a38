package world

import "fmt"

// Elevation bands written by the generator. Smoothing blends them into a
// continuous range afterwards.
const (
	Sea  = -1.0
	Lake = 0.0
	Land = 1.0
)

// Band classifies an elevation into one of the three terrain bands.
type Band uint8

const (
	BandSea Band = iota
	BandLake
	BandLand
)

// BandOf returns the band nearest to v, splitting at the midpoints between
// Sea, Lake and Land. Exact band values map to themselves.
func BandOf(v float64) Band {
	switch {
	case v < (Sea+Lake)/2:
		return BandSea
	case v < (Lake+Land)/2:
		return BandLake
	default:
		return BandLand
	}
}

// String returns a human-readable band name.
func (b Band) String() string {
	switch b {
	case BandSea:
		return "Sea"
	case BandLake:
		return "Lake"
	case BandLand:
		return "Land"
	default:
		return "Unknown"
	}
}

// HeightField is a fixed-size grid of elevations stored in row-major order.
// Dimensions never change after construction.
//
// A smoothed field also remembers the band each cell held before the blur,
// since coastline land averages down into the lake range.
type HeightField struct {
	w, h  int
	data  []float64
	bands []Band // nil until smoothed
}

// NewHeightField allocates a w×h grid with every cell set to fill.
// Non-positive dimensions are coerced to 1.
func NewHeightField(w, h int, fill float64) *HeightField {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	hf := &HeightField{w: w, h: h, data: make([]float64, w*h)}
	for i := range hf.data {
		hf.data[i] = fill
	}
	return hf
}

// Width returns the number of cells along x.
func (hf *HeightField) Width() int { return hf.w }

// Height returns the number of cells along z.
func (hf *HeightField) Height() int { return hf.h }

// Size returns the total number of cells.
func (hf *HeightField) Size() int { return hf.w * hf.h }

// InBounds reports whether (x, z) lies on the grid.
func (hf *HeightField) InBounds(x, z int) bool {
	return x >= 0 && x < hf.w && z >= 0 && z < hf.h
}

// At returns the elevation at (x, z). Callers guarantee bounds.
func (hf *HeightField) At(x, z int) float64 {
	return hf.data[z*hf.w+x]
}

// Set writes the elevation at (x, z). Callers guarantee bounds.
func (hf *HeightField) Set(x, z int, v float64) {
	hf.data[z*hf.w+x] = v
}

// BandAt returns the terrain band of (x, z). For a smoothed field this is
// the band written by the generator, not the band of the blurred value.
func (hf *HeightField) BandAt(x, z int) Band {
	if hf.bands != nil {
		return hf.bands[z*hf.w+x]
	}
	return BandOf(hf.At(x, z))
}

// bandMask returns the band of every cell in row-major order.
func (hf *HeightField) bandMask() []Band {
	mask := make([]Band, len(hf.data))
	if hf.bands != nil {
		copy(mask, hf.bands)
		return mask
	}
	for i, v := range hf.data {
		mask[i] = BandOf(v)
	}
	return mask
}

// Cells exposes the backing slice, row-major with x varying fastest.
// Mesh builders read it directly; writers must not change its length.
func (hf *HeightField) Cells() []float64 { return hf.data }

// Count returns the number of cells exactly equal to v.
func (hf *HeightField) Count(v float64) int {
	n := 0
	for _, c := range hf.data {
		if c == v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (hf *HeightField) Clone() *HeightField {
	data := make([]float64, len(hf.data))
	copy(data, hf.data)
	out := &HeightField{w: hf.w, h: hf.h, data: data}
	if hf.bands != nil {
		out.bands = hf.bandMask()
	}
	return out
}

// Equal reports whether both grids have the same dimensions and cells.
func (hf *HeightField) Equal(other *HeightField) bool {
	if other == nil || hf.w != other.w || hf.h != other.h {
		return false
	}
	for i, v := range hf.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// BandCounts returns the number of cells per band, using BandAt.
func BandCounts(hf *HeightField) map[Band]int {
	counts := make(map[Band]int, 3)
	for z := 0; z < hf.h; z++ {
		for x := 0; x < hf.w; x++ {
			counts[hf.BandAt(x, z)]++
		}
	}
	return counts
}

// String returns a summary of the grid.
func (hf *HeightField) String() string {
	return fmt.Sprintf("HeightField(%dx%d)", hf.w, hf.h)
}
