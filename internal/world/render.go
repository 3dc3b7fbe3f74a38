package world

import (
	"bufio"
	"io"
)

// Glyphs used by WriteASCII.
const (
	GlyphSea   = '~'
	GlyphLake  = 'o'
	GlyphShore = ','
	GlyphLand  = '#'
)

// Overlay returns the glyph to draw over (x, z), if any.
type Overlay func(x, z int) (rune, bool)

// Glyph returns the terrain glyph for a cell of band b at elevation v.
// passable is the elevation at and above which animals may stand; land
// below it is shore.
func Glyph(b Band, v, passable float64) rune {
	switch b {
	case BandSea:
		return GlyphSea
	case BandLake:
		return GlyphLake
	}
	if v < passable {
		return GlyphShore
	}
	return GlyphLand
}

// WriteASCII draws the grid one row per z, x increasing left to right.
// overlay may be nil.
func (hf *HeightField) WriteASCII(w io.Writer, passable float64, overlay Overlay) error {
	bw := bufio.NewWriter(w)
	for z := 0; z < hf.h; z++ {
		for x := 0; x < hf.w; x++ {
			r := Glyph(hf.BandAt(x, z), hf.At(x, z), passable)
			if overlay != nil {
				if o, ok := overlay(x, z); ok {
					r = o
				}
			}
			if _, err := bw.WriteRune(r); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
