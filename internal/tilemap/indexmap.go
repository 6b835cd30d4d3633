// Package tilemap implements the tile-index map, the tile-set atlas and the
// decode step that turns a UV coordinate into an atlas color.
//
// The GPU renders the same decode in tilemap.frag; Decoder is the CPU
// rendition used by tests and by the offline renderer.
package tilemap

import "fmt"

// Default index map dimensions, one texel per map cell.
const (
	DefaultIndexWidth  = 16
	DefaultIndexHeight = 16
)

// BytesPerTexel is the RG8 texel size of an IndexMap.
const BytesPerTexel = 2

// IndexMap is a two-channel (RG8) texture. Each texel holds the column (R)
// and row (G) of an atlas tile. Pix is row-major, row 0 first, and is not
// modified after construction.
type IndexMap struct {
	Width  int
	Height int
	Pix    []byte
}

// NewIndexMap wraps existing RG8 data.
func NewIndexMap(width, height int, pix []byte) (*IndexMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid index map size %dx%d", width, height)
	}
	if len(pix) != width*height*BytesPerTexel {
		return nil, fmt.Errorf("index map data size mismatch: expected %d, got %d",
			width*height*BytesPerTexel, len(pix))
	}
	return &IndexMap{Width: width, Height: height, Pix: pix}, nil
}

// GenerateIndexMap builds the demo pattern: rows 0 and 1 alternate between
// tile columns 0 and 1 (a checkerboard of the first four atlas tiles), every
// other row points at tile (8, 0).
func GenerateIndexMap(width, height int) *IndexMap {
	if width <= 0 {
		width = DefaultIndexWidth
	}
	if height <= 0 {
		height = DefaultIndexHeight
	}

	pix := make([]byte, 0, width*height*BytesPerTexel)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if y < 2 {
				pix = append(pix, byte(x%2), byte(y%2))
			} else {
				pix = append(pix, 8, 0)
			}
		}
	}

	return &IndexMap{Width: width, Height: height, Pix: pix}
}

// At returns the raw channel values of texel (x, y).
func (m *IndexMap) At(x, y int) (col, row byte) {
	i := (y*m.Width + x) * BytesPerTexel
	return m.Pix[i], m.Pix[i+1]
}
