package tilemap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	gomath "math"

	"github.com/Faultbox/midgard-tilemap/pkg/math"
)

// TilePixelSize is the pitch of one atlas tile in texels.
const TilePixelSize = 8

// SampleMode selects how many taps the decoder takes per pixel.
type SampleMode int

const (
	// SampleSingle takes one tap at the pixel's UV. This is the default.
	SampleSingle SampleMode = iota
	// SampleMultiTap averages four taps offset by a quarter view pixel.
	SampleMultiTap
)

// ParseSampleMode converts a config string to a SampleMode.
// An empty string selects SampleSingle.
func ParseSampleMode(s string) (SampleMode, error) {
	switch s {
	case "", "single":
		return SampleSingle, nil
	case "multitap":
		return SampleMultiTap, nil
	default:
		return SampleSingle, fmt.Errorf("unknown sampling mode %q (want single or multitap)", s)
	}
}

func (m SampleMode) String() string {
	switch m {
	case SampleSingle:
		return "single"
	case SampleMultiTap:
		return "multitap"
	default:
		return fmt.Sprintf("SampleMode(%d)", int(m))
	}
}

// ErrEmptyAtlas is returned when the atlas has no pixels.
var ErrEmptyAtlas = errors.New("atlas has zero size")

// Decoder resolves UV coordinates over an IndexMap into atlas colors.
// Both lookups are nearest-neighbor with clamp-to-edge addressing.
type Decoder struct {
	index    *IndexMap
	atlas    *image.RGBA
	tileSize float32

	indexSize math.Vec2
	atlasSize math.Vec2
}

// NewDecoder creates a decoder with the default tile pitch.
func NewDecoder(index *IndexMap, atlas *image.RGBA) (*Decoder, error) {
	if index == nil {
		return nil, errors.New("nil index map")
	}
	if atlas == nil {
		return nil, errors.New("nil atlas")
	}
	b := atlas.Bounds()
	if b.Empty() {
		return nil, ErrEmptyAtlas
	}

	return &Decoder{
		index:     index,
		atlas:     atlas,
		tileSize:  TilePixelSize,
		indexSize: math.Vec2{X: float32(index.Width), Y: float32(index.Height)},
		atlasSize: math.Vec2{X: float32(b.Dx()), Y: float32(b.Dy())},
	}, nil
}

// AtlasCoord computes the atlas UV for a pixel.
// tileID is the normalized index texel (byte/255), uv the coordinate over the
// index map. The sub-tile offset is the fractional part of uv*indexSize.
func AtlasCoord(tileID, uv, indexSize, atlasSize math.Vec2, tileSize float32) math.Vec2 {
	inTile := uv.Mul(indexSize).Fract()
	return tileID.Scale(255).Add(inTile).Scale(tileSize).Div(atlasSize)
}

// TileID returns the normalized index texel addressed by uv.
func (d *Decoder) TileID(uv math.Vec2) math.Vec2 {
	x, y := nearestTexel(uv, d.index.Width, d.index.Height)
	col, row := d.index.At(x, y)
	return math.Vec2{X: float32(col) / 255, Y: float32(row) / 255}
}

// Sample returns the atlas color for uv. It has no side effects.
func (d *Decoder) Sample(uv math.Vec2) color.RGBA {
	coord := AtlasCoord(d.TileID(uv), uv, d.indexSize, d.atlasSize, d.tileSize)
	return d.atlasAt(coord)
}

// SampleMulti averages four samples offset by a quarter of a view pixel in
// each direction. viewW and viewH are the viewport size in pixels.
func (d *Decoder) SampleMulti(uv math.Vec2, viewW, viewH float32) color.RGBA {
	off := math.Vec2{X: 0.25 / viewW, Y: 0.25 / viewH}

	taps := [4]color.RGBA{
		d.Sample(uv.Add(math.Vec2{X: -off.X, Y: -off.Y})),
		d.Sample(uv.Add(math.Vec2{X: off.X, Y: -off.Y})),
		d.Sample(uv.Add(math.Vec2{X: -off.X, Y: off.Y})),
		d.Sample(uv.Add(math.Vec2{X: off.X, Y: off.Y})),
	}

	var r, g, b, a uint32
	for _, c := range taps {
		r += uint32(c.R)
		g += uint32(c.G)
		b += uint32(c.B)
		a += uint32(c.A)
	}
	return color.RGBA{
		R: uint8((r + 2) / 4),
		G: uint8((g + 2) / 4),
		B: uint8((b + 2) / 4),
		A: uint8((a + 2) / 4),
	}
}

func (d *Decoder) atlasAt(uv math.Vec2) color.RGBA {
	b := d.atlas.Bounds()
	x, y := nearestTexel(uv, b.Dx(), b.Dy())
	return d.atlas.RGBAAt(b.Min.X+x, b.Min.Y+y)
}

// nearestTexel maps uv to integer texel coordinates, clamped to the edge.
func nearestTexel(uv math.Vec2, width, height int) (int, int) {
	return clampIndex(uv.X, width), clampIndex(uv.Y, height)
}

func clampIndex(u float32, n int) int {
	i := int(gomath.Floor(float64(u * float32(n))))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
