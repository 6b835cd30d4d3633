package tilemap

import (
	"image"
	"image/color"
	"testing"

	"github.com/Faultbox/midgard-tilemap/pkg/math"
)

// gradientAtlas returns an atlas whose texel (x, y) has R=x and G=y, so a
// sample tells exactly which texel was hit.
func gradientAtlas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func newTestDecoder(t *testing.T, index *IndexMap, atlas *image.RGBA) *Decoder {
	t.Helper()
	d, err := NewDecoder(index, atlas)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	return d
}

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}

func TestAtlasCoordFormula(t *testing.T) {
	atlasSize := math.Vec2{X: 128, Y: 64}
	indexSize := math.Vec2{X: 16, Y: 16}

	tests := []struct {
		raw [2]byte
		uv  math.Vec2
	}{
		{[2]byte{0, 0}, math.Vec2{X: 0.5 / 16, Y: 0.25 / 16}},
		{[2]byte{1, 1}, math.Vec2{X: 3.75 / 16, Y: 1.5 / 16}},
		{[2]byte{8, 0}, math.Vec2{X: 10.125 / 16, Y: 7.5 / 16}},
	}

	for _, tt := range tests {
		id := math.Vec2{X: float32(tt.raw[0]) / 255, Y: float32(tt.raw[1]) / 255}
		got := AtlasCoord(id, tt.uv, indexSize, atlasSize, TilePixelSize)

		f := tt.uv.Mul(indexSize).Fract()
		wantX := (float32(tt.raw[0]) + f.X) * TilePixelSize / atlasSize.X
		wantY := (float32(tt.raw[1]) + f.Y) * TilePixelSize / atlasSize.Y

		if !near(got.X, wantX) || !near(got.Y, wantY) {
			t.Errorf("AtlasCoord(%v, %v) = %v, want (%v, %v)", tt.raw, tt.uv, got, wantX, wantY)
		}
	}
}

func TestSampleDecodesTileIDs(t *testing.T) {
	d := newTestDecoder(t, GenerateIndexMap(16, 16), gradientAtlas(80, 16))

	// Sample at 0.3 of the way into each cell so the atlas coordinate lands
	// well inside a texel: (tile + 0.3) * 8 -> tile*8 + 2.4.
	for cy := 0; cy < 16; cy++ {
		for cx := 0; cx < 16; cx++ {
			uv := math.Vec2{X: (float32(cx) + 0.3) / 16, Y: (float32(cy) + 0.3) / 16}
			got := d.Sample(uv)

			col, row := 8, 0
			if cy < 2 {
				col, row = cx%2, cy
			}
			want := color.RGBA{R: uint8(col*8 + 2), G: uint8(row*8 + 2), A: 255}
			if got != want {
				t.Errorf("cell (%d,%d): got %v, want %v", cx, cy, got, want)
			}
		}
	}
}

func TestSampleSubTileOffset(t *testing.T) {
	d := newTestDecoder(t, GenerateIndexMap(16, 16), gradientAtlas(80, 16))

	// Walk the eight texel centers across cell (0, 0), which maps to tile (0, 0).
	for k := 0; k < TilePixelSize; k++ {
		f := (float32(k) + 0.5) / TilePixelSize
		uv := math.Vec2{X: f / 16, Y: f / 16}

		got := d.Sample(uv)
		if int(got.R) != k || int(got.G) != k {
			t.Errorf("sub-tile %d: got texel (%d,%d), want (%d,%d)", k, got.R, got.G, k, k)
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	d := newTestDecoder(t, GenerateIndexMap(16, 16), gradientAtlas(80, 16))

	for i := 0; i < 64; i++ {
		uv := math.Vec2{X: float32(i) / 64, Y: float32(63-i) / 64}
		first := d.Sample(uv)
		for j := 0; j < 3; j++ {
			if again := d.Sample(uv); again != first {
				t.Fatalf("Sample(%v) not deterministic: %v then %v", uv, first, again)
			}
		}
	}
}

func TestTileIDClampsAtEdge(t *testing.T) {
	d := newTestDecoder(t, GenerateIndexMap(16, 16), gradientAtlas(80, 16))

	got := d.TileID(math.Vec2{X: 1, Y: 1})
	want := math.Vec2{X: 8.0 / 255, Y: 0}
	if got != want {
		t.Errorf("TileID(1,1) = %v, want %v (last texel)", got, want)
	}

	// Tile (8, 0) with a zero sub-tile offset lands on atlas texel (64, 0).
	if got, want := d.Sample(math.Vec2{X: 1, Y: 1}), (color.RGBA{R: 64, G: 0, A: 255}); got != want {
		t.Errorf("Sample(1,1) = %v, want %v", got, want)
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct {
		u    float32
		n    int
		want int
	}{
		{0, 16, 0},
		{0.999, 16, 15},
		{1, 16, 15},
		{-0.25, 16, 0},
		{0.5, 16, 8},
	}

	for _, tt := range tests {
		if got := clampIndex(tt.u, tt.n); got != tt.want {
			t.Errorf("clampIndex(%v, %d) = %d, want %d", tt.u, tt.n, got, tt.want)
		}
	}
}

func TestSampleMulti(t *testing.T) {
	// Single tile: left half black, right half white.
	atlas := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := uint8(0)
			if x >= 4 {
				v = 255
			}
			atlas.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	index, err := NewIndexMap(1, 1, []byte{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	d := newTestDecoder(t, index, atlas)

	t.Run("straddles edge", func(t *testing.T) {
		// Offsets of 1/32 in u move the taps to texels 3 and 4.
		got := d.SampleMulti(math.Vec2{X: 0.5, Y: 0.5}, 8, 8)
		if got.R != 128 || got.A != 255 {
			t.Errorf("SampleMulti = %v, want R=128 A=255", got)
		}
	})

	t.Run("interior matches single tap", func(t *testing.T) {
		uv := math.Vec2{X: 0.125, Y: 0.5}
		if multi, single := d.SampleMulti(uv, 8, 8), d.Sample(uv); multi != single {
			t.Errorf("SampleMulti = %v, Sample = %v", multi, single)
		}
	})
}

func TestParseSampleMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SampleMode
		wantErr bool
	}{
		{"", SampleSingle, false},
		{"single", SampleSingle, false},
		{"multitap", SampleMultiTap, false},
		{"bilinear", SampleSingle, true},
	}

	for _, tt := range tests {
		got, err := ParseSampleMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSampleMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSampleMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewDecoderRejectsEmptyAtlas(t *testing.T) {
	_, err := NewDecoder(GenerateIndexMap(16, 16), image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if err != ErrEmptyAtlas {
		t.Errorf("NewDecoder error = %v, want ErrEmptyAtlas", err)
	}
}
