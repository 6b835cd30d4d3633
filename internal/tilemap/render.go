package tilemap

import (
	"image"
	"image/color"

	"github.com/Faultbox/midgard-tilemap/pkg/math"
)

// DefaultQuadSize is the world-space edge length of the map quad.
const DefaultQuadSize = 128

// View describes how the map quad lands on an output image: the quad is
// centered, QuadSize world units wide, seen through a camera whose scale
// multiplies the visible world extent.
type View struct {
	QuadSize   float32
	Scale      float32
	Background color.RGBA
}

// DefaultView returns the view at scale 1 with a transparent background.
func DefaultView() View {
	return View{QuadSize: DefaultQuadSize, Scale: 1}
}

// UV maps an output pixel to a UV over the quad. ok is false when the pixel
// center falls outside the quad.
func (v View) UV(px, py, width, height int) (uv math.Vec2, ok bool) {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	quad := v.QuadSize
	if quad <= 0 {
		quad = DefaultQuadSize
	}

	// Screen y grows downward, and so does v: row 0 of the index map is the
	// top edge of the quad.
	wx := (float32(px) + 0.5 - float32(width)/2) * scale
	wy := (float32(py) + 0.5 - float32(height)/2) * scale

	uv = math.Vec2{X: wx/quad + 0.5, Y: wy/quad + 0.5}
	if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
		return uv, false
	}
	return uv, true
}

// Render draws the quad into a new width x height image.
func (d *Decoder) Render(width, height int, view View, mode SampleMode) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			uv, ok := view.UV(px, py, width, height)
			if !ok {
				img.SetRGBA(px, py, view.Background)
				continue
			}

			var c color.RGBA
			if mode == SampleMultiTap {
				c = d.SampleMulti(uv, float32(width), float32(height))
			} else {
				c = d.Sample(uv)
			}
			img.SetRGBA(px, py, c)
		}
	}

	return img
}
