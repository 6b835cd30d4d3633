// Package camera provides the 2D map camera and the scroll-wheel zoom
// controller that drives it.
package camera

import (
	"github.com/Faultbox/midgard-tilemap/pkg/math"
)

// Zoom bounds for Camera2D.Scale. A smaller scale shows less of the world,
// so MinScale is the closest zoom.
const (
	MinScale float32 = 1.0 / 8.0
	MaxScale float32 = 1.0
)

// Camera2D is an orthographic camera looking down -Z at the origin.
// Scale is applied to both x and y; z is never scaled.
//
// The zoom controller is the only writer of Scale. The renderer reads it
// once per frame through QuadTransform.
type Camera2D struct {
	Scale float32

	// Clip depth range for the orthographic projection.
	Near, Far float32
}

// NewCamera2D creates a camera at scale 1.
func NewCamera2D() *Camera2D {
	return &Camera2D{
		Scale: MaxScale,
		Near:  -1000,
		Far:   1000,
	}
}

// SetScale sets the zoom scale, clamped to [MinScale, MaxScale]. NaN is
// ignored so the scale never leaves its bounds.
func (c *Camera2D) SetScale(s float32) {
	if s != s {
		return
	}
	c.Scale = clampScale(s)
}

// ViewProjection maps world space to clip space for a viewport of the given
// size in pixels. One world unit covers one pixel at scale 1. Viewports
// smaller than one pixel (a minimized window) are treated as 1x1.
func (c *Camera2D) ViewProjection(viewWidth, viewHeight int) math.Mat4 {
	hw := float32(max(viewWidth, 1)) / 2
	hh := float32(max(viewHeight, 1)) / 2
	proj := math.Ortho(-hw, hw, -hh, hh, c.Near, c.Far)

	// The view shrinks the world as the camera scale grows; z stays put.
	view := math.Scale(1/c.Scale, 1/c.Scale, 1)
	return proj.Mul(view)
}

// QuadTransform returns the clip-space transform for a unit quad centered at
// the origin and drawn quadSize world units wide.
func (c *Camera2D) QuadTransform(viewWidth, viewHeight int, quadSize float32) math.Mat4 {
	return c.ViewProjection(viewWidth, viewHeight).Mul(math.Scale(quadSize, quadSize, 1))
}

func clampScale(s float32) float32 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
