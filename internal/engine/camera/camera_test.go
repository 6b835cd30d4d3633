package camera

import (
	"math"
	"testing"
)

func TestNewCamera2D(t *testing.T) {
	cam := NewCamera2D()
	if cam.Scale != MaxScale {
		t.Errorf("initial scale = %v, want %v", cam.Scale, MaxScale)
	}
}

func TestSetScaleClamps(t *testing.T) {
	cam := NewCamera2D()

	cam.SetScale(-3)
	if cam.Scale != MinScale {
		t.Errorf("SetScale(-3) = %v, want %v", cam.Scale, MinScale)
	}
	cam.SetScale(4)
	if cam.Scale != MaxScale {
		t.Errorf("SetScale(4) = %v, want %v", cam.Scale, MaxScale)
	}

	cam.SetScale(0.5)
	cam.SetScale(float32(math.NaN()))
	if cam.Scale != 0.5 {
		t.Errorf("SetScale(NaN) changed scale to %v", cam.Scale)
	}
}

func TestViewProjectionZoom(t *testing.T) {
	cam := NewCamera2D()

	// At scale 1 a point at the right edge of a 200px view lands on x=1.
	p := cam.ViewProjection(200, 100).TransformPoint([3]float32{100, 0, 0})
	if !approx(p[0], 1) {
		t.Errorf("scale 1: x = %v, want 1", p[0])
	}

	// Zooming in to 0.5 doubles on-screen size.
	cam.SetScale(0.5)
	p = cam.ViewProjection(200, 100).TransformPoint([3]float32{50, 25, 0})
	if !approx(p[0], 1) || !approx(p[1], 1) {
		t.Errorf("scale 0.5: got (%v, %v), want (1, 1)", p[0], p[1])
	}
}

func TestViewProjectionLeavesZ(t *testing.T) {
	cam := NewCamera2D()
	z := cam.ViewProjection(200, 200).TransformPoint([3]float32{0, 0, 500})[2]

	cam.SetScale(MinScale)
	if got := cam.ViewProjection(200, 200).TransformPoint([3]float32{0, 0, 500})[2]; got != z {
		t.Errorf("z at scale %v = %v, want %v as at scale 1", MinScale, got, z)
	}
}

func TestQuadTransformCorners(t *testing.T) {
	tests := []struct {
		name   string
		scale  float32
		view   [2]int
		corner [3]float32
		want   [2]float32
	}{
		// 128 unit quad in a 256x128 view: half as wide as the view, full height.
		{"top right", 1, [2]int{256, 128}, [3]float32{0.5, 0.5, 0}, [2]float32{0.5, 1}},
		{"bottom left", 1, [2]int{256, 128}, [3]float32{-0.5, -0.5, 0}, [2]float32{-0.5, -1}},
		{"zoomed in", 0.5, [2]int{256, 128}, [3]float32{0.5, -0.5, 0}, [2]float32{1, -2}},
		{"zoomed out", MinScale, [2]int{128, 128}, [3]float32{-0.5, 0.5, 0}, [2]float32{-0.125, 0.125}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera2D()
			cam.SetScale(tt.scale)

			p := cam.QuadTransform(tt.view[0], tt.view[1], 128).TransformPoint(tt.corner)
			if !approx(p[0], tt.want[0]) || !approx(p[1], tt.want[1]) {
				t.Errorf("corner %v -> (%v, %v), want %v", tt.corner, p[0], p[1], tt.want)
			}
		})
	}
}

func TestViewProjectionEmptyViewport(t *testing.T) {
	cam := NewCamera2D()
	m := cam.QuadTransform(0, 0, 128)

	for i, v := range m {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("transform[%d] = %v for a 0x0 viewport", i, v)
		}
	}
}
