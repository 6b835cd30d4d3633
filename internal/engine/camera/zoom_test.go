package camera

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

func TestZoomClampsToMinimum(t *testing.T) {
	cam := NewCamera2D()
	z := NewZoomController(cam, PixelScrollAbort)

	if err := z.Apply(Scroll{Delta: -100, Unit: ScrollLine}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cam.Scale != 1.0/8.0 {
		t.Errorf("scale = %v, want exactly 0.125", cam.Scale)
	}
}

func TestZoomClampsToMaximum(t *testing.T) {
	cam := NewCamera2D()
	cam.Scale = 0.5
	z := NewZoomController(cam, PixelScrollAbort)

	if err := z.Apply(Scroll{Delta: 100, Unit: ScrollLine}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cam.Scale != 1.0 {
		t.Errorf("scale = %v, want exactly 1", cam.Scale)
	}
}

func TestZoomAdditiveWithinFrame(t *testing.T) {
	cam := NewCamera2D()
	cam.Scale = 0.5
	z := NewZoomController(cam, PixelScrollAbort)

	err := z.ApplyScroll([]Scroll{
		{Delta: 1, Unit: ScrollLine},
		{Delta: 1, Unit: ScrollLine},
	})
	if err != nil {
		t.Fatalf("ApplyScroll: %v", err)
	}
	if !approx(cam.Scale, 0.7) {
		t.Errorf("scale = %v, want 0.7", cam.Scale)
	}
}

func TestZoomClampsPerEvent(t *testing.T) {
	tests := []struct {
		name   string
		start  float32
		deltas []float32
		want   float32
	}{
		// Clamping only at the end would give 1.0 - 2.0 + 1.5 = 0.5.
		{"clamped low then back up", 1.0, []float32{-20, 15}, 0.125 + 1.5},
		{"clamped high then down", 0.5, []float32{20, -5}, 0.5},
		{"no clamp", 0.5, []float32{-1, -1, 1}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera2D()
			cam.Scale = tt.start
			z := NewZoomController(cam, PixelScrollAbort)

			events := make([]Scroll, 0, len(tt.deltas))
			for _, d := range tt.deltas {
				events = append(events, Scroll{Delta: d, Unit: ScrollLine})
			}
			if err := z.ApplyScroll(events); err != nil {
				t.Fatalf("ApplyScroll: %v", err)
			}

			want := clampScale(tt.want)
			if !approx(cam.Scale, want) {
				t.Errorf("scale = %v, want %v", cam.Scale, want)
			}
		})
	}
}

func TestZoomPixelUnitAbort(t *testing.T) {
	cam := NewCamera2D()
	cam.Scale = 0.5
	z := NewZoomController(cam, PixelScrollAbort)

	err := z.ApplyScroll([]Scroll{
		{Delta: 1, Unit: ScrollLine},
		{Delta: 3, Unit: ScrollPixel},
		{Delta: 1, Unit: ScrollLine},
	})
	if !errors.Is(err, ErrUnsupportedScrollUnit) {
		t.Fatalf("error = %v, want ErrUnsupportedScrollUnit", err)
	}
	// First event applied, the rest dropped.
	if !approx(cam.Scale, 0.6) {
		t.Errorf("scale = %v, want 0.6", cam.Scale)
	}
}

func TestZoomPixelUnitAsLine(t *testing.T) {
	cam := NewCamera2D()
	cam.Scale = 0.5
	z := NewZoomController(cam, PixelScrollAsLine)

	if err := z.Apply(Scroll{Delta: -2, Unit: ScrollPixel}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !approx(cam.Scale, 0.3) {
		t.Errorf("scale = %v, want 0.3", cam.Scale)
	}
}

func TestZoomDefaultPolicyAborts(t *testing.T) {
	z := NewZoomController(NewCamera2D(), "")
	if err := z.Apply(Scroll{Delta: 1, Unit: ScrollPixel}); !errors.Is(err, ErrUnsupportedScrollUnit) {
		t.Errorf("error = %v, want ErrUnsupportedScrollUnit", err)
	}
}

func TestZoomRejectsNonFiniteDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		unit  ScrollUnit
	}{
		{"NaN line", float32(math.NaN()), ScrollLine},
		{"+Inf line", float32(math.Inf(1)), ScrollLine},
		{"-Inf line", float32(math.Inf(-1)), ScrollLine},
		{"NaN pixel as line", float32(math.NaN()), ScrollPixel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera2D()
			cam.Scale = 0.5
			z := NewZoomController(cam, PixelScrollAsLine)

			err := z.Apply(Scroll{Delta: tt.delta, Unit: tt.unit})
			if !errors.Is(err, ErrInvalidScrollDelta) {
				t.Fatalf("error = %v, want ErrInvalidScrollDelta", err)
			}
			if cam.Scale != 0.5 {
				t.Errorf("scale = %v after rejected delta, want 0.5", cam.Scale)
			}

			// Later events still work from the untouched scale.
			if err := z.Apply(Scroll{Delta: -100, Unit: ScrollLine}); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if cam.Scale != MinScale {
				t.Errorf("scale = %v, want %v", cam.Scale, MinScale)
			}
		})
	}
}

func TestSetLineStep(t *testing.T) {
	cam := NewCamera2D()
	cam.Scale = 0.5
	z := NewZoomController(cam, PixelScrollAbort)
	z.SetLineStep(20)
	z.SetLineStep(-1) // ignored

	if err := z.Apply(Scroll{Delta: 2, Unit: ScrollLine}); err != nil {
		t.Fatal(err)
	}
	if !approx(cam.Scale, 0.6) {
		t.Errorf("scale = %v, want 0.6", cam.Scale)
	}
}

func TestParsePixelScrollPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    PixelScrollPolicy
		wantErr bool
	}{
		{"", PixelScrollAbort, false},
		{"abort", PixelScrollAbort, false},
		{"line", PixelScrollAsLine, false},
		{"ignore", PixelScrollAbort, true},
	}

	for _, tt := range tests {
		got, err := ParsePixelScrollPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePixelScrollPolicy(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePixelScrollPolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
