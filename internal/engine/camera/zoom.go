package camera

import (
	"errors"
	"fmt"
	gomath "math"
)

// ScrollUnit is the unit of a wheel delta.
type ScrollUnit int

const (
	// ScrollLine deltas count wheel notches.
	ScrollLine ScrollUnit = iota
	// ScrollPixel deltas are in pixels, as reported by precise touchpads.
	ScrollPixel
)

func (u ScrollUnit) String() string {
	switch u {
	case ScrollLine:
		return "line"
	case ScrollPixel:
		return "pixel"
	default:
		return fmt.Sprintf("ScrollUnit(%d)", int(u))
	}
}

// Scroll is one wheel event. Positive Delta zooms out.
type Scroll struct {
	Delta float32
	Unit  ScrollUnit
}

// PixelScrollPolicy decides what happens to pixel-unit scroll events.
type PixelScrollPolicy string

const (
	// PixelScrollAbort rejects pixel events with ErrUnsupportedScrollUnit.
	PixelScrollAbort PixelScrollPolicy = "abort"
	// PixelScrollAsLine applies pixel deltas exactly like line deltas.
	PixelScrollAsLine PixelScrollPolicy = "line"
)

// ParsePixelScrollPolicy validates a config value. Empty means abort.
func ParsePixelScrollPolicy(s string) (PixelScrollPolicy, error) {
	switch PixelScrollPolicy(s) {
	case "", PixelScrollAbort:
		return PixelScrollAbort, nil
	case PixelScrollAsLine:
		return PixelScrollAsLine, nil
	default:
		return PixelScrollAbort, fmt.Errorf("unknown pixel scroll policy %q (want abort or line)", s)
	}
}

// ErrUnsupportedScrollUnit is returned for pixel-unit scrolls under
// PixelScrollAbort.
var ErrUnsupportedScrollUnit = errors.New("unsupported scroll unit")

// ErrInvalidScrollDelta is returned for NaN or infinite deltas.
var ErrInvalidScrollDelta = errors.New("invalid scroll delta")

// DefaultLineStep is the number of line notches per unit of scale.
const DefaultLineStep float32 = 10

// ZoomController turns scroll events into camera scale changes.
type ZoomController struct {
	camera   *Camera2D
	policy   PixelScrollPolicy
	lineStep float32
}

// NewZoomController creates a controller that owns writes to cam.Scale.
func NewZoomController(cam *Camera2D, policy PixelScrollPolicy) *ZoomController {
	if policy == "" {
		policy = PixelScrollAbort
	}
	return &ZoomController{
		camera:   cam,
		policy:   policy,
		lineStep: DefaultLineStep,
	}
}

// SetLineStep overrides the notches-per-scale divisor. Non-positive values
// are ignored.
func (z *ZoomController) SetLineStep(step float32) {
	if step > 0 {
		z.lineStep = step
	}
}

// Apply handles a single event: scale = clamp(scale + delta/step).
func (z *ZoomController) Apply(ev Scroll) error {
	if d := float64(ev.Delta); gomath.IsNaN(d) || gomath.IsInf(d, 0) {
		return fmt.Errorf("zoom by %v %s: %w", ev.Delta, ev.Unit, ErrInvalidScrollDelta)
	}

	switch ev.Unit {
	case ScrollLine:
	case ScrollPixel:
		if z.policy != PixelScrollAsLine {
			return fmt.Errorf("zoom by %v %s: %w", ev.Delta, ev.Unit, ErrUnsupportedScrollUnit)
		}
	default:
		return fmt.Errorf("zoom by %v %s: %w", ev.Delta, ev.Unit, ErrUnsupportedScrollUnit)
	}

	z.camera.SetScale(z.camera.Scale + ev.Delta/z.lineStep)
	return nil
}

// ApplyScroll handles a frame's events in arrival order, clamping after
// each one. It stops at the first rejected event; events before it keep
// their effect.
func (z *ZoomController) ApplyScroll(events []Scroll) error {
	for _, ev := range events {
		if err := z.Apply(ev); err != nil {
			return err
		}
	}
	return nil
}
