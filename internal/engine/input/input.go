// Package input turns SDL2 events into per-frame viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-tilemap/internal/engine/camera"
)

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventScroll
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	Scroll camera.Scroll
}

// Input collects the events of one frame, in arrival order.
type Input struct {
	events  []Event
	scrolls []camera.Scroll
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		scrolls: make([]camera.Scroll, 0, 4),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.scrolls = i.scrolls[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Sym,
				})
			}

		case *sdl.MouseWheelEvent:
			s := wheelScroll(e.Y, e.Direction)
			i.events = append(i.events, Event{Type: EventScroll, Scroll: s})
			i.scrolls = append(i.scrolls, s)
		}
	}

	return quit
}

// wheelScroll converts an SDL wheel event. SDL reports whole notches, so
// every wheel event is line-based.
func wheelScroll(y int32, direction uint32) camera.Scroll {
	delta := float32(y)
	if direction == sdl.MOUSEWHEEL_FLIPPED {
		delta = -delta
	}
	return camera.Scroll{Delta: delta, Unit: camera.ScrollLine}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Scrolls returns the wheel events from the last Update in arrival order.
func (i *Input) Scrolls() []camera.Scroll {
	return i.scrolls
}
