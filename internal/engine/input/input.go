// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
}

// Input handles all input processing.
type Input struct {
	events []Event
	keys   []uint8
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
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
			ev := Event{Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)
		}
	}

	// The slice aliases SDL's internal array and stays current.
	i.keys = sdl.GetKeyboardState()
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a key went down this frame, ignoring auto-repeat.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether a key is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return int(scancode) < len(i.keys) && i.keys[scancode] != 0
}

// Axis returns +1 while pos is held, -1 while neg is held and 0 for both or
// neither.
func (i *Input) Axis(neg, pos sdl.Scancode) float32 {
	var v float32
	if i.IsKeyDown(pos) {
		v++
	}
	if i.IsKeyDown(neg) {
		v--
	}
	return v
}
