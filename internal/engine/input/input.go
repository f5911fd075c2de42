// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies processed events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventWindowMinimized
	EventWindowRestored
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Drag is the mouse movement accumulated for one button during a frame.
type Drag struct {
	DX, DY float32
}

// Input tracks events, held keys and mouse drags.
type Input struct {
	events []Event

	keys    map[sdl.Scancode]bool
	buttons map[uint8]bool
	lastX   int
	lastY   int
	drags   map[uint8]Drag
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		keys:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
		drags:   make(map[uint8]Drag),
	}
}

// Update polls SDL events and converts them to events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.BeginFrame()

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := convert(event); ok {
			i.Handle(e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

// convert maps an SDL event to an Event.
func convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_MINIMIZED:
			return Event{Type: EventWindowMinimized}, true
		case sdl.WINDOWEVENT_RESTORED:
			return Event{Type: EventWindowRestored}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}
		return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true
	}
	return Event{}, false
}

// BeginFrame clears the per-frame events and drags. Held keys and buttons
// persist.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
	clear(i.drags)
}

// Handle applies one event to the input state.
func (i *Input) Handle(e Event) {
	i.events = append(i.events, e)

	switch e.Type {
	case EventKeyDown:
		i.keys[e.Key] = true
	case EventKeyUp:
		delete(i.keys, e.Key)
	case EventMouseDown:
		i.buttons[e.Button] = true
		i.lastX, i.lastY = e.MouseX, e.MouseY
	case EventMouseUp:
		delete(i.buttons, e.Button)
	case EventMouseMove:
		dx := float32(e.MouseX - i.lastX)
		dy := float32(e.MouseY - i.lastY)
		for b := range i.buttons {
			d := i.drags[b]
			d.DX += dx
			d.DY += dy
			i.drags[b] = d
		}
		i.lastX, i.lastY = e.MouseX, e.MouseY
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether a key is held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	return i.keys[scancode]
}

// Drag returns the movement accumulated this frame while button was held.
func (i *Input) Drag(button uint8) Drag {
	return i.drags[button]
}
