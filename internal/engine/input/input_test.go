package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestKeyHeldAcrossFrames(t *testing.T) {
	in := New()
	in.Handle(Event{Type: EventKeyDown, Key: sdl.SCANCODE_A})

	if !in.IsKeyPressed(sdl.SCANCODE_A) || !in.IsKeyDown(sdl.SCANCODE_A) {
		t.Fatal("A should be pressed and held")
	}

	in.BeginFrame()
	if in.IsKeyPressed(sdl.SCANCODE_A) {
		t.Error("press should only count for one frame")
	}
	if !in.IsKeyDown(sdl.SCANCODE_A) {
		t.Error("A should still be held")
	}

	in.Handle(Event{Type: EventKeyUp, Key: sdl.SCANCODE_A})
	if in.IsKeyDown(sdl.SCANCODE_A) {
		t.Error("A should be released")
	}
}

func TestLeftDrag(t *testing.T) {
	in := New()
	in.Handle(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 10, MouseY: 10})
	in.Handle(Event{Type: EventMouseMove, MouseX: 14, MouseY: 7})
	in.Handle(Event{Type: EventMouseMove, MouseX: 16, MouseY: 7})

	if d := in.Drag(sdl.BUTTON_LEFT); d != (Drag{DX: 6, DY: -3}) {
		t.Errorf("left drag = %+v", d)
	}
	if d := in.Drag(sdl.BUTTON_RIGHT); d != (Drag{}) {
		t.Errorf("right drag should be empty, got %+v", d)
	}

	in.BeginFrame()
	if d := in.Drag(sdl.BUTTON_LEFT); d != (Drag{}) {
		t.Errorf("drag should reset each frame, got %+v", d)
	}
}

func TestMoveWithoutButtonIsNotADrag(t *testing.T) {
	in := New()
	in.Handle(Event{Type: EventMouseMove, MouseX: 5, MouseY: 5})
	in.Handle(Event{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT, MouseX: 5, MouseY: 5})
	in.Handle(Event{Type: EventMouseMove, MouseX: 8, MouseY: 5})
	in.Handle(Event{Type: EventMouseUp, Button: sdl.BUTTON_RIGHT, MouseX: 8, MouseY: 5})
	in.Handle(Event{Type: EventMouseMove, MouseX: 20, MouseY: 20})

	if d := in.Drag(sdl.BUTTON_RIGHT); d != (Drag{DX: 3}) {
		t.Errorf("right drag = %+v, want {3 0}", d)
	}
}

func TestEventsRecorded(t *testing.T) {
	in := New()
	in.Handle(Event{Type: EventWindowResize, Width: 640, Height: 480})

	ev := in.Events()
	if len(ev) != 1 || ev[0].Width != 640 {
		t.Errorf("unexpected events %+v", ev)
	}
}
