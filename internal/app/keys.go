package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/mirror-room/internal/engine/scene"
)

// sceneKeys maps the held keys to the scene controls.
func sceneKeys(down func(sdl.Scancode) bool) scene.Keys {
	return scene.Keys{
		Select1: down(sdl.SCANCODE_1),
		Select2: down(sdl.SCANCODE_2),
		A:       down(sdl.SCANCODE_A),
		D:       down(sdl.SCANCODE_D),
		W:       down(sdl.SCANCODE_W),
		S:       down(sdl.SCANCODE_S),
		Q:       down(sdl.SCANCODE_Q),
		E:       down(sdl.SCANCODE_E),
	}
}
