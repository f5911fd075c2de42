package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/pkg/math"
)

// MoveSpeed is how far a skull travels per second while a key is held.
const MoveSpeed = 2.0

// Keys is the keyboard state the scene reacts to.
type Keys struct {
	Select1, Select2 bool
	// A/D move along -z/+z, W/S along +y/-y, Q/E along +x/-x.
	A, D, W, S, Q, E bool
}

// Direction returns the unit movement per axis the keys ask for.
func (k Keys) Direction() math.Vec3 {
	var d math.Vec3
	if k.A {
		d.Z--
	}
	if k.D {
		d.Z++
	}
	if k.W {
		d.Y++
	}
	if k.S {
		d.Y--
	}
	if k.Q {
		d.X++
	}
	if k.E {
		d.X--
	}
	return d
}

// Selected returns the index of the skull the keyboard moves.
func (s *Scene) Selected() int {
	return s.selected
}

// Select makes skull i the keyboard target. It reports whether i exists.
func (s *Scene) Select(i int) bool {
	if i < 0 || i >= len(s.skulls) {
		return false
	}
	if i != s.selected {
		s.log.Debug("skull selected", zap.Int("skull", i))
	}
	s.selected = i
	return true
}

// OnKeyboardInput applies one frame of keyboard input. It returns true when
// the selected skull moved.
func (s *Scene) OnKeyboardInput(k Keys, dt float32) bool {
	if k.Select1 {
		s.Select(0)
	}
	if k.Select2 {
		s.Select(1)
	}

	dir := k.Direction()
	if dir == (math.Vec3{}) {
		return false
	}
	return s.MoveSelected(dir.Scale(MoveSpeed * dt))
}

// MoveSelected translates the selected skull by delta and recomputes its
// reflections and shadow. It returns false when there is no skull.
func (s *Scene) MoveSelected(delta math.Vec3) bool {
	if s.selected >= len(s.skulls) {
		return false
	}
	sk := &s.skulls[s.selected]
	sk.Translation = sk.Translation.Add(delta)
	s.placeSkull(s.selected)
	return true
}
