// Package mirror holds the six mirror faces of the room and the matrices
// that place reflected and shadowed copies of an object.
package mirror

import (
	"fmt"

	"github.com/Faultbox/mirror-room/pkg/math"
)

// Side identifies one face of the mirror room.
type Side int

// Mirror faces, in draw order.
const (
	Front Side = iota
	Back
	Left
	Right
	Top
	Bottom
	SideCount
)

// Sides lists every face in draw order.
var Sides = [SideCount]Side{Front, Back, Left, Right, Top, Bottom}

var sideNames = [SideCount]string{"front", "back", "left", "right", "top", "bottom"}

func (s Side) String() string {
	if s >= 0 && s < SideCount {
		return sideNames[s]
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Face describes how an object is mirrored into one face.
//
// The reflection plane passes through the origin; Offset then moves the
// reflected copy so that it lies behind the actual face of the room. A copy
// whose translation coordinate Axis is past Threshold would appear on the
// viewer's side of the mirror and is collapsed instead.
type Face struct {
	Plane     math.Vec4
	Offset    math.Vec3
	Axis      int
	Threshold float32
	// Above selects the collapse direction: coordinate > Threshold when
	// true, coordinate < Threshold otherwise.
	Above bool
}

var faces = [SideCount]Face{
	Front:  {Plane: math.Vec4{0, 0, 1, 0}, Offset: math.Vec3{}, Axis: 2, Threshold: 0, Above: false},
	Back:   {Plane: math.Vec4{0, 0, 1, 0}, Offset: math.Vec3{Z: 16}, Axis: 2, Threshold: 8, Above: true},
	Left:   {Plane: math.Vec4{1, 0, 0, 0}, Offset: math.Vec3{X: -8}, Axis: 0, Threshold: -4, Above: false},
	Right:  {Plane: math.Vec4{1, 0, 0, 0}, Offset: math.Vec3{X: 8}, Axis: 0, Threshold: 4, Above: true},
	Top:    {Plane: math.Vec4{0, 1, 0, 0}, Offset: math.Vec3{Y: 8}, Axis: 1, Threshold: 4, Above: true},
	Bottom: {Plane: math.Vec4{0, 1, 0, 0}, Offset: math.Vec3{Y: -8}, Axis: 1, Threshold: -4, Above: false},
}

// Face returns the fixed description of s.
func (s Side) Face() Face {
	return faces[s]
}

// Reflection returns the reflection matrix for s without the offset.
func (s Side) Reflection() math.Mat4 {
	return math.Reflect(faces[s].Plane)
}

// Past reports whether m's translation is past the face threshold.
// The comparison is strict: a copy exactly at the threshold stays visible.
func (f Face) Past(m math.Mat4) bool {
	c := m.Translation().Axis(f.Axis)
	if f.Above {
		return c > f.Threshold
	}
	return c < f.Threshold
}

// Compose returns the world matrix of world's copy reflected into s:
// world, then the reflection, then the face offset, collapsed to zero scale
// when it would be on the wrong side of the mirror.
func Compose(world math.Mat4, s Side) math.Mat4 {
	f := faces[s]
	composed := math.TranslateVec(f.Offset).Mul(math.Reflect(f.Plane)).Mul(world)
	return Clamp(composed, s)
}

// Clamp collapses m to a zero-scale matrix when it is past the threshold of
// face s. The copy pops out of existence rather than fading.
func Clamp(m math.Mat4, s Side) math.Mat4 {
	if faces[s].Past(m) {
		return math.Scale(0, 0, 0).Mul(m)
	}
	return m
}

// ShadowOffset lifts shadows off the ground to avoid z-fighting.
const ShadowOffset = 0.001

// GroundPlane is the xz plane, y = 0, that shadows are cast onto.
var GroundPlane = math.Vec4{0, 1, 0, 0}

// Shadow returns the world matrix that flattens world onto ground along
// lightDir, the direction the light travels.
func Shadow(world math.Mat4, ground math.Vec4, lightDir math.Vec3) math.Mat4 {
	toLight := math.Direction(lightDir.Neg())
	s := math.Shadow(ground, toLight)
	return math.Translate(0, ShadowOffset, 0).Mul(s).Mul(world)
}

// ReflectLight mirrors a light direction and position through the plane of
// s, for lighting the reflected pass.
func ReflectLight(s Side, direction, position math.Vec3) (math.Vec3, math.Vec3) {
	r := s.Reflection()
	return r.TransformDirection(direction), r.TransformPoint(position)
}
