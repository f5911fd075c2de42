// Package camera provides the orbit camera that circles the mirror room.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/mirror-room/pkg/math"
)

// Orbit limits.
const (
	MinPhi    = 0.1
	MaxPhi    = math32.Pi - 0.1
	MinRadius = 5.0
	MaxRadius = 150.0
)

// Mouse sensitivity.
const (
	// DegreesPerPixel is the orbit rotation per pixel of left drag.
	DegreesPerPixel = 0.25
	// UnitsPerPixel is the radius change per pixel of right drag.
	UnitsPerPixel = 0.2
)

// Projection parameters.
const (
	FovY  = 0.25 * math32.Pi
	NearZ = 1.0
	FarZ  = 1000.0
)

// OrbitCamera looks at the origin from a point on a sphere.
type OrbitCamera struct {
	// Spherical coordinates
	Theta  float32 // Azimuth around Y (radians)
	Phi    float32 // Polar angle from +Y (radians)
	Radius float32 // Distance from the origin
}

// NewOrbitCamera creates a camera at the given spherical coordinates,
// clamped to the orbit limits.
func NewOrbitCamera(theta, phi, radius float32) *OrbitCamera {
	c := &OrbitCamera{Theta: theta, Phi: phi, Radius: radius}
	c.clamp()
	return c
}

func (c *OrbitCamera) clamp() {
	c.Phi = math.Clamp(c.Phi, MinPhi, MaxPhi)
	c.Radius = math.Clamp(c.Radius, MinRadius, MaxRadius)
}

// EyePos returns the camera position in world space.
func (c *OrbitCamera) EyePos() math.Vec3 {
	sinPhi, cosPhi := math32.Sincos(c.Phi)
	sinTheta, cosTheta := math32.Sincos(c.Theta)

	return math.Vec3{
		X: c.Radius * sinPhi * cosTheta,
		Y: c.Radius * cosPhi,
		Z: c.Radius * sinPhi * sinTheta,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAtLH(c.EyePos(), math.Vec3{}, up)
}

// Projection returns the perspective projection for a target with the
// given aspect ratio.
func Projection(aspect float32) math.Mat4 {
	return math.PerspectiveLH(FovY, aspect, NearZ, FarZ)
}

// OnLeftDrag orbits by DegreesPerPixel for each pixel moved.
func (c *OrbitCamera) OnLeftDrag(dx, dy float32) {
	c.Theta += math.Radians(DegreesPerPixel * dx)
	c.Phi += math.Radians(DegreesPerPixel * dy)
	c.clamp()
}

// OnRightDrag zooms by UnitsPerPixel for each pixel moved. Dragging right
// or up moves away from the origin.
func (c *OrbitCamera) OnRightDrag(dx, dy float32) {
	c.Radius += UnitsPerPixel*dx - UnitsPerPixel*dy
	c.clamp()
}
