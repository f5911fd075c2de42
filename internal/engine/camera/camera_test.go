package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/mirror-room/pkg/math"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestEyePos(t *testing.T) {
	c := NewOrbitCamera(0, 0.5*math32.Pi, 10)
	eye := c.EyePos()

	if abs(eye.X-10) > 1e-4 || abs(eye.Y) > 1e-4 || abs(eye.Z) > 1e-4 {
		t.Errorf("expected (10,0,0), got %+v", eye)
	}
	if abs(eye.Length()-10) > 1e-4 {
		t.Errorf("eye should lie on the sphere, |eye| = %v", eye.Length())
	}
}

func TestNewClamps(t *testing.T) {
	c := NewOrbitCamera(0, 0, 1000)
	if c.Phi != MinPhi || c.Radius != MaxRadius {
		t.Errorf("expected clamped phi and radius, got %v %v", c.Phi, c.Radius)
	}
}

func TestOnLeftDrag(t *testing.T) {
	c := NewOrbitCamera(0, 1, 10)
	c.OnLeftDrag(4, 0)

	if abs(c.Theta-math.Radians(1)) > 1e-6 {
		t.Errorf("4px should turn 1 degree, theta = %v", c.Theta)
	}

	c.OnLeftDrag(0, 10000)
	if c.Phi != MaxPhi {
		t.Errorf("phi should clamp to %v, got %v", MaxPhi, c.Phi)
	}
	c.OnLeftDrag(0, -20000)
	if c.Phi != MinPhi {
		t.Errorf("phi should clamp to %v, got %v", MinPhi, c.Phi)
	}
}

func TestOnRightDrag(t *testing.T) {
	c := NewOrbitCamera(0, 1, 10)

	c.OnRightDrag(10, 0)
	if abs(c.Radius-12) > 1e-5 {
		t.Errorf("radius = %v, want 12", c.Radius)
	}
	c.OnRightDrag(0, 10)
	if abs(c.Radius-10) > 1e-5 {
		t.Errorf("dragging down should zoom in, radius = %v", c.Radius)
	}
	c.OnRightDrag(-1000, 0)
	if c.Radius != MinRadius {
		t.Errorf("radius should clamp to %v, got %v", MinRadius, c.Radius)
	}
}

func TestViewMatrixCentersOrigin(t *testing.T) {
	c := NewOrbitCamera(1.24*math32.Pi, 0.42*math32.Pi, 12)
	p := c.ViewMatrix().TransformPoint(math.Vec3{})

	if abs(p.X) > 1e-4 || abs(p.Y) > 1e-4 || abs(p.Z-12) > 1e-4 {
		t.Errorf("origin should be straight ahead at the radius, got %+v", p)
	}
}
