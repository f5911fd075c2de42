package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v, want (5, 10, 15)", got)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})

	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint: got %v, want (11, 22, 33)", got)
	}
}

func TestMulOrderAppliesRightFirst(t *testing.T) {
	// Scale then translate: (1,0,0) -> (2,0,0) -> (2,0,5)
	m := Translate(0, 0, 5).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 0, 0})

	if got != (Vec3{2, 0, 5}) {
		t.Errorf("T*S applied to (1,0,0) = %v, want (2,0,5)", got)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	got := m.TransformPoint(Vec3{0, 0, 1})

	// +Z turns towards +X
	if abs(got.X-1) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z) > 0.001 {
		t.Errorf("RotateY 90 of +Z: got %v, want (1, 0, 0)", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()

	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose should move translation to the last row, got %v", tr)
	}
	if tr.Transpose() != m {
		t.Error("Transpose twice should return the original matrix")
	}
}

func TestReflectIsInvolution(t *testing.T) {
	planes := []Vec4{
		{0, 0, 1, 0},
		{1, 0, 0, 0},
		{0, 1, 0, -4},
		{1, 1, 0, 2},
	}
	points := []Vec3{
		{0, 0, -4},
		{1.5, -2, 7},
		{-3, 3, 3},
	}

	for _, p := range planes {
		r := Reflect(p)
		for _, pt := range points {
			got := r.TransformPoint(r.TransformPoint(pt))
			if !approxVec(got, pt, 1e-4) {
				t.Errorf("plane %v: reflect twice of %v = %v", p, pt, got)
			}
		}
	}
}

func TestReflectAcrossXYPlane(t *testing.T) {
	r := Reflect(Vec4{0, 0, 1, 0})
	got := r.TransformPoint(Vec3{1, 2, -4})

	if got != (Vec3{1, 2, 4}) {
		t.Errorf("reflect (1,2,-4) across z=0: got %v, want (1,2,4)", got)
	}
}

func TestReflectKeepsPointsOnPlane(t *testing.T) {
	plane := Vec4{0, 1, 0, -4} // y = 4
	r := Reflect(plane)
	pt := Vec3{3, 4, -2}

	if got := r.TransformPoint(pt); !approxVec(got, pt, 1e-5) {
		t.Errorf("point on plane moved: got %v, want %v", got, pt)
	}
}

func TestShadowProjectsOntoPlane(t *testing.T) {
	ground := Vec4{0, 1, 0, 4} // y = -4
	toLight := Direction(Vec3{-0.57735, 0.57735, -0.57735})
	s := Shadow(ground, toLight)

	for _, pt := range []Vec3{{0, 0, -4}, {1, 2, 3}, {-2, 3.5, 0.5}} {
		got := s.TransformPoint(pt)
		if d := ground.DistanceTo(got); abs(d) > 1e-4 {
			t.Errorf("shadow of %v = %v is %f away from the plane", pt, got, d)
		}
	}
}

func TestShadowFollowsLightDirection(t *testing.T) {
	ground := Vec4{0, 1, 0, 0}
	toLight := Direction(Vec3{0, 1, 0})
	got := Shadow(ground, toLight).TransformPoint(Vec3{2, 5, -3})

	if !approxVec(got, Vec3{2, 0, -3}, 1e-5) {
		t.Errorf("overhead light shadow: got %v, want (2, 0, -3)", got)
	}
}

func TestPerspectiveLHDepthRange(t *testing.T) {
	near, far := float32(1), float32(1000)
	p := PerspectiveLH(float32(0.25*math.Pi), 1, near, far)

	zNear := p.MulVec4(Vec4{0, 0, near, 1})
	zFar := p.MulVec4(Vec4{0, 0, far, 1})

	if d := zNear[2] / zNear[3]; abs(d+1) > 1e-4 {
		t.Errorf("near plane depth = %f, want -1", d)
	}
	if d := zFar[2] / zFar[3]; abs(d-1) > 1e-3 {
		t.Errorf("far plane depth = %f, want 1", d)
	}
}

func TestLookAtLH(t *testing.T) {
	eye := Vec3{0, 0, -5}
	v := LookAtLH(eye, Vec3{}, Vec3{0, 1, 0})

	if got := v.TransformPoint(eye); !approxVec(got, Vec3{}, 1e-5) {
		t.Errorf("eye should map to origin, got %v", got)
	}
	// The target lies on +Z in a left-handed view space.
	if got := v.TransformPoint(Vec3{}); !approxVec(got, Vec3{0, 0, 5}, 1e-5) {
		t.Errorf("target should map to (0,0,5), got %v", got)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateY(0.7)).Mul(Scale(2, 2, 2))
	got := m.Mul(m.Inverse())

	id := Identity()
	for i := range got {
		if abs(got[i]-id[i]) > 1e-4 {
			t.Fatalf("M * M^-1 element %d = %f, want %f", i, got[i], id[i])
		}
	}
}

func TestIsZeroScale(t *testing.T) {
	if Identity().IsZeroScale() {
		t.Error("identity is not zero-scale")
	}
	if !Scale(0, 0, 0).Mul(Translate(1, 2, 3)).IsZeroScale() {
		t.Error("zero scale matrix should report IsZeroScale")
	}
}

func approxVec(a, b Vec3, eps float32) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
