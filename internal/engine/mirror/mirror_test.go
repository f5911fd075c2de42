package mirror

import (
	"testing"

	"github.com/Faultbox/mirror-room/pkg/math"
)

func TestSidesOrder(t *testing.T) {
	want := []string{"front", "back", "left", "right", "top", "bottom"}
	for i, s := range Sides {
		if s.String() != want[i] {
			t.Errorf("Sides[%d] = %s, want %s", i, s, want[i])
		}
	}
	if Side(42).String() != "Side(42)" {
		t.Errorf("unexpected name for invalid side: %s", Side(42))
	}
}

func TestReflectionIsInvolution(t *testing.T) {
	p := math.Vec3{1.5, -2, 3}
	for _, s := range Sides {
		r := s.Reflection()
		got := r.TransformPoint(r.TransformPoint(p))
		if got != p {
			t.Errorf("%s: reflecting twice gave %v, want %v", s, got, p)
		}
	}
}

func TestComposePlacesCopyBehindFace(t *testing.T) {
	// A skull in front of the room, and one past the back wall.
	front := math.Translate(0, 0, -4)
	back := math.Translate(0, 0, 12)

	tests := []struct {
		name  string
		world math.Mat4
		side  Side
		want  math.Vec3
	}{
		{"front face", front, Front, math.Vec3{0, 0, 4}},
		{"back face", back, Back, math.Vec3{0, 0, 4}},
		{"left face", math.Translate(-6, 0, 4), Left, math.Vec3{-2, 0, 4}},
		{"right face", math.Translate(6, 0, 4), Right, math.Vec3{2, 0, 4}},
		{"top face", math.Translate(0, 6, 4), Top, math.Vec3{0, 2, 4}},
		{"bottom face", math.Translate(0, -6, 4), Bottom, math.Vec3{0, -2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compose(tt.world, tt.side)
			if m.IsZeroScale() {
				t.Fatal("copy should be visible")
			}
			if got := m.Translation(); got != tt.want {
				t.Errorf("translation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampThreshold(t *testing.T) {
	// For each face: an object whose reflected copy lands exactly on the
	// threshold, and one whose copy is one unit past it.
	tests := []struct {
		side    Side
		atEdge  math.Vec3
		pastOne math.Vec3
	}{
		{Front, math.Vec3{0, 0, 0}, math.Vec3{0, 0, 1}},
		{Back, math.Vec3{0, 0, 8}, math.Vec3{0, 0, 7}},
		{Left, math.Vec3{-4, 0, 4}, math.Vec3{-3, 0, 4}},
		{Right, math.Vec3{4, 0, 4}, math.Vec3{3, 0, 4}},
		{Top, math.Vec3{0, 4, 4}, math.Vec3{0, 3, 4}},
		{Bottom, math.Vec3{0, -4, 4}, math.Vec3{0, -3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			if m := Compose(math.TranslateVec(tt.atEdge), tt.side); m.IsZeroScale() {
				t.Errorf("copy exactly at the threshold should stay visible, translation %v", m.Translation())
			}
			m := Compose(math.TranslateVec(tt.pastOne), tt.side)
			if !m.IsZeroScale() {
				t.Errorf("copy one unit past the threshold should collapse, translation %v", m.Translation())
			}
			if m.Translation() != (math.Vec3{}) {
				t.Errorf("collapsed copy should sit at the origin, got %v", m.Translation())
			}
		})
	}
}

func TestClampLeavesVisibleMatrixUntouched(t *testing.T) {
	m := math.Translate(0, 0, 4).Mul(math.Scale(0.45, 0.45, 0.45))
	if got := Clamp(m, Front); got != m {
		t.Errorf("Clamp changed a visible matrix: %v", got)
	}
}

func TestShadowLandsOnGround(t *testing.T) {
	lightDir := math.Vec3{0.57735, -0.57735, 0.57735}
	world := math.Translate(0, 0, -4)
	s := Shadow(world, GroundPlane, lightDir)

	p := s.TransformPoint(math.Vec3{0, 1, 0})
	if d := p.Y - ShadowOffset; d > 1e-4 || d < -1e-4 {
		t.Errorf("shadow point y = %v, want %v", p.Y, float32(ShadowOffset))
	}
	// The light travels towards +x and +z, so the shadow of a raised point
	// moves the same way.
	if p.X <= 0 || p.Z <= -4 {
		t.Errorf("shadow should be pushed along the light, got %v", p)
	}
}

func TestShadowFlattensEveryHeightOntoXZPlane(t *testing.T) {
	lightDir := math.Vec3{0.57735, -0.57735, 0.57735}
	s := Shadow(math.Identity(), GroundPlane, lightDir)

	for _, y := range []float32{-4, 0, 3} {
		p := s.TransformPoint(math.Vec3{1, y, 2})
		if d := p.Y - ShadowOffset; d > 1e-4 || d < -1e-4 {
			t.Errorf("point at y=%v lands at y=%v", y, p.Y)
		}
	}
}

func TestReflectLightThroughFront(t *testing.T) {
	dir, pos := ReflectLight(Front, math.Vec3{0.57735, -0.57735, 0.57735}, math.Vec3{1, -3, -5})

	if dir != (math.Vec3{0.57735, -0.57735, -0.57735}) {
		t.Errorf("reflected direction = %v", dir)
	}
	if pos != (math.Vec3{1, -3, 5}) {
		t.Errorf("reflected position = %v", pos)
	}
}
