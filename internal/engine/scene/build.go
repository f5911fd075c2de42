// Package scene is the mirror room: its meshes, materials and render items,
// the per-frame constant updates and the stencil draw sequence.
package scene

import (
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/engine/frame"
	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/engine/mirror"
	"github.com/Faultbox/mirror-room/internal/logger"
	"github.com/Faultbox/mirror-room/pkg/formats"
	"github.com/Faultbox/mirror-room/pkg/math"
)

// SkullStarts are the initial skull positions: one in front of the room
// and one behind it.
var SkullStarts = []math.Vec3{
	{X: 0, Y: 0, Z: -4},
	{X: 0, Y: 0, Z: 12},
}

// MainLightDir is the direction the key light travels. Shadows are cast
// along it.
var MainLightDir = math.Vec3{X: 0.57735, Y: -0.57735, Z: 0.57735}

// SkullWorld returns the world matrix of a skull at t: turned a quarter
// around Y, scaled to 0.45 and moved to t.
func SkullWorld(t math.Vec3) math.Mat4 {
	return math.TranslateVec(t).
		Mul(math.Scale(0.45, 0.45, 0.45)).
		Mul(math.RotateY(0.5 * stdmath.Pi))
}

// Skull ties a skull render item to its reflected copies and shadow.
type Skull struct {
	Translation math.Vec3
	Item        ItemHandle
	Reflections [mirror.SideCount]ItemHandle
	Shadow      ItemHandle
}

// Scene is the mirror room.
type Scene struct {
	reg      *Registry
	skulls   []Skull
	selected int

	// ShadowsEnabled draws the shadow layer after the mirrors.
	ShadowsEnabled bool

	mainPass      frame.PassConstants
	reflectedPass frame.PassConstants

	log *zap.Logger
}

// Build creates the room and, when skull has triangles, the skulls with
// their reflections and shadows.
func Build(skull *formats.Model) *Scene {
	s := &Scene{
		reg: NewRegistry(),
		log: logger.Named("scene"),
	}

	for _, name := range TextureNames {
		s.reg.AddTexture(name)
	}
	buildMaterials(s.reg)

	room := s.reg.AddMesh(BuildRoomMesh())

	if skull != nil && skull.TriangleCount() > 0 {
		s.buildSkulls(skull)
	}
	s.buildMirrors(room)

	s.log.Info("scene built",
		zap.Int("items", len(s.reg.Items())),
		zap.Int("materials", len(s.reg.Materials())),
		zap.Int("skulls", len(s.skulls)))
	return s
}

func (s *Scene) buildSkulls(model *formats.Model) {
	mesh := s.reg.AddMesh(BuildSkullMesh(model))
	sub := s.reg.Mesh(mesh).Submeshes[SkullPart]
	skullMat, _ := s.reg.MaterialByName(SkullMaterial)
	shadowMat, _ := s.reg.MaterialByName(ShadowMaterial)

	newItem := func(mat MaterialHandle) *RenderItem {
		return &RenderItem{
			World:        math.Identity(),
			TexTransform: math.Identity(),
			Material:     mat,
			Mesh:         mesh,
			Topology:     gfx.TriangleList,
			IndexCount:   sub.IndexCount,
			StartIndex:   sub.StartIndex,
			BaseVertex:   sub.BaseVertex,
		}
	}

	for _, start := range SkullStarts {
		sk := Skull{Translation: start}
		sk.Item = s.reg.AddItem(newItem(skullMat), Opaque)
		for _, side := range mirror.Sides {
			sk.Reflections[side] = s.reg.AddItem(newItem(skullMat), ReflectedLayer(side))
		}
		sk.Shadow = s.reg.AddItem(newItem(shadowMat), Shadow)

		s.skulls = append(s.skulls, sk)
		s.placeSkull(len(s.skulls) - 1)
	}
}

func (s *Scene) buildMirrors(room MeshHandle) {
	mat, _ := s.reg.MaterialByName(MirrorMaterial)
	mesh := s.reg.Mesh(room)

	for _, side := range []mirror.Side{mirror.Front, mirror.Top, mirror.Left, mirror.Right, mirror.Back, mirror.Bottom} {
		sub := mesh.Submeshes[MirrorSubmesh(side)]
		s.reg.AddItem(&RenderItem{
			World:        math.Identity(),
			TexTransform: math.Identity(),
			Material:     mat,
			Mesh:         room,
			Topology:     gfx.TriangleList,
			IndexCount:   sub.IndexCount,
			StartIndex:   sub.StartIndex,
			BaseVertex:   sub.BaseVertex,
		}, MirrorLayer(side), Transparent)
	}
}

// placeSkull recomputes the world matrices of skull i, its reflections and
// its shadow from its translation and marks them dirty.
func (s *Scene) placeSkull(i int) {
	sk := &s.skulls[i]
	world := SkullWorld(sk.Translation)

	s.reg.Item(sk.Item).SetWorld(world)
	for _, side := range mirror.Sides {
		s.reg.Item(sk.Reflections[side]).SetWorld(mirror.Compose(world, side))
	}
	s.reg.Item(sk.Shadow).SetWorld(mirror.Shadow(world, mirror.GroundPlane, MainLightDir))
}

// Registry returns the scene's registry.
func (s *Scene) Registry() *Registry {
	return s.reg
}

// Skulls returns the skulls in selection order. It is empty when the skull
// model could not be loaded.
func (s *Scene) Skulls() []Skull {
	return s.skulls
}

// Counts returns the constant buffer sizes a frame resource needs.
func (s *Scene) Counts() frame.Counts {
	return frame.Counts{
		Passes:    frame.PassCount,
		Objects:   len(s.reg.Items()),
		Materials: len(s.reg.Materials()),
	}
}
