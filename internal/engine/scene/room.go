package scene

import (
	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/engine/mirror"
	"github.com/Faultbox/mirror-room/pkg/formats"
	"github.com/Faultbox/mirror-room/pkg/math"
)

// Mesh and submesh names.
const (
	RoomMesh  = "roomGeo"
	SkullMesh = "skullGeo"
	SkullPart = "skull"
)

// Texture names in descriptor heap order.
const (
	BricksTexture  = "bricksTex"
	CheckerTexture = "checkboardTex"
	IceTexture     = "iceTex"
	WhiteTexture   = "white1x1Tex"
)

// TextureNames lists the scene textures in descriptor heap order.
var TextureNames = []string{BricksTexture, CheckerTexture, IceTexture, WhiteTexture}

// Material names.
const (
	BricksMaterial  = "bricks"
	CheckerMaterial = "checkertile"
	MirrorMaterial  = "icemirror"
	SkullMaterial   = "skullMat"
	ShadowMaterial  = "shadowMat"
)

// mirrorSubmeshes names the room submesh of each mirror face.
var mirrorSubmeshes = [mirror.SideCount]string{
	mirror.Front:  "mirrorFront",
	mirror.Back:   "mirrorBack",
	mirror.Left:   "mirrorLeft",
	mirror.Right:  "mirrorRight",
	mirror.Top:    "mirrorTop",
	mirror.Bottom: "mirrorBottom",
}

// MirrorSubmesh returns the room submesh name of s.
func MirrorSubmesh(s mirror.Side) string {
	return mirrorSubmeshes[s]
}

// BuildRoomMesh returns the 8-vertex cube whose six faces are the mirrors.
// The cube spans x and y in [-4, 4] and z in [0, 8].
func BuildRoomMesh() *Mesh {
	vertices := []Vertex{
		{Pos: [3]float32{-4, -4, 0}, Normal: [3]float32{0, 0, -1}, TexC: [2]float32{0, 1}},
		{Pos: [3]float32{-4, 4, 0}, Normal: [3]float32{0, 0, -1}, TexC: [2]float32{0, 0}},
		{Pos: [3]float32{4, 4, 0}, Normal: [3]float32{0, 0, -1}, TexC: [2]float32{1, 0}},
		{Pos: [3]float32{4, -4, 0}, Normal: [3]float32{0, 0, -1}, TexC: [2]float32{1, 1}},
		{Pos: [3]float32{4, 4, 8}, Normal: [3]float32{0, -1, 0}, TexC: [2]float32{1, 1}},
		{Pos: [3]float32{-4, 4, 8}, Normal: [3]float32{0, -1, 0}, TexC: [2]float32{0, 1}},
		{Pos: [3]float32{-4, -4, 8}, Normal: [3]float32{-1, 0, 0}, TexC: [2]float32{1, 1}},
		{Pos: [3]float32{4, -4, 8}, Normal: [3]float32{1, 0, 0}, TexC: [2]float32{0, 0}},
	}

	indices := []uint16{
		0, 1, 2, 0, 2, 3, // front
		1, 4, 2, 1, 5, 4, // top
		6, 1, 0, 6, 5, 1, // left
		3, 2, 7, 2, 4, 7, // right
		4, 5, 6, 4, 6, 7, // back
		0, 3, 6, 7, 6, 3, // bottom
	}

	sub := func(start int) Submesh {
		return Submesh{IndexCount: 6, StartIndex: start, BaseVertex: 0}
	}
	return &Mesh{
		Name:        RoomMesh,
		Vertices:    vertices,
		IndexFormat: gfx.Index16,
		Indices16:   indices,
		Submeshes: map[string]Submesh{
			mirrorSubmeshes[mirror.Front]:  sub(0),
			mirrorSubmeshes[mirror.Top]:    sub(6),
			mirrorSubmeshes[mirror.Left]:   sub(12),
			mirrorSubmeshes[mirror.Right]:  sub(18),
			mirrorSubmeshes[mirror.Back]:   sub(24),
			mirrorSubmeshes[mirror.Bottom]: sub(30),
		},
	}
}

// BuildSkullMesh converts a parsed text model into a mesh with a single
// "skull" submesh and 32-bit indices.
func BuildSkullMesh(m *formats.Model) *Mesh {
	vertices := make([]Vertex, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = Vertex{Pos: v.Position, Normal: v.Normal}
	}
	indices := append([]uint32(nil), m.Indices...)

	return &Mesh{
		Name:        SkullMesh,
		Vertices:    vertices,
		IndexFormat: gfx.Index32,
		Indices32:   indices,
		Submeshes: map[string]Submesh{
			SkullPart: {IndexCount: len(indices)},
		},
	}
}

// materialDef is one row of the scene material table.
type materialDef struct {
	name      string
	texture   int
	albedo    [4]float32
	fresnelR0 float32
	roughness float32
}

var sceneMaterials = []materialDef{
	{BricksMaterial, 0, [4]float32{1, 1, 1, 1}, 0.05, 0.25},
	{CheckerMaterial, 1, [4]float32{1, 1, 1, 1}, 0.07, 0.3},
	{MirrorMaterial, 2, [4]float32{1, 1, 1, 0.3}, 0.1, 0.5},
	{SkullMaterial, 3, [4]float32{1, 1, 1, 1}, 0.05, 0.3},
	{ShadowMaterial, 3, [4]float32{0, 0, 0, 0.5}, 0.001, 0},
}

func buildMaterials(reg *Registry) {
	for _, d := range sceneMaterials {
		reg.AddMaterial(&Material{
			Name:                d.name,
			DiffuseSrvHeapIndex: d.texture,
			DiffuseAlbedo:       d.albedo,
			FresnelR0:           [3]float32{d.fresnelR0, d.fresnelR0, d.fresnelR0},
			Roughness:           d.roughness,
			MatTransform:        math.Identity(),
		})
	}
}
