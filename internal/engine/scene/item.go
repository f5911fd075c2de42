package scene

import (
	"github.com/Faultbox/mirror-room/internal/engine/frame"
	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/pkg/math"
)

// MeshHandle indexes a mesh in a Registry.
type MeshHandle int

// MaterialHandle indexes a material in a Registry.
type MaterialHandle int

// ItemHandle indexes a render item in a Registry.
type ItemHandle int

// Vertex is the standard vertex: position, normal, texture coordinate.
type Vertex struct {
	Pos    [3]float32
	Normal [3]float32
	TexC   [2]float32
}

// Submesh is a range of a mesh's index buffer.
type Submesh struct {
	IndexCount int
	StartIndex int
	BaseVertex int
}

// Mesh is a vertex/index buffer pair with named submeshes. It is immutable
// once uploaded.
type Mesh struct {
	Name        string
	Vertices    []Vertex
	IndexFormat gfx.IndexFormat
	Indices16   []uint16
	Indices32   []uint32
	Submeshes   map[string]Submesh

	VertexBuffer gfx.Buffer
	IndexBuffer  gfx.Buffer
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	if m.IndexFormat == gfx.Index32 {
		return len(m.Indices32)
	}
	return len(m.Indices16)
}

// Material holds surface parameters written to the material constants.
type Material struct {
	Name string

	// MatCBIndex is the material's element in the material buffer.
	MatCBIndex int
	// DiffuseSrvHeapIndex is the descriptor heap entry of its texture.
	DiffuseSrvHeapIndex int

	DiffuseAlbedo [4]float32
	FresnelR0     [3]float32
	Roughness     float32
	MatTransform  math.Mat4

	// NumFramesDirty counts the frame resources still holding stale
	// constants.
	NumFramesDirty int
}

// MarkDirty schedules the material for upload into every frame resource.
func (m *Material) MarkDirty() {
	m.NumFramesDirty = frame.NumFrameResources
}

// Constants returns the material constants in shader layout.
func (m *Material) Constants() frame.MaterialConstants {
	return frame.MaterialConstants{
		DiffuseAlbedo: m.DiffuseAlbedo,
		FresnelR0:     m.FresnelR0,
		Roughness:     m.Roughness,
		MatTransform:  m.MatTransform,
	}.Transposed()
}

// RenderItem is everything needed to issue one draw call.
type RenderItem struct {
	World        math.Mat4
	TexTransform math.Mat4

	// NumFramesDirty counts the frame resources still holding a stale
	// world matrix.
	NumFramesDirty int

	// ObjCBIndex is the item's element in the object buffer. It is
	// assigned once by the registry and never changes.
	ObjCBIndex int

	Material MaterialHandle
	Mesh     MeshHandle

	Topology   gfx.Topology
	IndexCount int
	StartIndex int
	BaseVertex int
}

// SetWorld replaces the world matrix and marks the item dirty.
func (it *RenderItem) SetWorld(world math.Mat4) {
	it.World = world
	it.MarkDirty()
}

// MarkDirty schedules the item for upload into every frame resource.
func (it *RenderItem) MarkDirty() {
	it.NumFramesDirty = frame.NumFrameResources
}

// Constants returns the object constants in shader layout.
func (it *RenderItem) Constants() frame.ObjectConstants {
	return frame.ObjectConstants{
		World:        it.World,
		TexTransform: it.TexTransform,
	}.Transposed()
}
