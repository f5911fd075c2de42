package scene

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// Registry owns meshes, materials and render items and hands out integer
// handles to them. Handles stay valid for the registry's lifetime.
type Registry struct {
	meshes       []*Mesh
	meshByName   map[string]MeshHandle
	materials    []*Material
	matByName    map[string]MaterialHandle
	items        []*RenderItem
	layers       [LayerCount][]ItemHandle
	textureNames []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		meshByName: make(map[string]MeshHandle),
		matByName:  make(map[string]MaterialHandle),
	}
}

// AddMesh registers m.
func (r *Registry) AddMesh(m *Mesh) MeshHandle {
	h := MeshHandle(len(r.meshes))
	r.meshes = append(r.meshes, m)
	r.meshByName[m.Name] = h
	return h
}

// Mesh returns the mesh behind h. An invalid handle is a programming error.
func (r *Registry) Mesh(h MeshHandle) *Mesh {
	if h < 0 || int(h) >= len(r.meshes) {
		panic(fmt.Sprintf("scene: invalid mesh handle %d", h))
	}
	return r.meshes[h]
}

// MeshByName looks up a mesh handle.
func (r *Registry) MeshByName(name string) (MeshHandle, bool) {
	h, ok := r.meshByName[name]
	return h, ok
}

// AddMaterial registers m, assigns its constant buffer slot and marks it
// dirty.
func (r *Registry) AddMaterial(m *Material) MaterialHandle {
	h := MaterialHandle(len(r.materials))
	m.MatCBIndex = int(h)
	m.MarkDirty()
	r.materials = append(r.materials, m)
	r.matByName[m.Name] = h
	return h
}

// Material returns the material behind h. An invalid handle is a
// programming error.
func (r *Registry) Material(h MaterialHandle) *Material {
	if h < 0 || int(h) >= len(r.materials) {
		panic(fmt.Sprintf("scene: invalid material handle %d", h))
	}
	return r.materials[h]
}

// MaterialByName looks up a material handle.
func (r *Registry) MaterialByName(name string) (MaterialHandle, bool) {
	h, ok := r.matByName[name]
	return h, ok
}

// Materials returns every material in slot order.
func (r *Registry) Materials() []*Material {
	return r.materials
}

// AddItem registers it in the given layers, assigns its object buffer
// slot and marks it dirty.
func (r *Registry) AddItem(it *RenderItem, layers ...RenderLayer) ItemHandle {
	h := ItemHandle(len(r.items))
	it.ObjCBIndex = int(h)
	it.MarkDirty()
	r.items = append(r.items, it)
	for _, l := range layers {
		r.layers[l] = append(r.layers[l], h)
	}
	return h
}

// Item returns the render item behind h.
func (r *Registry) Item(h ItemHandle) *RenderItem {
	if h < 0 || int(h) >= len(r.items) {
		panic(fmt.Sprintf("scene: invalid item handle %d", h))
	}
	return r.items[h]
}

// Items returns every render item in slot order.
func (r *Registry) Items() []*RenderItem {
	return r.items
}

// Layer returns the items of l in insertion order.
func (r *Registry) Layer(l RenderLayer) []ItemHandle {
	return r.layers[l]
}

// AddTexture registers a texture name and returns its descriptor index.
func (r *Registry) AddTexture(name string) int {
	r.textureNames = append(r.textureNames, name)
	return len(r.textureNames) - 1
}

// TextureNames returns the texture names in descriptor order.
func (r *Registry) TextureNames() []string {
	return r.textureNames
}

// Upload creates the GPU buffers of every mesh.
func (r *Registry) Upload(dev gfx.Device) error {
	for _, m := range r.meshes {
		if m.VertexBuffer != nil {
			continue
		}
		vb, err := dev.CreateBuffer(gfx.VertexBuffer, encodeSlice(m.Vertices))
		if err != nil {
			return fmt.Errorf("uploading %s vertices: %w", m.Name, err)
		}
		m.VertexBuffer = vb

		var indices []byte
		if m.IndexFormat == gfx.Index32 {
			indices = encodeSlice(m.Indices32)
		} else {
			indices = encodeSlice(m.Indices16)
		}
		ib, err := dev.CreateBuffer(gfx.IndexBuffer, indices)
		if err != nil {
			return fmt.Errorf("uploading %s indices: %w", m.Name, err)
		}
		m.IndexBuffer = ib
	}
	return nil
}

// Release frees every mesh buffer.
func (r *Registry) Release() error {
	var err error
	for _, m := range r.meshes {
		if m.VertexBuffer != nil {
			err = multierr.Append(err, m.VertexBuffer.Release())
			m.VertexBuffer = nil
		}
		if m.IndexBuffer != nil {
			err = multierr.Append(err, m.IndexBuffer.Release())
			m.IndexBuffer = nil
		}
	}
	return err
}

func encodeSlice[T any](s []T) []byte {
	b, err := binary.Append(nil, binary.LittleEndian, s)
	if err != nil {
		panic(err)
	}
	return b
}
