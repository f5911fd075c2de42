package glgfx

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// Buffer is an immutable vertex or index buffer.
type Buffer struct {
	id   uint32
	kind gfx.BufferKind
	size int
}

// CreateBuffer uploads data into a static buffer.
func (d *Device) CreateBuffer(kind gfx.BufferKind, data []byte) (gfx.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("creating buffer: no data")
	}
	b := &Buffer{kind: kind, size: len(data)}
	gl.GenBuffers(1, &b.id)
	// COPY_WRITE_BUFFER leaves the VAO element binding alone.
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	gl.BufferData(gl.COPY_WRITE_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)

	if err := checkError("creating buffer"); err != nil {
		gl.DeleteBuffers(1, &b.id)
		return nil, err
	}
	return b, nil
}

func (b *Buffer) Size() int { return b.size }

func (b *Buffer) Release() error {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
	return nil
}

// UploadBuffer is a uniform buffer of fixed-size elements.
type UploadBuffer struct {
	id       uint32
	elemSize int
	count    int
}

// CreateUploadBuffer allocates count uniform-buffer elements. Each element
// is padded to the GL uniform offset alignment so it can be bound alone.
func (d *Device) CreateUploadBuffer(elementSize, count int) (gfx.UploadBuffer, error) {
	if elementSize <= 0 || count <= 0 {
		return nil, fmt.Errorf("creating upload buffer: %d elements of %d bytes", count, elementSize)
	}
	stride := alignUp(elementSize, d.uniformAlign)
	u := &UploadBuffer{elemSize: stride, count: count}

	gl.GenBuffers(1, &u.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
	gl.BufferData(gl.UNIFORM_BUFFER, stride*count, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	if err := checkError("creating upload buffer"); err != nil {
		gl.DeleteBuffers(1, &u.id)
		return nil, err
	}
	return u, nil
}

func alignUp(size, align int) int {
	return (size + align - 1) / align * align
}

func (u *UploadBuffer) ElementSize() int { return u.elemSize }
func (u *UploadBuffer) Len() int         { return u.count }

// CopyData writes data into element index.
func (u *UploadBuffer) CopyData(index int, data []byte) {
	if index < 0 || index >= u.count {
		panic(fmt.Sprintf("glgfx: element %d out of range [0,%d)", index, u.count))
	}
	if len(data) > u.elemSize {
		panic(fmt.Sprintf("glgfx: %d bytes exceed element size %d", len(data), u.elemSize))
	}
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, u.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, index*u.elemSize, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (u *UploadBuffer) Release() error {
	if u.id != 0 {
		gl.DeleteBuffers(1, &u.id)
		u.id = 0
	}
	return nil
}

// Texture is a mipmapped RGBA8 texture.
type Texture struct {
	id     uint32
	name   string
	width  int
	height int
}

// CreateTexture uploads img and generates its mip chain.
func (d *Device) CreateTexture(name string, img *image.RGBA) (gfx.Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("creating texture %s: empty image", name)
	}
	t := &Texture{name: name, width: w, height: h}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := checkError("creating texture " + name); err != nil {
		gl.DeleteTextures(1, &t.id)
		return nil, err
	}
	return t, nil
}

func (t *Texture) Name() string              { return t.name }
func (t *Texture) Size() (width, height int) { return t.width, t.height }

func (t *Texture) Release() error {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
	return nil
}

// DescriptorHeap is an indexed table of textures. It does not own them.
type DescriptorHeap struct {
	textures []*Texture
}

// CreateDescriptorHeap builds a table over textures created by this device.
func (d *Device) CreateDescriptorHeap(textures []gfx.Texture) (gfx.DescriptorHeap, error) {
	h := &DescriptorHeap{textures: make([]*Texture, len(textures))}
	for i, t := range textures {
		gt, ok := t.(*Texture)
		if !ok {
			return nil, fmt.Errorf("descriptor %d: texture %T is not a GL texture", i, t)
		}
		h.textures[i] = gt
	}
	return h, nil
}

func (h *DescriptorHeap) Len() int       { return len(h.textures) }
func (h *DescriptorHeap) Release() error { return nil }
