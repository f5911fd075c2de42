// Package gfxtest provides a recording gfx.Device for tests. Nothing touches
// a GPU: buffers live in memory and command lists record their calls.
package gfxtest

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// Device is an in-memory gfx.Device.
type Device struct {
	mu sync.Mutex

	Buffers    []*Buffer
	Uploads    []*UploadBuffer
	Textures   []*Texture
	Shaders    []*Shader
	Pipelines  []*Pipeline
	Allocators []*Allocator
	Fences     []*Fence

	// FailCompile makes CompileShader return gfx.ErrShaderCompile.
	FailCompile bool

	list  *CommandList
	queue *Queue
	swap  *Swapchain
}

// NewDevice creates an empty recording device.
func NewDevice() *Device {
	d := &Device{
		queue: &Queue{},
		swap:  &Swapchain{Width: 800, Height: 600},
	}
	d.list = &CommandList{}
	return d
}

// CreateBuffer copies data into an in-memory buffer.
func (d *Device) CreateBuffer(kind gfx.BufferKind, data []byte) (gfx.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := &Buffer{Kind: kind, Data: append([]byte(nil), data...)}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

// CreateUploadBuffer allocates elementSize*count zeroed bytes.
func (d *Device) CreateUploadBuffer(elementSize, count int) (gfx.UploadBuffer, error) {
	if elementSize <= 0 || count < 0 {
		return nil, fmt.Errorf("gfxtest: invalid upload buffer %dx%d", elementSize, count)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	u := &UploadBuffer{elemSize: elementSize, Data: make([]byte, elementSize*count)}
	d.Uploads = append(d.Uploads, u)
	return u, nil
}

// CreateTexture records the texture dimensions.
func (d *Device) CreateTexture(name string, img *image.RGBA) (gfx.Texture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := img.Bounds()
	t := &Texture{name: name, W: b.Dx(), H: b.Dy()}
	d.Textures = append(d.Textures, t)
	return t, nil
}

// CreateDescriptorHeap records the texture list.
func (d *Device) CreateDescriptorHeap(textures []gfx.Texture) (gfx.DescriptorHeap, error) {
	return &DescriptorHeap{Textures: append([]gfx.Texture(nil), textures...)}, nil
}

// CompileShader records source and defines.
func (d *Device) CompileShader(stage gfx.Stage, name, source string, defines []gfx.Define) (gfx.Shader, error) {
	if d.FailCompile {
		return nil, fmt.Errorf("%w: %s", gfx.ErrShaderCompile, name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	s := &Shader{stage: stage, Name: name, Source: source, Defines: append([]gfx.Define(nil), defines...)}
	d.Shaders = append(d.Shaders, s)
	return s, nil
}

// CreatePipeline stores a copy of desc.
func (d *Device) CreatePipeline(desc *gfx.PipelineDesc) (gfx.Pipeline, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := *desc
	p := &Pipeline{desc: &c}
	d.Pipelines = append(d.Pipelines, p)
	return p, nil
}

// CreateCommandAllocator returns a counting allocator.
func (d *Device) CreateCommandAllocator() (gfx.CommandAllocator, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a := &Allocator{}
	d.Allocators = append(d.Allocators, a)
	return a, nil
}

// CreateFence returns a fence the queue advances on Signal.
func (d *Device) CreateFence() (gfx.Fence, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := &Fence{}
	d.Fences = append(d.Fences, f)
	return f, nil
}

// CommandList returns the single recording command list.
func (d *Device) CommandList() gfx.CommandList { return d.list }

// Queue returns the recording queue.
func (d *Device) Queue() gfx.Queue { return d.queue }

// Swapchain returns the fake swapchain.
func (d *Device) Swapchain() gfx.Swapchain { return d.swap }

// List returns the concrete command list for inspection.
func (d *Device) List() *CommandList { return d.list }

// RecordingQueue returns the concrete queue for inspection.
func (d *Device) RecordingQueue() *Queue { return d.queue }

// FakeSwapchain returns the concrete swapchain for inspection.
func (d *Device) FakeSwapchain() *Swapchain { return d.swap }

// Buffer is an in-memory immutable buffer.
type Buffer struct {
	Kind     gfx.BufferKind
	Data     []byte
	Released bool
}

func (b *Buffer) Size() int      { return len(b.Data) }
func (b *Buffer) Release() error { b.Released = true; return nil }

// UploadBuffer is an in-memory upload buffer.
type UploadBuffer struct {
	elemSize int
	Data     []byte
	Writes   int
	Released bool
}

func (u *UploadBuffer) ElementSize() int { return u.elemSize }
func (u *UploadBuffer) Len() int         { return len(u.Data) / u.elemSize }
func (u *UploadBuffer) Release() error   { u.Released = true; return nil }

// CopyData writes data at element index.
func (u *UploadBuffer) CopyData(index int, data []byte) {
	if index < 0 || index >= u.Len() {
		panic(fmt.Sprintf("gfxtest: element %d out of range [0,%d)", index, u.Len()))
	}
	if len(data) > u.elemSize {
		panic(fmt.Sprintf("gfxtest: %d bytes exceed element size %d", len(data), u.elemSize))
	}
	copy(u.Data[index*u.elemSize:], data)
	u.Writes++
}

// Element returns the bytes of element index.
func (u *UploadBuffer) Element(index int) []byte {
	return u.Data[index*u.elemSize : (index+1)*u.elemSize]
}

// Texture records its size.
type Texture struct {
	name     string
	W, H     int
	Released bool
}

func (t *Texture) Name() string              { return t.name }
func (t *Texture) Size() (width, height int) { return t.W, t.H }
func (t *Texture) Release() error            { t.Released = true; return nil }

// DescriptorHeap holds texture references.
type DescriptorHeap struct {
	Textures []gfx.Texture
}

func (h *DescriptorHeap) Len() int       { return len(h.Textures) }
func (h *DescriptorHeap) Release() error { return nil }

// Shader records what it was compiled from.
type Shader struct {
	stage    gfx.Stage
	Name     string
	Source   string
	Defines  []gfx.Define
	Released bool
}

func (s *Shader) Stage() gfx.Stage { return s.stage }
func (s *Shader) Release() error   { s.Released = true; return nil }

// HasDefine reports whether the shader was compiled with name defined.
func (s *Shader) HasDefine(name string) bool {
	for _, d := range s.Defines {
		if d.Name == name {
			return true
		}
	}
	return false
}

// Pipeline holds its description.
type Pipeline struct {
	desc     *gfx.PipelineDesc
	Released bool
}

func (p *Pipeline) Desc() *gfx.PipelineDesc { return p.desc }
func (p *Pipeline) Release() error          { p.Released = true; return nil }

// Allocator counts resets.
type Allocator struct {
	Resets int
}

func (a *Allocator) Reset() error   { a.Resets++; return nil }
func (a *Allocator) Release() error { return nil }

// Fence is a manually driven fence. Signal only records the target
// value; the test decides when the GPU catches up by calling Complete or by
// letting Wait finish the work.
type Fence struct {
	mu        sync.Mutex
	completed uint64
	signaled  uint64

	// Stuck makes Wait fail with gfx.ErrFenceTimeout.
	Stuck bool
	// Waits lists every value passed to Wait.
	Waits []uint64
}

// CompletedValue returns the completed value.
func (f *Fence) CompletedValue() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// Complete advances the completed value.
func (f *Fence) Complete(value uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if value > f.completed {
		f.completed = value
	}
}

// Signaled returns the highest value a queue has signaled.
func (f *Fence) Signaled() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signaled
}

// Wait records the wait and completes the fence up to value, unless Stuck.
func (f *Fence) Wait(value uint64, timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Waits = append(f.Waits, value)
	if f.Stuck {
		return fmt.Errorf("%w: value %d after %s", gfx.ErrFenceTimeout, value, timeout)
	}
	if value > f.signaled {
		return fmt.Errorf("gfxtest: waiting for %d which was never signaled (last %d)", value, f.signaled)
	}
	if value > f.completed {
		f.completed = value
	}
	return nil
}

func (f *Fence) Release() error { return nil }

func (f *Fence) signal(value uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if value > f.signaled {
		f.signaled = value
	}
}

// Queue records submissions.
type Queue struct {
	Executed int
	Signals  []uint64
	// AutoComplete completes fences as soon as they are signaled.
	AutoComplete bool
}

// Execute counts the submission.
func (q *Queue) Execute(lists ...gfx.CommandList) error {
	for _, l := range lists {
		if cl, ok := l.(*CommandList); ok && cl.recording {
			return fmt.Errorf("gfxtest: executing an open command list")
		}
	}
	q.Executed++
	return nil
}

// Signal records value and marks it signaled on f.
func (q *Queue) Signal(f gfx.Fence, value uint64) error {
	q.Signals = append(q.Signals, value)
	ff, ok := f.(*Fence)
	if !ok {
		return fmt.Errorf("gfxtest: foreign fence %T", f)
	}
	ff.signal(value)
	if q.AutoComplete {
		ff.Complete(value)
	}
	return nil
}

// Swapchain counts presents.
type Swapchain struct {
	Width, Height int
	Presents      int
	Reads         int
	// Fill is the color ReadPixels reports.
	Fill [4]byte
}

func (s *Swapchain) Present() error { s.Presents++; return nil }

// Resize records the new size.
func (s *Swapchain) Resize(width, height int) error {
	s.Width, s.Height = width, height
	return nil
}

func (s *Swapchain) Size() (width, height int) { return s.Width, s.Height }

// ReadPixels returns a frame filled with Fill.
func (s *Swapchain) ReadPixels() ([]byte, int, int, error) {
	s.Reads++
	pix := make([]byte, s.Width*s.Height*4)
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:], s.Fill[:])
	}
	return pix, s.Width, s.Height, nil
}
