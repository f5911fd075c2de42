// Package gfx defines the graphics device abstraction the renderer records
// against: a device that creates resources, a command list, a queue with
// fence-based completion and a swapchain.
package gfx

import (
	"errors"
	"image"
	"time"
)

// Device errors.
var (
	ErrFenceTimeout  = errors.New("gfx: fence wait timed out")
	ErrDeviceLost    = errors.New("gfx: device lost")
	ErrShaderCompile = errors.New("gfx: shader compilation failed")
)

// Device creates GPU resources.
type Device interface {
	// CreateBuffer creates an immutable vertex or index buffer from data.
	CreateBuffer(kind BufferKind, data []byte) (Buffer, error)
	// CreateUploadBuffer creates a CPU-writable buffer of count elements,
	// each elementSize bytes. Constant buffers use it.
	CreateUploadBuffer(elementSize, count int) (UploadBuffer, error)
	// CreateTexture uploads an image and generates mipmaps.
	CreateTexture(name string, img *image.RGBA) (Texture, error)
	// CreateDescriptorHeap creates a shader-visible table of textures.
	CreateDescriptorHeap(textures []Texture) (DescriptorHeap, error)
	// CompileShader compiles source with the given macro definitions.
	CompileShader(stage Stage, name, source string, defines []Define) (Shader, error)
	// CreatePipeline creates a pipeline state object.
	CreatePipeline(desc *PipelineDesc) (Pipeline, error)
	// CreateCommandAllocator creates backing storage for recorded commands.
	CreateCommandAllocator() (CommandAllocator, error)
	// CreateFence creates a fence with a completed value of zero.
	CreateFence() (Fence, error)

	CommandList() CommandList
	Queue() Queue
	Swapchain() Swapchain
}

// Releaser is implemented by everything that owns GPU memory.
type Releaser interface {
	Release() error
}

// BufferKind selects how a Buffer is bound.
type BufferKind int

// Buffer kinds.
const (
	VertexBuffer BufferKind = iota
	IndexBuffer
)

// Buffer is an immutable GPU buffer.
type Buffer interface {
	Releaser
	Size() int
}

// UploadBuffer is a persistently writable array of fixed-size elements.
type UploadBuffer interface {
	Releaser
	ElementSize() int
	Len() int
	// CopyData writes data into element index. It panics if index is out
	// of range or data is larger than an element.
	CopyData(index int, data []byte)
}

// Texture is a sampled 2D texture.
type Texture interface {
	Releaser
	Name() string
	Size() (width, height int)
}

// DescriptorHeap is a table of textures addressed by index.
type DescriptorHeap interface {
	Releaser
	Len() int
}

// Stage is a programmable pipeline stage.
type Stage int

// Shader stages.
const (
	VertexStage Stage = iota
	PixelStage
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case PixelStage:
		return "pixel"
	default:
		return "unknown"
	}
}

// Define is a preprocessor macro passed to the shader compiler.
type Define struct {
	Name  string
	Value string
}

// Shader is a compiled shader stage.
type Shader interface {
	Releaser
	Stage() Stage
}

// Pipeline is an immutable bundle of shaders and fixed-function state.
type Pipeline interface {
	Releaser
	Desc() *PipelineDesc
}

// CommandAllocator owns the memory behind recorded commands. It may only
// be reset once the GPU has finished with them.
type CommandAllocator interface {
	Releaser
	Reset() error
}

// Fence is a monotonically increasing GPU timeline value.
type Fence interface {
	Releaser
	// CompletedValue returns the highest value the GPU has reached.
	CompletedValue() uint64
	// Wait blocks until the completed value reaches value or timeout
	// elapses. It returns ErrFenceTimeout on timeout.
	Wait(value uint64, timeout time.Duration) error
}

// Queue executes command lists in submission order.
type Queue interface {
	Execute(lists ...CommandList) error
	// Signal sets the fence to value once all previously submitted work
	// has completed.
	Signal(f Fence, value uint64) error
}

// Swapchain presents the back buffer.
type Swapchain interface {
	Present() error
	Resize(width, height int) error
	Size() (width, height int)
}

// PixelReader is implemented by swapchains that can read back the frame
// just executed. Rows are RGBA8, bottom row first.
type PixelReader interface {
	ReadPixels() (pix []byte, width, height int, err error)
}

// Viewport maps clip space to the render target.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Scissor is a clip rectangle in pixels.
type Scissor struct {
	X, Y, Width, Height int
}

// RootSlot names a binding point shared by all pipelines.
type RootSlot int

// Root slots. The shaders declare matching bindings.
const (
	SlotTexture  RootSlot = iota // t0: diffuse map from the descriptor heap
	SlotObject                   // b0: ObjectConstants
	SlotPass                     // b1: PassConstants
	SlotMaterial                 // b2: MaterialConstants
	SlotCount
)

// CommandList records rendering commands.
type CommandList interface {
	// Reset begins recording using alloc with p as the initial state.
	Reset(alloc CommandAllocator, p Pipeline) error
	Close() error

	SetViewport(v Viewport)
	SetScissor(s Scissor)
	ClearRenderTarget(color [4]float32)
	ClearDepthStencil(depth float32, stencil uint8)

	SetDescriptorHeap(h DescriptorHeap)
	SetPipelineState(p Pipeline)
	SetStencilRef(ref uint32)

	SetVertexBuffer(b Buffer, stride int)
	SetIndexBuffer(b Buffer, format IndexFormat)
	SetPrimitiveTopology(t Topology)

	// SetDescriptorTable binds heap entry index of the current heap.
	SetDescriptorTable(slot RootSlot, index int)
	// SetConstantBuffer binds one element-sized range of buf starting at
	// offset bytes.
	SetConstantBuffer(slot RootSlot, buf UploadBuffer, offset int)

	DrawIndexed(indexCount, startIndex, baseVertex int)
}
