package glgfx

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// Command list errors.
var (
	ErrRecording    = errors.New("glgfx: command list is recording")
	ErrNotRecording = errors.New("glgfx: command list is not recording")
)

// Allocator holds the commands recorded into it.
type Allocator struct {
	cmds []func(*state)
}

// Reset discards the recorded commands.
func (a *Allocator) Reset() error {
	clear(a.cmds)
	a.cmds = a.cmds[:0]
	return nil
}

func (a *Allocator) Release() error {
	a.cmds = nil
	return nil
}

// state is what the replayed commands need from each other: the bound
// pipeline, heap, index buffer and stencil reference.
type state struct {
	swapHeight int
	pipeline   *Pipeline
	heap       *DescriptorHeap
	stencilRef uint32
	vb         *Buffer
	vbStride   int
	ib         *Buffer
	ibFormat   gfx.IndexFormat
	topology   gfx.Topology
}

// CommandList records commands into an allocator for later replay.
type CommandList struct {
	alloc     *Allocator
	initial   *Pipeline
	recording bool
}

// Reset starts recording into alloc with p bound.
func (c *CommandList) Reset(alloc gfx.CommandAllocator, p gfx.Pipeline) error {
	if c.recording {
		return ErrRecording
	}
	a, ok := alloc.(*Allocator)
	if !ok {
		return fmt.Errorf("glgfx: allocator %T is not a GL allocator", alloc)
	}
	c.alloc = a
	c.recording = true
	if p != nil {
		c.SetPipelineState(p)
	}
	return nil
}

// Close ends recording.
func (c *CommandList) Close() error {
	if !c.recording {
		return ErrNotRecording
	}
	c.recording = false
	return nil
}

func (c *CommandList) record(cmd func(*state)) {
	if !c.recording {
		panic(ErrNotRecording)
	}
	c.alloc.cmds = append(c.alloc.cmds, cmd)
}

func (c *CommandList) SetViewport(v gfx.Viewport) {
	c.record(func(s *state) {
		// GL viewports start at the bottom left.
		y := float32(s.swapHeight) - v.Y - v.Height
		gl.Viewport(int32(v.X), int32(y), int32(v.Width), int32(v.Height))
		gl.DepthRangef(v.MinDepth, v.MaxDepth)
	})
}

func (c *CommandList) SetScissor(r gfx.Scissor) {
	c.record(func(s *state) {
		y := s.swapHeight - r.Y - r.Height
		gl.Scissor(int32(r.X), int32(y), int32(r.Width), int32(r.Height))
	})
}

func (c *CommandList) ClearRenderTarget(color [4]float32) {
	c.record(func(s *state) {
		gl.ColorMask(true, true, true, true)
		gl.ClearColor(color[0], color[1], color[2], color[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if s.pipeline != nil {
			gl.ColorMask(colorMask(s.pipeline.desc.Blend.WriteMask))
		}
	})
}

func (c *CommandList) ClearDepthStencil(depth float32, stencil uint8) {
	c.record(func(s *state) {
		gl.DepthMask(true)
		gl.StencilMask(0xff)
		gl.ClearDepthf(depth)
		gl.ClearStencil(int32(stencil))
		gl.Clear(gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
		if s.pipeline != nil {
			applyDepthStencil(s.pipeline.desc.DepthStencil, s.stencilRef)
		}
	})
}

func (c *CommandList) SetDescriptorHeap(h gfx.DescriptorHeap) {
	heap, _ := h.(*DescriptorHeap)
	c.record(func(s *state) { s.heap = heap })
}

func (c *CommandList) SetPipelineState(p gfx.Pipeline) {
	pipe := p.(*Pipeline)
	c.record(func(s *state) {
		s.pipeline = pipe
		gl.UseProgram(pipe.program)
		applyRaster(pipe.desc.Raster)
		applyBlend(pipe.desc.Blend)
		applyDepthStencil(pipe.desc.DepthStencil, s.stencilRef)
		if s.vb != nil {
			pipe.bindVertexBuffer(s.vb.id, s.vbStride)
		}
		if s.ib != nil {
			gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ib.id)
		}
	})
}

func (c *CommandList) SetStencilRef(ref uint32) {
	c.record(func(s *state) {
		s.stencilRef = ref
		if s.pipeline != nil {
			ds := s.pipeline.desc.DepthStencil
			gl.StencilFuncSeparate(gl.FRONT, cmpFuncs[ds.Front.Func], int32(ref), uint32(ds.ReadMask))
			gl.StencilFuncSeparate(gl.BACK, cmpFuncs[ds.Back.Func], int32(ref), uint32(ds.ReadMask))
		}
	})
}

func (c *CommandList) SetVertexBuffer(b gfx.Buffer, stride int) {
	buf := b.(*Buffer)
	c.record(func(s *state) {
		s.vb, s.vbStride = buf, stride
		if s.pipeline != nil {
			s.pipeline.bindVertexBuffer(buf.id, stride)
		}
	})
}

func (c *CommandList) SetIndexBuffer(b gfx.Buffer, format gfx.IndexFormat) {
	buf := b.(*Buffer)
	c.record(func(s *state) {
		s.ib, s.ibFormat = buf, format
		if s.pipeline != nil {
			gl.BindVertexArray(s.pipeline.vao)
			gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.id)
		}
	})
}

func (c *CommandList) SetPrimitiveTopology(t gfx.Topology) {
	c.record(func(s *state) { s.topology = t })
}

func (c *CommandList) SetDescriptorTable(slot gfx.RootSlot, index int) {
	c.record(func(s *state) {
		if s.heap == nil || index < 0 || index >= len(s.heap.textures) {
			panic(fmt.Sprintf("glgfx: descriptor %d not in bound heap", index))
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
		gl.BindTexture(gl.TEXTURE_2D, s.heap.textures[index].id)
	})
}

func (c *CommandList) SetConstantBuffer(slot gfx.RootSlot, buf gfx.UploadBuffer, offset int) {
	u := buf.(*UploadBuffer)
	c.record(func(s *state) {
		gl.BindBufferRange(gl.UNIFORM_BUFFER, uint32(slot), u.id, offset, u.elemSize)
	})
}

func (c *CommandList) DrawIndexed(indexCount, startIndex, baseVertex int) {
	c.record(func(s *state) {
		offset := startIndex * s.ibFormat.Size()
		gl.DrawElementsBaseVertex(topology(s.topology), int32(indexCount), indexType(s.ibFormat),
			gl.PtrOffset(offset), int32(baseVertex))
	})
}
