package gfxtest

import (
	"fmt"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// Op identifies a recorded command.
type Op int

// Recorded operations.
const (
	OpReset Op = iota
	OpClose
	OpViewport
	OpScissor
	OpClearColor
	OpClearDepthStencil
	OpSetHeap
	OpSetPipeline
	OpStencilRef
	OpVertexBuffer
	OpIndexBuffer
	OpTopology
	OpDescriptorTable
	OpConstantBuffer
	OpDraw
)

var opNames = [...]string{
	OpReset:             "Reset",
	OpClose:             "Close",
	OpViewport:          "Viewport",
	OpScissor:           "Scissor",
	OpClearColor:        "ClearColor",
	OpClearDepthStencil: "ClearDepthStencil",
	OpSetHeap:           "SetHeap",
	OpSetPipeline:       "SetPipeline",
	OpStencilRef:        "StencilRef",
	OpVertexBuffer:      "VertexBuffer",
	OpIndexBuffer:       "IndexBuffer",
	OpTopology:          "Topology",
	OpDescriptorTable:   "DescriptorTable",
	OpConstantBuffer:    "ConstantBuffer",
	OpDraw:              "Draw",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Call is one recorded command. Only the fields relevant to Op are set.
type Call struct {
	Op       Op
	Pipeline string
	Ref      uint32
	Slot     gfx.RootSlot
	Buffer   gfx.UploadBuffer
	Offset   int
	Index    int
	// Draw arguments: index count, start index, base vertex.
	Draw  [3]int
	Color [4]float32
}

// CommandList records every call for later inspection.
type CommandList struct {
	Calls     []Call
	recording bool
}

// Reset starts a new recording and clears previous calls.
func (c *CommandList) Reset(alloc gfx.CommandAllocator, p gfx.Pipeline) error {
	if c.recording {
		return fmt.Errorf("gfxtest: reset while recording")
	}
	c.Calls = c.Calls[:0]
	c.recording = true
	call := Call{Op: OpReset}
	if p != nil {
		call.Pipeline = p.Desc().Name
	}
	c.Calls = append(c.Calls, call)
	return nil
}

// Close ends recording.
func (c *CommandList) Close() error {
	if !c.recording {
		return fmt.Errorf("gfxtest: close without reset")
	}
	c.recording = false
	c.Calls = append(c.Calls, Call{Op: OpClose})
	return nil
}

func (c *CommandList) add(call Call) {
	if !c.recording {
		panic(fmt.Sprintf("gfxtest: %s recorded on a closed command list", call.Op))
	}
	c.Calls = append(c.Calls, call)
}

func (c *CommandList) SetViewport(v gfx.Viewport) { c.add(Call{Op: OpViewport}) }
func (c *CommandList) SetScissor(s gfx.Scissor)   { c.add(Call{Op: OpScissor}) }

func (c *CommandList) ClearRenderTarget(color [4]float32) {
	c.add(Call{Op: OpClearColor, Color: color})
}

func (c *CommandList) ClearDepthStencil(depth float32, stencil uint8) {
	c.add(Call{Op: OpClearDepthStencil, Ref: uint32(stencil)})
}

func (c *CommandList) SetDescriptorHeap(h gfx.DescriptorHeap) { c.add(Call{Op: OpSetHeap}) }

func (c *CommandList) SetPipelineState(p gfx.Pipeline) {
	c.add(Call{Op: OpSetPipeline, Pipeline: p.Desc().Name})
}

func (c *CommandList) SetStencilRef(ref uint32) { c.add(Call{Op: OpStencilRef, Ref: ref}) }

func (c *CommandList) SetVertexBuffer(b gfx.Buffer, stride int) {
	c.add(Call{Op: OpVertexBuffer, Offset: stride})
}

func (c *CommandList) SetIndexBuffer(b gfx.Buffer, format gfx.IndexFormat) {
	c.add(Call{Op: OpIndexBuffer, Index: int(format)})
}

func (c *CommandList) SetPrimitiveTopology(t gfx.Topology) {
	c.add(Call{Op: OpTopology, Index: int(t)})
}

func (c *CommandList) SetDescriptorTable(slot gfx.RootSlot, index int) {
	c.add(Call{Op: OpDescriptorTable, Slot: slot, Index: index})
}

func (c *CommandList) SetConstantBuffer(slot gfx.RootSlot, buf gfx.UploadBuffer, offset int) {
	c.add(Call{Op: OpConstantBuffer, Slot: slot, Buffer: buf, Offset: offset})
}

func (c *CommandList) DrawIndexed(indexCount, startIndex, baseVertex int) {
	c.add(Call{Op: OpDraw, Draw: [3]int{indexCount, startIndex, baseVertex}})
}

// Filter returns the calls with the given ops, in order.
func (c *CommandList) Filter(ops ...Op) []Call {
	var out []Call
	for _, call := range c.Calls {
		for _, op := range ops {
			if call.Op == op {
				out = append(out, call)
				break
			}
		}
	}
	return out
}

// Count returns how many calls have op.
func (c *CommandList) Count(op Op) int {
	return len(c.Filter(op))
}
