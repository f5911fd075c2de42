package scene

import (
	"fmt"

	"github.com/Faultbox/mirror-room/internal/engine/frame"
	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/engine/mirror"
	"github.com/Faultbox/mirror-room/internal/engine/pipeline"
)

// Stencil reference values.
const (
	stencilClear  = 0
	stencilMirror = 1
)

// DrawRenderItems records one indexed draw per item.
func DrawRenderItems(ctx *FrameContext, reg *Registry, items []ItemHandle) {
	list := ctx.List
	objCB := ctx.Resource.ObjectCB
	matCB := ctx.Resource.MaterialCB

	for _, h := range items {
		it := reg.Item(h)
		mesh := reg.Mesh(it.Mesh)
		mat := reg.Material(it.Material)

		list.SetVertexBuffer(mesh.VertexBuffer, pipeline.VertexStride)
		list.SetIndexBuffer(mesh.IndexBuffer, mesh.IndexFormat)
		list.SetPrimitiveTopology(it.Topology)

		list.SetDescriptorTable(gfx.SlotTexture, mat.DiffuseSrvHeapIndex)
		list.SetConstantBuffer(gfx.SlotObject, objCB.Resource(), objCB.Offset(it.ObjCBIndex))
		list.SetConstantBuffer(gfx.SlotMaterial, matCB.Resource(), matCB.Offset(mat.MatCBIndex))

		list.DrawIndexed(it.IndexCount, it.StartIndex, it.BaseVertex)
	}
}

// Record writes the whole frame into ctx.List: framing, the opaque pass,
// the per-mirror stencil passes, the transparent mirrors and, when
// enabled, the shadows.
func (s *Scene) Record(ctx *FrameContext, vp gfx.Viewport, sc gfx.Scissor) error {
	if err := ctx.Resource.Allocator.Reset(); err != nil {
		return fmt.Errorf("resetting command allocator: %w", err)
	}

	list := ctx.List
	pipes := ctx.Pipelines
	if err := list.Reset(ctx.Resource.Allocator, pipes.Get(pipeline.Opaque)); err != nil {
		return fmt.Errorf("resetting command list: %w", err)
	}

	list.SetViewport(vp)
	list.SetScissor(sc)
	list.ClearRenderTarget(s.mainPass.FogColor)
	list.ClearDepthStencil(1, stencilClear)
	list.SetDescriptorHeap(ctx.Heap)

	passCB := ctx.Resource.PassCB
	list.SetConstantBuffer(gfx.SlotPass, passCB.Resource(), passCB.Offset(frame.MainPass))
	DrawRenderItems(ctx, s.reg, s.reg.Layer(Opaque))

	for _, side := range mirror.Sides {
		s.drawMirror(ctx, side)
	}

	list.SetConstantBuffer(gfx.SlotPass, passCB.Resource(), passCB.Offset(frame.MainPass))
	list.SetStencilRef(stencilClear)

	list.SetPipelineState(pipes.Get(pipeline.Transparent))
	DrawRenderItems(ctx, s.reg, s.reg.Layer(Transparent))

	if s.ShadowsEnabled {
		list.SetPipelineState(pipes.Get(pipeline.Shadow))
		DrawRenderItems(ctx, s.reg, s.reg.Layer(Shadow))
	}

	if err := list.Close(); err != nil {
		return fmt.Errorf("closing command list: %w", err)
	}
	return nil
}

// drawMirror marks the mirror of side in the stencil buffer, draws the
// reflected objects where it is marked, then clears the mark so the next
// mirror starts from a clean stencil.
func (s *Scene) drawMirror(ctx *FrameContext, side mirror.Side) {
	list := ctx.List
	pipes := ctx.Pipelines
	passCB := ctx.Resource.PassCB

	list.SetStencilRef(stencilMirror)
	list.SetPipelineState(pipes.Get(pipeline.MarkMirrors))
	DrawRenderItems(ctx, s.reg, s.reg.Layer(MirrorLayer(side)))

	list.SetConstantBuffer(gfx.SlotPass, passCB.Resource(), passCB.Offset(frame.ReflectedPass))
	list.SetPipelineState(pipes.Get(pipeline.DrawReflections))
	DrawRenderItems(ctx, s.reg, s.reg.Layer(ReflectedLayer(side)))

	list.SetStencilRef(stencilClear)
	list.SetPipelineState(pipes.Get(pipeline.MarkMirrors))
	DrawRenderItems(ctx, s.reg, s.reg.Layer(MirrorLayer(side)))
}
