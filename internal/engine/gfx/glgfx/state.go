package glgfx

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

var cmpFuncs = [...]uint32{
	gfx.CmpNever:        gl.NEVER,
	gfx.CmpLess:         gl.LESS,
	gfx.CmpEqual:        gl.EQUAL,
	gfx.CmpLessEqual:    gl.LEQUAL,
	gfx.CmpGreater:      gl.GREATER,
	gfx.CmpNotEqual:     gl.NOTEQUAL,
	gfx.CmpGreaterEqual: gl.GEQUAL,
	gfx.CmpAlways:       gl.ALWAYS,
}

var stencilOps = [...]uint32{
	gfx.StencilKeep:    gl.KEEP,
	gfx.StencilZero:    gl.ZERO,
	gfx.StencilReplace: gl.REPLACE,
	gfx.StencilIncrSat: gl.INCR,
	gfx.StencilDecrSat: gl.DECR,
	gfx.StencilInvert:  gl.INVERT,
	gfx.StencilIncr:    gl.INCR_WRAP,
	gfx.StencilDecr:    gl.DECR_WRAP,
}

var blendFactors = [...]uint32{
	gfx.BlendZero:        gl.ZERO,
	gfx.BlendOne:         gl.ONE,
	gfx.BlendSrcColor:    gl.SRC_COLOR,
	gfx.BlendInvSrcColor: gl.ONE_MINUS_SRC_COLOR,
	gfx.BlendSrcAlpha:    gl.SRC_ALPHA,
	gfx.BlendInvSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
	gfx.BlendDstColor:    gl.DST_COLOR,
	gfx.BlendInvDstColor: gl.ONE_MINUS_DST_COLOR,
	gfx.BlendDstAlpha:    gl.DST_ALPHA,
	gfx.BlendInvDstAlpha: gl.ONE_MINUS_DST_ALPHA,
}

var blendOps = [...]uint32{
	gfx.BlendAdd:         gl.FUNC_ADD,
	gfx.BlendSubtract:    gl.FUNC_SUBTRACT,
	gfx.BlendRevSubtract: gl.FUNC_REVERSE_SUBTRACT,
	gfx.BlendMin:         gl.MIN,
	gfx.BlendMax:         gl.MAX,
}

func topology(t gfx.Topology) uint32 {
	if t == gfx.LineList {
		return gl.LINES
	}
	return gl.TRIANGLES
}

func indexType(f gfx.IndexFormat) uint32 {
	if f == gfx.Index32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}

// frontFace returns the GL winding that is front-facing. Clockwise
// triangles in a y-down left-handed screen space arrive counter-clockwise
// in GL's y-up window space.
func frontFace(r gfx.RasterState) uint32 {
	if r.ReverseWinding {
		return gl.CW
	}
	return gl.CCW
}

func colorMask(m gfx.ColorMask) (r, g, b, a bool) {
	return m&gfx.ColorRed != 0, m&gfx.ColorGreen != 0, m&gfx.ColorBlue != 0, m&gfx.ColorAlpha != 0
}

func enable(cap uint32, on bool) {
	if on {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

// applyRaster sets culling, winding and fill mode.
func applyRaster(r gfx.RasterState) {
	enable(gl.CULL_FACE, r.Cull != gfx.CullNone)
	if r.Cull == gfx.CullFront {
		gl.CullFace(gl.FRONT)
	} else {
		gl.CullFace(gl.BACK)
	}
	gl.FrontFace(frontFace(r))
	if r.Fill == gfx.FillWireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// applyBlend sets the blend equation and color write mask.
func applyBlend(b gfx.BlendState) {
	enable(gl.BLEND, b.Enable)
	gl.BlendFuncSeparate(blendFactors[b.SrcColor], blendFactors[b.DstColor],
		blendFactors[b.SrcAlpha], blendFactors[b.DstAlpha])
	gl.BlendEquationSeparate(blendOps[b.ColorOp], blendOps[b.AlphaOp])
	gl.ColorMask(colorMask(b.WriteMask))
}

// applyDepthStencil sets the depth test and both stencil faces using ref.
func applyDepthStencil(ds gfx.DepthStencilState, ref uint32) {
	enable(gl.DEPTH_TEST, ds.DepthTest)
	gl.DepthMask(ds.DepthWrite)
	gl.DepthFunc(cmpFuncs[ds.DepthFunc])

	enable(gl.STENCIL_TEST, ds.StencilTest)
	applyStencilFace(gl.FRONT, ds.Front, ds, ref)
	applyStencilFace(gl.BACK, ds.Back, ds, ref)
}

func applyStencilFace(face uint32, f gfx.StencilFace, ds gfx.DepthStencilState, ref uint32) {
	gl.StencilFuncSeparate(face, cmpFuncs[f.Func], int32(ref), uint32(ds.ReadMask))
	gl.StencilOpSeparate(face, stencilOps[f.Fail], stencilOps[f.DepthFail], stencilOps[f.Pass])
	gl.StencilMaskSeparate(face, uint32(ds.WriteMask))
}
