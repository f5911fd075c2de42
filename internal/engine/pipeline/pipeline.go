// Package pipeline maps the renderer's fixed set of techniques to pipeline
// state descriptions and owns the compiled pipelines.
package pipeline

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// Technique is a way of drawing a render layer.
type Technique int

// Techniques.
const (
	Opaque Technique = iota
	Transparent
	MarkMirrors
	DrawReflections
	Shadow
	TechniqueCount
)

var techniqueNames = [TechniqueCount]string{
	Opaque:          "opaque",
	Transparent:     "transparent",
	MarkMirrors:     "markStencilMirrors",
	DrawReflections: "drawStencilReflections",
	Shadow:          "shadow",
}

func (t Technique) String() string {
	if t >= 0 && t < TechniqueCount {
		return techniqueNames[t]
	}
	return fmt.Sprintf("Technique(%d)", int(t))
}

// Vertex layout shared by all techniques: position, normal, texcoord.
const VertexStride = 32

// InputLayout is the vertex input description of the standard vertex.
var InputLayout = []gfx.InputElement{
	{Semantic: "POSITION", Location: 0, Format: gfx.Float3, Offset: 0},
	{Semantic: "NORMAL", Location: 1, Format: gfx.Float3, Offset: 12},
	{Semantic: "TEXCOORD", Location: 2, Format: gfx.Float2, Offset: 24},
}

// Shaders are the compiled programs pipelines are built from.
type Shaders struct {
	VS gfx.Shader
	// PS is the fogged pixel shader every technique uses.
	PS gfx.Shader
	// AlphaTestedPS additionally clips low-alpha texels. It is compiled and
	// released with the set, but no technique binds it.
	AlphaTestedPS gfx.Shader
}

// describers is indexed by technique; every entry must be non-nil.
var describers = [TechniqueCount]func(sh Shaders) gfx.PipelineDesc{
	Opaque:          opaqueDesc,
	Transparent:     transparentDesc,
	MarkMirrors:     markMirrorsDesc,
	DrawReflections: drawReflectionsDesc,
	Shadow:          shadowDesc,
}

// Describe returns the pipeline description of t.
func Describe(t Technique, sh Shaders) gfx.PipelineDesc {
	if t < 0 || t >= TechniqueCount {
		panic(fmt.Sprintf("pipeline: unknown technique %d", int(t)))
	}
	d := describers[t](sh)
	d.Name = t.String()
	return d
}

func opaqueDesc(sh Shaders) gfx.PipelineDesc {
	return gfx.PipelineDesc{
		VS:           sh.VS,
		PS:           sh.PS,
		InputLayout:  InputLayout,
		Stride:       VertexStride,
		Topology:     gfx.TriangleList,
		Raster:       gfx.DefaultRasterState(),
		Blend:        gfx.DefaultBlendState(),
		DepthStencil: gfx.DefaultDepthStencilState(),
	}
}

func transparentDesc(sh Shaders) gfx.PipelineDesc {
	d := opaqueDesc(sh)
	d.Blend = gfx.BlendState{
		Enable:    true,
		SrcColor:  gfx.BlendSrcAlpha,
		DstColor:  gfx.BlendInvSrcAlpha,
		ColorOp:   gfx.BlendAdd,
		SrcAlpha:  gfx.BlendOne,
		DstAlpha:  gfx.BlendZero,
		AlphaOp:   gfx.BlendAdd,
		WriteMask: gfx.ColorAll,
	}
	return d
}

// stencilState returns a depth-tested stencil state applying the same test to
// both faces.
func stencilState(depthWrite bool, fn gfx.CmpFunc, pass gfx.StencilOp) gfx.DepthStencilState {
	face := gfx.StencilFace{
		Fail:      gfx.StencilKeep,
		DepthFail: gfx.StencilKeep,
		Pass:      pass,
		Func:      fn,
	}
	return gfx.DepthStencilState{
		DepthTest:   true,
		DepthWrite:  depthWrite,
		DepthFunc:   gfx.CmpLess,
		StencilTest: true,
		ReadMask:    0xff,
		WriteMask:   0xff,
		Front:       face,
		Back:        face,
	}
}

func markMirrorsDesc(sh Shaders) gfx.PipelineDesc {
	d := opaqueDesc(sh)
	d.Blend.WriteMask = 0
	d.DepthStencil = stencilState(false, gfx.CmpAlways, gfx.StencilReplace)
	return d
}

func drawReflectionsDesc(sh Shaders) gfx.PipelineDesc {
	d := opaqueDesc(sh)
	d.DepthStencil = stencilState(true, gfx.CmpEqual, gfx.StencilKeep)
	d.Raster.Cull = gfx.CullBack
	d.Raster.ReverseWinding = true
	return d
}

func shadowDesc(sh Shaders) gfx.PipelineDesc {
	d := transparentDesc(sh)
	d.DepthStencil = stencilState(true, gfx.CmpEqual, gfx.StencilIncrSat)
	return d
}

// Set holds one compiled pipeline per technique.
type Set struct {
	pipelines [TechniqueCount]gfx.Pipeline
}

// Build creates every technique's pipeline on dev.
func Build(dev gfx.Device, sh Shaders) (*Set, error) {
	s := &Set{}
	for t := Technique(0); t < TechniqueCount; t++ {
		desc := Describe(t, sh)
		p, err := dev.CreatePipeline(&desc)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("creating %s pipeline: %w", t, err), s.Release())
		}
		s.pipelines[t] = p
	}
	return s, nil
}

// Get returns the pipeline of t.
func (s *Set) Get(t Technique) gfx.Pipeline {
	return s.pipelines[t]
}

// Release frees every pipeline.
func (s *Set) Release() error {
	var err error
	for i, p := range s.pipelines {
		if p != nil {
			err = multierr.Append(err, p.Release())
			s.pipelines[i] = nil
		}
	}
	return err
}
