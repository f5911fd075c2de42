package glgfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/engine/shader"
)

// Shader is a compiled GL shader object.
type Shader struct {
	id    uint32
	name  string
	stage gfx.Stage
}

// CompileShader injects defines into source and compiles it.
func (d *Device) CompileShader(stage gfx.Stage, name, source string, defines []gfx.Define) (gfx.Shader, error) {
	id, err := shader.CompileStage(stage, name, shader.Preprocess(source, defines))
	if err != nil {
		return nil, err
	}
	return &Shader{id: id, name: name, stage: stage}, nil
}

func (s *Shader) Stage() gfx.Stage { return s.stage }

func (s *Shader) Release() error {
	if s.id != 0 {
		gl.DeleteShader(s.id)
		s.id = 0
	}
	return nil
}

// Pipeline is a linked program, a vertex array object and the fixed
// function state applied when it is bound.
type Pipeline struct {
	desc    gfx.PipelineDesc
	program uint32
	vao     uint32
}

// CreatePipeline links desc's shaders into a program.
func (d *Device) CreatePipeline(desc *gfx.PipelineDesc) (gfx.Pipeline, error) {
	vs, ok := desc.VS.(*Shader)
	if !ok || vs.stage != gfx.VertexStage {
		return nil, fmt.Errorf("pipeline %s: missing vertex shader", desc.Name)
	}
	ps, ok := desc.PS.(*Shader)
	if !ok || ps.stage != gfx.PixelStage {
		return nil, fmt.Errorf("pipeline %s: missing pixel shader", desc.Name)
	}

	program, err := shader.Link(desc.Name, vs.id, ps.id)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{desc: *desc, program: program}
	gl.GenVertexArrays(1, &p.vao)

	if err := checkError("creating pipeline " + desc.Name); err != nil {
		return nil, multierr.Append(err, p.Release())
	}
	return p, nil
}

func (p *Pipeline) Desc() *gfx.PipelineDesc { return &p.desc }

func (p *Pipeline) Release() error {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
	return nil
}

// bindVertexBuffer points the pipeline's attributes at vb.
func (p *Pipeline) bindVertexBuffer(vb uint32, stride int) {
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb)
	for _, el := range p.desc.InputLayout {
		gl.EnableVertexAttribArray(el.Location)
		gl.VertexAttribPointerWithOffset(el.Location, int32(el.Format.Components()),
			gl.FLOAT, false, int32(stride), uintptr(el.Offset))
	}
}
