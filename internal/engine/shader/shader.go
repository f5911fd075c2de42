// Package shader loads, preprocesses and compiles the renderer's GLSL
// programs and watches their sources for changes.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// Uniform block and sampler names shared by the GLSL sources.
const (
	ObjectBlock   = "cbPerObject"
	PassBlock     = "cbPass"
	MaterialBlock = "cbMaterial"
	DiffuseMap    = "gDiffuseMap"
)

// glStage maps a gfx stage to the GL shader type.
func glStage(stage gfx.Stage) uint32 {
	if stage == gfx.VertexStage {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

// CompileStage compiles a single shader object. The caller owns the
// returned id.
func CompileStage(stage gfx.Stage, name, source string) (uint32, error) {
	shader := gl.CreateShader(glStage(stage))
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s %s shader: %s", gfx.ErrShaderCompile, name, stage, string(log))
	}

	return shader, nil
}

// Link links a vertex and a fragment shader into a program and binds its
// uniform blocks and sampler to the renderer's fixed slots.
func Link(name string, vs, fs uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: link %s: %s", gfx.ErrShaderCompile, name, string(log))
	}

	bindSlots(program)
	return program, nil
}

// bindSlots assigns the uniform blocks to the binding points of their root
// slots. GL 4.1 has no layout(binding) qualifier, so this happens after
// linking.
func bindSlots(program uint32) {
	blocks := []struct {
		name string
		slot gfx.RootSlot
	}{
		{ObjectBlock, gfx.SlotObject},
		{PassBlock, gfx.SlotPass},
		{MaterialBlock, gfx.SlotMaterial},
	}
	for _, b := range blocks {
		idx := gl.GetUniformBlockIndex(program, gl.Str(b.name+"\x00"))
		if idx != gl.INVALID_INDEX {
			gl.UniformBlockBinding(program, idx, uint32(b.slot))
		}
	}

	if loc := GetUniform(program, DiffuseMap); loc >= 0 {
		gl.UseProgram(program)
		gl.Uniform1i(loc, 0)
		gl.UseProgram(0)
	}
}

// GetUniform returns the uniform location for the given name.
// Returns -1 if the uniform is not found or inactive.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
