package shader

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/engine/pipeline"
)

// LightDefines sizes the light loops to the scene's one directional, one
// point and one spot light.
var LightDefines = []gfx.Define{
	{Name: "NUM_DIR_LIGHTS", Value: "1"},
	{Name: "NUM_POINT_LIGHTS", Value: "1"},
	{Name: "NUM_SPOT_LIGHTS", Value: "1"},
}

// OpaqueDefines are the macros of the fogged pixel shader.
var OpaqueDefines = append(append([]gfx.Define(nil), LightDefines...),
	gfx.Define{Name: "FOG", Value: "1"})

// AlphaTestedDefines add texel clipping to OpaqueDefines.
var AlphaTestedDefines = append(append([]gfx.Define(nil), OpaqueDefines...),
	gfx.Define{Name: "ALPHA_TEST", Value: "1"})

// Compile builds the vertex shader and both pixel shader variants.
func Compile(dev gfx.Device, src Sources) (pipeline.Shaders, error) {
	var sh pipeline.Shaders
	var err error

	if sh.VS, err = dev.CompileShader(gfx.VertexStage, "standardVS", src.Vertex, nil); err != nil {
		return pipeline.Shaders{}, fmt.Errorf("compiling vertex shader: %w", err)
	}
	if sh.PS, err = dev.CompileShader(gfx.PixelStage, "opaquePS", src.Fragment, OpaqueDefines); err != nil {
		return pipeline.Shaders{}, multierr.Append(fmt.Errorf("compiling opaque pixel shader: %w", err), Release(sh))
	}
	if sh.AlphaTestedPS, err = dev.CompileShader(gfx.PixelStage, "alphaTestedPS", src.Fragment, AlphaTestedDefines); err != nil {
		return pipeline.Shaders{}, multierr.Append(fmt.Errorf("compiling alpha-tested pixel shader: %w", err), Release(sh))
	}
	return sh, nil
}

// Release frees every compiled shader of sh.
func Release(sh pipeline.Shaders) error {
	var err error
	for _, s := range []gfx.Shader{sh.VS, sh.PS, sh.AlphaTestedPS} {
		if s != nil {
			err = multierr.Append(err, s.Release())
		}
	}
	return err
}
