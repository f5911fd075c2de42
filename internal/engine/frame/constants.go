// Package frame holds the per-frame GPU resources: constant-buffer layouts,
// the frame resources themselves and the fence-gated ring that recycles
// them.
package frame

import (
	"encoding/binary"

	"github.com/Faultbox/mirror-room/pkg/math"
)

// MaxLights is the size of the light array in PassConstants. Lights
// [0, NumDirLights) are directional, then point lights, then spot lights.
const MaxLights = 16

// ObjectConstants is the per-render-item constant block (b0).
type ObjectConstants struct {
	World        math.Mat4
	TexTransform math.Mat4
}

// MaterialConstants is the per-material constant block (b2).
type MaterialConstants struct {
	DiffuseAlbedo [4]float32
	FresnelR0     [3]float32
	Roughness     float32
	MatTransform  math.Mat4
}

// Light is one entry of the pass light array. Field order matches std140
// packing of vec3 followed by float.
type Light struct {
	Strength     [3]float32
	FalloffStart float32 // point/spot
	Direction    [3]float32
	FalloffEnd   float32 // point/spot
	Position     [3]float32
	SpotPower    float32 // spot
}

// DefaultLight returns the light every unused slot starts from.
func DefaultLight() Light {
	return Light{
		Strength:     [3]float32{0.5, 0.5, 0.5},
		FalloffStart: 1,
		Direction:    [3]float32{0, -1, 0},
		FalloffEnd:   10,
		SpotPower:    64,
	}
}

// PassConstants is the per-pass constant block (b1).
type PassConstants struct {
	View                math.Mat4
	InvView             math.Mat4
	Proj                math.Mat4
	InvProj             math.Mat4
	ViewProj            math.Mat4
	InvViewProj         math.Mat4
	EyePosW             [3]float32
	_                   float32
	RenderTargetSize    [2]float32
	InvRenderTargetSize [2]float32
	NearZ               float32
	FarZ                float32
	TotalTime           float32
	DeltaTime           float32
	AmbientLight        [4]float32
	FogColor            [4]float32
	FogStart            float32
	FogRange            float32
	_                   [2]float32
	Lights              [MaxLights]Light
}

// CalcConstantBufferByteSize rounds size up to the 256-byte constant
// buffer alignment.
func CalcConstantBufferByteSize(size int) int {
	return (size + 255) &^ 255
}

// Transposed returns a copy with every matrix transposed, the layout the
// shaders' row_major blocks read.
func (c ObjectConstants) Transposed() ObjectConstants {
	return ObjectConstants{
		World:        c.World.Transpose(),
		TexTransform: c.TexTransform.Transpose(),
	}
}

// Transposed returns a copy with MatTransform transposed.
func (c MaterialConstants) Transposed() MaterialConstants {
	c.MatTransform = c.MatTransform.Transpose()
	return c
}

// Transposed returns a copy with every matrix transposed.
func (c PassConstants) Transposed() PassConstants {
	c.View = c.View.Transpose()
	c.InvView = c.InvView.Transpose()
	c.Proj = c.Proj.Transpose()
	c.InvProj = c.InvProj.Transpose()
	c.ViewProj = c.ViewProj.Transpose()
	c.InvViewProj = c.InvViewProj.Transpose()
	return c
}

// Encode serializes v in little-endian std140 order.
func Encode[T any](v *T) []byte {
	b, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		// Constant types are fixed-size; failure is a programming error.
		panic(err)
	}
	return b
}

// Decode reads a value previously written by Encode.
func Decode[T any](data []byte) (T, error) {
	var v T
	_, err := binary.Decode(data, binary.LittleEndian, &v)
	return v, err
}
