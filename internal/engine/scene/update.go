package scene

import (
	"github.com/Faultbox/mirror-room/internal/engine/camera"
	"github.com/Faultbox/mirror-room/internal/engine/frame"
	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/engine/mirror"
	"github.com/Faultbox/mirror-room/internal/engine/pipeline"
	"github.com/Faultbox/mirror-room/pkg/math"
)

// Light slots of the pass constants. Directional lights come first, then
// point lights, then spot lights.
const (
	KeyLight   = 0
	PointLight = 1
	SpotLight  = 2
	LightCount = 3
)

// FrameContext is the state one frame of update and draw works against.
type FrameContext struct {
	Index     uint64
	Resource  *frame.Resource
	List      gfx.CommandList
	Heap      gfx.DescriptorHeap
	Pipelines *pipeline.Set

	TotalTime float32
	DeltaTime float32
}

// PassInput is the camera and target state the main pass is built from.
type PassInput struct {
	View   math.Mat4
	Proj   math.Mat4
	EyePos math.Vec3
	Width  int
	Height int
}

// UpdateObjectCBs writes every dirty render item into the frame's object
// buffer and decrements its counter.
func UpdateObjectCBs(ctx *FrameContext, reg *Registry) {
	cb := ctx.Resource.ObjectCB
	for _, it := range reg.Items() {
		if it.NumFramesDirty <= 0 {
			continue
		}
		c := it.Constants()
		cb.CopyData(it.ObjCBIndex, &c)
		it.NumFramesDirty--
	}
}

// UpdateMaterialCBs writes every dirty material into the frame's material
// buffer and decrements its counter.
func UpdateMaterialCBs(ctx *FrameContext, reg *Registry) {
	cb := ctx.Resource.MaterialCB
	for _, m := range reg.Materials() {
		if m.NumFramesDirty <= 0 {
			continue
		}
		c := m.Constants()
		cb.CopyData(m.MatCBIndex, &c)
		m.NumFramesDirty--
	}
}

// MainPass builds the main pass record for in.
func MainPass(in PassInput, totalTime, deltaTime float32) frame.PassConstants {
	viewProj := in.Proj.Mul(in.View)

	pc := frame.PassConstants{
		View:        in.View,
		InvView:     in.View.Inverse(),
		Proj:        in.Proj,
		InvProj:     in.Proj.Inverse(),
		ViewProj:    viewProj,
		InvViewProj: viewProj.Inverse(),
		EyePosW:     in.EyePos.Array(),
		RenderTargetSize: [2]float32{
			float32(in.Width), float32(in.Height),
		},
		NearZ:        camera.NearZ,
		FarZ:         camera.FarZ,
		TotalTime:    totalTime,
		DeltaTime:    deltaTime,
		AmbientLight: [4]float32{0.25, 0.25, 0.35, 1},
		FogColor:     [4]float32{0.7, 0.7, 0.7, 1},
		FogStart:     5,
		FogRange:     150,
	}
	if in.Width > 0 && in.Height > 0 {
		pc.InvRenderTargetSize = [2]float32{1 / float32(in.Width), 1 / float32(in.Height)}
	}

	for i := range pc.Lights {
		pc.Lights[i] = frame.DefaultLight()
	}
	pc.Lights[KeyLight].Direction = MainLightDir.Array()
	pc.Lights[KeyLight].Strength = [3]float32{0.6, 0.6, 0.6}
	pc.Lights[PointLight].Strength = [3]float32{5, 0, 0}
	pc.Lights[PointLight].Position = [3]float32{1, -3, -5}
	pc.Lights[SpotLight].Direction = [3]float32{0, -1, 0}
	pc.Lights[SpotLight].Strength = [3]float32{0, 10, 0}
	pc.Lights[SpotLight].Position = [3]float32{1, 4, -4}
	pc.Lights[SpotLight].SpotPower = 100
	return pc
}

// ReflectedPass copies main and mirrors the scene lights through the front
// mirror plane.
func ReflectedPass(main frame.PassConstants) frame.PassConstants {
	pc := main
	for i := 0; i < LightCount; i++ {
		dir, pos := mirror.ReflectLight(mirror.Front,
			math.Vec3From(main.Lights[i].Direction),
			math.Vec3From(main.Lights[i].Position))
		pc.Lights[i].Direction = dir.Array()
		pc.Lights[i].Position = pos.Array()
	}
	return pc
}

// UpdateMainPassCB rebuilds both pass records and writes them into the
// frame's pass buffer.
func (s *Scene) UpdateMainPassCB(ctx *FrameContext, in PassInput) {
	s.mainPass = MainPass(in, ctx.TotalTime, ctx.DeltaTime)
	main := s.mainPass.Transposed()
	ctx.Resource.PassCB.CopyData(frame.MainPass, &main)
}

// UpdateReflectedPassCB writes the reflected pass record. It reads the main
// pass built by UpdateMainPassCB earlier in the frame.
func (s *Scene) UpdateReflectedPassCB(ctx *FrameContext) {
	s.reflectedPass = ReflectedPass(s.mainPass)
	reflected := s.reflectedPass.Transposed()
	ctx.Resource.PassCB.CopyData(frame.ReflectedPass, &reflected)
}

// Update writes everything the frame's constant buffers need.
func (s *Scene) Update(ctx *FrameContext, in PassInput) {
	UpdateObjectCBs(ctx, s.reg)
	UpdateMaterialCBs(ctx, s.reg)
	s.UpdateMainPassCB(ctx, in)
	s.UpdateReflectedPassCB(ctx)
}

// MainPassConstants returns the main pass record of the last update.
func (s *Scene) MainPassConstants() frame.PassConstants {
	return s.mainPass
}

// ReflectedPassConstants returns the reflected pass record of the last
// update.
func (s *Scene) ReflectedPassConstants() frame.PassConstants {
	return s.reflectedPass
}
