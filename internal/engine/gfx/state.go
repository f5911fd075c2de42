package gfx

// Topology is the primitive topology.
type Topology int

// Primitive topologies.
const (
	TriangleList Topology = iota
	LineList
)

// IndexFormat is the element type of an index buffer.
type IndexFormat int

// Index formats.
const (
	Index16 IndexFormat = iota
	Index32
)

// Size returns the byte size of one index.
func (f IndexFormat) Size() int {
	if f == Index32 {
		return 4
	}
	return 2
}

// CullMode selects which triangle faces are discarded.
type CullMode int

// Cull modes.
const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FillMode selects triangle rasterization.
type FillMode int

// Fill modes.
const (
	FillSolid FillMode = iota
	FillWireframe
)

// RasterState is the rasterizer state of a pipeline.
type RasterState struct {
	Cull CullMode
	Fill FillMode
	// ReverseWinding flips which winding order is front-facing. Geometry
	// drawn through a reflection matrix needs it.
	ReverseWinding bool
}

// DefaultRasterState culls back faces with solid fill.
func DefaultRasterState() RasterState {
	return RasterState{Cull: CullBack, Fill: FillSolid}
}

// CmpFunc is a depth or stencil comparison function.
type CmpFunc int

// Comparison functions.
const (
	CmpNever CmpFunc = iota
	CmpLess
	CmpEqual
	CmpLessEqual
	CmpGreater
	CmpNotEqual
	CmpGreaterEqual
	CmpAlways
)

// StencilOp is a stencil buffer update operation.
type StencilOp int

// Stencil operations.
const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrSat
	StencilDecrSat
	StencilInvert
	StencilIncr
	StencilDecr
)

// StencilFace holds the stencil test for one triangle facing.
type StencilFace struct {
	Fail      StencilOp
	DepthFail StencilOp
	Pass      StencilOp
	Func      CmpFunc
}

// DefaultStencilFace keeps the buffer and always passes.
func DefaultStencilFace() StencilFace {
	return StencilFace{Fail: StencilKeep, DepthFail: StencilKeep, Pass: StencilKeep, Func: CmpAlways}
}

// DepthStencilState is the depth/stencil state of a pipeline.
type DepthStencilState struct {
	DepthTest   bool
	DepthWrite  bool
	DepthFunc   CmpFunc
	StencilTest bool
	ReadMask    uint8
	WriteMask   uint8
	Front       StencilFace
	Back        StencilFace
}

// DefaultDepthStencilState tests and writes depth with less, stencil off.
func DefaultDepthStencilState() DepthStencilState {
	return DepthStencilState{
		DepthTest:  true,
		DepthWrite: true,
		DepthFunc:  CmpLess,
		ReadMask:   0xff,
		WriteMask:  0xff,
		Front:      DefaultStencilFace(),
		Back:       DefaultStencilFace(),
	}
}

// BlendFactor is a blend equation factor.
type BlendFactor int

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendInvSrcColor
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDstColor
	BlendInvDstColor
	BlendDstAlpha
	BlendInvDstAlpha
)

// BlendOp is a blend equation operator.
type BlendOp int

// Blend operators.
const (
	BlendAdd BlendOp = iota
	BlendSubtract
	BlendRevSubtract
	BlendMin
	BlendMax
)

// ColorMask selects the color channels written.
type ColorMask uint8

// Color write masks.
const (
	ColorRed ColorMask = 1 << iota
	ColorGreen
	ColorBlue
	ColorAlpha
	ColorAll ColorMask = ColorRed | ColorGreen | ColorBlue | ColorAlpha
)

// BlendState is the color blend state of the single render target.
type BlendState struct {
	Enable    bool
	SrcColor  BlendFactor
	DstColor  BlendFactor
	ColorOp   BlendOp
	SrcAlpha  BlendFactor
	DstAlpha  BlendFactor
	AlphaOp   BlendOp
	WriteMask ColorMask
}

// DefaultBlendState disables blending and writes all channels.
func DefaultBlendState() BlendState {
	return BlendState{
		SrcColor:  BlendOne,
		DstColor:  BlendZero,
		ColorOp:   BlendAdd,
		SrcAlpha:  BlendOne,
		DstAlpha:  BlendZero,
		AlphaOp:   BlendAdd,
		WriteMask: ColorAll,
	}
}

// VertexFormat is the type of a vertex attribute.
type VertexFormat int

// Vertex formats.
const (
	Float2 VertexFormat = iota
	Float3
	Float4
)

// Components returns the float count of the format.
func (f VertexFormat) Components() int {
	return int(f) + 2
}

// InputElement describes one vertex attribute.
type InputElement struct {
	Semantic string
	Location uint32
	Format   VertexFormat
	Offset   int
}

// PipelineDesc describes a pipeline state object.
type PipelineDesc struct {
	Name         string
	VS           Shader
	PS           Shader
	InputLayout  []InputElement
	Stride       int
	Topology     Topology
	Raster       RasterState
	Blend        BlendState
	DepthStencil DepthStencilState
}
