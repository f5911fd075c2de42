package glgfx

import (
	"errors"
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

func TestTranslationTablesAreComplete(t *testing.T) {
	if len(cmpFuncs) != int(gfx.CmpAlways)+1 {
		t.Errorf("cmpFuncs has %d entries", len(cmpFuncs))
	}
	if len(stencilOps) != int(gfx.StencilDecr)+1 {
		t.Errorf("stencilOps has %d entries", len(stencilOps))
	}
	if len(blendFactors) != int(gfx.BlendInvDstAlpha)+1 {
		t.Errorf("blendFactors has %d entries", len(blendFactors))
	}
	if len(blendOps) != int(gfx.BlendMax)+1 {
		t.Errorf("blendOps has %d entries", len(blendOps))
	}
	for i, v := range cmpFuncs {
		if v == 0 {
			t.Errorf("cmpFuncs[%d] unmapped", i)
		}
	}
}

func TestSaturatingStencilOps(t *testing.T) {
	if stencilOps[gfx.StencilIncrSat] != gl.INCR || stencilOps[gfx.StencilIncr] != gl.INCR_WRAP {
		t.Error("saturating and wrapping increments are swapped")
	}
}

func TestFrontFace(t *testing.T) {
	r := gfx.DefaultRasterState()
	if frontFace(r) != gl.CCW {
		t.Error("default winding should be counter-clockwise in GL")
	}
	r.ReverseWinding = true
	if frontFace(r) != gl.CW {
		t.Error("reversed winding should be clockwise in GL")
	}
}

func TestIndexType(t *testing.T) {
	if indexType(gfx.Index16) != gl.UNSIGNED_SHORT || indexType(gfx.Index32) != gl.UNSIGNED_INT {
		t.Error("unexpected index types")
	}
}

func TestColorMask(t *testing.T) {
	r, g, b, a := colorMask(0)
	if r || g || b || a {
		t.Error("mask 0 should disable every channel")
	}
	r, g, b, a = colorMask(gfx.ColorAll)
	if !r || !g || !b || !a {
		t.Error("ColorAll should enable every channel")
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct{ size, align, want int }{
		{128, 256, 256},
		{256, 256, 256},
		{1280, 256, 1280},
		{1248, 64, 1280},
	}
	for _, tt := range tests {
		if got := alignUp(tt.size, tt.align); got != tt.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", tt.size, tt.align, got, tt.want)
		}
	}
}

func TestCommandListRecording(t *testing.T) {
	alloc := &Allocator{}
	list := &CommandList{}

	if err := list.Close(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Close before Reset: got %v", err)
	}
	if err := list.Reset(alloc, nil); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if err := list.Reset(alloc, nil); !errors.Is(err, ErrRecording) {
		t.Errorf("Reset while recording: got %v", err)
	}

	list.SetPrimitiveTopology(gfx.TriangleList)
	list.SetStencilRef(1)
	if len(alloc.cmds) != 2 {
		t.Errorf("expected 2 recorded commands, got %d", len(alloc.cmds))
	}
	if err := list.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	alloc.Reset()
	if len(alloc.cmds) != 0 {
		t.Error("allocator reset should drop commands")
	}
}

func TestRecordingClosedListPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	list := &CommandList{}
	list.SetStencilRef(1)
}

func TestReplayTracksStencilRef(t *testing.T) {
	alloc := &Allocator{}
	list := &CommandList{}
	list.Reset(alloc, nil)
	list.SetStencilRef(1)
	list.SetPrimitiveTopology(gfx.LineList)
	list.Close()

	var s state
	for _, cmd := range alloc.cmds {
		cmd(&s)
	}
	if s.stencilRef != 1 || s.topology != gfx.LineList {
		t.Errorf("unexpected replay state %+v", s)
	}
}

func TestSwapchainResize(t *testing.T) {
	s := &Swapchain{width: 800, height: 600}
	if err := s.Resize(0, 10); err == nil {
		t.Error("expected error for zero width")
	}
	if err := s.Resize(1024, 768); err != nil {
		t.Fatal(err)
	}
	if w, h := s.Size(); w != 1024 || h != 768 {
		t.Errorf("size = %dx%d", w, h)
	}
}
