package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/mirror-room/internal/config"
	"github.com/Faultbox/mirror-room/internal/engine/gfx/gfxtest"
	"github.com/Faultbox/mirror-room/internal/engine/shader"
	"github.com/Faultbox/mirror-room/internal/notify"
)

const triangleModel = `VertexCount: 3
TriangleCount: 1
VertexList (pos, normal)
{
	0 0 0 0 0 -1
	0 1 0 0 0 -1
	1 0 0 0 0 -1
}
TriangleList
{
	0 1 2
}
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	model := filepath.Join(dir, "skull.txt")
	if err := os.WriteFile(model, []byte(triangleModel), 0o644); err != nil {
		t.Fatalf("writing model: %v", err)
	}
	cfg := config.Default()
	cfg.Scene.ModelPath = model
	cfg.Scene.TextureDir = filepath.Join(dir, "textures")
	cfg.Graphics.ScreenshotDir = filepath.Join(dir, "screenshots")
	return cfg
}

func newTestRenderer(t *testing.T, cfg *config.Config) (*Renderer, *gfxtest.Device, *notify.Recorder) {
	t.Helper()
	dev := gfxtest.NewDevice()
	rec := &notify.Recorder{}
	r, err := NewRenderer(dev, cfg, rec)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r, dev, rec
}

func TestRendererFrames(t *testing.T) {
	r, dev, _ := newTestRenderer(t, testConfig(t))

	for i := 0; i < 5; i++ {
		if err := r.Frame(float32(i)/60, 1.0/60); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	if r.FrameIndex() != 5 {
		t.Errorf("expected frame index 5, got %d", r.FrameIndex())
	}
	if n := dev.RecordingQueue().Executed; n != 5 {
		t.Errorf("expected 5 executions, got %d", n)
	}
	if n := dev.FakeSwapchain().Presents; n != 5 {
		t.Errorf("expected 5 presents, got %d", n)
	}
	// One flush after initialization, then one signal per frame.
	signals := dev.RecordingQueue().Signals
	if len(signals) != 6 {
		t.Fatalf("expected 6 signals, got %v", signals)
	}
	for i := 1; i < len(signals); i++ {
		if signals[i] <= signals[i-1] {
			t.Errorf("fence values not increasing: %v", signals)
		}
	}
	if n := dev.List().Count(gfxtest.OpDraw); n != 32 {
		t.Errorf("expected 32 draws, got %d", n)
	}
}

func TestRendererMissingModel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.ModelPath = filepath.Join(t.TempDir(), "missing.txt")

	r, dev, rec := newTestRenderer(t, cfg)
	if len(r.Scene().Skulls()) != 0 {
		t.Errorf("expected no skulls, got %d", len(r.Scene().Skulls()))
	}
	found := false
	for _, m := range rec.Messages {
		if m.Title == "Missing model" && m.Level == "warn" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing model warning, got %+v", rec.Messages)
	}

	if err := r.Frame(0, 1.0/60); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if n := dev.List().Count(gfxtest.OpDraw); n != 18 {
		t.Errorf("expected 18 draws without skulls, got %d", n)
	}
}

func TestRendererEmptyModel(t *testing.T) {
	cfg := testConfig(t)
	empty := "VertexCount: 0\nTriangleCount: 0\nVertexList (pos, normal)\n{\n}\nTriangleList\n{\n}\n"
	if err := os.WriteFile(cfg.Scene.ModelPath, []byte(empty), 0o644); err != nil {
		t.Fatalf("writing model: %v", err)
	}

	r, dev, rec := newTestRenderer(t, cfg)
	if len(r.Scene().Skulls()) != 0 {
		t.Errorf("expected no skulls, got %d", len(r.Scene().Skulls()))
	}
	for _, b := range dev.Buffers {
		if len(b.Data) == 0 {
			t.Error("empty buffer uploaded")
		}
	}
	found := false
	for _, m := range rec.Messages {
		if m.Title == "Missing model" && m.Level == "warn" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing model warning, got %+v", rec.Messages)
	}
	if err := r.Frame(0, 1.0/60); err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
}

func TestRendererTextureFallback(t *testing.T) {
	_, dev, rec := newTestRenderer(t, testConfig(t))

	if len(dev.Textures) != 4 {
		t.Fatalf("expected 4 textures, got %d", len(dev.Textures))
	}
	if n := rec.Count("warn"); n != 1 {
		t.Fatalf("expected a single texture warning, got %+v", rec.Messages)
	}
	if !strings.Contains(rec.Messages[0].Text, "bricksTex") {
		t.Errorf("warning does not name the missing textures: %q", rec.Messages[0].Text)
	}
}

func TestRendererApplySceneConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Shadows = true
	cfg.Scene.SelectedSkull = 1

	r, _, _ := newTestRenderer(t, cfg)
	if !r.Scene().ShadowsEnabled {
		t.Error("shadows not enabled")
	}
	if r.Scene().Selected() != 1 {
		t.Errorf("expected skull 1 selected, got %d", r.Scene().Selected())
	}
}

func writeShaders(t *testing.T, dir string) {
	t.Helper()
	src := shader.Embedded()
	if err := os.WriteFile(filepath.Join(dir, shader.VertexFile), []byte(src.Vertex), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, shader.FragmentFile), []byte(src.Fragment), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRendererReloadShaders(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.ShaderDir = t.TempDir()
	writeShaders(t, cfg.Scene.ShaderDir)

	r, dev, _ := newTestRenderer(t, cfg)
	if len(dev.Shaders) != 3 {
		t.Fatalf("expected 3 shaders, got %d", len(dev.Shaders))
	}
	oldPipes := r.pipes

	if err := r.ReloadShaders(); err != nil {
		t.Fatalf("ReloadShaders failed: %v", err)
	}
	if len(dev.Shaders) != 6 {
		t.Fatalf("expected 6 shaders after reload, got %d", len(dev.Shaders))
	}
	for _, s := range dev.Shaders[:3] {
		if !s.Released {
			t.Errorf("old shader %s not released", s.Name)
		}
	}
	if r.pipes == oldPipes {
		t.Error("pipelines were not replaced")
	}
	if err := r.Frame(0, 1.0/60); err != nil {
		t.Fatalf("Frame after reload failed: %v", err)
	}
}

func TestRendererFailedReloadKeepsPipelines(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.ShaderDir = t.TempDir()
	writeShaders(t, cfg.Scene.ShaderDir)

	r, dev, _ := newTestRenderer(t, cfg)
	pipes := r.pipes

	dev.FailCompile = true
	if err := r.ReloadShaders(); err == nil {
		t.Fatal("expected reload to fail")
	}
	if r.pipes != pipes {
		t.Error("pipelines replaced by a failed reload")
	}
	for _, s := range dev.Shaders {
		if s.Released {
			t.Errorf("running shader %s released", s.Name)
		}
	}
}

func TestRendererMissingShaderDirFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.ShaderDir = filepath.Join(t.TempDir(), "missing")

	_, dev, rec := newTestRenderer(t, cfg)
	if len(dev.Shaders) != 3 {
		t.Errorf("expected built-in shaders, got %d", len(dev.Shaders))
	}
	found := false
	for _, m := range rec.Messages {
		if m.Title == "Missing shaders" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing shaders warning, got %+v", rec.Messages)
	}
}

func TestRendererResize(t *testing.T) {
	r, dev, _ := newTestRenderer(t, testConfig(t))

	r.Resize(1024, 512)
	if w, h := dev.FakeSwapchain().Size(); w != 1024 || h != 512 {
		t.Errorf("swapchain is %dx%d", w, h)
	}
	// Minimized windows report zero sizes.
	r.Resize(0, 0)
	if w, h := dev.FakeSwapchain().Size(); w != 1024 || h != 512 {
		t.Errorf("zero resize changed the swapchain to %dx%d", w, h)
	}
}

func TestRendererClose(t *testing.T) {
	dev := gfxtest.NewDevice()
	r, err := NewRenderer(dev, testConfig(t), &notify.Recorder{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	for _, tex := range dev.Textures {
		if !tex.Released {
			t.Errorf("texture %s not released", tex.Name())
		}
	}
	for _, p := range dev.Pipelines {
		if !p.Released {
			t.Errorf("pipeline %s not released", p.Desc().Name)
		}
	}
	for _, b := range dev.Buffers {
		if !b.Released {
			t.Error("mesh buffer not released")
		}
	}
}

func TestRendererScreenshot(t *testing.T) {
	cfg := testConfig(t)
	r, dev, _ := newTestRenderer(t, cfg)
	dev.FakeSwapchain().Fill = [4]byte{10, 20, 30, 255}

	r.RequestScreenshot()
	for i := 0; i < 2; i++ {
		if err := r.Frame(0, 1.0/60); err != nil {
			t.Fatalf("Frame failed: %v", err)
		}
	}
	if n := dev.FakeSwapchain().Reads; n != 1 {
		t.Errorf("expected one read back, got %d", n)
	}
	files, err := filepath.Glob(filepath.Join(cfg.Graphics.ScreenshotDir, "mirrors_*.png"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one screenshot, got %v (%v)", files, err)
	}
}

func TestFrameStats(t *testing.T) {
	s := FrameStats{Title: "room"}
	for i := 0; i < 59; i++ {
		if _, ok := s.Tick(time.Second / 60); ok {
			t.Fatalf("title after %d frames", i+1)
		}
	}
	title, ok := s.Tick(time.Second/60 + time.Millisecond)
	if !ok {
		t.Fatal("no title after one second")
	}
	if !strings.HasPrefix(title, "room") || !strings.Contains(title, "fps: 60") || !strings.Contains(title, "mspf: 16.") {
		t.Errorf("unexpected title %q", title)
	}
	if _, ok := s.Tick(time.Millisecond); ok {
		t.Error("window did not restart")
	}
}

func TestSceneKeys(t *testing.T) {
	held := map[sdl.Scancode]bool{sdl.SCANCODE_2: true, sdl.SCANCODE_W: true, sdl.SCANCODE_E: true}
	k := sceneKeys(func(sc sdl.Scancode) bool { return held[sc] })
	if !k.Select2 || !k.W || !k.E {
		t.Errorf("held keys not mapped: %+v", k)
	}
	if k.Select1 || k.A || k.D || k.S || k.Q {
		t.Errorf("unexpected keys: %+v", k)
	}
}
