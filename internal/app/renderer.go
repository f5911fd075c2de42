package app

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/config"
	"github.com/Faultbox/mirror-room/internal/engine/camera"
	"github.com/Faultbox/mirror-room/internal/engine/frame"
	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/engine/pipeline"
	"github.com/Faultbox/mirror-room/internal/engine/scene"
	"github.com/Faultbox/mirror-room/internal/engine/screenshot"
	"github.com/Faultbox/mirror-room/internal/engine/shader"
	"github.com/Faultbox/mirror-room/internal/engine/texture"
	"github.com/Faultbox/mirror-room/internal/logger"
	"github.com/Faultbox/mirror-room/internal/notify"
	"github.com/Faultbox/mirror-room/pkg/formats"
	"github.com/Faultbox/mirror-room/pkg/math"
)

// Renderer owns the GPU objects of the mirror room and draws it one frame
// at a time.
type Renderer struct {
	dev    gfx.Device
	notify notify.Notifier
	cfg    config.SceneConfig

	scene  *scene.Scene
	camera *camera.OrbitCamera

	ring     *frame.Ring
	shaders  pipeline.Shaders
	pipes    *pipeline.Set
	textures []gfx.Texture
	heap     gfx.DescriptorHeap

	screenshots *screenshot.Writer
	capture     bool

	proj       math.Mat4
	width      int
	height     int
	frameIndex uint64

	log *zap.Logger
}

// NewRenderer loads the scene assets and creates every GPU object. Missing
// assets are reported through n and replaced; device failures are
// returned.
func NewRenderer(dev gfx.Device, cfg *config.Config, n notify.Notifier) (*Renderer, error) {
	r := &Renderer{
		dev:    dev,
		notify: n,
		cfg:    cfg.Scene,
		camera: camera.NewOrbitCamera(cfg.Camera.Theta, cfg.Camera.Phi, cfg.Camera.Radius),
		log:    logger.Named("renderer"),

		screenshots: screenshot.New(cfg.Graphics.ScreenshotDir, "mirrors"),
	}

	r.scene = scene.Build(r.loadModel())
	r.scene.ShadowsEnabled = cfg.Scene.Shadows
	r.scene.Select(cfg.Scene.SelectedSkull)

	if err := r.init(); err != nil {
		return nil, multierr.Append(err, r.Close())
	}

	w, h := dev.Swapchain().Size()
	r.Resize(w, h)
	return r, nil
}

func (r *Renderer) init() error {
	if err := r.scene.Registry().Upload(r.dev); err != nil {
		return fmt.Errorf("uploading geometry: %w", err)
	}
	if err := r.loadTextures(); err != nil {
		return err
	}

	src, err := shader.Load(r.cfg.ShaderDir)
	if err != nil {
		r.notify.Warn("Missing shaders", "Using built-in shaders: %v", err)
		src = shader.Embedded()
	}
	if err := r.buildPipelines(src); err != nil {
		return err
	}

	if r.ring, err = frame.NewRing(r.dev, r.scene.Counts()); err != nil {
		return fmt.Errorf("creating frame resources: %w", err)
	}
	// Wait for the initialization uploads.
	return r.ring.Flush()
}

// loadModel returns the skull model, or nil after notifying the user.
func (r *Renderer) loadModel() *formats.Model {
	if r.cfg.ModelPath == "" {
		r.notify.Warn("Missing model", "No skull model configured; the room will be empty.")
		return nil
	}
	m, err := formats.LoadModelText(r.cfg.ModelPath)
	if err != nil {
		r.notify.Warn("Missing model", "%s could not be loaded; the room will be empty.\n\n%v", r.cfg.ModelPath, err)
		return nil
	}
	if m.TriangleCount() == 0 {
		r.notify.Warn("Missing model", "%s has no triangles; the room will be empty.", r.cfg.ModelPath)
		return nil
	}
	r.log.Info("model loaded",
		zap.String("path", r.cfg.ModelPath),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()))
	return m
}

func (r *Renderer) loadTextures() error {
	var missing []string
	for _, name := range r.scene.Registry().TextureNames() {
		img, err := texture.LoadOrFallback(r.cfg.TextureDir, name)
		if err != nil {
			missing = append(missing, name)
		}
		tex, err := r.dev.CreateTexture(name, img)
		if err != nil {
			return fmt.Errorf("creating texture %s: %w", name, err)
		}
		r.textures = append(r.textures, tex)
	}
	if len(missing) > 0 {
		r.notify.Warn("Missing textures", "Using procedural textures for %s (looked in %q).",
			strings.Join(missing, ", "), r.cfg.TextureDir)
	}

	heap, err := r.dev.CreateDescriptorHeap(r.textures)
	if err != nil {
		return fmt.Errorf("creating descriptor heap: %w", err)
	}
	r.heap = heap
	return nil
}

// buildPipelines compiles src and creates every technique. On failure the
// previous shaders and pipelines stay in place.
func (r *Renderer) buildPipelines(src shader.Sources) error {
	sh, err := shader.Compile(r.dev, src)
	if err != nil {
		return fmt.Errorf("compiling shaders: %w", err)
	}
	pipes, err := pipeline.Build(r.dev, sh)
	if err != nil {
		return multierr.Append(fmt.Errorf("building pipelines: %w", err), shader.Release(sh))
	}

	var old error
	if r.pipes != nil {
		old = multierr.Append(r.pipes.Release(), shader.Release(r.shaders))
	}
	r.shaders, r.pipes = sh, pipes
	return old
}

// ReloadShaders rebuilds every pipeline from the shader directory. A
// failed reload keeps the running pipelines.
func (r *Renderer) ReloadShaders() error {
	src, err := shader.Load(r.cfg.ShaderDir)
	if err != nil {
		return fmt.Errorf("reloading shaders: %w", err)
	}
	if err := r.ring.Flush(); err != nil {
		return err
	}
	if err := r.buildPipelines(src); err != nil {
		return fmt.Errorf("reloading shaders: %w", err)
	}
	r.log.Info("shaders reloaded", zap.String("dir", r.cfg.ShaderDir))
	return nil
}

// Resize adapts the projection and swapchain to a new drawable size.
// Zero sizes, as reported for minimized windows, are ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if err := r.dev.Swapchain().Resize(width, height); err != nil {
		r.log.Warn("swapchain resize failed", zap.Error(err))
		return
	}
	r.width, r.height = width, height
	r.proj = camera.Projection(float32(width) / float32(height))
	r.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// Scene returns the rendered scene.
func (r *Renderer) Scene() *scene.Scene { return r.scene }

// Camera returns the orbit camera.
func (r *Renderer) Camera() *camera.OrbitCamera { return r.camera }

// FrameIndex returns the number of frames submitted.
func (r *Renderer) FrameIndex() uint64 { return r.frameIndex }

// FenceWaits returns how often a frame had to wait for the GPU.
func (r *Renderer) FenceWaits() uint64 { return r.ring.Waits() }

// Frame updates the constant buffers, records and submits one frame and
// presents it.
func (r *Renderer) Frame(totalTime, deltaTime float32) error {
	res, err := r.ring.Acquire(r.frameIndex)
	if err != nil {
		return fmt.Errorf("acquiring frame resource: %w", err)
	}

	ctx := &scene.FrameContext{
		Index:     r.frameIndex,
		Resource:  res,
		List:      r.dev.CommandList(),
		Heap:      r.heap,
		Pipelines: r.pipes,
		TotalTime: totalTime,
		DeltaTime: deltaTime,
	}

	r.scene.Update(ctx, scene.PassInput{
		View:   r.camera.ViewMatrix(),
		Proj:   r.proj,
		EyePos: r.camera.EyePos(),
		Width:  r.width,
		Height: r.height,
	})

	vp := gfx.Viewport{Width: float32(r.width), Height: float32(r.height), MaxDepth: 1}
	sc := gfx.Scissor{Width: r.width, Height: r.height}
	if err := r.scene.Record(ctx, vp, sc); err != nil {
		return err
	}

	if err := r.dev.Queue().Execute(ctx.List); err != nil {
		return fmt.Errorf("executing frame %d: %w", r.frameIndex, err)
	}
	if r.capture {
		r.capture = false
		r.saveScreenshot()
	}
	if err := r.dev.Swapchain().Present(); err != nil {
		return fmt.Errorf("presenting frame %d: %w", r.frameIndex, err)
	}
	if err := r.ring.Submit(res); err != nil {
		return err
	}
	r.frameIndex++
	return nil
}

// RequestScreenshot saves the next frame as a PNG file.
func (r *Renderer) RequestScreenshot() { r.capture = true }

// saveScreenshot reads back the executed frame. Failures are logged and do
// not stop rendering.
func (r *Renderer) saveScreenshot() {
	reader, ok := r.dev.Swapchain().(gfx.PixelReader)
	if !ok {
		r.log.Warn("swapchain cannot read pixels")
		return
	}
	pix, w, h, err := reader.ReadPixels()
	if err != nil {
		r.log.Warn("reading frame failed", zap.Error(err))
		return
	}
	img, err := screenshot.FromPixels(pix, w, h)
	if err != nil {
		r.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	name, err := r.screenshots.Save(img)
	if err != nil {
		r.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	r.log.Info("screenshot saved", zap.String("path", name))
}

// Close waits for the GPU and releases everything the renderer created.
func (r *Renderer) Close() error {
	var err error
	if r.ring != nil {
		err = multierr.Append(err, r.ring.Flush())
		err = multierr.Append(err, r.ring.Release())
		r.ring = nil
	}
	if r.pipes != nil {
		err = multierr.Append(err, r.pipes.Release())
		r.pipes = nil
	}
	err = multierr.Append(err, shader.Release(r.shaders))
	r.shaders = pipeline.Shaders{}
	if r.heap != nil {
		err = multierr.Append(err, r.heap.Release())
		r.heap = nil
	}
	for _, t := range r.textures {
		err = multierr.Append(err, t.Release())
	}
	r.textures = nil
	if r.scene != nil {
		err = multierr.Append(err, r.scene.Registry().Release())
	}
	return err
}
