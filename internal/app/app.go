// Package app runs the mirror room: window, GL device, renderer and the
// frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/config"
	"github.com/Faultbox/mirror-room/internal/engine/gfx/glgfx"
	"github.com/Faultbox/mirror-room/internal/engine/input"
	"github.com/Faultbox/mirror-room/internal/engine/shader"
	"github.com/Faultbox/mirror-room/internal/engine/window"
	"github.com/Faultbox/mirror-room/internal/logger"
	"github.com/Faultbox/mirror-room/internal/notify"
)

// Title is the window caption.
const Title = "Stencil Mirrors"

// App is the running application.
type App struct {
	cfg     *config.Config
	notify  notify.Notifier
	running bool
	paused  bool

	window   *window.Window
	device   *glgfx.Device
	renderer *Renderer
	input    *input.Input
	watcher  *shader.Watcher
	stats    FrameStats

	log *zap.Logger
}

// New opens the window and creates the renderer.
func New(cfg *config.Config, n notify.Notifier) (*App, error) {
	a := &App{
		cfg:    cfg,
		notify: n,
		input:  input.New(),
		stats:  FrameStats{Title: Title},
		log:    logger.Named("app"),
	}
	a.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("shadows", cfg.Scene.Shadows))

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The device needs the context the window made current.
	if a.device, err = glgfx.New(a.window); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}
	if a.renderer, err = NewRenderer(a.device, cfg, n); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if cfg.Scene.ShaderDir != "" {
		if a.watcher, err = shader.NewWatcher(cfg.Scene.ShaderDir); err != nil {
			a.log.Warn("shader hot reload disabled", zap.Error(err))
			a.watcher = nil
		}
	}

	a.log.Info("initialized")
	return a, nil
}

// Run drives the frame loop until the window closes or ESC is pressed.
func (a *App) Run() error {
	a.running = true
	start := time.Now()
	last := start

	for a.running {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		if a.input.Update() {
			break
		}
		a.handleEvents()
		if !a.running {
			break
		}

		if a.paused {
			// Keep the event loop alive without spinning while minimized.
			sdl.Delay(50)
			continue
		}

		a.update(dt.Seconds())

		if a.watcher != nil && a.watcher.Pending() {
			if err := a.renderer.ReloadShaders(); err != nil {
				a.log.Warn("shader reload failed", zap.Error(err))
			}
		}

		if err := a.renderer.Frame(float32(now.Sub(start).Seconds()), float32(dt.Seconds())); err != nil {
			return fmt.Errorf("frame %d: %w", a.renderer.FrameIndex(), err)
		}

		if title, ok := a.stats.Tick(dt); ok {
			a.window.SetTitle(title)
			a.log.Debug("frame stats",
				zap.String("title", title),
				zap.Uint64("frames", a.renderer.FrameIndex()),
				zap.Uint64("fence_waits", a.renderer.FenceWaits()))
		}
	}
	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventWindowMinimized:
			a.log.Debug("paused")
			a.paused = true
		case input.EventWindowRestored:
			a.log.Debug("resumed")
			a.paused = false
			a.renderer.Resize(a.window.DrawableSize())
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_ESCAPE {
				a.running = false
			}
		}
	}
}

// update applies keyboard and mouse input to the scene and camera.
func (a *App) update(dt float64) {
	if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
		a.renderer.RequestScreenshot()
	}
	a.renderer.Scene().OnKeyboardInput(sceneKeys(a.input.IsKeyDown), float32(dt))

	cam := a.renderer.Camera()
	if d := a.input.Drag(sdl.BUTTON_LEFT); d.DX != 0 || d.DY != 0 {
		cam.OnLeftDrag(d.DX, d.DY)
	}
	if d := a.input.Drag(sdl.BUTTON_RIGHT); d.DX != 0 || d.DY != 0 {
		cam.OnRightDrag(d.DX, d.DY)
	}
}

// Close releases the renderer and closes the window.
func (a *App) Close() error {
	a.log.Info("closing")

	var err error
	if a.watcher != nil {
		err = multierr.Append(err, a.watcher.Close())
	}
	if a.renderer != nil {
		err = multierr.Append(err, a.renderer.Close())
	}
	if a.window != nil {
		a.window.Close()
	}
	return err
}
