// Package glgfx implements the gfx device abstraction on OpenGL 4.1 core.
//
// Command lists record closures that the queue replays on the render
// thread. Fences are GL sync objects. The swapchain is the window's
// default framebuffer.
package glgfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/logger"
)

// Presenter is the window the swapchain presents to.
type Presenter interface {
	SwapBuffers()
	DrawableSize() (int, int)
}

// Device is a gfx.Device backed by the current GL context.
type Device struct {
	list  *CommandList
	queue *Queue
	swap  *Swapchain

	uniformAlign int
	log          *zap.Logger
}

// New loads the GL function pointers for the current context. The caller
// must have made a 4.1 core context current on this thread.
func New(win Presenter) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	d := &Device{
		list:  &CommandList{},
		queue: &Queue{},
		log:   logger.Named("gl"),
	}
	w, h := win.DrawableSize()
	d.swap = &Swapchain{win: win, width: w, height: h}
	d.queue.swap = d.swap

	var align int32
	gl.GetIntegerv(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT, &align)
	d.uniformAlign = int(align)
	if d.uniformAlign <= 0 {
		d.uniformAlign = 256
	}

	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
		zap.Int("uniformAlign", d.uniformAlign))

	gl.Enable(gl.SCISSOR_TEST)
	return d, nil
}

// CommandList returns the device's single command list.
func (d *Device) CommandList() gfx.CommandList { return d.list }

// Queue returns the device's queue.
func (d *Device) Queue() gfx.Queue { return d.queue }

// Swapchain returns the window swapchain.
func (d *Device) Swapchain() gfx.Swapchain { return d.swap }

// CreateCommandAllocator creates storage for recorded commands.
func (d *Device) CreateCommandAllocator() (gfx.CommandAllocator, error) {
	return &Allocator{}, nil
}

// CreateFence creates a sync-object timeline starting at zero.
func (d *Device) CreateFence() (gfx.Fence, error) {
	return &Fence{}, nil
}

// checkError drains the GL error queue and reports the first error.
func checkError(op string) error {
	first := uint32(gl.NO_ERROR)
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		if first == gl.NO_ERROR {
			first = e
		}
		if e == gl.OUT_OF_MEMORY {
			return fmt.Errorf("%s: %w: out of memory", op, gfx.ErrDeviceLost)
		}
	}
	if first != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", op, first)
	}
	return nil
}
