package glgfx

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// pendingSync is a GL sync object standing for one fence value.
type pendingSync struct {
	value uint64
	sync  uintptr
}

// Fence is a timeline of GL sync objects. Signaling inserts a sync object;
// the completed value advances as they are reached.
type Fence struct {
	completed uint64
	pending   []pendingSync
}

// CompletedValue polls the pending sync objects without blocking.
func (f *Fence) CompletedValue() uint64 {
	for len(f.pending) > 0 {
		p := f.pending[0]
		var status int32
		gl.GetSynciv(p.sync, gl.SYNC_STATUS, 1, nil, &status)
		if status != gl.SIGNALED {
			break
		}
		f.retire()
	}
	return f.completed
}

// retire drops the oldest sync object and advances the completed value.
func (f *Fence) retire() {
	p := f.pending[0]
	gl.DeleteSync(p.sync)
	f.completed = p.value
	f.pending = f.pending[1:]
}

// Wait blocks until value has been reached or timeout elapses.
func (f *Fence) Wait(value uint64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for f.completed < value {
		if len(f.pending) == 0 {
			return fmt.Errorf("waiting for fence value %d: never signaled", value)
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return gfx.ErrFenceTimeout
		}

		switch gl.ClientWaitSync(f.pending[0].sync, gl.SYNC_FLUSH_COMMANDS_BIT, uint64(remaining.Nanoseconds())) {
		case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
			f.retire()
		case gl.TIMEOUT_EXPIRED:
			return gfx.ErrFenceTimeout
		default:
			return fmt.Errorf("waiting for fence value %d: %w", value, gfx.ErrDeviceLost)
		}
	}
	return nil
}

// Release deletes every outstanding sync object.
func (f *Fence) Release() error {
	for _, p := range f.pending {
		gl.DeleteSync(p.sync)
	}
	f.pending = nil
	return nil
}

// Queue replays command lists on the calling thread.
type Queue struct {
	swap  *Swapchain
	state state
}

// Execute replays each closed list in order.
func (q *Queue) Execute(lists ...gfx.CommandList) error {
	for _, l := range lists {
		cl, ok := l.(*CommandList)
		if !ok {
			return fmt.Errorf("glgfx: command list %T is not a GL list", l)
		}
		if cl.recording {
			return fmt.Errorf("executing command list: %w", ErrRecording)
		}

		q.state.swapHeight = q.swap.height
		for _, cmd := range cl.alloc.cmds {
			cmd(&q.state)
		}
	}
	return checkError("executing command list")
}

// Signal inserts a sync object that completes value once all work
// submitted so far has finished.
func (q *Queue) Signal(f gfx.Fence, value uint64) error {
	fence, ok := f.(*Fence)
	if !ok {
		return fmt.Errorf("glgfx: fence %T is not a GL fence", f)
	}
	sync := gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	if sync == 0 {
		return fmt.Errorf("signaling fence value %d: %w", value, gfx.ErrDeviceLost)
	}
	fence.pending = append(fence.pending, pendingSync{value: value, sync: sync})
	return nil
}

// Swapchain presents the window's default framebuffer.
type Swapchain struct {
	win    Presenter
	width  int
	height int
}

// Present swaps the window buffers.
func (s *Swapchain) Present() error {
	s.win.SwapBuffers()
	return nil
}

// Resize records the new drawable size. The default framebuffer follows
// the window on its own.
func (s *Swapchain) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resizing swapchain to %dx%d", width, height)
	}
	s.width, s.height = width, height
	return nil
}

func (s *Swapchain) Size() (width, height int) { return s.width, s.height }

// ReadPixels reads the back buffer. Call after Execute and before Present.
func (s *Swapchain) ReadPixels() ([]byte, int, int, error) {
	w, h := s.width, s.height
	pix := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	if err := checkError("ReadPixels"); err != nil {
		return nil, 0, 0, err
	}
	return pix, w, h, nil
}
