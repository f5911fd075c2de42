package frame

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
	"github.com/Faultbox/mirror-room/internal/logger"
)

// DefaultWaitTimeout bounds a single fence wait.
const DefaultWaitTimeout = 5 * time.Second

// Ring cycles through NumFrameResources frame resources, blocking before
// reuse until the GPU has finished the frame that last used a slot.
type Ring struct {
	resources []*Resource
	fence     gfx.Fence
	queue     gfx.Queue

	// fenceValue is the last value handed to the queue.
	fenceValue uint64

	// WaitTimeout bounds each fence wait.
	WaitTimeout time.Duration

	waits uint64
	log   *zap.Logger
}

// NewRing creates the frame resources and the fence on dev.
func NewRing(dev gfx.Device, counts Counts) (*Ring, error) {
	fence, err := dev.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("creating fence: %w", err)
	}

	r := &Ring{
		fence:       fence,
		queue:       dev.Queue(),
		WaitTimeout: DefaultWaitTimeout,
		log:         logger.Named("frame"),
	}
	for i := 0; i < NumFrameResources; i++ {
		res, err := NewResource(dev, counts)
		if err != nil {
			return nil, multierr.Append(fmt.Errorf("frame resource %d: %w", i, err), r.Release())
		}
		r.resources = append(r.resources, res)
	}
	return r, nil
}

// Len returns the ring depth.
func (r *Ring) Len() int {
	return len(r.resources)
}

// Resource returns slot i.
func (r *Ring) Resource(i int) *Resource {
	return r.resources[i]
}

// FenceValue returns the last value signaled on the queue.
func (r *Ring) FenceValue() uint64 {
	return r.fenceValue
}

// Waits returns how many times Acquire had to block.
func (r *Ring) Waits() uint64 {
	return r.waits
}

// Acquire returns the resource for frameIndex, waiting until the GPU has
// finished the last frame submitted with it.
func (r *Ring) Acquire(frameIndex uint64) (*Resource, error) {
	res := r.resources[frameIndex%uint64(len(r.resources))]

	if res.Fence != 0 && r.fence.CompletedValue() < res.Fence {
		r.waits++
		r.log.Debug("waiting for frame resource",
			zap.Uint64("frame", frameIndex),
			zap.Uint64("fence", res.Fence),
			zap.Uint64("completed", r.fence.CompletedValue()))
		if err := r.fence.Wait(res.Fence, r.WaitTimeout); err != nil {
			return nil, fmt.Errorf("waiting for fence %d: %w", res.Fence, err)
		}
	}
	return res, nil
}

// Submit advances the fence counter, stamps res with it and signals the
// queue. Call after the frame's command lists have been executed.
func (r *Ring) Submit(res *Resource) error {
	r.fenceValue++
	res.Fence = r.fenceValue
	if err := r.queue.Signal(r.fence, r.fenceValue); err != nil {
		return fmt.Errorf("signaling fence %d: %w", r.fenceValue, err)
	}
	return nil
}

// Flush blocks until the GPU has finished all submitted work.
func (r *Ring) Flush() error {
	r.fenceValue++
	if err := r.queue.Signal(r.fence, r.fenceValue); err != nil {
		return fmt.Errorf("signaling fence %d: %w", r.fenceValue, err)
	}
	if r.fence.CompletedValue() < r.fenceValue {
		if err := r.fence.Wait(r.fenceValue, r.WaitTimeout); err != nil {
			return fmt.Errorf("flushing queue: %w", err)
		}
	}
	return nil
}

// Release frees all frame resources and the fence. The caller must Flush
// first.
func (r *Ring) Release() error {
	var err error
	for _, res := range r.resources {
		err = multierr.Append(err, res.Release())
	}
	r.resources = nil
	if r.fence != nil {
		err = multierr.Append(err, r.fence.Release())
	}
	return err
}
