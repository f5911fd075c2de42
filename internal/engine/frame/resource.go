package frame

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// NumFrameResources is the ring depth: how many frames the CPU may record
// ahead of the GPU.
const NumFrameResources = 3

// PassCount is the number of pass records per frame: the main pass and the
// reflected pass.
const PassCount = 2

// Pass slots.
const (
	MainPass      = 0
	ReflectedPass = 1
)

// Counts sizes the constant buffers of each frame resource.
type Counts struct {
	Passes    int
	Objects   int
	Materials int
}

// Resource is everything the CPU writes for one frame. A Resource must not
// be touched again until the GPU has passed its Fence value.
type Resource struct {
	Allocator  gfx.CommandAllocator
	PassCB     *UploadBuffer[PassConstants]
	ObjectCB   *UploadBuffer[ObjectConstants]
	MaterialCB *UploadBuffer[MaterialConstants]

	// Fence is the value signaled after this frame's commands; zero means
	// the resource was never submitted.
	Fence uint64
}

// NewResource allocates one frame resource.
func NewResource(dev gfx.Device, counts Counts) (*Resource, error) {
	alloc, err := dev.CreateCommandAllocator()
	if err != nil {
		return nil, fmt.Errorf("creating command allocator: %w", err)
	}
	r := &Resource{Allocator: alloc}

	if r.PassCB, err = NewUploadBuffer[PassConstants](dev, counts.Passes); err != nil {
		return nil, multierr.Append(err, r.Release())
	}
	if r.ObjectCB, err = NewUploadBuffer[ObjectConstants](dev, counts.Objects); err != nil {
		return nil, multierr.Append(err, r.Release())
	}
	if r.MaterialCB, err = NewUploadBuffer[MaterialConstants](dev, counts.Materials); err != nil {
		return nil, multierr.Append(err, r.Release())
	}
	return r, nil
}

// Release frees every buffer the resource owns.
func (r *Resource) Release() error {
	var err error
	if r.PassCB != nil {
		err = multierr.Append(err, r.PassCB.Release())
	}
	if r.ObjectCB != nil {
		err = multierr.Append(err, r.ObjectCB.Release())
	}
	if r.MaterialCB != nil {
		err = multierr.Append(err, r.MaterialCB.Release())
	}
	if r.Allocator != nil {
		err = multierr.Append(err, r.Allocator.Release())
	}
	return err
}
