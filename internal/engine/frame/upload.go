package frame

import (
	"encoding/binary"
	"fmt"

	"github.com/Faultbox/mirror-room/internal/engine/gfx"
)

// UploadBuffer is a typed constant buffer: count elements of T, each
// padded to the constant-buffer alignment.
type UploadBuffer[T any] struct {
	buf gfx.UploadBuffer
}

// NewUploadBuffer allocates count elements of T on dev.
func NewUploadBuffer[T any](dev gfx.Device, count int) (*UploadBuffer[T], error) {
	var zero T
	size := binary.Size(&zero)
	if size <= 0 {
		return nil, fmt.Errorf("constant type %T is not fixed-size", zero)
	}
	buf, err := dev.CreateUploadBuffer(CalcConstantBufferByteSize(size), count)
	if err != nil {
		return nil, fmt.Errorf("creating %T buffer: %w", zero, err)
	}
	return &UploadBuffer[T]{buf: buf}, nil
}

// CopyData writes v into element index.
func (u *UploadBuffer[T]) CopyData(index int, v *T) {
	u.buf.CopyData(index, Encode(v))
}

// Offset returns the byte offset of element index.
func (u *UploadBuffer[T]) Offset(index int) int {
	return index * u.buf.ElementSize()
}

// Resource returns the underlying buffer for binding.
func (u *UploadBuffer[T]) Resource() gfx.UploadBuffer {
	return u.buf
}

// Len returns the element count.
func (u *UploadBuffer[T]) Len() int {
	return u.buf.Len()
}

// Release frees the underlying buffer.
func (u *UploadBuffer[T]) Release() error {
	return u.buf.Release()
}
