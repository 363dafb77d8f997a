package frame

import "sync/atomic"

// Buffer owns the backing bytes of one or more frame references. The
// reference count starts at one; the constructor's caller holds that
// initial reference, typically by wrapping the Buffer in a Ref.
type Buffer struct {
	data []byte
	refs atomic.Int32
	free func([]byte)
}

// NewBuffer wraps data in a Buffer with a reference count of one. If
// free is non-nil it is called exactly once, when the count reaches
// zero, so callers can return pooled or externally allocated memory.
func NewBuffer(data []byte, free func([]byte)) *Buffer {
	b := &Buffer{data: data, free: free}
	b.refs.Store(1)
	return b
}

// Bytes returns the backing storage. The slice is shared by every Ref
// aliasing this Buffer and becomes nil once the Buffer is released.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the size of the backing storage in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// RefCount returns the current number of live references.
func (b *Buffer) RefCount() int {
	return int(b.refs.Load())
}

func (b *Buffer) retain() {
	b.refs.Add(1)
}

// Release drops one reference. When the count reaches zero the free
// hook runs and the backing storage is detached. Releasing more often
// than the Buffer was referenced never frees twice.
func (b *Buffer) Release() {
	if b.refs.Add(-1) == 0 {
		if b.free != nil {
			b.free(b.data)
		}
		b.data = nil
	}
}
