package frame

import (
	"errors"
	"fmt"

	"github.com/opd-ai/vidgraph/pixfmt"
)

var (
	// ErrNilBuffer is returned when a Ref is built without backing storage.
	ErrNilBuffer = errors.New("frame buffer cannot be nil")

	// ErrInvalidDimensions is returned when a frame width or height is
	// zero or negative.
	ErrInvalidDimensions = errors.New("frame dimensions must be positive")
)

// Plane locates one plane of a frame inside its Buffer.
type Plane struct {
	// Offset is the byte position of the plane's first row.
	Offset int

	// Stride is the byte distance between the starts of consecutive
	// rows. The palette plane of palette formats has no rows and keeps
	// a zero stride.
	Stride int
}

// Ref is a view of a frame inside a Buffer. Copying the struct does not
// add a reference; use Clone for that.
type Ref struct {
	buf    *Buffer
	desc   *pixfmt.Descriptor
	format pixfmt.PixelFormat
	width  int
	height int
	planes [pixfmt.MaxPlanes]Plane
}

// NewRef builds a Ref over buf with the given format, logical size and
// plane layout. The Ref adopts buf's current reference, so the caller
// releases through the Ref from then on.
func NewRef(buf *Buffer, format pixfmt.PixelFormat, width, height int, planes [pixfmt.MaxPlanes]Plane) (*Ref, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	desc, err := pixfmt.Describe(format)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Ref{
		buf:    buf,
		desc:   desc,
		format: format,
		width:  width,
		height: height,
		planes: planes,
	}, nil
}

// Alloc creates a frame with freshly allocated, zeroed storage laid out
// by DefaultLayout.
func Alloc(format pixfmt.PixelFormat, width, height int) (*Ref, error) {
	planes, size, err := DefaultLayout(format, width, height)
	if err != nil {
		return nil, err
	}
	return NewRef(NewBuffer(make([]byte, size), nil), format, width, height, planes)
}

// DefaultLayout computes a tightly packed plane layout for a frame of
// the given format and size and returns it together with the total
// number of bytes it occupies. Planes are laid out in index order with
// no padding between rows.
func DefaultLayout(format pixfmt.PixelFormat, width, height int) ([pixfmt.MaxPlanes]Plane, int, error) {
	var planes [pixfmt.MaxPlanes]Plane

	desc, err := pixfmt.Describe(format)
	if err != nil {
		return planes, 0, err
	}
	if width <= 0 || height <= 0 {
		return planes, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	size := 0
	for i := 0; i < desc.NumPlanes; i++ {
		if desc.HasPalette && i == 1 {
			planes[i] = Plane{Offset: size}
			size += pixfmt.PaletteSize
			continue
		}
		stride := desc.PlaneWidth(i, width) * desc.MaxPixelStep[i]
		planes[i] = Plane{Offset: size, Stride: stride}
		size += stride * desc.PlaneHeight(i, height)
	}
	return planes, size, nil
}

// Format returns the pixel format the view was created with.
func (r *Ref) Format() pixfmt.PixelFormat {
	return r.format
}

// Descriptor returns the layout descriptor of the view's format.
func (r *Ref) Descriptor() *pixfmt.Descriptor {
	return r.desc
}

// Width returns the logical width of the view in pixels.
func (r *Ref) Width() int {
	return r.width
}

// Height returns the logical height of the view in pixels.
func (r *Ref) Height() int {
	return r.height
}

// Buffer returns the backing Buffer shared by every clone of this view.
func (r *Ref) Buffer() *Buffer {
	return r.buf
}

// Stride returns the row stride of the given plane in bytes.
func (r *Ref) Stride(plane int) int {
	if !r.HasPlane(plane) {
		return 0
	}
	return r.planes[plane].Stride
}

// Offset returns the byte position of the given plane's first row
// within the backing Buffer.
func (r *Ref) Offset(plane int) int {
	if !r.HasPlane(plane) {
		return 0
	}
	return r.planes[plane].Offset
}

// HasPlane reports whether the view's format carries the given plane.
func (r *Ref) HasPlane(plane int) bool {
	return plane >= 0 && plane < r.desc.NumPlanes
}

// Data returns the backing bytes of the given plane, starting at its
// current offset and running to the end of the Buffer. Rows are located
// by walking Stride bytes at a time. Absent planes and released views
// return nil.
func (r *Ref) Data(plane int) []byte {
	if !r.HasPlane(plane) || r.buf == nil {
		return nil
	}
	off := r.planes[plane].Offset
	if off < 0 || off > len(r.buf.data) {
		return nil
	}
	return r.buf.data[off:]
}

// Clone returns a new view of the same Buffer with an added reference.
// The clone starts with the parent's size and plane layout and can be
// narrowed independently with SetSize and AdvancePlane.
func (r *Ref) Clone() *Ref {
	r.buf.retain()
	dup := *r
	return &dup
}

// Release drops this view's reference to the backing Buffer.
func (r *Ref) Release() {
	r.buf.Release()
}

// SetSize rewrites the logical dimensions of the view. The backing
// storage and plane offsets are untouched.
func (r *Ref) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// AdvancePlane moves the given plane's offset forward by delta bytes,
// repositioning the view within the same storage. Planes the format
// does not carry are left alone.
func (r *Ref) AdvancePlane(plane, delta int) {
	if !r.HasPlane(plane) {
		return
	}
	r.planes[plane].Offset += delta
}
