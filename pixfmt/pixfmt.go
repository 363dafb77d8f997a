package pixfmt

import (
	"errors"
	"fmt"
	"sort"
)

// MaxPlanes is the largest number of planes any supported format uses.
const MaxPlanes = 4

// PaletteSize is the byte size of the color table carried in plane 1 of
// palette formats: 256 entries of 4 bytes each.
const PaletteSize = 1024

// ErrUnknownFormat is returned by Describe and Parse when a pixel format
// is not in the capability table.
var ErrUnknownFormat = errors.New("unknown pixel format")

// PixelFormat identifies one entry in the capability table. The zero
// value None is not a valid format.
type PixelFormat int

// Supported pixel formats. Planar YUV formats store one sample per
// component with chroma planes subsampled by the format's shift factors.
// Packed formats store the whole pixel in plane 0. The J variants use
// full-range quantization and share the layout of their non-J siblings.
const (
	None PixelFormat = iota

	// 8-bit planar YUV.
	YUV420P
	YUV422P
	YUV444P
	YUV410P
	YUV411P
	YUV440P
	YUVJ420P
	YUVJ422P
	YUVJ444P
	YUVJ440P
	YUVA420P

	// 16-bit planar YUV.
	YUV420P16LE
	YUV420P16BE
	YUV422P16LE
	YUV422P16BE
	YUV444P16LE
	YUV444P16BE

	// Grayscale.
	Gray8
	Gray16BE
	Gray16LE

	// Packed RGB.
	RGB24
	BGR24
	ARGB
	RGBA
	ABGR
	BGRA
	RGB48BE
	RGB48LE
	RGB565BE
	RGB565LE
	RGB555BE
	RGB555LE
	BGR565BE
	BGR565LE
	BGR555BE
	BGR555LE
	RGB8
	BGR8
	RGB4Byte
	BGR4Byte

	// Palettized.
	Pal8
)

// Descriptor records the memory layout facts of one pixel format.
type Descriptor struct {
	// Name is the canonical lower-case name, e.g. "yuv420p".
	Name string

	// NumPlanes is how many planes a frame of this format carries,
	// including the palette plane for palette formats.
	NumPlanes int

	// MaxPixelStep[p] is the byte distance between two horizontally
	// adjacent pixels in plane p, taking the widest component in that
	// plane. Unused planes hold zero.
	MaxPixelStep [MaxPlanes]int

	// Log2ChromaW and Log2ChromaH are the base-2 logarithms of the
	// horizontal and vertical subsampling applied to planes 1 and 2.
	Log2ChromaW uint
	Log2ChromaH uint

	// HasPalette marks formats whose plane 1 is a color table with no
	// spatial dimensions rather than image data.
	HasPalette bool

	// HasAlpha marks formats that carry an alpha component, whether
	// packed into plane 0 or stored as a separate plane 3.
	HasAlpha bool
}

func planar8(name string, log2w, log2h uint) *Descriptor {
	return &Descriptor{
		Name:         name,
		NumPlanes:    3,
		MaxPixelStep: [MaxPlanes]int{1, 1, 1, 0},
		Log2ChromaW:  log2w,
		Log2ChromaH:  log2h,
	}
}

func planar16(name string, log2w, log2h uint) *Descriptor {
	return &Descriptor{
		Name:         name,
		NumPlanes:    3,
		MaxPixelStep: [MaxPlanes]int{2, 2, 2, 0},
		Log2ChromaW:  log2w,
		Log2ChromaH:  log2h,
	}
}

func packed(name string, step int, alpha bool) *Descriptor {
	return &Descriptor{
		Name:         name,
		NumPlanes:    1,
		MaxPixelStep: [MaxPlanes]int{step, 0, 0, 0},
		HasAlpha:     alpha,
	}
}

var descriptors = map[PixelFormat]*Descriptor{
	YUV420P:  planar8("yuv420p", 1, 1),
	YUV422P:  planar8("yuv422p", 1, 0),
	YUV444P:  planar8("yuv444p", 0, 0),
	YUV410P:  planar8("yuv410p", 2, 2),
	YUV411P:  planar8("yuv411p", 2, 0),
	YUV440P:  planar8("yuv440p", 0, 1),
	YUVJ420P: planar8("yuvj420p", 1, 1),
	YUVJ422P: planar8("yuvj422p", 1, 0),
	YUVJ444P: planar8("yuvj444p", 0, 0),
	YUVJ440P: planar8("yuvj440p", 0, 1),

	YUVA420P: {
		Name:         "yuva420p",
		NumPlanes:    4,
		MaxPixelStep: [MaxPlanes]int{1, 1, 1, 1},
		Log2ChromaW:  1,
		Log2ChromaH:  1,
		HasAlpha:     true,
	},

	YUV420P16LE: planar16("yuv420p16le", 1, 1),
	YUV420P16BE: planar16("yuv420p16be", 1, 1),
	YUV422P16LE: planar16("yuv422p16le", 1, 0),
	YUV422P16BE: planar16("yuv422p16be", 1, 0),
	YUV444P16LE: planar16("yuv444p16le", 0, 0),
	YUV444P16BE: planar16("yuv444p16be", 0, 0),

	Gray8:    packed("gray8", 1, false),
	Gray16BE: packed("gray16be", 2, false),
	Gray16LE: packed("gray16le", 2, false),

	RGB24:    packed("rgb24", 3, false),
	BGR24:    packed("bgr24", 3, false),
	ARGB:     packed("argb", 4, true),
	RGBA:     packed("rgba", 4, true),
	ABGR:     packed("abgr", 4, true),
	BGRA:     packed("bgra", 4, true),
	RGB48BE:  packed("rgb48be", 6, false),
	RGB48LE:  packed("rgb48le", 6, false),
	RGB565BE: packed("rgb565be", 2, false),
	RGB565LE: packed("rgb565le", 2, false),
	RGB555BE: packed("rgb555be", 2, false),
	RGB555LE: packed("rgb555le", 2, false),
	BGR565BE: packed("bgr565be", 2, false),
	BGR565LE: packed("bgr565le", 2, false),
	BGR555BE: packed("bgr555be", 2, false),
	BGR555LE: packed("bgr555le", 2, false),
	RGB8:     packed("rgb8", 1, false),
	BGR8:     packed("bgr8", 1, false),
	RGB4Byte: packed("rgb4_byte", 1, false),
	BGR4Byte: packed("bgr4_byte", 1, false),

	Pal8: {
		Name:         "pal8",
		NumPlanes:    2,
		MaxPixelStep: [MaxPlanes]int{1, 0, 0, 0},
		HasPalette:   true,
	},
}

// Describe returns the layout descriptor for f. The returned Descriptor
// is shared and must not be modified.
func Describe(f PixelFormat) (*Descriptor, error) {
	d, ok := descriptors[f]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
	return d, nil
}

// Parse resolves a canonical format name such as "yuv420p" back to its
// PixelFormat value.
func Parse(name string) (PixelFormat, error) {
	for f, d := range descriptors {
		if d.Name == name {
			return f, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// All returns every format in the capability table in a stable order.
func All() []PixelFormat {
	fs := make([]PixelFormat, 0, len(descriptors))
	for f := range descriptors {
		fs = append(fs, f)
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
	return fs
}

// String returns the canonical format name, or a numeric placeholder for
// values outside the capability table.
func (f PixelFormat) String() string {
	if d, ok := descriptors[f]; ok {
		return d.Name
	}
	return fmt.Sprintf("pixfmt(%d)", int(f))
}

// PlaneWidth returns the width in samples of the given plane for a frame
// frameWidth pixels wide. Chroma planes round up when the frame width is
// not a multiple of the subsampling step. The palette plane has no
// spatial width and reports zero.
func (d *Descriptor) PlaneWidth(plane, frameWidth int) int {
	if plane >= d.NumPlanes {
		return 0
	}
	if d.HasPalette && plane == 1 {
		return 0
	}
	if plane == 1 || plane == 2 {
		return ceilShift(frameWidth, d.Log2ChromaW)
	}
	return frameWidth
}

// PlaneHeight returns the height in rows of the given plane for a frame
// frameHeight pixels tall, rounding subsampled planes up.
func (d *Descriptor) PlaneHeight(plane, frameHeight int) int {
	if plane >= d.NumPlanes {
		return 0
	}
	if d.HasPalette && plane == 1 {
		return 0
	}
	if plane == 1 || plane == 2 {
		return ceilShift(frameHeight, d.Log2ChromaH)
	}
	return frameHeight
}

func ceilShift(v int, s uint) int {
	return (v + (1 << s) - 1) >> s
}
