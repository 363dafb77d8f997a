package crop

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vidgraph"
	"github.com/opd-ai/vidgraph/frame"
	"github.com/opd-ai/vidgraph/pixfmt"
)

// ErrBadOption is returned when a crop option string is not empty and
// not exactly four colon-separated integers.
var ErrBadOption = errors.New("malformed crop options")

func init() {
	vidgraph.Register("crop", func(args string) (vidgraph.Filter, error) {
		return New(args)
	})
}

// supportedFormats lists every pixel layout the filter can re-aim with
// plane offset arithmetic alone.
var supportedFormats = []pixfmt.PixelFormat{
	pixfmt.RGB48BE, pixfmt.RGB48LE,
	pixfmt.ARGB, pixfmt.RGBA,
	pixfmt.ABGR, pixfmt.BGRA,
	pixfmt.RGB24, pixfmt.BGR24,
	pixfmt.RGB565BE, pixfmt.RGB565LE,
	pixfmt.RGB555BE, pixfmt.RGB555LE,
	pixfmt.BGR565BE, pixfmt.BGR565LE,
	pixfmt.BGR555BE, pixfmt.BGR555LE,
	pixfmt.Gray16BE, pixfmt.Gray16LE,
	pixfmt.YUV420P16LE, pixfmt.YUV420P16BE,
	pixfmt.YUV422P16LE, pixfmt.YUV422P16BE,
	pixfmt.YUV444P16LE, pixfmt.YUV444P16BE,
	pixfmt.YUV444P, pixfmt.YUV422P,
	pixfmt.YUV420P, pixfmt.YUV411P,
	pixfmt.YUV410P, pixfmt.YUV440P,
	pixfmt.YUVJ444P, pixfmt.YUVJ422P,
	pixfmt.YUVJ420P, pixfmt.YUVJ440P,
	pixfmt.YUVA420P,
	pixfmt.RGB8, pixfmt.BGR8,
	pixfmt.RGB4Byte, pixfmt.BGR4Byte,
	pixfmt.Pal8, pixfmt.Gray8,
}

// Crop selects a rectangular window of its input and forwards views of
// it downstream. The zero value is not usable; construct with New.
type Crop struct {
	// requested holds the window exactly as parsed from the options.
	// Resolution never modifies it, so reconfiguring for a new input
	// starts from the same request.
	requested Window

	win      Window
	desc     *pixfmt.Descriptor
	resolved bool
}

// New builds a crop filter from an "x:y:w:h" option string. An empty
// string selects the whole input frame.
func New(args string) (*Crop, error) {
	win, err := parseOptions(args)
	if err != nil {
		return nil, err
	}
	return &Crop{requested: win}, nil
}

func parseOptions(args string) (Window, error) {
	var win Window
	if args == "" {
		return win, nil
	}

	parts := strings.Split(args, ":")
	if len(parts) != 4 {
		return Window{}, fmt.Errorf("%w: %q, expected x:y:w:h", ErrBadOption, args)
	}
	for i, dst := range []*int{&win.X, &win.Y, &win.W, &win.H} {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Window{}, fmt.Errorf("%w: %q is not an integer", ErrBadOption, parts[i])
		}
		*dst = v
	}
	return win, nil
}

// Name returns the registry name of the filter.
func (c *Crop) Name() string {
	return "crop"
}

// Formats lists the pixel formats the filter accepts.
func (c *Crop) Formats() []pixfmt.PixelFormat {
	return supportedFormats
}

// ConfigureInput resolves the requested window against the input
// link's dimensions and chroma grid.
func (c *Crop) ConfigureInput(in *vidgraph.Link) error {
	desc, err := pixfmt.Describe(in.Format)
	if err != nil {
		return err
	}

	win, err := ResolveWindow(c.requested, in.W, in.H, desc.Log2ChromaW, desc.Log2ChromaH)
	if err != nil {
		return err
	}

	c.win = win
	c.desc = desc
	c.resolved = true
	return nil
}

// ConfigureOutput reports the resolved window size as the output frame
// dimensions.
func (c *Crop) ConfigureOutput(out *vidgraph.Link) error {
	if !c.resolved {
		return fmt.Errorf("%w: crop input not configured", vidgraph.ErrLinkNotConfigured)
	}
	out.W = c.win.W
	out.H = c.win.H
	return nil
}

// Frame forwards a view of ref narrowed to the crop window. Plane
// offsets are advanced instead of copying pixels: the luma plane moves
// by whole rows and pixels, chroma planes by subsampled amounts, and a
// separate alpha plane follows luma. The palette plane of palettized
// formats stays in place.
func (c *Crop) Frame(out *vidgraph.Link, ref *frame.Ref) error {
	if !c.resolved {
		return fmt.Errorf("%w: crop input not configured", vidgraph.ErrLinkNotConfigured)
	}

	view := ref.Clone()
	defer view.Release()

	view.SetSize(c.win.W, c.win.H)
	view.AdvancePlane(0, c.win.Y*view.Stride(0)+c.win.X*c.desc.MaxPixelStep[0])

	if !c.desc.HasPalette {
		for i := 1; i <= 2; i++ {
			if view.HasPlane(i) {
				view.AdvancePlane(i, (c.win.Y>>c.desc.Log2ChromaH)*view.Stride(i)+
					(c.win.X*c.desc.MaxPixelStep[i])>>c.desc.Log2ChromaW)
			}
		}
	}
	if view.HasPlane(3) {
		view.AdvancePlane(3, c.win.Y*view.Stride(3)+c.win.X*c.desc.MaxPixelStep[3])
	}

	logrus.WithFields(logrus.Fields{
		"function": "Crop.Frame",
		"window":   c.win.String(),
	}).Debug("Forwarding cropped frame view")
	return out.ForwardFrame(view)
}

// Slice re-expresses one input band in window coordinates and forwards
// it. Bands that miss the window are consumed without forwarding.
func (c *Crop) Slice(out *vidgraph.Link, s vidgraph.Slice) error {
	if !c.resolved {
		return fmt.Errorf("%w: crop input not configured", vidgraph.ErrLinkNotConfigured)
	}

	clipped, ok := clipSlice(s, c.win)
	if !ok {
		vidgraph.SlicesDropped.WithLabelValues(c.Name()).Inc()
		return nil
	}
	return out.ForwardSlice(clipped)
}

// clipSlice trims s to the window's row range and rebases it to window
// coordinates. The second return is false when the band and the window
// do not intersect.
func clipSlice(s vidgraph.Slice, win Window) (vidgraph.Slice, bool) {
	y, h := s.Y, s.Height

	if y >= win.Y+win.H || y+h <= win.Y {
		return vidgraph.Slice{}, false
	}
	if y < win.Y {
		h -= win.Y - y
		y = win.Y
	}
	if y+h > win.Y+win.H {
		h = win.Y + win.H - y
	}
	return vidgraph.Slice{Y: y - win.Y, Height: h, Dir: s.Dir}, true
}
