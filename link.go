package vidgraph

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vidgraph/frame"
	"github.com/opd-ai/vidgraph/pixfmt"
)

// LinkState tracks where a link is in its lifecycle.
type LinkState int

const (
	// LinkUnconfigured is the state before configuration and after a
	// teardown. Links in this state reject all traffic.
	LinkUnconfigured LinkState = iota

	// LinkResolved means format and dimensions are negotiated and the
	// link is ready for its first frame.
	LinkResolved

	// LinkStreaming means at least one frame or slice has crossed the
	// link since it was resolved.
	LinkStreaming
)

// String returns a human-readable state name for logging.
func (s LinkState) String() string {
	switch s {
	case LinkUnconfigured:
		return "unconfigured"
	case LinkResolved:
		return "resolved"
	case LinkStreaming:
		return "streaming"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Link connects two stages of a graph and carries the negotiated stream
// properties. The upstream side writes frames and slices with the
// Forward methods; the graph wires the downstream side during
// Configure. Filters read Format, W and H on their input link and may
// rewrite W and H on their output link while configuring.
//
// Links are driven from a single goroutine per graph and are not safe
// for concurrent use.
type Link struct {
	// Format is the negotiated pixel format of frames on this link.
	Format pixfmt.PixelFormat

	// W and H are the dimensions of frames on this link in pixels.
	W, H int

	state LinkState

	// Downstream wiring. A nil dst marks the graph's sink link.
	dst    Filter
	dstOut *Link

	sinkFrame func(*frame.Ref)
	sinkSlice func(Slice)
	label     string
}

// State returns the link's lifecycle state.
func (l *Link) State() LinkState {
	return l.state
}

// Dimensions returns the negotiated frame size carried by the link.
func (l *Link) Dimensions() (w, h int) {
	return l.W, l.H
}

// ForwardFrame hands a whole frame to the link's consumer: the
// downstream filter, or the graph's frame callback at the sink. The
// reference is borrowed for the duration of the call.
func (l *Link) ForwardFrame(ref *frame.Ref) error {
	if ref == nil {
		return ErrNilFrame
	}
	if l.state == LinkUnconfigured {
		return fmt.Errorf("%w: frame rejected", ErrLinkNotConfigured)
	}
	if ref.Format() != l.Format || ref.Width() != l.W || ref.Height() != l.H {
		return fmt.Errorf("%w: %s %dx%d frame on %s %dx%d link",
			ErrFrameMismatch, ref.Format(), ref.Width(), ref.Height(),
			l.Format, l.W, l.H)
	}
	l.state = LinkStreaming

	if l.dst == nil {
		if l.sinkFrame != nil {
			l.sinkFrame(ref)
		}
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"function": "Link.ForwardFrame",
		"filter":   l.label,
		"width":    ref.Width(),
		"height":   ref.Height(),
	}).Debug("Dispatching frame to filter")
	FramesFiltered.WithLabelValues(l.label).Inc()
	return l.dst.Frame(l.dstOut, ref)
}

// ForwardSlice hands one slice to the link's consumer, in this link's
// row coordinates.
func (l *Link) ForwardSlice(s Slice) error {
	if l.state == LinkUnconfigured {
		return fmt.Errorf("%w: slice rejected", ErrLinkNotConfigured)
	}
	l.state = LinkStreaming

	if l.dst == nil {
		if l.sinkSlice != nil {
			l.sinkSlice(s)
		}
		return nil
	}

	SlicesFiltered.WithLabelValues(l.label).Inc()
	return l.dst.Slice(l.dstOut, s)
}
