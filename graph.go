package vidgraph

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vidgraph/frame"
	"github.com/opd-ai/vidgraph/pixfmt"
)

// Graph is a linear chain of filters between one input and one output.
// Filters are appended in processing order, the chain is resolved with
// Configure, and frames or slices are then pushed through with
// PushFrame and PushSlice. Whatever reaches the end of the chain is
// delivered to the callbacks set with OnFrame and OnSlice.
//
// A graph is driven from a single goroutine. Configure may be called
// again at any time to re-resolve the chain for a new input; traffic
// pushed between a teardown and the next successful Configure is
// rejected.
type Graph struct {
	id         string
	filters    []Filter
	links      []*Link
	configured bool

	onFrame func(*frame.Ref)
	onSlice func(Slice)
}

// New creates an empty filter graph.
func New() *Graph {
	g := &Graph{id: uuid.New().String()}
	logrus.WithFields(logrus.Fields{
		"function": "New",
		"graph_id": g.id,
	}).Info("Created filter graph")
	return g
}

// ID returns the unique identifier of this graph instance, as used in
// its log entries.
func (g *Graph) ID() string {
	return g.id
}

// Append adds a filter to the end of the chain. Appending after a
// successful Configure requires another Configure before the new
// filter sees traffic.
func (g *Graph) Append(f Filter) {
	g.filters = append(g.filters, f)
	g.configured = false
}

// AppendByName instantiates a registered filter with the given option
// string and appends it.
func (g *Graph) AppendByName(name, args string) error {
	f, err := Create(name, args)
	if err != nil {
		return err
	}
	g.Append(f)
	return nil
}

// Configure resolves the chain for an input stream of the given format
// and size. Each filter's format list is checked against the format
// arriving on its input, then the filter configures both of its links.
// On any failure the whole graph is torn down and the error returned;
// there is no partially configured state.
func (g *Graph) Configure(format pixfmt.PixelFormat, width, height int) error {
	g.teardown()

	if _, err := pixfmt.Describe(format); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	links := make([]*Link, len(g.filters)+1)
	for i := range links {
		links[i] = &Link{label: "sink"}
	}
	for i, f := range g.filters {
		links[i].dst = f
		links[i].dstOut = links[i+1]
		links[i].label = f.Name()
	}
	last := links[len(links)-1]
	last.sinkFrame = func(ref *frame.Ref) {
		if g.onFrame != nil {
			g.onFrame(ref)
		}
	}
	last.sinkSlice = func(s Slice) {
		if g.onSlice != nil {
			g.onSlice(s)
		}
	}

	links[0].Format = format
	links[0].W = width
	links[0].H = height

	for i, f := range g.filters {
		in, out := links[i], links[i+1]

		if !slices.Contains(f.Formats(), in.Format) {
			ConfigureErrors.WithLabelValues(f.Name()).Inc()
			logrus.WithFields(logrus.Fields{
				"function": "Graph.Configure",
				"graph_id": g.id,
				"filter":   f.Name(),
				"format":   in.Format.String(),
			}).Error("Filter rejected input format")
			return fmt.Errorf("%w: filter %q does not accept %s",
				ErrUnsupportedFormat, f.Name(), in.Format)
		}

		if err := f.ConfigureInput(in); err != nil {
			ConfigureErrors.WithLabelValues(f.Name()).Inc()
			return fmt.Errorf("configuring input of filter %q: %w", f.Name(), err)
		}

		// Geometry and format pass through unless the filter says otherwise.
		out.Format = in.Format
		out.W = in.W
		out.H = in.H
		if err := f.ConfigureOutput(out); err != nil {
			ConfigureErrors.WithLabelValues(f.Name()).Inc()
			return fmt.Errorf("configuring output of filter %q: %w", f.Name(), err)
		}
	}

	for _, l := range links {
		l.state = LinkResolved
	}
	g.links = links
	g.configured = true

	logrus.WithFields(logrus.Fields{
		"function": "Graph.Configure",
		"graph_id": g.id,
		"format":   format.String(),
		"input":    fmt.Sprintf("%dx%d", width, height),
		"output":   fmt.Sprintf("%dx%d", last.W, last.H),
		"filters":  len(g.filters),
	}).Info("Filter graph configured successfully")
	return nil
}

// teardown invalidates any previous configuration, including links a
// caller may still hold from before.
func (g *Graph) teardown() {
	for _, l := range g.links {
		l.state = LinkUnconfigured
	}
	g.links = nil
	g.configured = false
}

// OnFrame sets the callback invoked with each frame reference reaching
// the end of the chain. The reference is borrowed; callbacks that keep
// the frame past their return must Clone it.
func (g *Graph) OnFrame(fn func(*frame.Ref)) {
	g.onFrame = fn
}

// OnSlice sets the callback invoked with each slice reaching the end of
// the chain, in output coordinates.
func (g *Graph) OnSlice(fn func(Slice)) {
	g.onSlice = fn
}

// PushFrame sends one whole frame into the chain and returns once every
// stage has run. The reference is borrowed for the duration of the
// call; the caller keeps ownership.
func (g *Graph) PushFrame(ref *frame.Ref) error {
	if !g.configured {
		return ErrNotConfigured
	}
	return g.links[0].ForwardFrame(ref)
}

// PushSlice sends one slice of the current frame into the chain, with Y
// and Height in input coordinates.
func (g *Graph) PushSlice(s Slice) error {
	if !g.configured {
		return ErrNotConfigured
	}
	return g.links[0].ForwardSlice(s)
}

// OutputFormat returns the pixel format leaving the chain. It is valid
// after a successful Configure and None otherwise.
func (g *Graph) OutputFormat() pixfmt.PixelFormat {
	if !g.configured {
		return pixfmt.None
	}
	return g.links[len(g.links)-1].Format
}

// OutputDimensions returns the frame size leaving the chain. It is
// valid after a successful Configure and zero otherwise.
func (g *Graph) OutputDimensions() (w, h int) {
	if !g.configured {
		return 0, 0
	}
	return g.links[len(g.links)-1].Dimensions()
}
