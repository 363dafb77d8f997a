package vidgraph

import (
	"fmt"
	"sort"

	"github.com/opd-ai/vidgraph/frame"
	"github.com/opd-ai/vidgraph/pixfmt"
)

// Filter is one processing stage in a graph. A filter has exactly one
// input and one output link; the graph wires both and drives the
// lifecycle: Formats during negotiation, ConfigureInput then
// ConfigureOutput during configuration, and Frame and Slice while
// streaming.
//
// Filters keep whatever per-stream state they need between calls. They
// are driven from a single goroutine and do not need internal locking.
type Filter interface {
	// Name returns the registry name of the filter, used in logs and
	// metric labels.
	Name() string

	// Formats lists every pixel format the filter accepts on its
	// input. Configuration fails if the arriving format is not listed.
	Formats() []pixfmt.PixelFormat

	// ConfigureInput is called once per configuration with the
	// resolved input link. The filter validates its parameters against
	// the link's format and dimensions and captures what it needs for
	// streaming. Returning an error aborts configuration.
	ConfigureInput(in *Link) error

	// ConfigureOutput is called after ConfigureInput with the output
	// link pre-filled from the input. Filters that change geometry
	// overwrite the link's dimensions here.
	ConfigureOutput(out *Link) error

	// Frame processes one whole frame and forwards the result over
	// out. The reference is borrowed: the filter clones it when it
	// needs a derived view and releases that view before returning.
	Frame(out *Link, ref *frame.Ref) error

	// Slice processes one horizontal band of the current frame in
	// input coordinates. The filter forwards zero or one slices over
	// out; consuming a band without forwarding is not an error.
	Slice(out *Link, s Slice) error
}

// Factory builds a filter instance from its option string. The option
// syntax is filter-specific; an empty string selects defaults.
type Factory func(args string) (Filter, error)

// registry maps filter names to factories. Mutated from init functions
// only, read afterwards, so access is unsynchronized.
var registry = make(map[string]Factory)

// Register makes a filter constructable by name. It is meant to be
// called from the filter package's init function; registering the same
// name twice keeps the later factory.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Create instantiates a registered filter with the given option string.
func Create(name, args string) (Filter, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFilterNotFound, name)
	}
	return factory(args)
}

// Filters returns the registered filter names in sorted order.
func Filters() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
