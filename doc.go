// Package vidgraph hosts linear chains of video filters.
//
// A graph connects one frame source to one consumer through an ordered
// list of filters. Each stage sees the stream's negotiated pixel format
// and dimensions on its input link, declares the geometry of its output
// link, and then processes whole frames or horizontal slices as the
// host pushes them. Filters work on shared frame references from the
// frame package, so stages that only re-aim the view, such as crop,
// move no pixel data at all.
//
// # Getting Started
//
// Build a chain, resolve it for the input stream, and push frames:
//
//	graph := vidgraph.New()
//	if err := graph.AppendByName("crop", "16:16:608:448"); err != nil {
//	    log.Fatal(err)
//	}
//
//	graph.OnFrame(func(ref *frame.Ref) {
//	    fmt.Printf("got %dx%d frame\n", ref.Width(), ref.Height())
//	})
//
//	if err := graph.Configure(pixfmt.YUV420P, 640, 480); err != nil {
//	    log.Fatal(err)
//	}
//
//	err := graph.PushFrame(ref)
//
// # Core Types
//
// The package defines the host-side contracts filters are written
// against:
//
//   - [Graph]: linear filter chain with configuration and push entry points
//   - [Filter]: the interface every processing stage implements
//   - [Link]: one hop of the chain, carrying negotiated stream properties
//   - [Slice]: a horizontal band of the frame currently streaming
//
// Filters register a [Factory] under a name in their init function;
// [Create] and [Graph.AppendByName] build instances from the registry.
//
// # Slice Streaming
//
// Producers that generate frames a few rows at a time push each band
// with [Graph.PushSlice]. A slice travels the same chain as frames and
// is re-expressed in each stage's output coordinates; stages whose
// output a band misses entirely consume it without forwarding. The
// delivery direction flag passes through untouched.
//
// # Reference Ownership
//
// Frame references pushed into a graph are borrowed for the duration of
// the call. A filter that needs a derived view clones the reference,
// adjusts the clone, forwards it, and releases it once the downstream
// call returns. Sink callbacks that keep a frame past their return must
// clone it for the same reason.
//
// # Thread Safety
//
// A graph and its links are driven from one goroutine; none of the
// push or configure paths take locks. Run independent graphs on
// independent goroutines.
//
// # Subpackages
//
//   - [github.com/opd-ai/vidgraph/pixfmt]: pixel format capability table
//   - [github.com/opd-ai/vidgraph/frame]: reference-counted frame storage
//   - [github.com/opd-ai/vidgraph/crop]: rectangular crop filter
package vidgraph
