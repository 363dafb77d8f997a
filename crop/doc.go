// Package crop implements a rectangular crop filter for vidgraph
// chains.
//
// The filter selects a window of the input frame and forwards a view of
// it without touching pixel data: the output frame is a clone of the
// input reference with its plane offsets advanced to the window's
// top-left corner and its logical size shrunk to the window. Chroma
// planes are advanced by subsampled amounts, the palette plane of
// palettized formats is never moved, and a separate alpha plane follows
// the luma plane.
//
// # Options
//
// The option string has the form "x:y:w:h" with all four values
// present, e.g. "16:16:608:448". A zero w or h extends the window to
// the input's right or bottom edge. An empty option string keeps the
// whole frame. The window's corner snaps down to the format's chroma
// sampling grid, so on 4:2:0 input "17:17:64:64" crops from (16, 16).
//
// # Slices
//
// When the host streams a frame in horizontal bands, the filter
// re-expresses each band in window coordinates: bands that miss the
// window entirely are consumed, bands that straddle an edge are
// trimmed, and surviving bands are forwarded with their row numbers
// rebased to the window top.
//
// # Usage
//
//	graph := vidgraph.New()
//	_ = graph.AppendByName("crop", "100:100:200:200")
//	err := graph.Configure(pixfmt.YUV420P, 640, 480)
package crop
