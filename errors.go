package vidgraph

import "errors"

// Sentinel errors returned by graph construction and streaming. Callers
// match them with errors.Is; wrapped variants carry the offending
// filter name, format, or dimensions.
var (
	// ErrFilterNotFound is returned by Create when no factory is
	// registered under the requested name.
	ErrFilterNotFound = errors.New("no filter registered under that name")

	// ErrUnsupportedFormat is returned by Configure when a filter's
	// format list does not include the format arriving on its input.
	ErrUnsupportedFormat = errors.New("pixel format not supported by filter")

	// ErrNotConfigured is returned when frames or slices are pushed
	// into a graph before a successful Configure.
	ErrNotConfigured = errors.New("graph has not been configured")

	// ErrLinkNotConfigured is returned when traffic is forwarded over a
	// link that is unconfigured or has been torn down.
	ErrLinkNotConfigured = errors.New("link has not been configured")

	// ErrNilFrame is returned when a nil frame reference is pushed.
	ErrNilFrame = errors.New("frame reference cannot be nil")

	// ErrFrameMismatch is returned when a frame's format or size does
	// not match the link it is forwarded over.
	ErrFrameMismatch = errors.New("frame does not match link properties")

	// ErrInvalidDimensions is returned by Configure for zero or
	// negative input dimensions.
	ErrInvalidDimensions = errors.New("input dimensions must be positive")
)
