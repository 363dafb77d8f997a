package vidgraph

import "fmt"

// SliceDirection tells a consumer whether a frame's slices arrive from
// the top of the image downward or from the bottom upward. The values
// match the sign of the row progression.
type SliceDirection int

const (
	// SliceTopDown marks slices delivered in increasing row order.
	SliceTopDown SliceDirection = 1

	// SliceBottomUp marks slices delivered in decreasing row order.
	SliceBottomUp SliceDirection = -1
)

// String returns a human-readable direction name for logging.
func (d SliceDirection) String() string {
	switch d {
	case SliceTopDown:
		return "top-down"
	case SliceBottomUp:
		return "bottom-up"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Slice describes a horizontal band of the frame most recently pushed
// into the graph. Y is the band's first row in the coordinate space of
// the link it travels on, Height is the number of rows, and Dir is the
// delivery order of the surrounding sequence. Filters that change the
// output geometry rewrite Y and Height; Dir always passes through.
type Slice struct {
	Y      int
	Height int
	Dir    SliceDirection
}
