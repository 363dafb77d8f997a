package crop

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrInvalidGeometry is returned when a resolved crop window is
// zero-sized or reaches outside the input frame.
var ErrInvalidGeometry = errors.New("crop window outside the input area or zero-sized")

// Window is a crop rectangle in input pixel coordinates. X and Y locate
// the top-left corner, W and H are the window size.
type Window struct {
	X, Y, W, H int
}

// String formats the window in option syntax, "x:y:w:h".
func (w Window) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", w.X, w.Y, w.W, w.H)
}

// ResolveWindow turns a requested window into the concrete rectangle
// for an input of inputW by inputH pixels. A zero requested width or
// height extends the window to the input's right or bottom edge,
// measured from the corner as requested. The corner then snaps down to
// the chroma sampling grid given by the log2 subsampling shifts, so
// chroma planes stay addressable at whole-sample offsets. The resolved
// window must lie fully inside the input and have positive size.
func ResolveWindow(req Window, inputW, inputH int, log2ChromaW, log2ChromaH uint) (Window, error) {
	win := req

	// Edge-reaching defaults use the corner as requested, before any
	// alignment moves it.
	if win.W == 0 {
		win.W = inputW - win.X
	}
	if win.H == 0 {
		win.H = inputH - win.Y
	}

	win.X &^= (1 << log2ChromaW) - 1
	win.Y &^= (1 << log2ChromaH) - 1

	if win.X < 0 || win.Y < 0 || win.W <= 0 || win.H <= 0 ||
		uint(win.X)+uint(win.W) > uint(inputW) ||
		uint(win.Y)+uint(win.H) > uint(inputH) {
		logrus.WithFields(logrus.Fields{
			"function": "ResolveWindow",
			"window":   win.String(),
			"input_w":  inputW,
			"input_h":  inputH,
		}).Error("Crop window rejected")
		return Window{}, fmt.Errorf(
			"%w: output area %s not within the input area 0:0:%d:%d",
			ErrInvalidGeometry, win, inputW, inputH)
	}

	logrus.WithFields(logrus.Fields{
		"function": "ResolveWindow",
		"x":        win.X,
		"y":        win.Y,
		"w":        win.W,
		"h":        win.H,
	}).Info("Crop window resolved")
	return win, nil
}
