// Package frame provides reference-counted video frame storage.
//
// A frame is split into two parts. Buffer owns the backing bytes and a
// reference count. Ref is a lightweight view onto a Buffer: it records
// the pixel format, the logical width and height, and for each plane a
// byte offset and a row stride. Many Refs can alias one Buffer; the
// backing bytes are released exactly once, when the last Ref goes away.
//
// Because a Ref carries offsets rather than copies, a filter can hand a
// consumer a different rectangle of the same image by cloning the Ref,
// bumping the plane offsets, and shrinking the logical size. No pixel
// data moves.
//
// # Ownership
//
//	ref, err := frame.Alloc(pixfmt.YUV420P, 640, 480)
//	if err != nil {
//		return err
//	}
//	defer ref.Release()
//
//	view := ref.Clone()
//	view.AdvancePlane(0, 64)
//	view.SetSize(320, 240)
//	// ... use view ...
//	view.Release()
//
// Refs are not safe for concurrent use. Callers that share a Buffer
// across goroutines must serialize Clone and Release themselves.
package frame
