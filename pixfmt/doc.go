// Package pixfmt describes the memory layout of the pixel formats the
// filter graph can carry.
//
// Every format the graph accepts has a static Descriptor recording the
// facts geometry filters need: how many planes the format has, the widest
// byte step a pixel occupies in each plane, the chroma subsampling shift
// factors, and whether the second plane is a palette rather than image
// data. Descriptors are immutable and shared; callers must not modify
// the struct returned by Describe.
//
// # Plane Model
//
// A frame has up to MaxPlanes planes. Plane 0 always carries image data
// (luma, gray, indices, or whole packed pixels). Planes 1 and 2 carry
// chroma for planar YUV formats and are subsampled by Log2ChromaW and
// Log2ChromaH. Plane 3 carries alpha for formats that store it
// separately. Palette formats keep their color table in plane 1, which
// has no spatial dimensions.
//
// # Usage
//
//	desc, err := pixfmt.Describe(pixfmt.YUV420P)
//	if err != nil {
//		return err
//	}
//	rowBytes := desc.PlaneWidth(1, frameWidth) * desc.MaxPixelStep[1]
package pixfmt
