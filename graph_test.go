package vidgraph

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/vidgraph/frame"
	"github.com/opd-ai/vidgraph/pixfmt"
)

// stubFilter passes traffic through unchanged and records what it saw.
type stubFilter struct {
	name    string
	formats []pixfmt.PixelFormat

	inW, inH  int
	configErr error
	frames    int
	slices    int
}

func (f *stubFilter) Name() string                    { return f.name }
func (f *stubFilter) Formats() []pixfmt.PixelFormat   { return f.formats }
func (f *stubFilter) ConfigureOutput(out *Link) error { return nil }

func (f *stubFilter) ConfigureInput(in *Link) error {
	f.inW, f.inH = in.W, in.H
	return f.configErr
}

func (f *stubFilter) Frame(out *Link, ref *frame.Ref) error {
	f.frames++
	return out.ForwardFrame(ref)
}

func (f *stubFilter) Slice(out *Link, s Slice) error {
	f.slices++
	return out.ForwardSlice(s)
}

// shrinkFilter halves the output geometry, forwarding a resized view.
type shrinkFilter struct {
	formats []pixfmt.PixelFormat
}

func (f *shrinkFilter) Name() string                  { return "shrink" }
func (f *shrinkFilter) Formats() []pixfmt.PixelFormat { return f.formats }
func (f *shrinkFilter) ConfigureInput(in *Link) error { return nil }

func (f *shrinkFilter) ConfigureOutput(out *Link) error {
	out.W /= 2
	out.H /= 2
	return nil
}

func (f *shrinkFilter) Frame(out *Link, ref *frame.Ref) error {
	view := ref.Clone()
	defer view.Release()
	view.SetSize(out.W, out.H)
	return out.ForwardFrame(view)
}

func (f *shrinkFilter) Slice(out *Link, s Slice) error {
	return out.ForwardSlice(s)
}

func allFormats() []pixfmt.PixelFormat {
	return pixfmt.All()
}

func TestEmptyGraphPassesThrough(t *testing.T) {
	g := New()
	require.NoError(t, g.Configure(pixfmt.YUV420P, 64, 48))

	w, h := g.OutputDimensions()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
	assert.Equal(t, pixfmt.YUV420P, g.OutputFormat())

	ref, err := frame.Alloc(pixfmt.YUV420P, 64, 48)
	require.NoError(t, err)
	defer ref.Release()

	var gotFrame *frame.Ref
	g.OnFrame(func(r *frame.Ref) { gotFrame = r })
	require.NoError(t, g.PushFrame(ref))
	assert.Same(t, ref, gotFrame)

	var gotSlice Slice
	g.OnSlice(func(s Slice) { gotSlice = s })
	in := Slice{Y: 8, Height: 16, Dir: SliceTopDown}
	require.NoError(t, g.PushSlice(in))
	assert.Equal(t, in, gotSlice)
}

func TestConfigureValidatesInput(t *testing.T) {
	g := New()

	err := g.Configure(pixfmt.None, 64, 48)
	assert.ErrorIs(t, err, pixfmt.ErrUnknownFormat)

	err = g.Configure(pixfmt.YUV420P, 0, 48)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	err = g.Configure(pixfmt.YUV420P, 64, -48)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestConfigureRejectsUnsupportedFormat(t *testing.T) {
	f := &stubFilter{name: "rgb-only", formats: []pixfmt.PixelFormat{pixfmt.RGB24}}
	g := New()
	g.Append(f)

	before := testutil.ToFloat64(ConfigureErrors.WithLabelValues("rgb-only"))
	err := g.Configure(pixfmt.YUV420P, 64, 48)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, before+1, testutil.ToFloat64(ConfigureErrors.WithLabelValues("rgb-only")))

	ref, err2 := frame.Alloc(pixfmt.YUV420P, 64, 48)
	require.NoError(t, err2)
	defer ref.Release()
	assert.ErrorIs(t, g.PushFrame(ref), ErrNotConfigured)

	require.NoError(t, g.Configure(pixfmt.RGB24, 64, 48))
}

func TestConfigureWrapsFilterErrors(t *testing.T) {
	boom := errors.New("filter says no")
	f := &stubFilter{name: "grumpy", formats: allFormats(), configErr: boom}
	g := New()
	g.Append(f)

	err := g.Configure(pixfmt.YUV420P, 64, 48)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, g.PushSlice(Slice{Height: 1, Dir: SliceTopDown}), ErrNotConfigured)
}

func TestConfigurePropagatesGeometry(t *testing.T) {
	sf := &shrinkFilter{formats: allFormats()}
	g := New()
	g.Append(sf)
	require.NoError(t, g.Configure(pixfmt.RGB24, 100, 60))

	w, h := g.OutputDimensions()
	assert.Equal(t, 50, w)
	assert.Equal(t, 30, h)

	ref, err := frame.Alloc(pixfmt.RGB24, 100, 60)
	require.NoError(t, err)
	defer ref.Release()

	seen := false
	g.OnFrame(func(view *frame.Ref) {
		seen = true
		assert.Equal(t, 50, view.Width())
		assert.Equal(t, 30, view.Height())
	})
	require.NoError(t, g.PushFrame(ref))
	assert.True(t, seen)
}

func TestChainedFiltersSeeResolvedDimensions(t *testing.T) {
	first := &shrinkFilter{formats: allFormats()}
	second := &stubFilter{name: "observer", formats: allFormats()}
	g := New()
	g.Append(first)
	g.Append(second)
	require.NoError(t, g.Configure(pixfmt.Gray8, 80, 40))

	assert.Equal(t, 40, second.inW)
	assert.Equal(t, 20, second.inH)
}

func TestLinkStateMachine(t *testing.T) {
	f := &stubFilter{name: "stately", formats: allFormats()}
	g := New()
	g.Append(f)
	require.NoError(t, g.Configure(pixfmt.Gray8, 16, 16))

	stale := g.links[0]
	assert.Equal(t, LinkResolved, stale.State())

	ref, err := frame.Alloc(pixfmt.Gray8, 16, 16)
	require.NoError(t, err)
	defer ref.Release()
	require.NoError(t, g.PushFrame(ref))
	assert.Equal(t, LinkStreaming, stale.State())

	// Reconfiguring tears the old links down; anything still holding
	// one gets its traffic rejected.
	require.NoError(t, g.Configure(pixfmt.Gray8, 32, 32))
	assert.Equal(t, LinkUnconfigured, stale.State())
	assert.ErrorIs(t, stale.ForwardSlice(Slice{Height: 1, Dir: SliceTopDown}), ErrLinkNotConfigured)
	assert.Equal(t, LinkResolved, g.links[0].State())
}

func TestPushBeforeConfigure(t *testing.T) {
	g := New()

	ref, err := frame.Alloc(pixfmt.Gray8, 8, 8)
	require.NoError(t, err)
	defer ref.Release()

	assert.ErrorIs(t, g.PushFrame(ref), ErrNotConfigured)
	assert.ErrorIs(t, g.PushSlice(Slice{Height: 1, Dir: SliceTopDown}), ErrNotConfigured)
	assert.Equal(t, pixfmt.None, g.OutputFormat())

	w, h := g.OutputDimensions()
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestPushNilFrame(t *testing.T) {
	g := New()
	require.NoError(t, g.Configure(pixfmt.Gray8, 8, 8))
	assert.ErrorIs(t, g.PushFrame(nil), ErrNilFrame)
}

func TestPushMismatchedFrame(t *testing.T) {
	g := New()
	require.NoError(t, g.Configure(pixfmt.YUV420P, 64, 48))

	small, err := frame.Alloc(pixfmt.YUV420P, 32, 32)
	require.NoError(t, err)
	defer small.Release()
	assert.ErrorIs(t, g.PushFrame(small), ErrFrameMismatch)

	wrongFormat, err := frame.Alloc(pixfmt.Gray8, 64, 48)
	require.NoError(t, err)
	defer wrongFormat.Release()
	assert.ErrorIs(t, g.PushFrame(wrongFormat), ErrFrameMismatch)
}

func TestAppendInvalidatesConfiguration(t *testing.T) {
	g := New()
	require.NoError(t, g.Configure(pixfmt.Gray8, 8, 8))

	g.Append(&stubFilter{name: "late", formats: allFormats()})

	ref, err := frame.Alloc(pixfmt.Gray8, 8, 8)
	require.NoError(t, err)
	defer ref.Release()
	assert.ErrorIs(t, g.PushFrame(ref), ErrNotConfigured)

	require.NoError(t, g.Configure(pixfmt.Gray8, 8, 8))
	assert.NoError(t, g.PushFrame(ref))
}

func TestAppendByNameUnknown(t *testing.T) {
	g := New()
	assert.ErrorIs(t, g.AppendByName("no-such-filter", ""), ErrFilterNotFound)
}

func TestTrafficCounters(t *testing.T) {
	f := &stubFilter{name: "counted", formats: allFormats()}
	g := New()
	g.Append(f)
	require.NoError(t, g.Configure(pixfmt.Gray8, 16, 16))

	ref, err := frame.Alloc(pixfmt.Gray8, 16, 16)
	require.NoError(t, err)
	defer ref.Release()

	framesBefore := testutil.ToFloat64(FramesFiltered.WithLabelValues("counted"))
	slicesBefore := testutil.ToFloat64(SlicesFiltered.WithLabelValues("counted"))

	for i := 0; i < 3; i++ {
		require.NoError(t, g.PushFrame(ref))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, g.PushSlice(Slice{Y: i, Height: 1, Dir: SliceTopDown}))
	}

	assert.Equal(t, framesBefore+3, testutil.ToFloat64(FramesFiltered.WithLabelValues("counted")))
	assert.Equal(t, slicesBefore+2, testutil.ToFloat64(SlicesFiltered.WithLabelValues("counted")))
	assert.Equal(t, 3, f.frames)
	assert.Equal(t, 2, f.slices)
}

func TestGraphIDsAreUnique(t *testing.T) {
	a, b := New(), New()
	assert.NotEmpty(t, a.ID())
	assert.NotEmpty(t, b.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSliceDirectionString(t *testing.T) {
	assert.Equal(t, "top-down", SliceTopDown.String())
	assert.Equal(t, "bottom-up", SliceBottomUp.String())
	assert.Equal(t, "direction(0)", SliceDirection(0).String())
}

func TestLinkStateString(t *testing.T) {
	assert.Equal(t, "unconfigured", LinkUnconfigured.String())
	assert.Equal(t, "resolved", LinkResolved.String())
	assert.Equal(t, "streaming", LinkStreaming.String())
	assert.Equal(t, "state(7)", LinkState(7).String())
}
