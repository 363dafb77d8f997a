package crop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		name    string
		req     Window
		inputW  int
		inputH  int
		log2W   uint
		log2H   uint
		want    Window
		wantErr bool
	}{
		{
			name:   "explicit window inside input",
			req:    Window{X: 4, Y: 6, W: 100, H: 80},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			want: Window{X: 4, Y: 6, W: 100, H: 80},
		},
		{
			name:   "zero request selects whole frame",
			req:    Window{},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			want: Window{X: 0, Y: 0, W: 640, H: 480},
		},
		{
			name:   "zero size extends to bottom right edge",
			req:    Window{X: 100, Y: 50},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			want: Window{X: 100, Y: 50, W: 540, H: 430},
		},
		{
			name:   "default width measured from corner before alignment",
			req:    Window{X: 101, Y: 0},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			want: Window{X: 100, Y: 0, W: 539, H: 480},
		},
		{
			name:   "corner snaps down to 420 grid",
			req:    Window{X: 17, Y: 17, W: 64, H: 64},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			want: Window{X: 16, Y: 16, W: 64, H: 64},
		},
		{
			name:   "corner snaps down to 410 grid",
			req:    Window{X: 7, Y: 7, W: 32, H: 32},
			inputW: 640, inputH: 480, log2W: 2, log2H: 2,
			want: Window{X: 4, Y: 4, W: 32, H: 32},
		},
		{
			name:   "packed formats keep the corner as requested",
			req:    Window{X: 17, Y: 17, W: 64, H: 64},
			inputW: 640, inputH: 480, log2W: 0, log2H: 0,
			want: Window{X: 17, Y: 17, W: 64, H: 64},
		},
		{
			name:   "440 grid snaps rows only",
			req:    Window{X: 17, Y: 17, W: 64, H: 64},
			inputW: 640, inputH: 480, log2W: 0, log2H: 1,
			want: Window{X: 17, Y: 16, W: 64, H: 64},
		},
		{
			name:   "window touching the far corner",
			req:    Window{X: 540, Y: 400, W: 100, H: 80},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			want: Window{X: 540, Y: 400, W: 100, H: 80},
		},
		{
			name:   "full frame explicit",
			req:    Window{X: 0, Y: 0, W: 640, H: 480},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			want: Window{X: 0, Y: 0, W: 640, H: 480},
		},
		{
			name:   "negative x rejected",
			req:    Window{X: -4, Y: 0, W: 100, H: 80},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			wantErr: true,
		},
		{
			name:   "negative y rejected",
			req:    Window{X: 0, Y: -2, W: 100, H: 80},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			wantErr: true,
		},
		{
			name:   "negative width rejected",
			req:    Window{X: 0, Y: 0, W: -100, H: 80},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			wantErr: true,
		},
		{
			name:   "negative height rejected",
			req:    Window{X: 0, Y: 0, W: 100, H: -80},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			wantErr: true,
		},
		{
			name:   "window past the right edge rejected",
			req:    Window{X: 600, Y: 0, W: 100, H: 80},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			wantErr: true,
		},
		{
			name:   "window past the bottom edge rejected",
			req:    Window{X: 0, Y: 420, W: 100, H: 80},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			wantErr: true,
		},
		{
			name:   "default width at the right edge is zero-sized",
			req:    Window{X: 640, Y: 0},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			wantErr: true,
		},
		{
			name:   "default height at the bottom edge is zero-sized",
			req:    Window{X: 0, Y: 480},
			inputW: 640, inputH: 480, log2W: 1, log2H: 1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWindow(tt.req, tt.inputW, tt.inputH, tt.log2W, tt.log2H)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGeometry)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolved window mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveWindowErrorMentionsBothAreas(t *testing.T) {
	_, err := ResolveWindow(Window{X: 600, Y: 0, W: 100, H: 80}, 640, 480, 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "600:0:100:80")
	assert.Contains(t, err.Error(), "0:0:640:480")
}

func TestWindowString(t *testing.T) {
	assert.Equal(t, "4:6:100:80", Window{X: 4, Y: 6, W: 100, H: 80}.String())
	assert.Equal(t, "0:0:0:0", Window{}.String())
	assert.Equal(t, "-1:2:-3:4", Window{X: -1, Y: 2, W: -3, H: 4}.String())
}
