package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledMask(w, h int, v byte) []byte {
	m := make([]byte, w*h)
	for i := range m {
		m[i] = v
	}
	return m
}

func TestScanMask(t *testing.T) {
	for _, tc := range []struct {
		name     string
		width    int
		height   int
		valid    [][2]int
		expected PixelBox
	}{
		{
			name:     "single pixel",
			width:    4,
			height:   3,
			valid:    [][2]int{{2, 1}},
			expected: PixelBox{2, 1, 2, 1},
		},
		{
			name:     "scattered pixels",
			width:    4,
			height:   3,
			valid:    [][2]int{{1, 0}, {2, 2}},
			expected: PixelBox{1, 0, 2, 2},
		},
		{
			name:     "corners",
			width:    5,
			height:   5,
			valid:    [][2]int{{0, 4}, {4, 0}},
			expected: PixelBox{0, 0, 4, 4},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mask := filledMask(tc.width, tc.height, 0)
			for _, p := range tc.valid {
				mask[p[1]*tc.width+p[0]] = Opaque
			}
			box, err := ScanMask(mask, tc.width, tc.height)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, box)
			for _, p := range tc.valid {
				assert.True(t, box.MinX <= p[0] && p[0] <= box.MaxX, "x of %v inside", p)
				assert.True(t, box.MinY <= p[1] && p[1] <= box.MaxY, "y of %v inside", p)
			}
		})
	}
}

func TestScanMask_fullFrame(t *testing.T) {
	box, err := ScanMask(filledMask(10, 10, Opaque), 10, 10)
	require.NoError(t, err)
	assert.Equal(t, PixelBox{0, 0, 9, 9}, box)
	assert.Equal(t, 10, box.Width())
	assert.Equal(t, 10, box.Height())
}

func TestScanMask_noData(t *testing.T) {
	// anything short of 255 is transparent
	_, err := ScanMask(filledMask(3, 3, 254), 3, 3)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestScanMask_size(t *testing.T) {
	_, err := ScanMask(make([]byte, 5), 2, 3)
	assert.ErrorIs(t, err, ErrMaskSize)

	_, err = ScanMask(nil, 0, 0)
	assert.ErrorIs(t, err, ErrMaskSize)
}

func TestCountValid(t *testing.T) {
	assert.Equal(t, 0, CountValid(nil))
	assert.Equal(t, 2, CountValid([]byte{0, Opaque, 128, Opaque}))
}
