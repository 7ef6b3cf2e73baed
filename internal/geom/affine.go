package geom

import (
	"fmt"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/mat"
)

// GeoTransform is the 6-parameter affine pixel-to-world mapping
// [originX, pixelW, rowRot, originY, colRot, pixelH] with the origin at the
// top-left corner of the top-left pixel.
type GeoTransform [6]float64

// Identity maps pixel (x, y) to world (x, y).
var Identity = GeoTransform{0, 1, 0, 0, 0, 1}

// Apply maps a pixel-space position to world coordinates.
func (gt GeoTransform) Apply(x, y float64) (float64, float64) {
	return gt[0] + x*gt[1] + y*gt[2], gt[3] + x*gt[4] + y*gt[5]
}

// HasRotation reports whether the row/column rotation terms are non-zero.
func (gt GeoTransform) HasRotation() bool {
	return gt[2] != 0 || gt[4] != 0
}

func (gt GeoTransform) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g, %g, %g]", gt[0], gt[1], gt[2], gt[3], gt[4], gt[5])
}

// Invert returns the world-to-pixel transform.
func (gt GeoTransform) Invert() (GeoTransform, error) {
	m := mat.NewDense(3, 3, []float64{
		gt[1], gt[2], gt[0],
		gt[4], gt[5], gt[3],
		0, 0, 1,
	})
	if mat.Det(m) == 0 {
		return GeoTransform{}, ErrSingularTransform
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return GeoTransform{}, fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}
	return GeoTransform{
		inv.At(0, 2), inv.At(0, 0), inv.At(0, 1),
		inv.At(1, 2), inv.At(1, 0), inv.At(1, 1),
	}, nil
}

// Project maps pixel (x, y) to world coordinates. Without a geotransform the
// pixel grid is used as-is, flipped vertically against the raster height so
// that y grows upwards.
func Project(x, y int, gt *GeoTransform, height int) orb.Point {
	if gt == nil {
		return orb.Point{float64(x), float64(height - y)}
	}
	gx, gy := gt.Apply(float64(x), float64(y))
	return orb.Point{gx, gy}
}
