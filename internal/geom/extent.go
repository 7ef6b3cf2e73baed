package geom

import "github.com/paulmach/orb"

// ExtentPolygon builds the closed ring around box in world coordinates:
// upper-left, upper-right, lower-right, lower-left, upper-left.
//
// The lower-right corner is the exclusive pixel corner (MaxX+1, MaxY+1). The
// ring is a rectangle of the source pixel grid: rotation terms of gt move the
// corners but the ring is not re-squared, and the true (possibly concave)
// outline of the valid pixels is never traced.
func ExtentPolygon(box PixelBox, height int, gt *GeoTransform) orb.Polygon {
	ul := Project(box.MinX, box.MinY, gt, height)
	lr := Project(box.MaxX+1, box.MaxY+1, gt, height)
	return orb.Polygon{orb.Ring{
		{ul[0], ul[1]},
		{lr[0], ul[1]},
		{lr[0], lr[1]},
		{ul[0], lr[1]},
		{ul[0], ul[1]},
	}}
}
