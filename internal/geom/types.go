package geom

import "github.com/paulmach/orb"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to include pt. The zero box is treated as empty when first is true.
func (b BBox) Extend(pt [2]float64, first bool) BBox {
	if first {
		return BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
	}
	if pt[0] < b.MinX {
		b.MinX = pt[0]
	}
	if pt[1] < b.MinY {
		b.MinY = pt[1]
	}
	if pt[0] > b.MaxX {
		b.MaxX = pt[0]
	}
	if pt[1] > b.MaxY {
		b.MaxY = pt[1]
	}
	return b
}

// PixelBox is an inclusive bounding box in pixel space: MaxX and MaxY are the
// last valid column and row.
type PixelBox struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// Width and Height count pixels, both ends included.
func (p PixelBox) Width() int  { return p.MaxX - p.MinX + 1 }
func (p PixelBox) Height() int { return p.MaxY - p.MinY + 1 }

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

func (d *Data) addPoint(pt [2]float64) {
	d.BBox = d.BBox.Extend(pt, d.Empty())
	d.Points = append(d.Points, pt)
}

func (d *Data) addLine(ls orb.LineString) {
	line := make([][2]float64, 0, len(ls))
	for i, p := range ls {
		d.BBox = d.BBox.Extend(p, d.Empty() && i == 0)
		line = append(line, p)
	}
	d.Lines = append(d.Lines, line)
}

func (d *Data) addPolygon(poly orb.Polygon) {
	rings := make([][][2]float64, 0, len(poly))
	for _, r := range poly {
		ring := make([][2]float64, 0, len(r))
		for _, p := range r {
			d.BBox = d.BBox.Extend(p, d.Empty() && len(rings) == 0 && len(ring) == 0)
			ring = append(ring, p)
		}
		rings = append(rings, ring)
	}
	d.Polygons = append(d.Polygons, rings)
}

// DataFromGeometry flattens any orb geometry into render data.
func DataFromGeometry(g orb.Geometry) Data {
	var d Data
	d.Add(g)
	return d
}

// Add appends g to d, recursing into multi-geometries and collections.
func (d *Data) Add(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		d.addPoint(g)
	case orb.MultiPoint:
		for _, p := range g {
			d.addPoint(p)
		}
	case orb.LineString:
		d.addLine(g)
	case orb.MultiLineString:
		for _, ls := range g {
			d.addLine(ls)
		}
	case orb.Ring:
		d.addPolygon(orb.Polygon{g})
	case orb.Polygon:
		d.addPolygon(g)
	case orb.MultiPolygon:
		for _, p := range g {
			d.addPolygon(p)
		}
	case orb.Bound:
		d.addPolygon(g.ToPolygon())
	case orb.Collection:
		for _, c := range g {
			d.Add(c)
		}
	}
}
