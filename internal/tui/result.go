package tui

import (
	"fmt"

	"orthoverlap/internal/geom"
	"orthoverlap/internal/pipeline"
)

// NewFromResult previews a pipeline run: both extents and the intersection,
// with one attribute row per raster.
func NewFromResult(res pipeline.Result) Model {
	names := [2]string{"first extent", "second extent"}
	var layers []Layer
	for i, ext := range res.Extents {
		ly := Layer{Name: names[i], Visible: true}
		if ext != nil {
			ly.Data = geom.DataFromGeometry(*ext)
		}
		layers = append(layers, ly)
	}
	inter := Layer{Name: "intersection", Visible: true, Fill: true}
	if !res.Overlap.Empty() {
		inter.Data = geom.DataFromGeometry(res.Overlap.Geometry)
	}
	layers = append(layers, inter)

	attrs := Attributes{Columns: []string{"raster", "size", "bands", "alpha", "valid %", "pixel box", "geotransform"}}
	for i, h := range res.Rasters {
		if h == nil {
			continue
		}
		box := "none"
		if b := res.Boxes[i]; b != nil {
			box = fmt.Sprintf("[%d,%d]-[%d,%d]", b.MinX, b.MinY, b.MaxX, b.MaxY)
		}
		gt := "none"
		if h.GeoTransform != nil {
			gt = h.GeoTransform.String()
		}
		attrs.Rows = append(attrs.Rows, []string{
			h.Name(),
			fmt.Sprintf("%dx%d", h.Width, h.Height),
			fmt.Sprintf("%d", len(h.Bands)),
			fmt.Sprintf("%d", h.AlphaBand),
			fmt.Sprintf("%.2f", h.ValidPercent()),
			box,
			gt,
		})
	}

	m := New(layers, attrs)
	if len(res.Diagnostics) > 0 {
		m.status = res.Diagnostics[0]
	}
	if h := res.Rasters[0]; h != nil {
		gt := h.GeoTransform
		if gt == nil {
			// flipped pixel grid used by the extent builder
			gt = &geom.GeoTransform{0, 1, 0, float64(h.Height), 0, -1}
		}
		m = m.WithPixelTransform(gt)
	}
	return m
}
