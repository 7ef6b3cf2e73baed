// Package pipeline sequences one overlap run: describe both rasters, scan
// their masks, build extents, intersect, serialize and write the document.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"orthoverlap/internal/config"
	"orthoverlap/internal/geom"
	"orthoverlap/internal/raster"
	"orthoverlap/internal/report"
)

// Result is the outcome of one run. Document is nil only when the geometry
// engine is compiled out.
type Result struct {
	Document []byte
	Rasters  [2]*raster.Handle
	Boxes    [2]*geom.PixelBox
	Extents  [2]*orb.Polygon
	Overlap  geom.OverlapResult
	// MissingData marks the rasters whose mask had no valid pixel.
	MissingData [2]bool
	Diagnostics []string
}

type Driver struct {
	cfg *config.Config
	rep report.Reporter
}

func NewDriver(cfg *config.Config, rep report.Reporter) *Driver {
	if rep == nil {
		rep = report.Discard
	}
	return &Driver{cfg: cfg, rep: rep}
}

type extent struct {
	box  geom.PixelBox
	poly *orb.Polygon
	err  error
}

func buildExtent(h *raster.Handle) extent {
	box, err := geom.ScanMask(h.Mask, h.Width, h.Height)
	if err != nil {
		return extent{err: err}
	}
	poly := geom.ExtentPolygon(box, h.Height, h.GeoTransform)
	return extent{box: box, poly: &poly}
}

// Execute runs the whole pipeline on the configured files. Load failures
// abort; everything after loading degrades to an empty document.
func (d *Driver) Execute() (Result, error) {
	if err := geom.Initialize(); err != nil && !errors.Is(err, geom.ErrUnavailable) {
		return Result{}, err
	}
	defer geom.Shutdown()

	var handles [2]*raster.Handle
	for i, path := range []string{d.cfg.Inputs.First, d.cfg.Inputs.Second} {
		h, err := raster.Open(path)
		if err != nil {
			d.rep.Errorf("failed to load %s: %v", path, err)
			return Result{}, fmt.Errorf("load %s: %w", path, err)
		}
		d.rep.Reportf("loaded %s (%dx%d)", path, h.Width, h.Height)
		handles[i] = h
	}

	res, err := d.Run(handles[0], handles[1])
	if err != nil {
		return res, err
	}
	if res.Document == nil {
		return res, nil
	}
	if err := os.WriteFile(d.cfg.Output.Path, res.Document, 0644); err != nil {
		d.rep.Errorf("failed to write %s: %v", d.cfg.Output.Path, err)
		return res, fmt.Errorf("write output: %w", err)
	}
	d.rep.Reportf("wrote %s", d.cfg.Output.Path)
	return res, nil
}

// Run processes two loaded rasters. A raster without valid pixels leaves its
// extent absent and never stops the other one.
func (d *Driver) Run(a, b *raster.Handle) (Result, error) {
	handles := [2]*raster.Handle{a, b}
	for _, h := range handles {
		d.describe(h)
	}

	var exts [2]extent
	if d.cfg.Processing.Parallel {
		var wg sync.WaitGroup
		for i, h := range handles {
			i, h := i, h
			wg.Add(1)
			go func() {
				defer wg.Done()
				exts[i] = buildExtent(h)
			}()
		}
		wg.Wait()
	} else {
		for i, h := range handles {
			exts[i] = buildExtent(h)
		}
	}

	res := Result{Rasters: handles}
	d.rep.Section("Extents")
	for i, e := range exts {
		h := handles[i]
		switch {
		case errors.Is(e.err, geom.ErrNoData):
			res.MissingData[i] = true
			d.rep.Reportf("%s: no opaque pixels", h.Name())
		case e.err != nil:
			res.MissingData[i] = true
			d.rep.Errorf("%s: %v", h.Name(), e.err)
		default:
			box := e.box
			res.Boxes[i] = &box
			res.Extents[i] = e.poly
			d.rep.Reportf("%s: pixels [%d,%d] - [%d,%d]", h.Name(), box.MinX, box.MinY, box.MaxX, box.MaxY)
			d.rep.Reportf("  %s", geom.WKT(*e.poly))
		}
	}
	if res.MissingData[0] || res.MissingData[1] {
		d.rep.Errorf("could not build extent geometries")
		for i, missing := range res.MissingData {
			if missing {
				msg := fmt.Sprintf("raster %s (%s) has no valid data", label(i), handles[i].Name())
				res.Diagnostics = append(res.Diagnostics, msg)
				d.rep.Errorf("  - %s", msg)
			}
		}
	}

	d.rep.Section("Intersection")
	if !geom.Available {
		res.Diagnostics = append(res.Diagnostics, "overlap computation unavailable")
		d.rep.Reportf("overlap computation unavailable, no document written")
		return res, nil
	}
	res.Overlap = geom.Overlap(res.Extents[0], res.Extents[1])
	switch {
	case res.Overlap.Err != nil:
		res.Diagnostics = append(res.Diagnostics, "geometry computation failed: "+res.Overlap.Err.Error())
		d.rep.Errorf("geometry computation failed: %v", res.Overlap.Err)
	case res.Overlap.Empty():
		d.rep.Reportf("no intersection")
	default:
		env := geom.Envelope(res.Overlap.Geometry)
		d.rep.Reportf("intersection found, area %g", planar.Area(res.Overlap.Geometry))
		d.rep.Reportf("  envelope [%g,%g] - [%g,%g]", env.Min[0], env.Min[1], env.Max[0], env.Max[1])
	}

	doc, err := geom.MarshalOverlap(res.Overlap, d.cfg.Output.FeatureName, geom.Indent(d.cfg.Output.Indent))
	if err != nil {
		return res, fmt.Errorf("serialize: %w", err)
	}
	res.Document = doc
	return res, nil
}

func label(i int) string {
	return string(rune('A' + i))
}

// describe reports size, bands, mask coverage and georeferencing of h.
func (d *Driver) describe(h *raster.Handle) {
	d.rep.Section("Raster " + h.Name())
	d.rep.Reportf("size: %dx%d", h.Width, h.Height)
	names := make([]string, len(h.Bands))
	for i, b := range h.Bands {
		names[i] = fmt.Sprintf("%d:%s", b.Index, b.Interp)
	}
	d.rep.Reportf("bands: %d [%s], mask from band %d", len(h.Bands), strings.Join(names, " "), h.AlphaBand)
	d.rep.Reportf("opaque pixels: %d (%.2f%%)", h.ValidCount(), h.ValidPercent())
	if h.GeoTransform == nil {
		d.rep.Reportf("geotransform: none, using flipped pixel grid")
		return
	}
	d.rep.Reportf("geotransform: %s", h.GeoTransform)
	if h.GeoTransform.HasRotation() {
		d.rep.Reportf("  rotation terms present, extent stays a pixel-grid rectangle")
	}
}
