package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/tiff"

	"orthoverlap/internal/geom"
)

// TIFF and GeoTIFF tags read next to the pixel decoder, which does not expose them.
const (
	tagPhotometric     = 262
	tagSamplesPerPixel = 277
	tagExtraSamples    = 338
	tagPixelScale      = 33550
	tagTiepoint        = 33922
	tagTransformation  = 34264
	tagGeoKeyDirectory = 34735

	geoKeyRasterType   = 1025
	rasterPixelIsPoint = 2
)

type tiffTags struct {
	photometric     int
	samplesPerPixel int
	extraSamples    []int
	pixelScale      []float64
	tiepoint        []float64
	transformation  []float64
	geoKeys         []int
}

// readTags reads the fields of the first IFD that matter for band layout and
// georeferencing.
func readTags(r tiff.ReadAtReadSeeker) (tiffTags, error) {
	t := tiffTags{photometric: -1, samplesPerPixel: 1}
	tf, err := tiff.Parse(r, nil, nil)
	if err != nil {
		return t, fmt.Errorf("tiff: %w", err)
	}
	ifds := tf.IFDs()
	if len(ifds) == 0 {
		return t, errors.New("tiff: no image directory")
	}
	ifd := ifds[0]
	if v := fieldInts(ifd, tagPhotometric); len(v) > 0 {
		t.photometric = v[0]
	}
	if v := fieldInts(ifd, tagSamplesPerPixel); len(v) > 0 {
		t.samplesPerPixel = v[0]
	}
	t.extraSamples = fieldInts(ifd, tagExtraSamples)
	t.geoKeys = fieldInts(ifd, tagGeoKeyDirectory)
	t.pixelScale = fieldDoubles(ifd, tagPixelScale)
	t.tiepoint = fieldDoubles(ifd, tagTiepoint)
	t.transformation = fieldDoubles(ifd, tagTransformation)
	return t, nil
}

// fieldValues returns the raw bytes of a field split into count values, or
// nil when the field is absent or inconsistent.
func fieldValues(ifd tiff.IFD, tag uint16) ([][]byte, tiff.Field) {
	if !ifd.HasField(tag) {
		return nil, nil
	}
	f := ifd.GetField(tag)
	n := int(f.Count())
	raw := f.Value().Bytes()
	if n == 0 || len(raw) < n || len(raw)%n != 0 {
		return nil, nil
	}
	size := len(raw) / n
	out := make([][]byte, n)
	for i := range out {
		out[i] = raw[i*size : (i+1)*size]
	}
	return out, f
}

// fieldInts decodes BYTE, SHORT or LONG values.
func fieldInts(ifd tiff.IFD, tag uint16) []int {
	vals, f := fieldValues(ifd, tag)
	if vals == nil {
		return nil
	}
	bo := f.Value().Order()
	out := make([]int, len(vals))
	for i, v := range vals {
		switch len(v) {
		case 1:
			out[i] = int(v[0])
		case 2:
			out[i] = int(bo.Uint16(v))
		case 4:
			out[i] = int(bo.Uint32(v))
		default:
			return nil
		}
	}
	return out
}

// fieldDoubles decodes DOUBLE values.
func fieldDoubles(ifd tiff.IFD, tag uint16) []float64 {
	vals, f := fieldValues(ifd, tag)
	if vals == nil || len(vals[0]) != 8 {
		return nil
	}
	bo := f.Value().Order()
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = math.Float64frombits(bo.Uint64(v))
	}
	return out
}

// pixelIsPoint reports whether the GeoKey directory declares point raster space.
func (t tiffTags) pixelIsPoint() bool {
	k := t.geoKeys
	if len(k) < 4 {
		return false
	}
	for i := 0; i < k[3] && 4+4*i+3 < len(k); i++ {
		key := k[4+4*i : 8+4*i]
		if key[0] == geoKeyRasterType && key[1] == 0 {
			return key[3] == rasterPixelIsPoint
		}
	}
	return false
}

// geoTransform derives the affine transform from the model transformation
// matrix, or else from the first tiepoint and the pixel scale.
func (t tiffTags) geoTransform() *geom.GeoTransform {
	var gt geom.GeoTransform
	switch {
	case len(t.transformation) >= 16:
		m := t.transformation
		gt = geom.GeoTransform{m[3], m[0], m[1], m[7], m[4], m[5]}
	case len(t.tiepoint) >= 6 && len(t.pixelScale) >= 2:
		tp, sc := t.tiepoint, t.pixelScale
		gt = geom.GeoTransform{tp[3] - tp[0]*sc[0], sc[0], 0, tp[4] + tp[1]*sc[1], 0, -sc[1]}
	default:
		return nil
	}
	if t.pixelIsPoint() {
		gt[0] -= (gt[1] + gt[2]) * 0.5
		gt[3] -= (gt[4] + gt[5]) * 0.5
	}
	return &gt
}
