package raster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"orthoverlap/internal/geom"
)

// worldFileNames lists the sidecar names tried for path, in order.
func worldFileNames(path string) []string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return []string{base + ".tfw", base + ".TFW", base + ".tifw", base + ".wld"}
}

// readWorldFile looks for a world file next to path. It returns nil when there
// is none.
func readWorldFile(path string) (*geom.GeoTransform, error) {
	for _, name := range worldFileNames(path) {
		data, err := os.ReadFile(name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		gt, err := ParseWorldFile(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(name), err)
		}
		return &gt, nil
	}
	return nil, nil
}

// ParseWorldFile reads the six world file lines A, D, B, E, C, F. C and F
// address the centre of the top-left pixel and are moved to its corner.
func ParseWorldFile(s string) (geom.GeoTransform, error) {
	fields := strings.Fields(s)
	if len(fields) < 6 {
		return geom.GeoTransform{}, fmt.Errorf("world file: %d values, want 6", len(fields))
	}
	var v [6]float64
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geom.GeoTransform{}, fmt.Errorf("world file line %d: %w", i+1, err)
		}
		v[i] = f
	}
	a, d, b, e, c, f := v[0], v[1], v[2], v[3], v[4], v[5]
	return geom.GeoTransform{c - 0.5*a - 0.5*b, a, b, f - 0.5*d - 0.5*e, d, e}, nil
}
