package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultFeatureName is the name property of the intersection feature.
const DefaultFeatureName = "Intersection Area"

// Field order of these types is the key order of the written document.
type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
	Geometry   *geojson.Geometry `json:"geometry"`
}

// Envelope returns the axis-aligned bounding rectangle of g.
func Envelope(g orb.Geometry) orb.Bound {
	return g.Bound()
}

// envelopeRing lists the envelope corners from (minX, minY) counter-clockwise
// and closes the ring.
func envelopeRing(b orb.Bound) orb.Ring {
	return orb.Ring{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
		{b.Min[0], b.Min[1]},
	}
}

// MarshalOverlap renders res as a FeatureCollection. An empty result gives no
// features; otherwise the single feature holds the envelope of the
// intersection, not its exact outline. indent is the per-level indentation.
func MarshalOverlap(res OverlapResult, name string, indent string) ([]byte, error) {
	fc := featureCollection{Type: "FeatureCollection", Features: []feature{}}
	if !res.Empty() {
		env := Envelope(res.Geometry)
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Properties: map[string]string{"name": name},
			Geometry:   geojson.NewGeometry(orb.Polygon{envelopeRing(env)}),
		})
	}
	if indent == "" {
		return json.Marshal(fc)
	}
	return json.MarshalIndent(fc, "", indent)
}

// Indent returns n spaces.
func Indent(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// LoadGeo reads a GeoJSON file and returns Data (points, lines, polygons)
func LoadGeo(path string) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseGeo(data)
}

// ParseGeo accepts a FeatureCollection, a Feature or a bare geometry.
func ParseGeo(data []byte) (Data, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Data{}, err
	}
	var d Data
	switch head.Type {
	case "":
		return Data{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Data{}, err
		}
		for _, f := range fc.Features {
			if f.Geometry != nil {
				d.Add(f.Geometry)
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Data{}, err
		}
		if f.Geometry != nil {
			d.Add(f.Geometry)
		}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Data{}, fmt.Errorf("geometry %q: %w", head.Type, err)
		}
		d.Add(g.Geometry())
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}
