package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

// kmlGeometry is what a Placemark or a MultiGeometry may hold.
type kmlGeometry struct {
	Points   []kmlCoords   `xml:"Point"`
	Lines    []kmlCoords   `xml:"LineString"`
	Polygons []kmlPolygon  `xml:"Polygon"`
	Multi    []kmlGeometry `xml:"MultiGeometry"`
}

// LoadKML reads the Placemark geometries of a KML file.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ParseKML(f)
}

// ParseKML collects Points, LineStrings and Polygons from every Placemark,
// however deeply it sits in Document and Folder elements. KML coordinates
// are "x,y[,z]"; the third value is dropped.
func ParseKML(r io.Reader) (Data, error) {
	var d Data
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Data{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var g kmlGeometry
		if err := dec.DecodeElement(&g, &se); err != nil {
			return Data{}, err
		}
		g.addTo(&d)
	}
	if d.Empty() {
		return Data{}, errors.New("kml: no geometry found")
	}
	return d, nil
}

func (g kmlGeometry) addTo(d *Data) {
	for _, p := range g.Points {
		for _, pt := range parseCoords(p.Coordinates) {
			d.Add(pt)
		}
	}
	for _, l := range g.Lines {
		if ls := parseCoords(l.Coordinates); len(ls) >= 2 {
			d.Add(orb.LineString(ls))
		}
	}
	for _, p := range g.Polygons {
		outer := parseCoords(p.Outer.Coordinates)
		if len(outer) < 3 {
			continue
		}
		poly := orb.Polygon{orb.Ring(outer)}
		for _, in := range p.Inner {
			if ring := parseCoords(in.Coordinates); len(ring) >= 3 {
				poly = append(poly, orb.Ring(ring))
			}
		}
		d.Add(poly)
	}
	for _, m := range g.Multi {
		m.addTo(d)
	}
}

// parseCoords reads whitespace separated tuples, skipping malformed ones.
func parseCoords(s string) []orb.Point {
	var out []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(vals[0], 64)
		y, err2 := strconv.ParseFloat(vals[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, orb.Point{x, y})
	}
	return out
}
