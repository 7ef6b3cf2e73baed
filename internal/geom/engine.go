//go:build !nooverlap

package geom

import (
	"errors"
	"math"

	cgeom "github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Available reports whether the geometry engine is compiled in.
const Available = true

// intersect returns the common area of a and b. Polygons that only share an
// edge or a corner give a degenerate, non-empty result covering the contact.
func intersect(a, b orb.Polygon) (orb.Polygon, error) {
	if len(a) == 0 || len(b) == 0 || len(a[0]) < 4 || len(b[0]) < 4 {
		return nil, errors.New("polygon needs a closed ring of at least 4 points")
	}
	if a[0].Orientation() == 0 || b[0].Orientation() == 0 {
		return nil, errors.New("ring has no area")
	}
	if !a.Bound().Intersects(b.Bound()) {
		return nil, nil
	}
	out := fromClip(toClip(a).Intersection(toClip(b)).(cgeom.Polygon))
	if len(out) > 0 {
		return out, nil
	}
	if ring := contact(a[0], b[0]); ring != nil {
		return orb.Polygon{ring}, nil
	}
	return nil, nil
}

func toClip(p orb.Polygon) cgeom.Polygon {
	out := make(cgeom.Polygon, 0, len(p))
	for _, r := range p {
		if n := len(r); n > 1 && r[0] == r[n-1] {
			r = r[:n-1]
		}
		path := make(cgeom.Path, len(r))
		for i, pt := range r {
			path[i] = cgeom.Point{X: pt[0], Y: pt[1]}
		}
		out = append(out, path)
	}
	return out
}

// fromClip converts back to orb, closing each ring and dropping slivers of
// fewer than three distinct points.
func fromClip(p cgeom.Polygon) orb.Polygon {
	var out orb.Polygon
	for _, path := range p {
		ring := make(orb.Ring, 0, len(path)+1)
		for _, pt := range path {
			q := orb.Point{pt.X, pt.Y}
			if len(ring) > 0 && ring[len(ring)-1] == q {
				continue
			}
			ring = append(ring, q)
		}
		for len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		if len(ring) < 3 {
			continue
		}
		out = append(out, append(ring, ring[0]))
	}
	return out
}

// contact collects the vertices of each ring lying on the boundary of the
// other and returns them as a closed ring, or nil when the rings do not touch.
func contact(a, b orb.Ring) orb.Ring {
	bd := a.Bound().Union(b.Bound())
	tol := 1e-12 * math.Max(bd.Max[0]-bd.Min[0], bd.Max[1]-bd.Min[1])

	var ring orb.Ring
	add := func(pts, edges orb.Ring) {
		for _, p := range pts {
			if !onBoundary(p, edges, tol) {
				continue
			}
			dup := false
			for _, q := range ring {
				if q == p {
					dup = true
					break
				}
			}
			if !dup {
				ring = append(ring, p)
			}
		}
	}
	add(a[:len(a)-1], b)
	add(b[:len(b)-1], a)
	if len(ring) == 0 {
		return nil
	}
	return append(ring, ring[0])
}

func onBoundary(p orb.Point, r orb.Ring, tol float64) bool {
	for i := 1; i < len(r); i++ {
		if planar.DistanceFromSegment(r[i-1], r[i], p) <= tol {
			return true
		}
	}
	return false
}
