//go:build nooverlap

package geom

import "github.com/paulmach/orb"

const Available = false

func intersect(a, b orb.Polygon) (orb.Polygon, error) {
	return nil, ErrUnavailable
}
