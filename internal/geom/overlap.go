package geom

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"
)

// engine is the process-wide state of the geometry engine. It is brought up
// and torn down once per run by the pipeline driver.
var engine struct {
	sync.Mutex
	up bool
}

// Initialize brings the geometry engine up. Repeated calls are harmless.
func Initialize() error {
	if !Available {
		return ErrUnavailable
	}
	engine.Lock()
	engine.up = true
	engine.Unlock()
	return nil
}

// Shutdown tears the geometry engine down.
func Shutdown() {
	engine.Lock()
	engine.up = false
	engine.Unlock()
}

func engineUp() bool {
	engine.Lock()
	defer engine.Unlock()
	return engine.up
}

// OverlapResult is either empty or holds the intersection geometry. Err keeps
// a geometry computation failure, which is reported but never fatal.
type OverlapResult struct {
	Geometry orb.Polygon
	Err      error
}

func (r OverlapResult) Empty() bool {
	return len(r.Geometry) == 0 || len(r.Geometry[0]) == 0
}

// Overlap intersects a and b. A nil polygon stands for a raster without valid
// data and always yields an empty result.
func Overlap(a, b *orb.Polygon) OverlapResult {
	if a == nil || b == nil {
		return OverlapResult{}
	}
	if !engineUp() {
		return OverlapResult{Err: ErrEngineDown}
	}
	g, err := intersect(*a, *b)
	if err != nil {
		return OverlapResult{Err: fmt.Errorf("intersection: %w", err)}
	}
	return OverlapResult{Geometry: g}
}
