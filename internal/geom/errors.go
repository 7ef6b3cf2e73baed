package geom

import "errors"

var (
	// ErrNoData is returned when a validity mask has no opaque pixel.
	ErrNoData = errors.New("no valid pixels in mask")

	// ErrMaskSize is returned when a mask does not hold width*height samples
	ErrMaskSize = errors.New("mask size does not match raster dimensions")

	// ErrSingularTransform is returned when a geotransform cannot be inverted
	ErrSingularTransform = errors.New("geotransform is not invertible")

	// ErrEngineDown is returned when the geometry engine is used outside Initialize/Shutdown
	ErrEngineDown = errors.New("geometry engine not initialized")

	// ErrUnavailable is returned when the geometry engine was compiled out
	ErrUnavailable = errors.New("geometry engine unavailable")
)
