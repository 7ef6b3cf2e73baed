package raster

import "errors"

var (
	// ErrRasterLoad is returned when a raster file is missing, unreadable or undecodable
	ErrRasterLoad = errors.New("raster load failed")

	// ErrMissingAlpha is returned when no band can serve as validity mask
	ErrMissingAlpha = errors.New("alpha band not found")
)
