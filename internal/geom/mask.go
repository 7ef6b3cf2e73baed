package geom

import "fmt"

// Opaque is the mask value of a valid pixel. Everything else is transparent.
const Opaque = 255

func checkMask(mask []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(mask) != width*height {
		return fmt.Errorf("%w: %d samples for %dx%d", ErrMaskSize, len(mask), width, height)
	}
	return nil
}

// ScanMask returns the smallest pixel box holding every opaque pixel of mask.
// The whole frame is visited: validity has no assumed locality.
func ScanMask(mask []byte, width, height int) (PixelBox, error) {
	if err := checkMask(mask, width, height); err != nil {
		return PixelBox{}, err
	}
	box := PixelBox{MinX: width, MinY: height, MaxX: -1, MaxY: -1}
	found := false
	for y := 0; y < height; y++ {
		row := mask[y*width : (y+1)*width]
		for x, v := range row {
			if v != Opaque {
				continue
			}
			found = true
			if x < box.MinX {
				box.MinX = x
			}
			if x > box.MaxX {
				box.MaxX = x
			}
			if y < box.MinY {
				box.MinY = y
			}
			if y > box.MaxY {
				box.MaxY = y
			}
		}
	}
	if !found {
		return PixelBox{}, ErrNoData
	}
	return box, nil
}

// CountValid counts opaque samples.
func CountValid(mask []byte) int {
	n := 0
	for _, v := range mask {
		if v == Opaque {
			n++
		}
	}
	return n
}
