// Package raster decodes TIFF rasters into the read-only handle the overlap
// pipeline works on: size, band layout, alpha mask and geotransform.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"orthoverlap/internal/geom"
)

// ColorInterp names what a band holds.
type ColorInterp int

const (
	Undefined ColorInterp = iota
	Gray
	Palette
	Red
	Green
	Blue
	Alpha
	Cyan
	Magenta
	Yellow
	Black
)

var interpNames = [...]string{"Undefined", "Gray", "Palette", "Red", "Green", "Blue", "Alpha", "Cyan", "Magenta", "Yellow", "Black"}

func (c ColorInterp) String() string {
	if c < 0 || int(c) >= len(interpNames) {
		return "Undefined"
	}
	return interpNames[c]
}

// Band is one channel of a raster. Index starts at 1.
type Band struct {
	Index  int
	Interp ColorInterp
}

// Handle is a decoded raster. It is filled once by Open and not modified afterwards.
type Handle struct {
	Path   string
	Width  int
	Height int
	Bands  []Band
	// AlphaBand is the 1-based index of the band the mask was read from.
	AlphaBand int
	// Mask holds Width*Height samples, row-major; 255 marks a valid pixel.
	Mask []byte
	// GeoTransform is nil when the file carries no georeferencing.
	GeoTransform *geom.GeoTransform
}

func (h *Handle) Name() string {
	if h.Path == "" {
		return "<memory>"
	}
	return filepath.Base(h.Path)
}

// ValidCount counts opaque mask samples.
func (h *Handle) ValidCount() int {
	return geom.CountValid(h.Mask)
}

// ValidPercent is the share of opaque pixels, 0..100.
func (h *Handle) ValidPercent() float64 {
	if h.Width*h.Height == 0 {
		return 0
	}
	return float64(h.ValidCount()) * 100 / float64(h.Width*h.Height)
}

// Open decodes the TIFF at path. Georeferencing comes from GeoTIFF tags or,
// failing that, a world file sidecar.
func Open(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterLoad, err)
	}
	defer f.Close()
	tags, err := readTags(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRasterLoad, path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRasterLoad, path, err)
	}
	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRasterLoad, path, err)
	}
	gt := tags.geoTransform()
	if gt == nil {
		if gt, err = readWorldFile(path); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRasterLoad, path, err)
		}
	}
	return fromImage(path, img, bandsFromTags(tags), gt)
}

// FromImage builds a handle from an already decoded image, taking the band
// layout from its concrete type.
func FromImage(path string, img image.Image, gt *geom.GeoTransform) (*Handle, error) {
	return fromImage(path, img, bandsFromImage(img), gt)
}

func fromImage(path string, img image.Image, bands []Band, gt *geom.GeoTransform) (*Handle, error) {
	alpha := findAlphaBand(bands)
	if alpha == 0 {
		return nil, fmt.Errorf("%s: %w (%d bands)", path, ErrMissingAlpha, len(bands))
	}
	b := img.Bounds()
	h := &Handle{
		Path:         path,
		Width:        b.Dx(),
		Height:       b.Dy(),
		Bands:        bands,
		AlphaBand:    alpha,
		GeoTransform: gt,
	}
	h.Mask = readBand(img, alpha-1)
	return h, nil
}

// findAlphaBand returns the first band interpreted as alpha, else the last
// band of a raster with at least four, else 0.
func findAlphaBand(bands []Band) int {
	for _, b := range bands {
		if b.Interp == Alpha {
			return b.Index
		}
	}
	if len(bands) >= 4 {
		return bands[len(bands)-1].Index
	}
	return 0
}

func newBands(interps ...ColorInterp) []Band {
	bands := make([]Band, len(interps))
	for i, c := range interps {
		bands[i] = Band{Index: i + 1, Interp: c}
	}
	return bands
}

// bandsFromTags follows the photometric interpretation and extra samples of
// the file.
func bandsFromTags(t tiffTags) []Band {
	var base []ColorInterp
	switch t.photometric {
	case 0, 1:
		base = []ColorInterp{Gray}
	case 2:
		base = []ColorInterp{Red, Green, Blue}
	case 3:
		base = []ColorInterp{Palette}
	case 5:
		base = []ColorInterp{Cyan, Magenta, Yellow, Black}
	}
	interps := make([]ColorInterp, 0, t.samplesPerPixel)
	for i := 0; i < t.samplesPerPixel; i++ {
		switch {
		case i < len(base):
			interps = append(interps, base[i])
		default:
			extra := i - len(base)
			c := Undefined
			if extra < len(t.extraSamples) && (t.extraSamples[extra] == 1 || t.extraSamples[extra] == 2) {
				c = Alpha
			}
			interps = append(interps, c)
		}
	}
	return newBands(interps...)
}

func bandsFromImage(img image.Image) []Band {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return newBands(Gray)
	case *image.Paletted:
		return newBands(Palette)
	case *image.CMYK:
		return newBands(Cyan, Magenta, Yellow, Black)
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return newBands(Red, Green, Blue, Alpha)
	}
	return newBands(Undefined)
}

// readBand returns the 8-bit samples of band (0-based); 16-bit samples keep
// their high byte.
func readBand(img image.Image, band int) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, sample(img, band, x, y))
		}
	}
	return out
}

func sample(img image.Image, band, x, y int) byte {
	switch m := img.(type) {
	case *image.NRGBA:
		return m.Pix[m.PixOffset(x, y)+band]
	case *image.RGBA:
		return m.Pix[m.PixOffset(x, y)+band]
	case *image.NRGBA64:
		return m.Pix[m.PixOffset(x, y)+2*band]
	case *image.RGBA64:
		return m.Pix[m.PixOffset(x, y)+2*band]
	case *image.CMYK:
		return m.Pix[m.PixOffset(x, y)+band]
	case *image.Gray:
		return m.Pix[m.PixOffset(x, y)]
	case *image.Gray16:
		return m.Pix[m.PixOffset(x, y)]
	case *image.Paletted:
		return m.Pix[m.PixOffset(x, y)]
	}
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return [4]uint8{c.R, c.G, c.B, c.A}[band%4]
}
