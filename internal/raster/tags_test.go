package raster

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orthoverlap/internal/geom"
)

type testEntry struct {
	tag, typ uint16
	count    uint32
	data     []byte
}

func shorts(v ...uint16) testEntry {
	b := make([]byte, 2*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint16(b[2*i:], x)
	}
	return testEntry{typ: 3, count: uint32(len(v)), data: b}
}

func doubles(v ...float64) testEntry {
	b := make([]byte, 8*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint64(b[8*i:], math.Float64bits(x))
	}
	return testEntry{typ: 12, count: uint32(len(v)), data: b}
}

func tagged(tag uint16, e testEntry) testEntry {
	e.tag = tag
	return e
}

// buildIFD lays out a little-endian TIFF header and one IFD; values over
// four bytes follow the directory.
func buildIFD(entries ...testEntry) []byte {
	ifdSize := 2 + 12*len(entries) + 4
	dataOff := 8 + ifdSize
	var head, data bytes.Buffer
	head.WriteString("II")
	binary.Write(&head, binary.LittleEndian, uint16(42))
	binary.Write(&head, binary.LittleEndian, uint32(8))
	binary.Write(&head, binary.LittleEndian, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(&head, binary.LittleEndian, e.tag)
		binary.Write(&head, binary.LittleEndian, e.typ)
		binary.Write(&head, binary.LittleEndian, e.count)
		if len(e.data) <= 4 {
			v := make([]byte, 4)
			copy(v, e.data)
			head.Write(v)
			continue
		}
		binary.Write(&head, binary.LittleEndian, uint32(dataOff+data.Len()))
		data.Write(e.data)
	}
	binary.Write(&head, binary.LittleEndian, uint32(0))
	return append(head.Bytes(), data.Bytes()...)
}

func TestReadTags_layout(t *testing.T) {
	raw := buildIFD(
		tagged(tagPhotometric, shorts(2)),
		tagged(tagSamplesPerPixel, shorts(4)),
		tagged(tagExtraSamples, shorts(2)),
	)
	tags, err := readTags(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 2, tags.photometric)
	assert.Equal(t, 4, tags.samplesPerPixel)
	assert.Equal(t, []int{2}, tags.extraSamples)
	assert.Nil(t, tags.geoTransform())
	assert.Equal(t, 4, findAlphaBand(bandsFromTags(tags)))
}

func TestReadTags_geoTransform(t *testing.T) {
	scale := tagged(tagPixelScale, doubles(2, 2, 0))
	tie := tagged(tagTiepoint, doubles(0, 0, 0, 1000, 2000, 0))
	for _, tc := range []struct {
		name     string
		entries  []testEntry
		expected *geom.GeoTransform
	}{
		{
			name:     "tiepoint and scale",
			entries:  []testEntry{scale, tie},
			expected: &geom.GeoTransform{1000, 2, 0, 2000, 0, -2},
		},
		{
			name: "pixel is point",
			entries: []testEntry{scale, tie,
				tagged(tagGeoKeyDirectory, shorts(1, 1, 0, 1, geoKeyRasterType, 0, 1, rasterPixelIsPoint))},
			expected: &geom.GeoTransform{999, 2, 0, 2001, 0, -2},
		},
		{
			name: "pixel is area",
			entries: []testEntry{scale, tie,
				tagged(tagGeoKeyDirectory, shorts(1, 1, 0, 1, geoKeyRasterType, 0, 1, 1))},
			expected: &geom.GeoTransform{1000, 2, 0, 2000, 0, -2},
		},
		{
			name: "transformation matrix",
			entries: []testEntry{tagged(tagTransformation, doubles(
				2, 0.5, 0, 500,
				0.25, -2, 0, 600,
				0, 0, 0, 0,
				0, 0, 0, 1,
			))},
			expected: &geom.GeoTransform{500, 2, 0.5, 600, 0.25, -2},
		},
		{
			name:    "scale without tiepoint",
			entries: []testEntry{scale},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tags, err := readTags(bytes.NewReader(buildIFD(tc.entries...)))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tags.geoTransform())
		})
	}
}

func TestReadTags_errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  []byte
	}{
		{"short", []byte("II")},
		{"byte order", []byte("XX*\x00\x08\x00\x00\x00")},
		{"magic", []byte("II\x2b\x00\x08\x00\x00\x00")},
		{"truncated ifd", []byte("II*\x00\x08\x00\x00\x00\x05\x00")},
		{"no directory", []byte("II*\x00\x00\x00\x00\x00")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := readTags(bytes.NewReader(tc.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseWorldFile(t *testing.T) {
	gt, err := ParseWorldFile("0.5\n0\n0\n-0.5\n300000.25\n5000000.75\n")
	require.NoError(t, err)
	assert.Equal(t, geom.GeoTransform{300000, 0.5, 0, 5000001, 0, -0.5}, gt)

	_, err = ParseWorldFile("1 0 0 -1 x 0")
	assert.Error(t, err)
	_, err = ParseWorldFile("")
	assert.Error(t, err)
}

func TestWorldFileNames(t *testing.T) {
	assert.Equal(t,
		[]string{"/data/a.tfw", "/data/a.TFW", "/data/a.tifw", "/data/a.wld"},
		worldFileNames("/data/a.tif"))
}
