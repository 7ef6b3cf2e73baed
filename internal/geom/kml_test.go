package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark>
        <name>corner</name>
        <Point><coordinates>10,20,0</coordinates></Point>
      </Placemark>
      <Placemark>
        <LineString><coordinates>0,0 5,5 bad 6,7</coordinates></LineString>
      </Placemark>
    </Folder>
    <Placemark>
      <MultiGeometry>
        <Polygon>
          <outerBoundaryIs><LinearRing><coordinates>
            0,0 4,0 4,4 0,4 0,0
          </coordinates></LinearRing></outerBoundaryIs>
          <innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
        </Polygon>
      </MultiGeometry>
    </Placemark>
  </Document>
</kml>`

func TestParseKML(t *testing.T) {
	d, err := ParseKML(strings.NewReader(testKML))
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{10, 20}}, d.Points)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, [][2]float64{{0, 0}, {5, 5}, {6, 7}}, d.Lines[0])
	require.Len(t, d.Polygons, 1)
	assert.Len(t, d.Polygons[0], 2)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 20}, d.BBox)
}

func TestParseKML_errors(t *testing.T) {
	_, err := ParseKML(strings.NewReader(`<kml><Document/></kml>`))
	assert.EqualError(t, err, "kml: no geometry found")

	_, err = ParseKML(strings.NewReader(`<kml><Placemark><Point>`))
	assert.Error(t, err)
}

func TestLoadKML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marks.kml")
	require.NoError(t, os.WriteFile(path, []byte(testKML), 0o644))
	d, err := LoadKML(path)
	require.NoError(t, err)
	assert.False(t, d.Empty())

	_, err = LoadKML(filepath.Join(t.TempDir(), "missing.kml"))
	assert.Error(t, err)
}
