package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellToLonLat inverts screenXY for the cell (cx, cy) of a w x h canvas.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	b := m.bbox
	if b.MaxX <= b.MinX || b.MaxY <= b.MinY || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return b.MinX + nx*(b.MaxX-b.MinX), b.MinY + ny*(b.MaxY-b.MinY), true
}

// toMicro projects path onto the microgrid, dropping what cannot be placed.
func (m Model) toMicro(path [][2]float64, w, h int) [][2]int {
	out := make([][2]int, 0, len(path))
	for _, p := range path {
		if mx, my, ok := m.screenXYMicro(p[0], p[1], w, h); ok {
			out = append(out, [2]int{mx, my})
		}
	}
	return out
}

// drawLayer rasterises one layer into its own braille buffer.
func (m Model) drawLayer(ly Layer, w, h int) *brailleBuf {
	br := newBrailleBuf(w, h)
	for _, poly := range ly.Data.Polygons {
		for i, ring := range poly {
			pts := m.toMicro(ring, w, h)
			if len(pts) < 2 {
				continue
			}
			// holes stay unfilled
			if i == 0 && ly.Fill {
				fillRing(br, pts, h*4)
			}
			br.drawPath(append(pts, pts[0]))
		}
	}
	for _, ls := range ly.Data.Lines {
		br.drawPath(m.toMicro(ls, w, h))
	}
	for _, p := range m.toMicro(ly.Data.Points, w, h) {
		br.setPixel(p[0], p[1])
	}
	return br
}

// fillRing paints the inside of ring scanline by scanline, even-odd.
func fillRing(br *brailleBuf, ring [][2]int, hMic int) {
	var xs []int
	for y := 0; y < hMic; y++ {
		xs = xs[:0]
		prev := ring[len(ring)-1]
		for _, cur := range ring {
			a, b := prev, cur
			prev = cur
			if a[1] > b[1] {
				a, b = b, a
			}
			if y < a[1] || y >= b[1] {
				continue
			}
			t := float64(y-a[1]) / float64(b[1]-a[1])
			xs = append(xs, a[0]+int(t*float64(b[0]-a[0])))
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1]; x++ {
				br.setPixel(x, y)
			}
		}
	}
}

// renderMap composites visible layers; a later layer owns the cells it touches.
func (m Model) renderMap(w, h int) string {
	cells := make([][]rune, h)
	owner := make([][]int, h)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", w))
		owner[y] = make([]int, w)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}
	for i, ly := range m.layers {
		if !ly.Visible || ly.Data.Empty() {
			continue
		}
		br := m.drawLayer(ly, w, h)
		for y, row := range br.toLines() {
			for x, r := range []rune(row) {
				if x < w && br.lit(x, y) {
					cells[y][x] = r
					owner[y][x] = i
				}
			}
		}
	}
	hx, hy := -1, -1
	if m.hovering {
		hx, hy = m.hoverMicX/2, m.hoverMicY/4
	}
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; {
			if x == hx && y == hy {
				sb.WriteString(hoverStyle.Render("◯"))
				x++
				continue
			}
			// group runs of cells with the same owner into one styled span
			o := owner[y][x]
			end := x + 1
			for end < w && owner[y][end] == o && !(end == hx && y == hy) {
				end++
			}
			span := string(cells[y][x:end])
			if o >= 0 {
				span = lipgloss.NewStyle().Foreground(palette[o%len(palette)]).Render(span)
			}
			sb.WriteString(span)
			x = end
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// viewPos maps world x/y to the unit square of the view, after zoom about
// the centre. ok is false until the layers span an area.
func (m Model) viewPos(x, y float64) (zx, zy float64, ok bool) {
	b := m.bbox
	if b.MaxX <= b.MinX || b.MaxY <= b.MinY {
		return 0, 0, false
	}
	nx := (x - b.MinX) / (b.MaxX - b.MinX)
	ny := (y - b.MinY) / (b.MaxY - b.MinY)
	return 0.5 + (nx-0.5)*m.zoom, 0.5 + (ny-0.5)*m.zoom, true
}

// screenXYMicro places x/y on the 2x4 braille microgrid of a w x h canvas.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.viewPos(x, y)
	if !ok {
		return 0, 0, false
	}
	return int(zx*float64(w*2-1)) + m.offsetX*2, int((1-zy)*float64(h*4-1)) + m.offsetY*4, true
}

// screenXY places x/y on a cell of a w x h canvas.
func (m Model) screenXY(x, y float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.viewPos(x, y)
	if !ok {
		return 0, 0, false
	}
	return int(zx*float64(w-1)) + m.offsetX, int((1-zy)*float64(h-1)) + m.offsetY, true
}

// vertices lists every vertex of the visible layers.
func (m Model) vertices() [][2]float64 {
	var out [][2]float64
	for _, ly := range m.layers {
		if !ly.Visible {
			continue
		}
		out = append(out, ly.Data.Points...)
		for _, ls := range ly.Data.Lines {
			out = append(out, ls...)
		}
		for _, poly := range ly.Data.Polygons {
			for _, ring := range poly {
				out = append(out, ring...)
			}
		}
	}
	return out
}

// inspectNearest returns the visible vertex closest to the view centre.
func (m Model) inspectNearest() (x, y float64, ok bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 || h <= 0 {
		w, h = 80, 24
	}
	best := -1
	for _, p := range m.vertices() {
		sx, sy, in := m.screenXY(p[0], p[1], w, h)
		if !in {
			continue
		}
		dx, dy := sx-w/2, sy-h/2
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best, x, y = d, p[0], p[1]
		}
	}
	return x, y, best >= 0
}

// pixelAt maps lon/lat to a pixel of the first raster when a transform is known.
func (m Model) pixelAt(lon, lat float64) (int, int, bool) {
	if m.toPixel == nil {
		return 0, 0, false
	}
	px, py := m.toPixel.Apply(lon, lat)
	return int(math.Floor(px)), int(math.Floor(py)), true
}
