package tui

import "strings"

// dotBits maps a micro-pixel (row, column) inside a cell to its braille dot.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleBuf is a w x h cell canvas with 2x4 micro-pixels per cell.
type brailleBuf struct {
	w, h int
	m    [][]uint8
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel lights one micro-pixel; out of range is ignored.
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 || mx >= b.w*2 || my >= b.h*4 {
		return
	}
	b.m[my/4][mx/2] |= dotBits[my%4][mx%2]
}

// lit reports whether any dot of cell (cx, cy) is set.
func (b *brailleBuf) lit(cx, cy int) bool {
	if cx < 0 || cy < 0 || cx >= b.w || cy >= b.h {
		return false
	}
	return b.m[cy][cx] != 0
}

// drawLineMicro draws a Bresenham line between two micro-pixels.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPath joins consecutive micro-pixels.
func (b *brailleBuf) drawPath(pts [][2]int) {
	for i := 1; i < len(pts); i++ {
		b.drawLineMicro(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	var sb strings.Builder
	for y, row := range b.m {
		sb.Reset()
		for _, mask := range row {
			if mask == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(rune(0x2800 + int(mask)))
		}
		out[y] = sb.String()
	}
	return out
}
