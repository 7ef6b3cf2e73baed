package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"orthoverlap/internal/geom"
)

const (
	maxZoom  = 64
	minZoom  = 0.05
	zoomStep = 1.2
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case tea.KeyMsg:
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	if !m.showSidebar {
		return m, nil
	}
	var cmd tea.Cmd
	m.l, cmd = m.l.Update(msg)
	return m, cmd
}

// resize follows the terminal and sidebar state.
func (m *Model) resize() {
	f := m.frame()
	m.mapW, m.mapH = f.mapW, f.mapH
	if m.showSidebar {
		m.l.SetSize(f.sidebarW-2, f.contentH-2)
	}
}

// updatePaste feeds the textarea until Enter overlays its WKT or Esc leaves.
func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		src := strings.TrimSpace(m.ta.Value())
		if src == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKTData(src)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.setOverlay(d)
		m.status = fmt.Sprintf("overlay: pts=%d ls=%d poly=%d", len(d.Points), len(d.Lines), len(d.Polygons))
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a view command and reports whether to quit.
func (m *Model) handleKey(key string) bool {
	switch key {
	case "ctrl+c", "q":
		return true
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.toggleLayer(int(key[0] - '1'))
	case "+", "=":
		m.zoomBy(zoomStep)
	case "-", "_":
		m.zoomBy(1 / zoomStep)
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	case "0":
		m.zoom, m.offsetX, m.offsetY = 1, 0, 0
		m.status = "view reset"
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshLayers()
		}
		m.resize()
	case "enter":
		if it, ok := m.l.SelectedItem().(layerItem); ok && m.showSidebar {
			m.toggleLayer(it.index)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "i":
		m.toggleInspect()
	}
	return false
}

func (m *Model) zoomBy(f float64) {
	z := m.zoom * f
	if z > maxZoom || z < minZoom {
		return
	}
	m.zoom = z
	m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
}

// toggleInspect opens a popup describing the vertex nearest to the view
// centre, or closes the open one.
func (m *Model) toggleInspect() {
	if m.inspectPopup != "" {
		m.inspectPopup = ""
		return
	}
	x, y, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	lines := []string{
		fmt.Sprintf("nearest: x=%.6f y=%.6f", x, y),
		fmt.Sprintf("view: [%.5f, %.5f, %.5f, %.5f]", m.bbox.MinX, m.bbox.MinY, m.bbox.MaxX, m.bbox.MaxY),
	}
	if px, py, ok := m.pixelAt(x, y); ok {
		lines = append(lines, fmt.Sprintf("pixel: %d,%d", px, py))
	}
	for i, ly := range m.layers {
		state := "hidden"
		if ly.Visible {
			state = "shown"
		}
		lines = append(lines, fmt.Sprintf("%d %s: %s, %d polygon(s)", i+1, ly.Name, state, len(ly.Data.Polygons)))
	}
	m.inspectPopup = strings.Join(lines, "\n")
	m.status = "inspect"
}

// hover tracks the cell under the mouse and snaps the highlight to the
// nearest visible vertex.
func (m *Model) hover(x, y int) {
	f := m.frame()
	cx, cy := x-f.mapX, y-f.mapY
	if cx < 0 || cx >= f.mapW || cy < 0 || cy >= f.mapH {
		m.hovering, m.hoverHasGeo = false, false
		return
	}
	m.hovering = true
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy, f.mapW, f.mapH)

	mx, my := cx*2, cy*4
	snapX, snapY := mx, my
	best := -1
	for _, p := range m.vertices() {
		vx, vy, ok := m.screenXYMicro(p[0], p[1], f.mapW, f.mapH)
		if !ok {
			continue
		}
		if d := (vx-mx)*(vx-mx) + (vy-my)*(vy-my); best < 0 || d < best {
			best, snapX, snapY = d, vx, vy
		}
	}
	m.hoverMicX = clamp(snapX, 0, f.mapW*2-1)
	m.hoverMicY = clamp(snapY, 0, f.mapH*4-1)
}
