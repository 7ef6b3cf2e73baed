package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 32

// frame is the screen layout shared by View and mouse handling.
type frame struct {
	sidebarW int
	contentW int
	contentH int
	mapW     int
	mapH     int
	mapX     int
	mapY     int
}

func (m Model) frame() frame {
	f := frame{mapY: 1}
	if m.showSidebar {
		f.sidebarW = sidebarWidth
		f.mapX = sidebarWidth + 1
	}
	// header 1 line, footer 2
	f.contentH = max(4, m.height-3)
	f.contentW = max(10, m.width)
	f.mapW = max(10, f.contentW-f.sidebarW-1)
	f.mapH = f.contentH
	return f
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	f := m.frame()
	header := lipgloss.NewStyle().Width(f.contentW).Render(titleStyle.Render(" orthoverlap ─ raster extent overlap "))

	body := m.renderCanvas(f)
	if m.showSidebar {
		m.l.SetSize(f.sidebarW-2, f.contentH-2)
		sidebar := lipgloss.NewStyle().Width(f.sidebarW).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	popup := ""
	if m.inspectPopup != "" && !m.showAttrs {
		box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).
			MaxWidth(max(20, min(48, f.contentW/2))).Render(m.inspectPopup)
		popup = lipgloss.Place(f.contentW, f.contentH, lipgloss.Left, lipgloss.Center, box)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, m.renderFooter(f))
	return appStyle.Width(f.contentW).Height(m.height).Render(ui)
}

// renderCanvas draws the map area: the attribute table, the paste box or the map.
func (m Model) renderCanvas(f frame) string {
	w, h := max(8, f.mapW), max(4, f.mapH)
	switch {
	case m.showAttrs:
		tw := 0
		for _, c := range m.tbl.Columns() {
			tw += c.Width + 3
		}
		if tw == 0 {
			tw = min(60, f.contentW-6)
		}
		tw = min(w, max(32, tw))
		m.tbl.SetWidth(tw - 4)
		m.tbl.SetHeight(min(h-2, 20))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, boxStyle.Width(tw).Render(m.tbl.View()))
	case m.pasteMode:
		m.ta.SetWidth(w)
		m.ta.SetHeight(min(h, 12))
		return lipgloss.NewStyle().Width(w).Height(h).Render(m.ta.View())
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render(m.renderMap(w, h))
}

// renderFooter shows status and help on the left, the hover readout on the right.
func (m Model) renderFooter(f frame) string {
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, dimStyle.Render(" "+m.status+" "), m.renderHelp())
	readout := ""
	if m.hoverHasGeo {
		s := fmt.Sprintf("  x=%.5f y=%.5f", m.hoverLon, m.hoverLat)
		if px, py, ok := m.pixelAt(m.hoverLon, m.hoverLat); ok {
			s += fmt.Sprintf("  px=%d,%d", px, py)
		}
		readout = dimStyle.Render(s + "  ")
	}
	rw := max(0, f.contentW-lipgloss.Width(left))
	right := lipgloss.PlaceHorizontal(rw, lipgloss.Right, readout)
	return lipgloss.NewStyle().Width(f.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"Tab layers",
		"Enter toggle",
		"1-9 toggle",
		"p paste",
		"a attrs",
		"i inspect",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
