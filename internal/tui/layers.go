package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"orthoverlap/internal/geom"
)

type layerItem struct {
	title, desc string
	index       int
}

func (f layerItem) Title() string       { return f.title }
func (f layerItem) Description() string { return f.desc }
func (f layerItem) FilterValue() string { return f.title }

// refreshLayers rebuilds the sidebar items and the shared bbox.
func (m *Model) refreshLayers() {
	items := make([]list.Item, 0, len(m.layers))
	first := true
	for i, ly := range m.layers {
		mark := "hidden"
		if ly.Visible {
			mark = "shown"
		}
		d := ly.Data
		items = append(items, layerItem{
			title: fmt.Sprintf("%d %s", i+1, ly.Name),
			desc:  fmt.Sprintf("%s  pts=%d ls=%d poly=%d", mark, len(d.Points), len(d.Lines), len(d.Polygons)),
			index: i,
		})
		if d.Empty() {
			continue
		}
		for _, c := range [][2]float64{{d.BBox.MinX, d.BBox.MinY}, {d.BBox.MaxX, d.BBox.MaxY}} {
			m.bbox = m.bbox.Extend(c, first)
			first = false
		}
	}
	if first {
		m.bbox = geom.BBox{}
	}
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "nothing to show"
	}
}

// toggleLayer flips visibility of layer i.
func (m *Model) toggleLayer(i int) {
	if i < 0 || i >= len(m.layers) {
		return
	}
	m.layers[i].Visible = !m.layers[i].Visible
	m.status = fmt.Sprintf("%s: %v", m.layers[i].Name, m.layers[i].Visible)
	m.refreshLayers()
}

// setOverlay replaces the pasted layer, adding it on first use.
func (m *Model) setOverlay(d geom.Data) {
	const name = "pasted"
	for i := range m.layers {
		if m.layers[i].Name == name {
			m.layers[i].Data = d
			m.layers[i].Visible = true
			m.refreshLayers()
			return
		}
	}
	m.layers = append(m.layers, Layer{Name: name, Data: d, Visible: true})
	m.refreshLayers()
}
