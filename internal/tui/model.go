// Package tui previews overlap results in the terminal: the extent of each
// raster and their intersection, drawn with braille cells.
package tui

import (
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"orthoverlap/internal/geom"
)

// Layer is one named geometry set on the map.
type Layer struct {
	Name    string
	Data    geom.Data
	Visible bool
	// Fill paints polygon interiors, not only their edges.
	Fill bool
}

// Attributes is the table shown with "a".
type Attributes struct {
	Columns []string
	Rows    [][]string
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// Layers, listed in the sidebar
	layers []Layer
	l      list.Model
	bbox   geom.BBox

	// world to pixel transform of the first raster, if georeferenced
	toPixel *geom.GeoTransform

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
	attrs     Attributes
}

func New(layers []Layer, attrs Attributes) Model {
	m := Model{
		helpVisible: true,
		zoom:        1.0,
		status:      "orthoverlap preview",
		layers:      layers,
		attrs:       attrs,
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Layers"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(false)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here to overlay it. Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshLayers()
	return m
}

// NewFromFile previews a GeoJSON or KML document as a single layer.
func NewFromFile(path string) (Model, error) {
	load := geom.LoadGeo
	if strings.EqualFold(filepath.Ext(path), ".kml") {
		load = geom.LoadKML
	}
	d, err := load(path)
	if err != nil {
		return Model{}, err
	}
	return New([]Layer{{Name: path, Data: d, Visible: true, Fill: true}}, Attributes{}), nil
}

// WithPixelTransform enables pixel coordinates in the hover readout. gt maps
// pixels to world coordinates; a singular transform is ignored.
func (m Model) WithPixelTransform(gt *geom.GeoTransform) Model {
	if gt == nil {
		return m
	}
	if inv, err := gt.Invert(); err == nil {
		m.toPixel = &inv
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }
