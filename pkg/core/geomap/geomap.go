// Package geomap describes an interactive map view as plain data: centre,
// zoom, tile layers and markers. Renderers turn a View into whatever a mapping
// library consumes.
package geomap

import (
	"fmt"
	"io"

	"energy_prospectus/pkg/core/view"
)

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"latitude"`
	Lng float64 `json:"lng" yaml:"longitude"`
}

// Valid reports whether the coordinate lies on the globe.
func (p LatLng) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Bounds is a south-west / north-east rectangle.
type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
	empty     bool
}

// EmptyBounds returns bounds that contain nothing until extended.
func EmptyBounds() Bounds {
	return Bounds{empty: true}
}

// Extend grows the bounds to include p.
func (b Bounds) Extend(p LatLng) Bounds {
	if b.empty {
		return Bounds{SouthWest: p, NorthEast: p}
	}
	b.SouthWest.Lat = min(b.SouthWest.Lat, p.Lat)
	b.SouthWest.Lng = min(b.SouthWest.Lng, p.Lng)
	b.NorthEast.Lat = max(b.NorthEast.Lat, p.Lat)
	b.NorthEast.Lng = max(b.NorthEast.Lng, p.Lng)
	return b
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.empty
}

// Icon is a round coloured badge holding a glyph.
type Icon struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// TooltipOptions position a hover tooltip relative to its marker.
type TooltipOptions struct {
	Direction string `json:"direction"`
	OffsetX   int    `json:"offsetX"`
	OffsetY   int    `json:"offsetY"`
	Class     string `json:"className"`
}

// Marker is one geo-tagged point with a non-modal hover tooltip.
type Marker struct {
	ID             string         `json:"id"`
	Position       LatLng         `json:"position"`
	Title          string         `json:"title"`
	Icon           Icon           `json:"icon"`
	Tooltip        view.Node      `json:"tooltip"`
	TooltipOptions TooltipOptions `json:"tooltipOptions"`
}

// TileLayer is a raster base layer.
type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
	Class       string `json:"className,omitempty"`
}

// Options are the interaction switches of the map.
type Options struct {
	ScrollWheelZoom bool `json:"scrollWheelZoom"`
	Dragging        bool `json:"dragging"`
	ZoomControl     bool `json:"zoomControl"`
}

// Fit asks the renderer to fit the given bounds with padding (pixels).
type Fit struct {
	Bounds  Bounds `json:"bounds"`
	Padding int    `json:"padding"`
}

// View is the map handle owned by one widget. FocusZoom is the zoom used
// when the page focuses a single marker; Highlight names the marker focused
// on load.
type View struct {
	Center    LatLng      `json:"center"`
	Zoom      int         `json:"zoom"`
	Options   Options     `json:"options"`
	Layers    []TileLayer `json:"layers"`
	Markers   []Marker    `json:"markers"`
	Fit       *Fit        `json:"fit,omitempty"`
	FocusZoom int         `json:"focusZoom"`
	Highlight string      `json:"highlight,omitempty"`
}

// NewView creates a map centred on center.
func NewView(center LatLng, zoom int, opts Options) *View {
	return &View{Center: center, Zoom: zoom, Options: opts}
}

// AddTileLayer appends a base layer.
func (v *View) AddTileLayer(l TileLayer) {
	v.Layers = append(v.Layers, l)
}

// AddMarker appends a marker. Marker ids must be unique within the view.
func (v *View) AddMarker(m Marker) error {
	for _, existing := range v.Markers {
		if existing.ID == m.ID {
			return fmt.Errorf("duplicate marker id %q", m.ID)
		}
	}
	v.Markers = append(v.Markers, m)
	return nil
}

// Marker looks up a marker by id.
func (v *View) Marker(id string) (Marker, bool) {
	for _, m := range v.Markers {
		if m.ID == id {
			return m, true
		}
	}
	return Marker{}, false
}

// MarkerBounds returns the rectangle covering every marker.
func (v *View) MarkerBounds() Bounds {
	b := EmptyBounds()
	for _, m := range v.Markers {
		b = b.Extend(m.Position)
	}
	return b
}

// FitBounds fits the view to all markers. No-op without markers.
func (v *View) FitBounds(padding int) bool {
	b := v.MarkerBounds()
	if b.IsEmpty() {
		return false
	}
	v.Fit = &Fit{Bounds: b, Padding: padding}
	return true
}

// SetView recentres the map and drops any pending fit.
func (v *View) SetView(center LatLng, zoom int) {
	v.Center, v.Zoom = center, zoom
	v.Fit = nil
}

// Renderer is the mapping capability the facility widget needs.
type Renderer interface {
	RenderMap(w io.Writer, v *View) error
}
