package geomap

import (
	"encoding/json"
	"fmt"
	"io"

	"energy_prospectus/pkg/core/view"
)

// Leaflet renders a View as the JSON document the page script feeds to
// Leaflet. Tooltip trees are pre-rendered to HTML so the client never builds
// markup itself.
type Leaflet struct{}

type leafletMarker struct {
	Marker
	TooltipHTML string `json:"tooltipHTML"`
}

type leafletView struct {
	*View
	Markers []leafletMarker `json:"markers"`
}

// RenderMap writes the map document.
func (Leaflet) RenderMap(w io.Writer, v *View) error {
	out := leafletView{View: v, Markers: make([]leafletMarker, 0, len(v.Markers))}
	for _, m := range v.Markers {
		tip, err := view.Render(m.Tooltip)
		if err != nil {
			return fmt.Errorf("marker %s: %w", m.ID, err)
		}
		out.Markers = append(out.Markers, leafletMarker{Marker: m, TooltipHTML: tip})
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("failed to encode map view: %w", err)
	}
	return nil
}
