package facility

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"energy_prospectus/pkg/core/geomap"
	"energy_prospectus/pkg/core/view"
)

// MapAnchor is the id of the map container.
const MapAnchor = "infrastructureMap"

// Settings are the map parameters taken from the site configuration.
type Settings struct {
	Center      geomap.LatLng
	Zoom        int
	TileURL     string
	Attribution string
	MaxZoom     int
	FitPadding  int
	FocusZoom   int
	Highlight   string
}

// DefaultSettings centres on the Avalon isthmus with OpenStreetMap tiles.
func DefaultSettings() Settings {
	return Settings{
		Center:      geomap.LatLng{Lat: 47.25, Lng: -52.75},
		Zoom:        9,
		TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap contributors",
		MaxZoom:     19,
		FitPadding:  50,
		FocusZoom:   12,
	}
}

// Widget is the mounted infrastructure map.
type Widget struct {
	logger  *zap.Logger
	doc     *view.Document
	catalog *Catalog
	view    *geomap.View
	slot    *view.Slot
}

// Mount builds the map view inside #infrastructureMap. A missing container
// is logged and yields a nil widget.
func Mount(doc *view.Document, catalog *Catalog, settings Settings, logger *zap.Logger) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, ok := doc.Anchor(MapAnchor); !ok {
		logger.Error("map container not found", zap.String("anchor", MapAnchor))
		return nil
	}

	v := geomap.NewView(settings.Center, settings.Zoom, geomap.Options{
		ScrollWheelZoom: true,
		Dragging:        true,
		ZoomControl:     true,
	})
	v.AddTileLayer(geomap.TileLayer{
		URL:         settings.TileURL,
		Attribution: settings.Attribution,
		MaxZoom:     settings.MaxZoom,
		Class:       "leaflet-tile-light",
	})

	for _, f := range catalog.All() {
		if !f.Type.Known() {
			logger.Warn("unknown facility type, using fallback icon",
				zap.String("facility", f.ID), zap.String("type", string(f.Type)))
		}
		m := geomap.Marker{
			ID:       f.ID,
			Position: Position(f),
			Title:    f.Name,
			Icon:     Icon(f.Type),
			Tooltip:  Tooltip(f),
			TooltipOptions: geomap.TooltipOptions{
				Direction: "top",
				OffsetY:   -20,
				Class:     TooltipClass,
			},
		}
		if err := v.AddMarker(m); err != nil {
			logger.Error("skipping marker", zap.String("facility", f.ID), zap.Error(err))
		}
	}
	v.FitBounds(settings.FitPadding)
	v.FocusZoom = settings.FocusZoom

	w := &Widget{
		logger:  logger,
		doc:     doc,
		catalog: catalog,
		view:    v,
		slot:    view.NewSlot(doc, "map-overlay"),
	}
	if settings.Highlight != "" && !w.Highlight(settings.Highlight) {
		logger.Warn("highlighted facility not found", zap.String("facility", settings.Highlight))
	}

	logger.Debug("map mounted", zap.Int("markers", len(v.Markers)), zap.String("highlight", v.Highlight))
	return w
}

// View returns the map handle.
func (w *Widget) View() *geomap.View {
	return w.view
}

// Hover shows the tooltip of a marker. False for an unknown id.
func (w *Widget) Hover(id string) bool {
	f, ok := w.catalog.ByID(id)
	if !ok {
		return false
	}
	w.slot.Open(view.KindTooltip, Tooltip(f).WithAttr("data-facility", f.ID))
	return true
}

// Leave hides the hover tooltip; an open modal stays.
func (w *Widget) Leave() bool {
	return w.slot.CloseKind(view.KindTooltip)
}

// Click opens the detail modal of a marker, replacing any open overlay.
func (w *Widget) Click(id string) bool {
	f, ok := w.catalog.ByID(id)
	if !ok {
		w.logger.Debug("click on unknown marker", zap.String("facility", id))
		return false
	}
	w.slot.Open(view.KindModal, Modal(f))
	return true
}

// Close dismisses the modal via its close button.
func (w *Widget) Close() bool {
	return w.slot.CloseKind(view.KindModal)
}

// Backdrop handles a click on the modal backdrop. Clicks inside the modal
// content (inside == true) are ignored.
func (w *Widget) Backdrop(inside bool) bool {
	if inside {
		return false
	}
	return w.slot.CloseKind(view.KindModal)
}

// Highlight centres the map on a marker at the focus zoom and marks it so
// the page opens its tooltip on load. False for an unknown id.
func (w *Widget) Highlight(id string) bool {
	m, ok := w.view.Marker(id)
	if !ok {
		return false
	}
	w.view.SetView(m.Position, w.view.FocusZoom)
	w.view.Highlight = id
	return true
}

// Payload is the JSON embedded in the page for the map script.
type Payload struct {
	Map    json.RawMessage   `json:"map"`
	Modals map[string]string `json:"modals"`
}

// Payload renders the map through r and pre-renders every modal.
func (w *Widget) Payload(r geomap.Renderer) (Payload, error) {
	var buf bytes.Buffer
	if err := r.RenderMap(&buf, w.view); err != nil {
		return Payload{}, err
	}
	p := Payload{Map: json.RawMessage(bytes.TrimSpace(buf.Bytes())), Modals: make(map[string]string)}
	for _, f := range w.catalog.All() {
		html, err := view.Render(Modal(f))
		if err != nil {
			return Payload{}, fmt.Errorf("facility %s: %w", f.ID, err)
		}
		p.Modals[f.ID] = html
	}
	return p, nil
}
