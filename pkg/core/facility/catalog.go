// Package facility builds the infrastructure map: one marker per facility,
// a hover tooltip and a detail modal for each.
package facility

import (
	"fmt"

	"energy_prospectus/pkg/core/format"
	"energy_prospectus/pkg/core/geomap"
	"energy_prospectus/pkg/models"
)

// IconSize is the marker badge diameter in pixels.
const IconSize = 40

// FallbackGlyph marks a facility of unknown type.
const FallbackGlyph = "📍"

var glyphs = map[models.FacilityType]string{
	models.Refinery:    "🏭",
	models.Terminal:    "⚓",
	models.Storage:     "🛢️",
	models.Maintenance: "🛠️",
	models.Education:   "🎓",
}

var colors = map[models.FacilityType]string{
	models.Refinery:    format.Primary,
	models.Terminal:    format.Secondary,
	models.Storage:     format.Warning,
	models.Maintenance: format.Accent,
	models.Education:   format.Success,
}

// Icon returns the badge for a facility type. Unknown types get the pin
// glyph on the primary colour.
func Icon(t models.FacilityType) geomap.Icon {
	icon := geomap.Icon{Glyph: FallbackGlyph, Color: format.Primary, Size: IconSize}
	if g, ok := glyphs[t]; ok {
		icon.Glyph = g
	}
	if c, ok := colors[t]; ok {
		icon.Color = c
	}
	return icon
}

// Catalog is the read-only facility list with lookups.
type Catalog struct {
	all  []models.Facility
	byID map[string]int
}

// NewCatalog indexes facilities by id, keeping order.
func NewCatalog(facilities []models.Facility) (*Catalog, error) {
	c := &Catalog{all: facilities, byID: make(map[string]int, len(facilities))}
	for i, f := range facilities {
		if _, dup := c.byID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate facility id %q", f.ID)
		}
		c.byID[f.ID] = i
	}
	return c, nil
}

// All returns every facility in order.
func (c *Catalog) All() []models.Facility {
	return c.all
}

// ByID looks up a facility. The second result is false for an unknown id.
func (c *Catalog) ByID(id string) (models.Facility, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Facility{}, false
	}
	return c.all[i], true
}

// ByType returns the facilities of type t in catalog order; empty for an
// unknown type.
func (c *Catalog) ByType(t models.FacilityType) []models.Facility {
	out := []models.Facility{}
	for _, f := range c.all {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}

// Position returns the facility coordinates as a map position.
func Position(f models.Facility) geomap.LatLng {
	return geomap.LatLng{Lat: f.Coordinates.Latitude, Lng: f.Coordinates.Longitude}
}
