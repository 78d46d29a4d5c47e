package geomap

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"energy_prospectus/pkg/core/view"
)

func TestBounds_Extend(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("new bounds should be empty")
	}
	b = b.Extend(LatLng{47.25, -52.7333}).
		Extend(LatLng{47.56, -52.73}).
		Extend(LatLng{47.19, -52.92})

	if b.SouthWest != (LatLng{47.19, -52.92}) {
		t.Errorf("unexpected south-west %+v", b.SouthWest)
	}
	if b.NorthEast != (LatLng{47.56, -52.73}) {
		t.Errorf("unexpected north-east %+v", b.NorthEast)
	}
	if b.IsEmpty() {
		t.Error("extended bounds should not be empty")
	}
}

func TestLatLng_Valid(t *testing.T) {
	if !(LatLng{47.25, -52.75}).Valid() {
		t.Error("Newfoundland should be valid")
	}
	if (LatLng{91, 0}).Valid() || (LatLng{0, 181}).Valid() {
		t.Error("out of range coordinates should be invalid")
	}
}

func TestView_MarkersAndFit(t *testing.T) {
	v := NewView(LatLng{47.25, -52.75}, 9, Options{ZoomControl: true})
	if v.FitBounds(50) {
		t.Error("FitBounds without markers should be a no-op")
	}

	if err := v.AddMarker(Marker{ID: "come-by-chance", Position: LatLng{47.25, -52.7333}}); err != nil {
		t.Fatal(err)
	}
	if err := v.AddMarker(Marker{ID: "whiffen-head", Position: LatLng{47.32, -52.84}}); err != nil {
		t.Fatal(err)
	}
	if err := v.AddMarker(Marker{ID: "whiffen-head"}); err == nil {
		t.Error("duplicate id should be rejected")
	}

	if !v.FitBounds(50) || v.Fit.Padding != 50 {
		t.Fatalf("expected a fit with padding 50, got %+v", v.Fit)
	}
	want := Bounds{SouthWest: LatLng{47.25, -52.84}, NorthEast: LatLng{47.32, -52.7333}}
	if v.Fit.Bounds != want {
		t.Errorf("fit bounds = %+v, want %+v", v.Fit.Bounds, want)
	}

	v.SetView(LatLng{47.32, -52.84}, 12)
	if v.Fit != nil || v.Zoom != 12 {
		t.Error("SetView should replace the fit")
	}

	if _, ok := v.Marker("missing"); ok {
		t.Error("unknown marker should be absent")
	}
}

func TestLeaflet_RenderMap(t *testing.T) {
	v := NewView(LatLng{47.25, -52.75}, 9, Options{})
	v.AddTileLayer(TileLayer{URL: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", MaxZoom: 19})
	_ = v.AddMarker(Marker{
		ID:       "come-by-chance",
		Position: LatLng{47.25, -52.7333},
		Tooltip:  view.El("div", "", view.Text("Come By Chance <Refinery>")),
	})

	var buf bytes.Buffer
	if err := (Leaflet{}).RenderMap(&buf, v); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Zoom    int `json:"zoom"`
		Markers []struct {
			ID          string `json:"id"`
			TooltipHTML string `json:"tooltipHTML"`
		} `json:"markers"`
		Layers []TileLayer `json:"layers"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Zoom != 9 || len(doc.Layers) != 1 || len(doc.Markers) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if !strings.Contains(doc.Markers[0].TooltipHTML, "&lt;Refinery&gt;") {
		t.Errorf("tooltip should be escaped HTML, got %s", doc.Markers[0].TooltipHTML)
	}
}
