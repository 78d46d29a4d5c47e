package page

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"energy_prospectus/pkg/core/chart"
	"energy_prospectus/pkg/core/config"
	"energy_prospectus/pkg/core/dataset"
	"energy_prospectus/pkg/core/scenario"
)

func build(t *testing.T, tmpl []byte, logger *zap.Logger) *Site {
	t.Helper()
	reg, err := dataset.Default()
	if err != nil {
		t.Fatal(err)
	}
	if tmpl == nil {
		tmpl, err = Template()
		if err != nil {
			t.Fatal(err)
		}
	}
	site, err := BuildFrom(tmpl, config.Default(), reg, logger)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return site
}

func parse(t *testing.T, site *Site) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(site.Index))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestBuild_StockPage(t *testing.T) {
	site := build(t, nil, zap.NewNop())
	doc := parse(t, site)

	for _, w := range []string{"scenario", "facility", "roadmap"} {
		if !site.Mounted[w] {
			t.Errorf("%s widget did not mount", w)
		}
	}

	if got := doc.Find("#totalRevenue").Text(); got != "$16365M" {
		t.Errorf("totalRevenue = %q", got)
	}
	if got := doc.Find("#roi").Text(); got != "613.7%" {
		t.Errorf("roi = %q", got)
	}
	if n := doc.Find(".timeline-row").Length(); n != 8 {
		t.Errorf("expected 8 timeline rows, got %d", n)
	}
	for _, id := range []string{FinancialData, MapData, RoadmapData} {
		if doc.Find(`script[type="application/json"]#`+id).Length() != 1 {
			t.Errorf("missing payload %s", id)
		}
	}
	if got := doc.Find("#financialChart + img.chart-fallback").AttrOr("src", ""); got != "charts/financial-75.svg" {
		t.Errorf("unexpected fallback image %q", got)
	}

	if _, ok := site.Assets["assets/site.js"]; !ok {
		t.Error("site.js missing")
	}
	if _, ok := site.Assets["assets/site.css"]; !ok {
		t.Error("site.css missing")
	}
	if len(site.Charts) != 4 {
		t.Errorf("expected 3 scenario charts and the roadmap chart, got %d", len(site.Charts))
	}
	if !bytes.Contains(site.Charts[FinancialChartFile(scenario.Capture50)], []byte("<svg")) {
		t.Error("scenario chart is not an SVG")
	}
	if len(site.Files()) != 1+len(site.Assets)+len(site.Charts) {
		t.Error("Files should list index, assets and charts")
	}
}

func TestBuild_PayloadsDecode(t *testing.T) {
	doc := parse(t, build(t, nil, nil))

	var financial struct {
		Initial int `json:"initial"`
		Views   []struct {
			Key     int `json:"key"`
			Metrics struct {
				ROI string `json:"roi"`
			} `json:"metrics"`
		} `json:"views"`
	}
	if err := json.Unmarshal([]byte(doc.Find("#"+FinancialData).Text()), &financial); err != nil {
		t.Fatalf("financial payload: %v", err)
	}
	if financial.Initial != 75 || len(financial.Views) != 3 || financial.Views[2].Metrics.ROI != "845.7%" {
		t.Errorf("unexpected financial payload %+v", financial)
	}

	var roadmap struct {
		Modals []string `json:"modals"`
	}
	if err := json.Unmarshal([]byte(doc.Find("#"+RoadmapData).Text()), &roadmap); err != nil {
		t.Fatalf("roadmap payload: %v", err)
	}
	if len(roadmap.Modals) != 8 || !strings.Contains(roadmap.Modals[0], "Net Impact:") {
		t.Errorf("unexpected roadmap modals %v", roadmap.Modals)
	}
}

func TestBuild_MissingAnchorSkipsOneWidget(t *testing.T) {
	tmpl, err := Template()
	if err != nil {
		t.Fatal(err)
	}
	tmpl = bytes.Replace(tmpl, []byte(`<div id="infrastructureMap"></div>`), nil, 1)

	core, logs := observer.New(zapcore.ErrorLevel)
	site := build(t, tmpl, zap.New(core))
	doc := parse(t, site)

	if site.Mounted["facility"] {
		t.Error("map should not mount without its container")
	}
	if !site.Mounted["scenario"] || !site.Mounted["roadmap"] {
		t.Error("the other widgets must still mount")
	}
	if doc.Find("#"+MapData).Length() != 0 {
		t.Error("no map payload expected")
	}
	if logs.FilterMessage("map container not found").Len() != 1 {
		t.Errorf("expected one logged error, got %v", logs.All())
	}
}

func TestBuild_MapHighlight(t *testing.T) {
	reg, err := dataset.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Map.Highlight = "memorial-university"
	site, err := Build(cfg, reg, nil)
	if err != nil {
		t.Fatal(err)
	}

	var payload struct {
		Map struct {
			Center struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"center"`
			Zoom      int             `json:"zoom"`
			FocusZoom int             `json:"focusZoom"`
			Highlight string          `json:"highlight"`
			Fit       json.RawMessage `json:"fit"`
		} `json:"map"`
	}
	if err := json.Unmarshal([]byte(parse(t, site).Find("#"+MapData).Text()), &payload); err != nil {
		t.Fatalf("map payload: %v", err)
	}
	m := payload.Map
	if m.Highlight != "memorial-university" || m.Zoom != 12 || m.FocusZoom != 12 {
		t.Errorf("highlight not carried into the map payload: %+v", m)
	}
	if m.Center.Lat != 47.56 || m.Center.Lng != -52.73 || m.Fit != nil {
		t.Errorf("map should centre on the highlighted facility: %+v", m)
	}
}

func TestBuild_Title(t *testing.T) {
	reg, err := dataset.Default()
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Site.Title = "Prospectus <Draft>"
	site, err := Build(cfg, reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, site)
	if doc.Find("title").Text() != cfg.Site.Title || doc.Find("#siteTitle").Text() != cfg.Site.Title {
		t.Error("title not applied")
	}
	if bytes.Contains(site.Index, []byte("<Draft>")) {
		t.Error("title must be escaped")
	}
}

// Run with -race: each call renders every chart concurrently.
func TestRenderCharts_Repeated(t *testing.T) {
	reg, err := dataset.Default()
	if err != nil {
		t.Fatal(err)
	}
	table, err := scenario.NewTable(reg.Scenarios())
	if err != nil {
		t.Fatal(err)
	}

	var first map[string][]byte
	for i := 0; i < 3; i++ {
		charts, err := RenderCharts(table, reg, chart.DefaultSVG())
		if err != nil {
			t.Fatalf("render %d failed: %v", i, err)
		}
		if len(charts) != len(table.Keys())+1 {
			t.Fatalf("render %d produced %d charts", i, len(charts))
		}
		if first == nil {
			first = charts
			continue
		}
		for name, data := range charts {
			if !bytes.Equal(data, first[name]) {
				t.Errorf("render %d: %s differs from the first render", i, name)
			}
		}
	}
}
