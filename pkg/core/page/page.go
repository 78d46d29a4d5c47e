// Package page composes the prospectus page: it parses the host template,
// mounts the scenario chart, the facility map and the roadmap into it, and
// embeds the pre-computed views the browser script needs.
package page

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"energy_prospectus/pkg/core/chart"
	"energy_prospectus/pkg/core/config"
	"energy_prospectus/pkg/core/dataset"
	"energy_prospectus/pkg/core/facility"
	"energy_prospectus/pkg/core/geomap"
	"energy_prospectus/pkg/core/roadmap"
	"energy_prospectus/pkg/core/scenario"
	"energy_prospectus/pkg/core/view"
)

//go:embed index.html assets/*
var files embed.FS

// Embedded JSON payload ids.
const (
	FinancialData = "financialData"
	MapData       = "mapData"
	RoadmapData   = "roadmapData"
)

// RoadmapChartFile is the fallback image of the roadmap chart.
const RoadmapChartFile = "charts/roadmap.svg"

// FinancialChartFile names the fallback image of one scenario.
func FinancialChartFile(k scenario.Key) string {
	return fmt.Sprintf("charts/financial-%d.svg", k)
}

// Site is a fully built page with its static files, keyed by relative path.
type Site struct {
	Index  []byte
	Assets map[string][]byte
	Charts map[string][]byte

	// Mounted reports which widgets mounted ("scenario", "facility", "roadmap").
	Mounted map[string]bool
}

// Files returns every file of the site keyed by relative path.
func (s *Site) Files() map[string][]byte {
	out := make(map[string][]byte, len(s.Assets)+len(s.Charts)+1)
	out["index.html"] = s.Index
	for k, v := range s.Assets {
		out[k] = v
	}
	for k, v := range s.Charts {
		out[k] = v
	}
	return out
}

// Template returns the embedded host page.
func Template() ([]byte, error) {
	return files.ReadFile("index.html")
}

// Build renders the site from the stock template.
func Build(cfg config.Config, reg *dataset.Registry, logger *zap.Logger) (*Site, error) {
	tmpl, err := Template()
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return BuildFrom(tmpl, cfg, reg, logger)
}

// BuildFrom renders the site into a custom host page. Widgets whose anchors
// are missing from the page are skipped (and logged); the others still mount.
func BuildFrom(tmpl []byte, cfg config.Config, reg *dataset.Registry, logger *zap.Logger) (*Site, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	doc, err := view.Parse(bytes.NewReader(tmpl))
	if err != nil {
		return nil, err
	}

	site := &Site{
		Assets:  make(map[string][]byte),
		Charts:  make(map[string][]byte),
		Mounted: make(map[string]bool),
	}

	// 1. Title
	if cfg.Site.Title != "" {
		doc.Find("title").SetText(cfg.Site.Title)
		doc.SetText("siteTitle", cfg.Site.Title)
	}

	table, err := scenario.NewTable(reg.Scenarios())
	if err != nil {
		return nil, err
	}

	// 2. Widgets, each independent of the others
	if err := mountScenario(doc, site, table, scenario.Key(cfg.Site.DefaultScenario), logger.Named("scenario")); err != nil {
		return nil, err
	}
	if err := mountFacility(doc, site, reg, settingsFrom(cfg.Map), logger.Named("facility")); err != nil {
		return nil, err
	}
	if err := mountRoadmap(doc, site, reg, logger.Named("roadmap")); err != nil {
		return nil, err
	}

	// 3. Fallback chart images
	charts, err := RenderCharts(table, reg, chart.DefaultSVG())
	if err != nil {
		return nil, err
	}
	site.Charts = charts

	// 4. Static assets
	if err := fs.WalkDir(files, "assets", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := files.ReadFile(path)
		if err != nil {
			return err
		}
		site.Assets[path] = data
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to read assets: %w", err)
	}

	out, err := doc.HTML()
	if err != nil {
		return nil, err
	}
	site.Index = []byte(out)
	logger.Info("site built",
		zap.Bool("scenario", site.Mounted["scenario"]),
		zap.Bool("facility", site.Mounted["facility"]),
		zap.Bool("roadmap", site.Mounted["roadmap"]),
		zap.Int("charts", len(site.Charts)))
	return site, nil
}

func settingsFrom(m config.MapConfig) facility.Settings {
	return facility.Settings{
		Center:      geomap.LatLng{Lat: m.Center[0], Lng: m.Center[1]},
		Zoom:        m.Zoom,
		TileURL:     m.TileURL,
		Attribution: m.Attribution,
		MaxZoom:     m.MaxZoom,
		FitPadding:  m.FitPadding,
		FocusZoom:   m.FocusZoom,
		Highlight:   m.Highlight,
	}
}

// embedJSON appends <script type="application/json" id="..."> to <body>.
// encoding/json escapes <, > and &, so the payload cannot close the tag.
func embedJSON(doc *view.Document, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", id, err)
	}
	doc.AppendBody(view.Node{
		Tag:      "script",
		ID:       id,
		Attrs:    map[string]string{"type": "application/json"},
		Children: []view.Node{view.Text(string(data))},
	})
	return nil
}

func fallbackImage(doc *view.Document, anchor, src, alt string) {
	if sel, ok := doc.Anchor(anchor); ok {
		doc.After(sel, view.El("img", "chart-fallback").WithAttr("src", src).WithAttr("alt", alt))
	}
}

func mountScenario(doc *view.Document, site *Site, table *scenario.Table, initial scenario.Key, logger *zap.Logger) error {
	w := scenario.Mount(doc, table, initial, logger)
	if w == nil {
		return nil
	}
	site.Mounted["scenario"] = true
	fallbackImage(doc, scenario.ChartAnchor, FinancialChartFile(w.Current()), scenario.ChartTitle)
	return embedJSON(doc, FinancialData, w.Payload())
}

func mountFacility(doc *view.Document, site *Site, reg *dataset.Registry, settings facility.Settings, logger *zap.Logger) error {
	catalog, err := facility.NewCatalog(reg.Facilities())
	if err != nil {
		return err
	}
	w := facility.Mount(doc, catalog, settings, logger)
	if w == nil {
		return nil
	}
	site.Mounted["facility"] = true
	p, err := w.Payload(geomap.Leaflet{})
	if err != nil {
		return err
	}
	return embedJSON(doc, MapData, p)
}

func mountRoadmap(doc *view.Document, site *Site, reg *dataset.Registry, logger *zap.Logger) error {
	w := roadmap.Mount(doc, reg.Phases(), logger)
	if w == nil {
		return nil
	}
	site.Mounted["roadmap"] = true
	if w.Chart() != nil {
		fallbackImage(doc, roadmap.ChartAnchor, RoadmapChartFile, roadmap.ChartTitle)
	}
	p, err := w.Payload()
	if err != nil {
		return err
	}
	return embedJSON(doc, RoadmapData, p)
}

// RenderCharts draws one SVG per scenario plus the roadmap chart. Charts are
// independent, so they render concurrently.
func RenderCharts(table *scenario.Table, reg *dataset.Registry, r chart.Renderer) (map[string][]byte, error) {
	var (
		mu  sync.Mutex
		out = make(map[string][]byte)
		g   errgroup.Group
	)
	store := func(name string, data []byte) {
		mu.Lock()
		out[name] = data
		mu.Unlock()
	}

	for _, k := range table.Keys() {
		s, _ := table.Lookup(k)
		name := FinancialChartFile(k)
		g.Go(func() error {
			var buf bytes.Buffer
			if err := r.RenderLine(&buf, scenario.NewChart(s)); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			store(name, buf.Bytes())
			return nil
		})
	}
	if len(reg.Phases()) > 0 {
		g.Go(func() error {
			var buf bytes.Buffer
			if err := r.RenderBar(&buf, roadmap.StackedBar(reg.Phases())); err != nil {
				return fmt.Errorf("%s: %w", RoadmapChartFile, err)
			}
			store(RoadmapChartFile, buf.Bytes())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
