package e2e_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"energy_prospectus/pkg/core/page"
	"energy_prospectus/pkg/core/roadmap"
	"energy_prospectus/pkg/core/scenario"
)

func fetchDoc(t *testing.T, url string) *goquery.Document {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("Failed to parse page: %v", err)
	}
	return doc
}

func payload(t *testing.T, doc *goquery.Document, id string, out interface{}) {
	t.Helper()
	sel := doc.Find("script#" + id)
	if sel.Length() != 1 {
		t.Fatalf("expected one #%s payload, got %d", id, sel.Length())
	}
	if err := json.Unmarshal([]byte(sel.Text()), out); err != nil {
		t.Fatalf("Failed to decode #%s: %v", id, err)
	}
}

func TestE2E_ServedPage(t *testing.T) {
	ts := startSite(t)
	doc := fetchDoc(t, ts.URL+"/")

	// -------------------------------------------------------------------------
	// Financial widget: default 75% scenario pre-rendered
	// -------------------------------------------------------------------------
	metrics := map[string]string{
		"totalRevenue": "$16365M",
		"totalCosts":   "$2293M",
		"netProfit":    "$14072M",
		"roi":          "613.7%",
	}
	for id, want := range metrics {
		if got := doc.Find("#" + id).Text(); got != want {
			t.Errorf("#%s = %q, want %q", id, got, want)
		}
	}
	if got := doc.Find("#scenarioSelect option[selected]").AttrOr("value", ""); got != "75" {
		t.Errorf("selected scenario = %q, want 75", got)
	}

	var fin scenario.Payload
	payload(t, doc, page.FinancialData, &fin)
	if fin.Initial != scenario.DefaultKey {
		t.Errorf("initial scenario = %d, want %d", fin.Initial, scenario.DefaultKey)
	}
	if len(fin.Views) != 3 {
		t.Fatalf("views = %d, want 3", len(fin.Views))
	}
	for _, v := range fin.Views {
		if v.Key == 100 && v.Metrics.ROI != "845.7%" {
			t.Errorf("100%% ROI = %q, want 845.7%%", v.Metrics.ROI)
		}
	}

	// -------------------------------------------------------------------------
	// Map widget: one marker and one modal per facility
	// -------------------------------------------------------------------------
	var mp struct {
		Map struct {
			Markers []struct {
				ID string `json:"id"`
			} `json:"markers"`
		} `json:"map"`
		Modals map[string]string `json:"modals"`
	}
	payload(t, doc, page.MapData, &mp)
	if len(mp.Map.Markers) != 7 || len(mp.Modals) != 7 {
		t.Errorf("markers = %d, modals = %d, want 7 each", len(mp.Map.Markers), len(mp.Modals))
	}

	// -------------------------------------------------------------------------
	// Roadmap widget: timeline rows plus chart tooltips
	// -------------------------------------------------------------------------
	if got := doc.Find("#roadmapContainer .timeline-row").Length(); got != 8 {
		t.Errorf("timeline rows = %d, want 8", got)
	}
	first := doc.Find("#roadmapContainer .timeline-bar").First()
	if style := first.AttrOr("style", ""); style == "" {
		t.Error("timeline bar has no geometry")
	}

	var rm roadmap.Payload
	payload(t, doc, page.RoadmapData, &rm)
	if len(rm.Cells) != roadmap.Years {
		t.Fatalf("chart tooltip rows = %d, want %d", len(rm.Cells), roadmap.Years)
	}
	if got := rm.Cells[0][0]; got.Title != "Debt Repayment" || got.Label != "Year 1 active" {
		t.Errorf("year 1 first cell = %q / %q", got.Title, got.Label)
	}
	if len(rm.Tooltips) != 8 || len(rm.Modals) != 8 {
		t.Errorf("tooltips = %d, modals = %d, want 8 each", len(rm.Tooltips), len(rm.Modals))
	}

	// No overlay is open on first load
	if got := doc.Find("[data-overlay-id]").Length(); got != 0 {
		t.Errorf("open overlays = %d, want 0", got)
	}
}

func TestE2E_FallbackCharts(t *testing.T) {
	ts := startSite(t)
	doc := fetchDoc(t, ts.URL+"/")

	doc.Find("img.chart-fallback").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		resp, err := http.Get(ts.URL + "/" + src)
		if err != nil {
			t.Fatalf("GET %s: %v", src, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status %d", src, resp.StatusCode)
		}
	})
	if got := doc.Find("img.chart-fallback").Length(); got != 2 {
		t.Errorf("fallback images = %d, want 2", got)
	}
}
