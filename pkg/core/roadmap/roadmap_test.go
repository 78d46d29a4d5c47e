package roadmap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"energy_prospectus/pkg/core/dataset"
	"energy_prospectus/pkg/core/format"
	"energy_prospectus/pkg/core/view"
	"energy_prospectus/pkg/models"
)

func stockPhases(t *testing.T) []models.Phase {
	t.Helper()
	reg, err := dataset.Default()
	if err != nil {
		t.Fatal(err)
	}
	return reg.Phases()
}

var (
	debtRepayment = models.Phase{Name: "Debt Repayment", StartYear: 1, EndYear: 10, Cost: 1_000_000_000, Description: "Allocate 100% of gross profits to debt service"}
	pipeline      = models.Phase{Name: "Pipeline Completion", StartYear: 6, EndYear: 9, Cost: 350_000_000, RevenueImpact: 75_000_000, Description: "Complete pipeline infrastructure for product distribution"}
	cogeneration  = models.Phase{Name: "Cogeneration", StartYear: 10, EndYear: 12, Cost: 100_000_000, RevenueImpact: 50_000_000, Description: "Add cogeneration units to support the grid"}
)

// =============================================================================
// ACTIVE-YEAR MATRIX
// =============================================================================

func TestActive_Inclusive(t *testing.T) {
	for y := 1; y <= Years; y++ {
		want := y <= 10
		if got := Active(debtRepayment, y); got != want {
			t.Errorf("Debt Repayment year %d: got %v, want %v", y, got, want)
		}
	}
	single := models.Phase{StartYear: 7, EndYear: 7}
	if !Active(single, 7) || Active(single, 6) || Active(single, 8) {
		t.Error("a one-year phase is active only in its year")
	}
}

func TestMatrix(t *testing.T) {
	phases := []models.Phase{debtRepayment, pipeline}
	m := Matrix(phases)
	if len(m) != 2 || len(m[0]) != Years {
		t.Fatalf("unexpected shape %dx%d", len(m), len(m[0]))
	}

	var active []int
	for y, on := range m[1] {
		if on {
			active = append(active, y+1)
		}
	}
	if diff := cmp.Diff([]int{6, 7, 8, 9}, active); diff != "" {
		t.Errorf("pipeline years mismatch (-want +got):\n%s", diff)
	}

	ym := YearMajor(phases)
	for i := range phases {
		for y := 0; y < Years; y++ {
			if ym[y][i] != m[i][y] {
				t.Fatalf("YearMajor is not the transpose of Matrix at phase %d year %d", i, y+1)
			}
		}
	}

	if diff := cmp.Diff([]int{0, 1}, ActiveIn(phases, 8)); diff != "" {
		t.Errorf("ActiveIn(8) mismatch (-want +got):\n%s", diff)
	}
}

func TestStackedBar(t *testing.T) {
	phases := stockPhases(t)
	c := StackedBar(phases)

	if len(c.Datasets) != Years || len(c.Labels) != 8 {
		t.Fatalf("expected 20 datasets over 8 phases, got %d over %d", len(c.Datasets), len(c.Labels))
	}
	if !c.Horizontal || !c.Stacked || c.ValueMax != 20 {
		t.Errorf("unexpected chart options %+v", c)
	}

	year1 := c.Datasets[0]
	if year1.Label != "Year 1" || year1.Color != "#d4f1de" || year1.BorderColor != format.Primary {
		t.Errorf("unexpected first dataset %+v", year1)
	}
	// Debt Repayment and Strategic Storage start in year 1.
	if diff := cmp.Diff([]float64{1, 0, 0, 1, 0, 0, 0, 0}, year1.Data); diff != "" {
		t.Errorf("year 1 data mismatch (-want +got):\n%s", diff)
	}

	// The palette has 18 colours and wraps.
	if c.Datasets[18].Color != Palette[0] || c.Datasets[19].Color != Palette[1] {
		t.Error("years 19 and 20 should reuse the first palette colours")
	}
}

// =============================================================================
// TIMELINE GEOMETRY
// =============================================================================

func TestBar(t *testing.T) {
	tests := []struct {
		phase       models.Phase
		left, width string
	}{
		{debtRepayment, "0%", "50%"},
		{pipeline, "25%", "20%"},
		{cogeneration, "45%", "15%"},
		{models.Phase{StartYear: 20, EndYear: 20}, "95%", "5%"},
		{models.Phase{StartYear: 1, EndYear: 20}, "0%", "100%"},
	}
	for _, tt := range tests {
		g := Bar(tt.phase)
		if g.Left() != tt.left || g.Width() != tt.width {
			t.Errorf("Bar(%d-%d) = %s/%s, want %s/%s", tt.phase.StartYear, tt.phase.EndYear, g.Left(), g.Width(), tt.left, tt.width)
		}
		if g.LeftPct+g.WidthPct > 100 {
			t.Errorf("bar %d-%d overflows the track", tt.phase.StartYear, tt.phase.EndYear)
		}
	}
}

// =============================================================================
// CONTENT
// =============================================================================

func TestTooltipContent(t *testing.T) {
	got := Tooltip(pipeline).TextContent()
	for _, want := range []string{
		"Pipeline Completion",
		"Duration: Year 6 - 9",
		"Cost: $350M",
		"Revenue Impact: $75M",
		"Description: Complete pipeline",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("tooltip %q missing %q", got, want)
		}
	}
}

func TestModalContent(t *testing.T) {
	modal := Modal(debtRepayment)
	text := modal.TextContent()
	for _, want := range []string{
		"Timeline:Year 1 - Year 10 (10 years)",
		"Total Cost:$1000M",
		"Revenue Impact:$0M",
		"Net Impact:$-1000M",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("modal %q missing %q", text, want)
		}
	}

	section, ok := modal.FindClass("detail-section")
	if !ok || len(section.Children) != 1 || section.Children[0].Tag != "p" {
		t.Fatalf("description should render as one paragraph: %+v", section)
	}
	if section.TextContent() != debtRepayment.Description {
		t.Errorf("unexpected description %q", section.TextContent())
	}
}

func TestDescription_Markdown(t *testing.T) {
	p := models.Phase{Description: "Build **two** units <script>x</script>"}
	out, err := view.Render(view.El("div", "", Description(p)...))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<strong>two</strong>") || strings.Contains(out, "<script>") {
		t.Errorf("unexpected description markup %s", out)
	}
}

func TestChartTooltipFor(t *testing.T) {
	got := ChartTooltipFor(cogeneration, 11)
	want := ChartTooltip{
		Title: "Cogeneration",
		Label: "Year 11 active",
		After: []string{
			"",
			"Duration: Year 10-12",
			"Cost: $100M",
			"Revenue Impact: $50M",
			"",
			"Description: Add cogeneration units to support the grid",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chart tooltip mismatch (-want +got):\n%s", diff)
	}
}

// =============================================================================
// WIDGET
// =============================================================================

const hostPage = `<!DOCTYPE html><html><head></head><body>
<canvas id="roadmapChart"></canvas>
<div id="roadmapContainer"><p>loading</p></div>
</body></html>`

func mount(t *testing.T, page string, logger *zap.Logger) (*Widget, *view.Document) {
	t.Helper()
	doc, err := view.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	return Mount(doc, stockPhases(t), logger), doc
}

func TestMount_Timeline(t *testing.T) {
	w, doc := mount(t, hostPage, nil)
	if w == nil || w.Chart() == nil || !w.HasTimeline() {
		t.Fatal("expected chart and timeline")
	}
	if doc.Count("#roadmapContainer p") != 0 {
		t.Error("timeline should replace the placeholder content")
	}
	if n := doc.Count(".timeline-row"); n != 8 {
		t.Errorf("expected 8 rows, got %d", n)
	}
	if n := doc.Count(".year-label"); n != Years {
		t.Errorf("expected %d year labels, got %d", Years, n)
	}

	bar := doc.Find(`.timeline-row[data-phase="Pipeline Completion"] .timeline-bar`)
	if got := bar.AttrOr("style", ""); got != "left: 25%; width: 20%;" {
		t.Errorf("unexpected bar style %q", got)
	}
}

func TestMount_MissingAnchors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	w, _ := mount(t, `<html><body><div id="roadmapContainer"></div></body></html>`, logger)
	if w == nil || w.Chart() != nil || !w.HasTimeline() {
		t.Fatal("timeline should mount without the chart canvas")
	}
	if logs.FilterField(zap.String("anchor", ChartAnchor)).Len() != 1 {
		t.Error("missing canvas should be logged")
	}

	w, _ = mount(t, `<html><body></body></html>`, logger)
	if w != nil {
		t.Error("no anchors at all should give a nil widget")
	}
	if logs.FilterField(zap.String("anchor", ContainerAnchor)).Len() != 1 {
		t.Error("missing container should be logged")
	}
}

func TestWidget_SingleOverlay(t *testing.T) {
	w, doc := mount(t, hostPage, zap.NewNop())
	overlay := ".roadmap-overlay"

	for i := 0; i < 8; i++ {
		if !w.Hover(i) {
			t.Fatalf("Hover(%d) failed", i)
		}
		if n := doc.Count(overlay); n != 1 {
			t.Fatalf("after hovering bar %d: %d overlays", i, n)
		}
	}
	if got := doc.Find(".phase-tooltip .tooltip-title").Text(); got != "Export Infrastructure" {
		t.Errorf("expected the last hovered phase, got %q", got)
	}

	if w.Hover(8) || w.Hover(-1) || w.Click(99) {
		t.Error("out-of-range indices must be ignored")
	}
	if doc.Count(overlay) != 1 {
		t.Error("ignored events must not change the overlay")
	}

	if !w.Leave() || doc.Count(overlay) != 0 {
		t.Error("Leave should remove the tooltip")
	}

	w.Hover(1)
	w.Click(2)
	if w.Overlay() != view.KindModal || doc.Count(overlay) != 1 || doc.Count(".phase-tooltip") != 0 {
		t.Error("the modal should replace the tooltip")
	}
	if got := doc.Find(".phase-modal h2").Text(); got != "Cogeneration" {
		t.Errorf("unexpected modal title %q", got)
	}
	if w.Leave() {
		t.Error("Leave must keep the modal")
	}

	w.Click(0)
	if doc.Count(".phase-modal") != 1 {
		t.Error("a second click must not stack modals")
	}
	if w.Backdrop(true) || !w.Backdrop(false) || doc.Count(overlay) != 0 {
		t.Error("only a backdrop click outside the content should close the modal")
	}
	if w.Close() {
		t.Error("nothing left to close")
	}
}

func TestWidget_Payload(t *testing.T) {
	w, _ := mount(t, hostPage, nil)
	p, err := w.Payload()
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Tooltips) != 8 || len(p.Modals) != 8 || len(p.Cells) != Years {
		t.Fatalf("unexpected payload sizes %d/%d/%d", len(p.Tooltips), len(p.Modals), len(p.Cells))
	}
	if p.Cells[0][0].Label != "Year 1 active" || p.Cells[10][0].Title != "" {
		t.Error("only active cells carry a tooltip")
	}
	if p.Chart["type"] != "bar" {
		t.Errorf("expected a bar config, got %v", p.Chart["type"])
	}
}
