package scenario

import (
	"energy_prospectus/pkg/core/chart"
	"energy_prospectus/pkg/core/format"
	"energy_prospectus/pkg/core/view"
	"energy_prospectus/pkg/models"

	"go.uber.org/zap"
)

// Host element ids.
const (
	ChartAnchor   = "financialChart"
	SelectAnchor  = "scenarioSelect"
	RevenueSlot   = "totalRevenue"
	CostsSlot     = "totalCosts"
	NetProfitSlot = "netProfit"
	ROISlot       = "roi"
)

const (
	ChartTitle = "Financial Projections"
	YAxisTitle = "CAD ($ Millions)"
)

// NewChart builds the line chart for s with the fixed series styling.
func NewChart(s *models.Scenario) *chart.LineChart {
	data := Series(s)
	return &chart.LineChart{
		Title:       ChartTitle,
		Labels:      s.Years,
		YAxisTitle:  YAxisTitle,
		Unit:        chart.Unit{Prefix: "$", Suffix: "M"},
		ValueFormat: format.Millions,
		Series: []chart.Series{
			{Label: "Revenue", Data: data[0], Color: format.Primary, Fill: "rgba(26, 71, 42, 0.05)", Width: 3, PointRadius: 5},
			{Label: "Operating Costs", Data: data[1], Color: format.Warning, Fill: "rgba(243, 156, 18, 0.05)", Width: 2, PointRadius: 4},
			{Label: "Gross Profit", Data: data[2], Color: format.Success, Fill: "rgba(39, 174, 96, 0.08)", Width: 2, PointRadius: 4},
			{Label: "Cumulative Debt", Data: data[3], Color: format.Danger, Width: 2, PointRadius: 4, Dashed: true},
		},
	}
}

// Widget is the mounted financial chart. It is created by Mount and owned by
// the page that mounted it.
type Widget struct {
	logger  *zap.Logger
	doc     *view.Document
	table   *Table
	chart   *chart.LineChart
	current Key
}

// Mount attaches the chart to the #financialChart canvas and shows the
// initial scenario. A missing canvas is logged and yields a nil widget; the
// rest of the page is unaffected. Missing metric slots are skipped.
func Mount(doc *view.Document, table *Table, initial Key, logger *zap.Logger) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, ok := doc.Anchor(ChartAnchor); !ok {
		logger.Error("canvas element not found", zap.String("anchor", ChartAnchor))
		return nil
	}

	s, ok := table.Lookup(initial)
	if !ok {
		logger.Warn("initial scenario not found, using first",
			zap.Stringer("scenario", initial))
		keys := table.Keys()
		if len(keys) == 0 {
			logger.Error("no scenarios to chart")
			return nil
		}
		initial = keys[0]
		s, _ = table.Lookup(initial)
	}

	w := &Widget{
		logger: logger,
		doc:    doc,
		table:  table,
		chart:  NewChart(s),
	}
	w.fillSelect(initial)
	w.current = initial
	w.writeMetrics(initial)
	return w
}

// fillSelect adds one <option> per scenario to an empty #scenarioSelect and
// marks the initial one as selected.
func (w *Widget) fillSelect(initial Key) {
	sel, ok := w.doc.Anchor(SelectAnchor)
	if !ok {
		w.logger.Warn("scenario selector not found", zap.String("anchor", SelectAnchor))
		return
	}
	if sel.Find("option").Length() == 0 {
		for _, k := range w.table.SortedKeys() {
			s, _ := w.table.Lookup(k)
			opt := view.TextEl("option", "", s.Name).WithAttr("value", k.String())
			w.doc.AppendTo(sel, opt)
		}
	}
	w.markSelected(initial)
}

func (w *Widget) markSelected(k Key) {
	sel, ok := w.doc.Anchor(SelectAnchor)
	if !ok {
		return
	}
	sel.Find("option").RemoveAttr("selected")
	sel.Find(`option[value="`+k.String()+`"]`).SetAttr("selected", "selected")
}

// Select switches to scenario k: the chart data is replaced in place and the
// metric slots are rewritten. An unknown key changes nothing and returns false.
func (w *Widget) Select(k Key) bool {
	s, ok := w.table.Lookup(k)
	if !ok {
		w.logger.Debug("ignoring unknown scenario", zap.Stringer("scenario", k))
		return false
	}
	if err := w.chart.Replace(Series(s)); err != nil {
		w.logger.Error("failed to update chart", zap.Stringer("scenario", k), zap.Error(err))
		return false
	}
	w.current = k
	w.markSelected(k)
	w.writeMetrics(k)
	return true
}

// SelectValue is Select for a raw selector value.
func (w *Widget) SelectValue(v string) bool {
	k, ok := w.table.ParseKey(v)
	if !ok {
		w.logger.Debug("ignoring unknown scenario value", zap.String("value", v))
		return false
	}
	return w.Select(k)
}

// writeMetrics fills whichever metric slots exist.
func (w *Widget) writeMetrics(k Key) {
	m, _ := w.table.Metrics(k)
	v := NewMetricsView(m)

	w.doc.SetText(RevenueSlot, v.TotalRevenue)
	w.doc.SetText(CostsSlot, v.TotalCosts)
	if w.doc.SetText(NetProfitSlot, v.NetProfit) {
		w.doc.SetStyle(NetProfitSlot, "color", v.NetProfitColor)
	}
	if w.doc.SetText(ROISlot, v.ROI) {
		w.doc.SetStyle(ROISlot, "color", v.ROIColor)
	}
}

// Chart returns the chart handle.
func (w *Widget) Chart() *chart.LineChart {
	return w.chart
}

// Current returns the selected scenario.
func (w *Widget) Current() Key {
	return w.current
}

// Payload is the JSON embedded in the page for the selector script.
type Payload struct {
	Initial Key                    `json:"initial"`
	Chart   map[string]interface{} `json:"chart"`
	Views   []View                 `json:"views"`
}

// Payload returns the chart configuration for the current scenario together
// with the pre-computed views of every scenario.
func (w *Widget) Payload() Payload {
	return Payload{
		Initial: w.current,
		Chart:   chart.ChartJS{}.LineConfig(w.chart),
		Views:   w.table.Views(),
	}
}
