package roadmap

import (
	"fmt"

	"go.uber.org/zap"

	"energy_prospectus/pkg/core/chart"
	"energy_prospectus/pkg/core/view"
	"energy_prospectus/pkg/models"
)

// Host element ids. Either may be missing; the other still mounts.
const (
	ChartAnchor     = "roadmapChart"
	ContainerAnchor = "roadmapContainer"
)

// Widget is the mounted roadmap: the stacked bar chart, the interactive
// timeline, or both.
type Widget struct {
	logger *zap.Logger
	doc    *view.Document
	phases []models.Phase

	chart    *chart.BarChart // nil without #roadmapChart
	timeline bool            // false without #roadmapContainer
	slot     *view.Slot
}

// Mount attaches the chart to #roadmapChart and renders the timeline into
// #roadmapContainer. Each missing anchor is logged; when both are missing
// the widget is nil.
func Mount(doc *view.Document, phases []models.Phase, logger *zap.Logger) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Widget{
		logger: logger,
		doc:    doc,
		phases: phases,
		slot:   view.NewSlot(doc, "roadmap-overlay"),
	}

	if _, ok := doc.Anchor(ChartAnchor); ok {
		w.chart = StackedBar(phases)
	} else {
		logger.Error("canvas element not found", zap.String("anchor", ChartAnchor))
	}

	if container, ok := doc.Anchor(ContainerAnchor); ok {
		doc.Replace(container, TimelineView(phases))
		w.timeline = true
	} else {
		logger.Error("container not found", zap.String("anchor", ContainerAnchor))
	}

	if w.chart == nil && !w.timeline {
		return nil
	}
	return w
}

// Chart returns the stacked bar chart, or nil when it was not mounted.
func (w *Widget) Chart() *chart.BarChart {
	return w.chart
}

// HasTimeline reports whether the timeline was rendered.
func (w *Widget) HasTimeline() bool {
	return w.timeline
}

func (w *Widget) phase(i int) (models.Phase, bool) {
	if !w.timeline || i < 0 || i >= len(w.phases) {
		return models.Phase{}, false
	}
	return w.phases[i], true
}

// Hover shows the tooltip of bar i, replacing whatever overlay is open.
// Out-of-range indices are ignored.
func (w *Widget) Hover(i int) bool {
	p, ok := w.phase(i)
	if !ok {
		return false
	}
	w.slot.Open(view.KindTooltip, Tooltip(p).WithAttr("data-phase-index", fmt.Sprint(i)))
	return true
}

// Leave removes the hover tooltip. An open modal is kept.
func (w *Widget) Leave() bool {
	return w.slot.CloseKind(view.KindTooltip)
}

// Click opens the detail modal of bar i.
func (w *Widget) Click(i int) bool {
	p, ok := w.phase(i)
	if !ok {
		w.logger.Debug("click on unknown phase", zap.Int("index", i))
		return false
	}
	w.slot.Open(view.KindModal, Modal(p))
	return true
}

// Close dismisses the modal via its close button.
func (w *Widget) Close() bool {
	return w.slot.CloseKind(view.KindModal)
}

// Backdrop handles a click on the modal backdrop; clicks inside the content
// are ignored.
func (w *Widget) Backdrop(inside bool) bool {
	if inside {
		return false
	}
	return w.slot.CloseKind(view.KindModal)
}

// Overlay returns the kind of the open overlay ("" when none).
func (w *Widget) Overlay() string {
	return w.slot.Kind()
}

// Payload is the JSON embedded in the page for the roadmap script.
type Payload struct {
	Chart    map[string]interface{} `json:"chart,omitempty"`
	Cells    [][]ChartTooltip       `json:"cells,omitempty"` // [year-1][phase], active cells only
	Tooltips []string               `json:"tooltips,omitempty"`
	Modals   []string               `json:"modals,omitempty"`
}

// Payload pre-computes the chart configuration, the chart tooltip of every
// active cell and the tooltip and modal markup of every bar.
func (w *Widget) Payload() (Payload, error) {
	var p Payload
	if w.chart != nil {
		p.Chart = chart.ChartJS{}.BarConfig(w.chart)
		p.Cells = make([][]ChartTooltip, Years)
		for y, row := range YearMajor(w.phases) {
			p.Cells[y] = make([]ChartTooltip, len(row))
			for i, active := range row {
				if active {
					p.Cells[y][i] = ChartTooltipFor(w.phases[i], y+1)
				}
			}
		}
	}
	if w.timeline {
		for _, ph := range w.phases {
			tip, err := view.Render(Tooltip(ph))
			if err != nil {
				return Payload{}, fmt.Errorf("phase %s: %w", ph.Name, err)
			}
			modal, err := view.Render(Modal(ph))
			if err != nil {
				return Payload{}, fmt.Errorf("phase %s: %w", ph.Name, err)
			}
			p.Tooltips = append(p.Tooltips, tip)
			p.Modals = append(p.Modals, modal)
		}
	}
	return p, nil
}
