package roadmap

import (
	"fmt"

	"energy_prospectus/pkg/core/format"
	"energy_prospectus/pkg/core/utils"
	"energy_prospectus/pkg/core/view"
	"energy_prospectus/pkg/models"
)

// Overlay classes.
const (
	TooltipClass = "phase-tooltip"
	ModalClass   = "phase-modal"
)

func labelled(label, value string) view.Node {
	return view.El("p", "",
		view.TextEl("strong", "", label),
		view.Text(" "+value),
	)
}

// Tooltip is the hover card of a timeline bar.
func Tooltip(p models.Phase) view.Node {
	return view.El("div", TooltipClass,
		view.TextEl("div", "tooltip-title", p.Name),
		view.El("div", "tooltip-content",
			labelled("Duration:", fmt.Sprintf("Year %d - %d", p.StartYear, p.EndYear)),
			labelled("Cost:", format.Currency(p.Cost)),
			labelled("Revenue Impact:", format.Currency(p.RevenueImpact)),
			labelled("Description:", p.Description),
		),
	)
}

// Timeline is the modal text "Year s - Year e (n years)".
func Timeline(p models.Phase) string {
	return fmt.Sprintf("Year %d - Year %d (%d years)", p.StartYear, p.EndYear, Duration(p))
}

// Description renders the phase description as markdown. Plain text comes
// back as a single paragraph; on a render failure the raw text is used.
func Description(p models.Phase) []view.Node {
	html, err := utils.Markdown(p.Description)
	if err == nil {
		if nodes, err := view.FromHTML(html); err == nil && len(nodes) > 0 {
			return nodes
		}
	}
	return []view.Node{view.TextEl("p", "", p.Description)}
}

// Modal is the detail view opened by a click on a timeline bar.
func Modal(p models.Phase) view.Node {
	return view.El("div", ModalClass,
		view.El("div", "modal-content",
			view.TextEl("button", "modal-close", "×").WithAttr("type", "button").WithAttr("aria-label", "Close"),
			view.TextEl("h2", "", p.Name),
			view.El("div", "modal-details",
				view.Field("Timeline:", Timeline(p)),
				view.Field("Total Cost:", format.Currency(p.Cost)),
				view.Field("Revenue Impact:", format.Currency(p.RevenueImpact)),
				view.Field("Net Impact:", format.Currency(NetImpact(p))),
				view.El("div", "detail-section", Description(p)...),
			),
		),
	).WithAttr("data-phase", p.Name)
}

// ChartTooltip is the tooltip shown when hovering one cell of the stacked
// bar chart.
type ChartTooltip struct {
	Title string   `json:"title"`
	Label string   `json:"label"`
	After []string `json:"afterLabel"`
}

// ChartTooltipFor builds the tooltip of phase p for the dataset of year.
func ChartTooltipFor(p models.Phase, year int) ChartTooltip {
	return ChartTooltip{
		Title: p.Name,
		Label: fmt.Sprintf("Year %d active", year),
		After: Details(p),
	}
}

// Details are the lines under the chart tooltip label.
func Details(p models.Phase) []string {
	return []string{
		"",
		fmt.Sprintf("Duration: Year %d-%d", p.StartYear, p.EndYear),
		"Cost: " + format.Currency(p.Cost),
		"Revenue Impact: " + format.Currency(p.RevenueImpact),
		"",
		"Description: " + p.Description,
	}
}

// TimelineView is the phase-by-year timeline placed in #roadmapContainer.
func TimelineView(phases []models.Phase) view.Node {
	years := view.El("div", "timeline-years")
	for y := 1; y <= Years; y++ {
		years.Children = append(years.Children, view.TextEl("div", "year-label", fmt.Sprintf("Year %d", y)))
	}

	rows := view.El("div", "timeline-rows")
	for i, p := range phases {
		g := Bar(p)
		bar := view.El("div", "timeline-bar").
			WithStyle("left", g.Left()).
			WithStyle("width", g.Width()).
			WithAttr("data-phase-index", fmt.Sprint(i)).
			WithAttr("title", "Click for details")

		rows.Children = append(rows.Children, view.El("div", "timeline-row",
			view.TextEl("div", "timeline-phase-name", p.Name),
			view.El("div", "timeline-bars",
				view.El("div", "timeline-bar-container", bar),
			),
		).WithAttr("data-phase", p.Name))
	}

	return view.El("div", "timeline-container",
		view.El("div", "timeline-header",
			view.El("div", "timeline-phase-names", view.TextEl("div", "phase-label", "Phases")),
			years,
		),
		rows,
	)
}
