// Package roadmap turns the project phases into the activity matrix, the
// stacked bar chart and the timeline bars of the 20-year roadmap.
package roadmap

import (
	"fmt"
	"strconv"

	"energy_prospectus/pkg/core/chart"
	"energy_prospectus/pkg/core/format"
	"energy_prospectus/pkg/models"
)

// Years is the length of the roadmap horizon.
const Years = 20

// ChartTitle is printed above the stacked bar chart.
const ChartTitle = "Newfoundland Energy Project - 20-Year Roadmap"

// Palette colours the year datasets from light to dark green. It is shorter
// than the horizon, so years 19 and 20 reuse the first two colours.
var Palette = []string{
	"#d4f1de", "#c9ead7", "#bfe3d0", "#b4dcc9", "#a8d5ba", "#9dceac", "#92c79e",
	"#87c090", "#7cb982", "#71b274", "#66ab66", "#5ba458", "#509d4a", "#45963c",
	"#3a8f2e", "#2f8820", "#248112", "#1a7a04",
}

// Active reports whether p runs during year (inclusive on both ends).
func Active(p models.Phase, year int) bool {
	return year >= p.StartYear && year <= p.EndYear
}

// Duration is the number of years p runs.
func Duration(p models.Phase) int {
	return p.EndYear - p.StartYear + 1
}

// NetImpact is revenue impact minus cost, in the smallest currency unit.
func NetImpact(p models.Phase) int64 {
	return p.RevenueImpact - p.Cost
}

// Matrix returns m[phase][year-1].
func Matrix(phases []models.Phase) [][]bool {
	m := make([][]bool, len(phases))
	for i, p := range phases {
		row := make([]bool, Years)
		for y := 1; y <= Years; y++ {
			row[y-1] = Active(p, y)
		}
		m[i] = row
	}
	return m
}

// YearMajor returns m[year-1][phase], the layout of the chart datasets.
func YearMajor(phases []models.Phase) [][]bool {
	m := make([][]bool, Years)
	for y := 1; y <= Years; y++ {
		row := make([]bool, len(phases))
		for i, p := range phases {
			row[i] = Active(p, y)
		}
		m[y-1] = row
	}
	return m
}

// ActiveIn returns the indices of the phases running during year.
func ActiveIn(phases []models.Phase, year int) []int {
	var out []int
	for i, p := range phases {
		if Active(p, year) {
			out = append(out, i)
		}
	}
	return out
}

// StackedBar builds the horizontal stacked chart: one dataset per year, one
// bar per phase, each cell 1 when the phase is active that year.
func StackedBar(phases []models.Phase) *chart.BarChart {
	labels := make([]string, len(phases))
	for i, p := range phases {
		labels[i] = p.Name
	}

	datasets := make([]chart.Dataset, 0, Years)
	for y, row := range YearMajor(phases) {
		data := make([]float64, len(row))
		for i, active := range row {
			if active {
				data[i] = 1
			}
		}
		datasets = append(datasets, chart.Dataset{
			Label:       fmt.Sprintf("Year %d", y+1),
			Data:        data,
			Color:       Palette[y%len(Palette)],
			BorderColor: format.Primary,
			BorderWidth: 1,
		})
	}

	return &chart.BarChart{
		Title:      ChartTitle,
		Labels:     labels,
		Datasets:   datasets,
		Horizontal: true,
		Stacked:    true,
		ValueMax:   Years,
		ValueTitle: "Project Years",
		LabelTitle: "Project Phases",
	}
}

// =============================================================================
// TIMELINE GEOMETRY
// =============================================================================

// Geometry places a bar on the timeline, in percent of the track width.
type Geometry struct {
	LeftPct  float64 `json:"left"`
	WidthPct float64 `json:"width"`
}

// Bar computes left = (start-1)/20 and width = (end-start+1)/20 of the track.
func Bar(p models.Phase) Geometry {
	return Geometry{
		LeftPct:  float64((p.StartYear-1)*100) / Years,
		WidthPct: float64(Duration(p)*100) / Years,
	}
}

// Left is the CSS value of LeftPct ("25%").
func (g Geometry) Left() string {
	return pct(g.LeftPct)
}

// Width is the CSS value of WidthPct ("20%").
func (g Geometry) Width() string {
	return pct(g.WidthPct)
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
