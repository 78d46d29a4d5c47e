// Package chart describes the charts of the prospectus as plain data and
// renders them through a Renderer. Nothing outside this package depends on a
// concrete charting library.
package chart

import (
	"fmt"
	"io"
	"strconv"
)

// Unit is the prefix/suffix/precision applied to values: "$" 65 "M".
type Unit struct {
	Prefix   string `json:"prefix"`
	Suffix   string `json:"suffix"`
	Decimals int    `json:"decimals"`
}

// Series is one line of a LineChart.
type Series struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	Color       string    `json:"color"`
	Fill        string    `json:"fill,omitempty"` // background colour when filled
	Width       int       `json:"width"`
	PointRadius int       `json:"pointRadius"`
	Dashed      bool      `json:"dashed,omitempty"`
}

// LineChart is a multi-series time chart. It is owned by one widget; only
// that widget replaces its data.
type LineChart struct {
	Title      string
	Labels     []string
	Series     []Series
	YAxisTitle string

	// Unit describes value formatting for client-side renderers.
	Unit Unit

	// ValueFormat formats axis ticks and tooltip values on the server side.
	ValueFormat func(float64) string

	// Revision increments on every Replace; renderers treat it as "redraw".
	Revision int
}

// Replace swaps the data of every series in place, in series order.
// The chart is left untouched if the shape does not match.
func (c *LineChart) Replace(data [][]float64) error {
	if len(data) != len(c.Series) {
		return fmt.Errorf("expected %d series, got %d", len(c.Series), len(data))
	}
	for i, d := range data {
		if len(d) != len(c.Labels) {
			return fmt.Errorf("series %q: expected %d points, got %d", c.Series[i].Label, len(c.Labels), len(d))
		}
	}
	for i, d := range data {
		c.Series[i].Data = d
	}
	c.Revision++
	return nil
}

// Format applies ValueFormat, falling back to Unit.
func (c *LineChart) Format(v float64) string {
	if c.ValueFormat != nil {
		return c.ValueFormat(v)
	}
	return c.Unit.Prefix + strconv.FormatFloat(v, 'f', c.Unit.Decimals, 64) + c.Unit.Suffix
}

// Dataset is one stacked layer of a BarChart.
type Dataset struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	Color       string    `json:"backgroundColor"`
	BorderColor string    `json:"borderColor"`
	BorderWidth int       `json:"borderWidth"`
}

// BarChart is a (optionally horizontal, stacked) bar chart over categories.
type BarChart struct {
	Title      string
	Labels     []string
	Datasets   []Dataset
	Horizontal bool
	Stacked    bool
	ValueMax   float64
	ValueTitle string
	LabelTitle string
}

// Renderer is the charting capability the widgets need.
type Renderer interface {
	RenderLine(w io.Writer, c *LineChart) error
	RenderBar(w io.Writer, c *BarChart) error
}
