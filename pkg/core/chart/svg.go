package chart

import (
	"fmt"
	"io"
	"strings"
	"sync"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderMu serialises go-chart renders: the library caches its default font
// lazily without locking, and freetype faces are not goroutine safe.
var renderMu sync.Mutex

// SVG renders charts server side with go-chart. Used for the static fallback
// images of the page and for `sitegen build`. Safe for concurrent use.
type SVG struct {
	Width  int
	Height int
}

// DefaultSVG matches the aspect ratio of the page canvases.
func DefaultSVG() SVG {
	return SVG{Width: 960, Height: 480}
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// RenderLine draws every series against the period index, labelled by c.Labels.
func (r SVG) RenderLine(w io.Writer, c *LineChart) error {
	if len(c.Labels) < 2 {
		return fmt.Errorf("line chart %q needs at least two periods", c.Title)
	}

	xs := make([]float64, len(c.Labels))
	ticks := make([]gochart.Tick, len(c.Labels))
	for i, label := range c.Labels {
		xs[i] = float64(i + 1)
		ticks[i] = gochart.Tick{Value: xs[i], Label: strings.TrimPrefix(label, "Year ")}
	}

	series := make([]gochart.Series, 0, len(c.Series))
	for _, s := range c.Series {
		style := gochart.Style{
			StrokeColor: color(s.Color),
			StrokeWidth: float64(s.Width),
			DotColor:    color(s.Color),
			DotWidth:    float64(s.PointRadius) / 2,
		}
		if s.Dashed {
			style.StrokeDashArray = []float64{5, 5}
		}
		if s.Fill != "" {
			style.FillColor = color(s.Color).WithAlpha(16)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: s.Data,
			Style:   style,
		})
	}

	graph := gochart.Chart{
		Title:  c.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{Name: "Year", Ticks: ticks},
		YAxis: gochart.YAxis{
			Name: c.YAxisTitle,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return c.Format(f)
				}
				return fmt.Sprintf("%v", v)
			},
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.LegendThin(&graph)}

	renderMu.Lock()
	defer renderMu.Unlock()
	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("failed to render %q: %w", c.Title, err)
	}
	return nil
}

// RenderBar draws one stacked bar per label. Zero-valued layers are skipped;
// they contribute nothing to the stack.
func (r SVG) RenderBar(w io.Writer, c *BarChart) error {
	bars := make([]gochart.StackedBar, 0, len(c.Labels))
	for i, label := range c.Labels {
		var values []gochart.Value
		for _, ds := range c.Datasets {
			if i >= len(ds.Data) || ds.Data[i] == 0 {
				continue
			}
			values = append(values, gochart.Value{
				Label: ds.Label,
				Value: ds.Data[i],
				Style: gochart.Style{
					FillColor:   color(ds.Color),
					StrokeColor: color(ds.BorderColor),
					StrokeWidth: float64(ds.BorderWidth),
				},
			})
		}
		if len(values) == 0 {
			continue
		}
		bars = append(bars, gochart.StackedBar{Name: label, Values: values})
	}
	if len(bars) == 0 {
		return fmt.Errorf("bar chart %q has no non-zero values", c.Title)
	}

	graph := gochart.StackedBarChart{
		Title:  c.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		IsHorizontal: c.Horizontal,
		BarSpacing:   12,
		Bars:         bars,
	}

	renderMu.Lock()
	defer renderMu.Unlock()
	if err := graph.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("failed to render %q: %w", c.Title, err)
	}
	return nil
}
