package chart

// ChartJS renders chart descriptions as Chart.js configuration objects.
// The page script installs the value-format callbacks from the "unit" key.
type ChartJS struct{}

// LineConfig builds the Chart.js configuration for a line chart.
func (r ChartJS) LineConfig(c *LineChart) map[string]interface{} {
	datasets := make([]map[string]interface{}, 0, len(c.Series))
	for _, s := range c.Series {
		ds := map[string]interface{}{
			"label":                s.Label,
			"data":                 s.Data,
			"borderColor":          s.Color,
			"borderWidth":          s.Width,
			"fill":                 s.Fill != "",
			"tension":              0.4,
			"pointRadius":          s.PointRadius,
			"pointBackgroundColor": s.Color,
			"pointBorderColor":     "#fff",
			"pointBorderWidth":     2,
			"pointHoverRadius":     s.PointRadius + 2,
		}
		if s.Fill != "" {
			ds["backgroundColor"] = s.Fill
		}
		if s.Dashed {
			ds["borderDash"] = []int{5, 5}
		}
		datasets = append(datasets, ds)
	}

	return map[string]interface{}{
		"type": "line",
		"data": map[string]interface{}{
			"labels":   c.Labels,
			"datasets": datasets,
		},
		"options": map[string]interface{}{
			"responsive":          true,
			"maintainAspectRatio": true,
			"plugins": map[string]interface{}{
				"legend": map[string]interface{}{
					"display":  true,
					"position": "top",
					"labels": map[string]interface{}{
						"usePointStyle": true,
						"padding":       20,
						"font":          map[string]interface{}{"size": 12, "weight": "500"},
						"color":         "#333",
					},
				},
				"tooltip": map[string]interface{}{
					"mode":            "index",
					"intersect":       false,
					"backgroundColor": "rgba(0, 0, 0, 0.8)",
					"padding":         12,
					"titleFont":       map[string]interface{}{"size": 13, "weight": "bold"},
					"bodyFont":        map[string]interface{}{"size": 12},
				},
			},
			"scales": map[string]interface{}{
				"y": map[string]interface{}{
					"beginAtZero": false,
					"title":       map[string]interface{}{"display": c.YAxisTitle != "", "text": c.YAxisTitle},
					"ticks":       map[string]interface{}{"color": "#666"},
					"grid":        map[string]interface{}{"color": "rgba(0, 0, 0, 0.05)"},
				},
				"x": map[string]interface{}{
					"ticks": map[string]interface{}{"color": "#666"},
					"grid":  map[string]interface{}{"display": false},
				},
			},
		},
		"unit":     c.Unit,
		"revision": c.Revision,
	}
}

// BarConfig builds the Chart.js configuration for a bar chart.
func (r ChartJS) BarConfig(c *BarChart) map[string]interface{} {
	valueAxis, labelAxis := "y", "x"
	if c.Horizontal {
		valueAxis, labelAxis = "x", "y"
	}

	valueScale := map[string]interface{}{
		"stacked": c.Stacked,
		"title":   axisTitle(c.ValueTitle),
	}
	if c.ValueMax > 0 {
		valueScale["max"] = c.ValueMax
	}

	options := map[string]interface{}{
		"responsive":          true,
		"maintainAspectRatio": true,
		"plugins": map[string]interface{}{
			"legend": map[string]interface{}{
				"display":   true,
				"position":  "bottom",
				"labels":    map[string]interface{}{"boxWidth": 12, "font": map[string]interface{}{"size": 11}, "padding": 10},
				"maxHeight": 80,
			},
			"title": map[string]interface{}{
				"display": c.Title != "",
				"text":    c.Title,
				"font":    map[string]interface{}{"size": 16, "weight": "bold"},
				"padding": 20,
			},
			"tooltip": map[string]interface{}{
				"enabled":         true,
				"backgroundColor": "rgba(26, 71, 42, 0.9)",
				"titleColor":      "#fff",
				"bodyColor":       "#fff",
				"padding":         12,
				"cornerRadius":    6,
				"displayColors":   false,
			},
		},
		"scales": map[string]interface{}{
			valueAxis: valueScale,
			labelAxis: map[string]interface{}{
				"stacked": c.Stacked,
				"title":   axisTitle(c.LabelTitle),
			},
		},
	}
	if c.Horizontal {
		options["indexAxis"] = "y"
	}

	return map[string]interface{}{
		"type": "bar",
		"data": map[string]interface{}{
			"labels":   c.Labels,
			"datasets": c.Datasets,
		},
		"options": options,
	}
}

func axisTitle(text string) map[string]interface{} {
	return map[string]interface{}{
		"display": text != "",
		"text":    text,
		"font":    map[string]interface{}{"size": 12, "weight": "bold"},
	}
}
