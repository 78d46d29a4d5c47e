// Package scenario drives the financial projections chart: it owns the
// scenario table, derives the headline metrics and keeps the chart and the
// metric slots in step with the selected scenario.
package scenario

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"energy_prospectus/pkg/core/calc"
	"energy_prospectus/pkg/core/format"
	"energy_prospectus/pkg/models"
)

// Key identifies a scenario by its market capture percentage.
type Key int

// The stock scenarios.
const (
	Capture50  Key = 50
	Capture75  Key = 75
	Capture100 Key = 100
)

// DefaultKey is selected when the page loads.
const DefaultKey = Capture75

func (k Key) String() string {
	return strconv.Itoa(int(k))
}

// Table is the immutable scenario lookup built from the dataset.
type Table struct {
	order []Key
	byKey map[Key]*models.Scenario
}

// NewTable indexes scenarios by key, keeping file order.
func NewTable(scenarios []models.Scenario) (*Table, error) {
	t := &Table{byKey: make(map[Key]*models.Scenario, len(scenarios))}
	for i := range scenarios {
		s := &scenarios[i]
		k := Key(s.Key)
		if _, dup := t.byKey[k]; dup {
			return nil, fmt.Errorf("duplicate scenario key %d", s.Key)
		}
		t.byKey[k] = s
		t.order = append(t.order, k)
	}
	return t, nil
}

// Keys returns the scenario keys in file order.
func (t *Table) Keys() []Key {
	return append([]Key(nil), t.order...)
}

// SortedKeys returns the keys in ascending order.
func (t *Table) SortedKeys() []Key {
	keys := t.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Lookup returns the scenario for key.
func (t *Table) Lookup(k Key) (*models.Scenario, bool) {
	s, ok := t.byKey[k]
	return s, ok
}

// ParseKey reads a selector value ("75", " 75 ", "75%") and checks that the
// scenario exists.
func (t *Table) ParseKey(s string) (Key, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	k := Key(n)
	if _, ok := t.byKey[k]; !ok {
		return 0, false
	}
	return k, true
}

// Metrics derives totals, net profit and ROI for key.
func (t *Table) Metrics(k Key) (calc.Metrics, bool) {
	s, ok := t.Lookup(k)
	if !ok {
		return calc.Metrics{}, false
	}
	return calc.Derive(s.Revenue, s.Costs), true
}

// =============================================================================
// DISPLAY VALUES
// =============================================================================

// MetricsView holds the four metric strings and the colours of the two
// signed ones.
type MetricsView struct {
	TotalRevenue   string `json:"totalRevenue"`
	TotalCosts     string `json:"totalCosts"`
	NetProfit      string `json:"netProfit"`
	NetProfitColor string `json:"netProfitColor"`
	ROI            string `json:"roi"`
	ROIColor       string `json:"roiColor"`
}

// NewMetricsView formats m. Colours follow the numeric sign; an undefined
// ROI is printed as "n/a" in the neutral colour.
func NewMetricsView(m calc.Metrics) MetricsView {
	v := MetricsView{
		TotalRevenue:   format.Millions(m.TotalRevenue),
		TotalCosts:     format.Millions(m.TotalCosts),
		NetProfit:      format.Millions(m.NetProfit),
		NetProfitColor: format.SignColor(m.NetProfitSign()),
		ROI:            format.Percent(m.ROI),
		ROIColor:       format.NeutralColor,
	}
	if sign, ok := m.ROISign(); ok {
		v.ROIColor = format.SignColor(sign)
	}
	return v
}

// View is everything the page needs to switch to one scenario without a
// round trip: the four series in chart order and the formatted metrics.
type View struct {
	Key     Key         `json:"key"`
	Name    string      `json:"name"`
	Series  [][]float64 `json:"series"`
	Metrics MetricsView `json:"metrics"`
}

// Series returns the chart data of s in series order: revenue, costs,
// gross profit, cumulative debt.
func Series(s *models.Scenario) [][]float64 {
	return [][]float64{s.Revenue, s.Costs, s.GrossProfit, s.CumulativeDebt}
}

// Views pre-computes a View for every scenario, in file order.
func (t *Table) Views() []View {
	out := make([]View, 0, len(t.order))
	for _, k := range t.order {
		s := t.byKey[k]
		out = append(out, View{
			Key:     k,
			Name:    s.Name,
			Series:  Series(s),
			Metrics: NewMetricsView(calc.Derive(s.Revenue, s.Costs)),
		})
	}
	return out
}
