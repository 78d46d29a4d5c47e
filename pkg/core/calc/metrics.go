// Package calc derives the aggregate figures of a market-capture scenario.
package calc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCENARIO METRICS
// =============================================================================

// Metrics are the aggregate figures shown under the financial chart.
// All amounts are in millions, as stored in the scenario table.
type Metrics struct {
	TotalRevenue float64
	TotalCosts   float64
	NetProfit    float64

	// ROI is netProfit / totalCosts * 100 rounded to one decimal place.
	// Invalid when totalCosts is zero.
	ROI decimal.NullDecimal

	// roiExact keeps the unrounded ratio for sign decisions.
	roiExact decimal.Decimal
}

// GrossProfit returns revenue[i] - costs[i] for every period.
func GrossProfit(revenue, costs []float64) ([]float64, error) {
	if len(revenue) != len(costs) {
		return nil, fmt.Errorf("series length mismatch: revenue=%d costs=%d", len(revenue), len(costs))
	}
	out := make([]float64, len(revenue))
	for i := range revenue {
		out[i] = revenue[i] - costs[i]
	}
	return out, nil
}

// Sum adds every value of the series.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Derive computes totals, net profit and ROI for one scenario.
func Derive(revenue, costs []float64) Metrics {
	m := Metrics{
		TotalRevenue: Sum(revenue),
		TotalCosts:   Sum(costs),
	}
	m.NetProfit = m.TotalRevenue - m.TotalCosts

	if m.TotalCosts == 0 {
		return m
	}
	m.roiExact = decimal.NewFromFloat(m.NetProfit).
		Div(decimal.NewFromFloat(m.TotalCosts)).
		Mul(decimal.NewFromInt(100))
	m.ROI = decimal.NullDecimal{Decimal: m.roiExact.Round(1), Valid: true}
	return m
}

// NetProfitSign returns -1, 0 or 1.
func (m Metrics) NetProfitSign() int {
	switch {
	case m.NetProfit < 0:
		return -1
	case m.NetProfit > 0:
		return 1
	}
	return 0
}

// ROISign returns the sign of the unrounded ROI. The second result is false
// when ROI is undefined.
func (m Metrics) ROISign() (int, bool) {
	if !m.ROI.Valid {
		return 0, false
	}
	return m.roiExact.Sign(), true
}
