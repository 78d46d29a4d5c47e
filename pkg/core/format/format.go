// Package format turns derived numbers into the display strings shown by the
// prospectus widgets. Colour decisions are made on numeric values, never on
// formatted strings.
package format

import (
	"github.com/shopspring/decimal"
)

// Palette shared by the chart, map and roadmap widgets.
const (
	Primary    = "#1a472a"
	Secondary  = "#2d5a3d"
	Accent     = "#a8d5ba"
	Danger     = "#e74c3c"
	Warning    = "#f39c12"
	Success    = "#27ae60"
	Background = "#f0f4f1"

	// NeutralColor is used when a value is undefined (e.g. ROI with zero costs).
	NeutralColor = "#666"
)

// Undefined is printed in place of a metric that has no defined value.
const Undefined = "n/a"

var million = decimal.NewFromInt(1_000_000)

// Currency formats an amount expressed in the smallest currency unit as whole
// millions: 1_000_000_000 -> "$1000M", -50_000_000 -> "$-50M".
// Precision below one million is dropped (half away from zero).
func Currency(units int64) string {
	return "$" + decimal.NewFromInt(units).Div(million).StringFixed(0) + "M"
}

// Millions formats a value that is already expressed in millions: 65 -> "$65M".
func Millions(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(0) + "M"
}

// Percent formats a one-decimal percentage: 613.7 -> "613.7%".
// An invalid value prints as Undefined.
func Percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return Undefined
	}
	return d.Decimal.StringFixed(1) + "%"
}

// SignColor maps the sign of a value to the green/red display colour.
// Zero counts as non-negative.
func SignColor(sign int) string {
	if sign < 0 {
		return Danger
	}
	return Success
}
