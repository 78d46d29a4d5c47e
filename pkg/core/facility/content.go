package facility

import (
	"sort"
	"strconv"
	"strings"

	"energy_prospectus/pkg/core/view"
	"energy_prospectus/pkg/models"
)

// Overlay classes.
const (
	TooltipClass = "infrastructure-tooltip"
	ModalClass   = "infrastructure-modal"
)

// Tooltip is the hover card: name, description and category.
func Tooltip(f models.Facility) view.Node {
	return view.El("div", "facility-tooltip",
		view.TextEl("div", "tooltip-title", f.Name),
		view.TextEl("div", "tooltip-description", f.Description),
		view.El("div", "tooltip-category", view.TextEl("strong", "", f.Category)),
	)
}

// DetailFields are the label/value pairs of the modal grid, in display
// order. "Type" shows the category, as printed on the site.
func DetailFields(f models.Facility) [][2]string {
	year := ""
	if f.Details.YearStarted != 0 {
		year = strconv.Itoa(f.Details.YearStarted)
	}
	return [][2]string{
		{"Type", f.Category},
		{"Status", f.Details.Status},
		{"Capacity", f.Details.Capacity},
		{"Function", f.Details.Function},
		{"Total Cost", f.Details.Cost},
		{"Year Started", year},
	}
}

// ExtraFields returns the facility-specific extras (employees, berths...)
// sorted by label.
func ExtraFields(f models.Facility) [][2]string {
	keys := make([]string, 0, len(f.Details.Extra))
	for k := range f.Details.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{label(k), f.Details.Extra[k]})
	}
	return out
}

// label turns a data key into a display label: "yearStarted" -> "Year Started".
func label(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Modal is the full-screen detail view opened by a marker click. The outer
// node is the backdrop; a click on it (outside .modal-content) closes it.
func Modal(f models.Facility) view.Node {
	grid := view.El("div", "detail-grid")
	for _, fld := range DetailFields(f) {
		grid.Children = append(grid.Children, view.Field(fld[0], fld[1]))
	}

	return view.El("div", ModalClass,
		view.El("div", "modal-content",
			view.TextEl("button", "modal-close", "×").WithAttr("type", "button").WithAttr("aria-label", "Close"),
			view.El("div", "modal-header",
				view.TextEl("span", "modal-icon", Icon(f.Type).Glyph),
				view.TextEl("h2", "modal-title", f.Name),
			),
			grid,
			view.El("div", "modal-description",
				view.TextEl("div", "description-label", "Overview"),
				view.TextEl("div", "description-text", f.Description),
			),
		),
	).WithAttr("data-facility", f.ID)
}
