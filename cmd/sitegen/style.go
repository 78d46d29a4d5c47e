package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"energy_prospectus/pkg/core/format"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(format.Primary)).
			MarginBottom(1)
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(format.Secondary))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// column pads s to width using its rendered (visible) width.
func column(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// row joins cells horizontally, one column width per cell.
func row(widths []int, cells ...string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = column(c, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func colored(s, hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}

func rule(width int) string {
	return mutedStyle.Render(strings.Repeat("─", width))
}
