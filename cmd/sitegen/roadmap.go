package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"energy_prospectus/pkg/core/format"
	"energy_prospectus/pkg/core/roadmap"
	"energy_prospectus/pkg/models"
)

var (
	roadmapPhase string
	roadmapYear  int
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Print the phase activity grid, one phase in detail, or the phases of one year",
	Args:  cobra.NoArgs,
	RunE:  runRoadmap,
}

func init() {
	roadmapCmd.Flags().StringVarP(&roadmapPhase, "phase", "p", "", "Show the details of this phase")
	roadmapCmd.Flags().IntVarP(&roadmapYear, "year", "y", 0, "List the phases active in this year (1-20)")
}

const (
	nameWidth  = 24
	activeCell = "█"
	idleCell   = "·"
)

func runRoadmap(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	phases := reg.Phases()

	if roadmapPhase != "" {
		for _, p := range phases {
			if strings.EqualFold(p.Name, roadmapPhase) {
				out, err := renderPhase(p)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
		}
		return fmt.Errorf("unknown phase %q", roadmapPhase)
	}

	if roadmapYear != 0 {
		if roadmapYear < 1 || roadmapYear > roadmap.Years {
			return fmt.Errorf("year %d outside 1..%d", roadmapYear, roadmap.Years)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), renderYear(phases, roadmapYear))
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), renderGrid(phases))
	return err
}

// renderGrid draws one line per phase with a cell per year.
func renderGrid(phases []models.Phase) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(roadmap.ChartTitle) + "\n")

	header := make([]string, roadmap.Years)
	for y := 1; y <= roadmap.Years; y++ {
		header[y-1] = fmt.Sprintf("%-2d", y)
	}
	b.WriteString(headerStyle.Render(column("Phase", nameWidth)+strings.Join(header, " ")) + "\n")

	matrix := roadmap.Matrix(phases)
	for i, p := range phases {
		color := roadmap.Palette[i%len(roadmap.Palette)]
		cells := make([]string, roadmap.Years)
		for y, on := range matrix[i] {
			if on {
				cells[y] = colored(activeCell+activeCell, color)
			} else {
				cells[y] = mutedStyle.Render(idleCell + " ")
			}
		}
		b.WriteString(column(p.Name, nameWidth) + strings.Join(cells, " ") + "\n")
	}

	b.WriteString(rule(nameWidth+roadmap.Years*3-1) + "\n")
	for _, p := range phases {
		b.WriteString(fmt.Sprintf("%s %s, net %s\n",
			column(p.Name, nameWidth),
			roadmap.Timeline(p),
			format.Currency(roadmap.NetImpact(p))))
	}
	return b.String()
}

// renderYear lists the phases running during year.
func renderYear(phases []models.Phase, year int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Year %d", year)) + "\n")

	active := roadmap.ActiveIn(phases, year)
	if len(active) == 0 {
		b.WriteString(mutedStyle.Render("no active phases") + "\n")
		return b.String()
	}
	for _, i := range active {
		p := phases[i]
		color := roadmap.Palette[i%len(roadmap.Palette)]
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			colored(activeCell, color),
			column(p.Name, nameWidth),
			roadmap.Timeline(p)))
	}
	return b.String()
}

// phaseMarkdown is the modal content of p as markdown.
func phaseMarkdown(p models.Phase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "**Timeline:** %s\n\n", roadmap.Timeline(p))
	fmt.Fprintf(&b, "**Total Cost:** %s\n\n", format.Currency(p.Cost))
	fmt.Fprintf(&b, "**Revenue Impact:** %s\n\n", format.Currency(p.RevenueImpact))
	fmt.Fprintf(&b, "**Net Impact:** %s\n\n", format.Currency(roadmap.NetImpact(p)))
	fmt.Fprintf(&b, "## Description\n\n%s\n", p.Description)
	return b.String()
}

func renderPhase(p models.Phase) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render(phaseMarkdown(p))
}
