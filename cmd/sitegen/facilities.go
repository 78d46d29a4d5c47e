package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"energy_prospectus/pkg/core/facility"
	"energy_prospectus/pkg/models"
)

var (
	facilityType string
	facilityID   string
)

var facilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "List the mapped facilities, or show one in detail",
	Args:  cobra.NoArgs,
	RunE:  runFacilities,
}

func init() {
	facilitiesCmd.Flags().StringVarP(&facilityType, "type", "t", "", "Only facilities of this type")
	facilitiesCmd.Flags().StringVar(&facilityID, "id", "", "Show the details of this facility")
}

var facilityWidths = []int{22, 40, 13, 20}

func runFacilities(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	catalog, err := facility.NewCatalog(reg.Facilities())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if facilityID != "" {
		f, ok := catalog.ByID(facilityID)
		if !ok {
			return fmt.Errorf("unknown facility %q", facilityID)
		}
		_, err := fmt.Fprint(out, renderFacility(f))
		return err
	}

	list := catalog.All()
	if facilityType != "" {
		t := models.FacilityType(strings.ToLower(facilityType))
		if !t.Known() {
			return fmt.Errorf("unknown facility type %q", facilityType)
		}
		list = catalog.ByType(t)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(row(facilityWidths, "ID", "Name", "Type", "Status")) + "\n")
	b.WriteString(rule(sum(facilityWidths)) + "\n")
	for _, f := range list {
		b.WriteString(row(facilityWidths,
			f.ID,
			facility.Icon(f.Type).Glyph+" "+f.Name,
			string(f.Type),
			f.Details.Status,
		) + "\n")
	}
	_, err = fmt.Fprint(out, b.String())
	return err
}

func renderFacility(f models.Facility) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(facility.Icon(f.Type).Glyph+" "+f.Name) + "\n")
	b.WriteString(f.Description + "\n\n")

	fields := append(facility.DetailFields(f), facility.ExtraFields(f)...)
	for _, kv := range fields {
		b.WriteString(column(headerStyle.Render(kv[0]+":"), 18) + kv[1] + "\n")
	}
	fmt.Fprintf(&b, "%s%.4f, %.4f\n", column(headerStyle.Render("Location:"), 18),
		f.Coordinates.Latitude, f.Coordinates.Longitude)
	return b.String()
}
