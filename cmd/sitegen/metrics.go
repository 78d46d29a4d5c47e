package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"energy_prospectus/pkg/core/scenario"
)

var metricsScenario string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print the derived totals, net profit and ROI of each scenario",
	Args:  cobra.NoArgs,
	RunE:  runMetrics,
}

func init() {
	metricsCmd.Flags().StringVarP(&metricsScenario, "scenario", "s", "", "Only this scenario (e.g. 75 or 75%)")
}

var metricsWidths = []int{28, 14, 14, 14, 10}

func runMetrics(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	table, err := scenario.NewTable(reg.Scenarios())
	if err != nil {
		return err
	}

	keys := table.Keys()
	if metricsScenario != "" {
		k, ok := table.ParseKey(metricsScenario)
		if !ok {
			return fmt.Errorf("unknown scenario %q", metricsScenario)
		}
		keys = []scenario.Key{k}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(scenario.ChartTitle) + "\n")
	b.WriteString(headerStyle.Render(row(metricsWidths, "Scenario", "Revenue", "Costs", "Net Profit", "ROI")) + "\n")
	b.WriteString(rule(sum(metricsWidths)) + "\n")
	for _, k := range keys {
		s, _ := table.Lookup(k)
		m, _ := table.Metrics(k)
		v := scenario.NewMetricsView(m)
		b.WriteString(row(metricsWidths,
			s.Name,
			v.TotalRevenue,
			v.TotalCosts,
			colored(v.NetProfit, v.NetProfitColor),
			colored(v.ROI, v.ROIColor),
		) + "\n")
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
	return err
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
