package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/headroom/internal/render"
	"github.com/cleared-dev/headroom/internal/report"
)

const chartWidth = 50

func newReportCommand(a *app) *cobra.Command {
	var (
		now   string
		chart bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise the projection per period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, res, err := a.plan(cmd.OutOrStdout(), now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, render.Title("Periods"))
			fmt.Fprintln(out, render.Periods(res.Report))
			fmt.Fprintln(out, render.Title("Yearly averages"))
			fmt.Fprintln(out, render.YearlyAverages(report.YearlyAverages(res.Report)))
			fmt.Fprintf(out, "Total net: %s\n", render.Money(res.Report.TotalNet()))

			if chart {
				fmt.Fprintln(out, render.Title("Minimum balance"))
				fmt.Fprint(out, render.BalanceChart(res.Report, cfg.Report.PlotLength, chartWidth))
			}
			return nil
		},
	}

	addNowFlag(cmd, &now)
	cmd.Flags().BoolVar(&chart, "chart", false, "draw the minimum balance per period")

	return cmd
}
