package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/headroom/internal/ledger"
	"github.com/cleared-dev/headroom/internal/render"
)

func newLedgerCommand(a *app) *cobra.Command {
	var (
		now         string
		oldestFirst bool
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Print the projected ledger with goals placed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := a.plan(cmd.OutOrStdout(), now)
			if err != nil {
				return err
			}
			rows := res.Ledger.Rows()
			if !oldestFirst {
				rows = render.Reverse(rows)
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Ledger(head(rows, limit)))
			return nil
		},
	}

	addNowFlag(cmd, &now)
	cmd.Flags().BoolVar(&oldestFirst, "oldest-first", false, "print the earliest rows first")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most n rows (0 for all)")

	return cmd
}

func head(rows []ledger.Row, n int) []ledger.Row {
	if n > 0 && n < len(rows) {
		return rows[:n]
	}
	return rows
}
