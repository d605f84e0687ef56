package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/catalog"
	"github.com/cleared-dev/headroom/internal/config"
	"github.com/cleared-dev/headroom/internal/export"
	"github.com/cleared-dev/headroom/internal/gitops"
	"github.com/cleared-dev/headroom/internal/ledger"
	"github.com/cleared-dev/headroom/internal/planner"
	"github.com/cleared-dev/headroom/internal/render"
	"github.com/cleared-dev/headroom/internal/runlog"
)

func newPlanCommand(a *app) *cobra.Command {
	var (
		now    string
		commit bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Project the catalog, schedule goals and export the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, res, err := a.plan(cmd.OutOrStdout(), now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, render.Title("Goals"))
			fmt.Fprintln(out, render.Outcomes(res.Outcomes))
			if rows := res.GoalRows(); len(rows) > 0 {
				fmt.Fprint(out, render.Ledger(rows))
			}

			today := calendar.Day(a.today())
			path, err := export.Save(filepath.Join(a.dir, cfg.Export.Dir), today, res.Ledger)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Ledger exported to %s\n", path)

			entries := runlog.FromOutcomes(today, res.Now, res.Outcomes)
			if err := runlog.Append(filepath.Join(a.dir, cfg.Export.LogDir), entries); err != nil {
				return err
			}

			if !commit && !cfg.Git.AutoCommit {
				return nil
			}
			msg := fmt.Sprintf("plan: %s (%d rows, %d unplaced goals)",
				calendar.Format(res.Now), res.Ledger.Len(), len(res.Unplaced()))
			hash, err := gitops.CommitAll(a.dir, msg, author(cfg))
			switch {
			case errors.Is(err, gitops.ErrNothingToCommit):
				a.log.Info("plan unchanged, nothing to commit")
			case err != nil:
				return err
			default:
				a.log.WithField("commit", hash).Info("plan committed")
			}
			return nil
		},
	}

	addNowFlag(cmd, &now)
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the export to git")

	return cmd
}

func addNowFlag(cmd *cobra.Command, now *string) {
	cmd.Flags().StringVar(now, "now", "", "reference date YYYY-MM-DD (default $"+EnvNow+", planner.reference_date or today)")
}

// plan loads the config and catalog from the headroom directory and runs
// the planner. When projection hits the minimum balance the partial ledger
// and the violation are written to out before the error is returned.
func (a *app) plan(out io.Writer, nowFlag string) (*config.Config, *planner.Result, error) {
	cfg, err := config.Load(filepath.Join(a.dir, config.FileName))
	if err != nil {
		return nil, nil, err
	}
	items, err := catalog.Load(filepath.Join(a.dir, cfg.Catalog))
	if err != nil {
		return nil, nil, err
	}
	now, err := a.referenceDate(cfg, nowFlag)
	if err != nil {
		return nil, nil, err
	}

	res, err := planner.New(cfg, a.log).Run(items, now)
	if err != nil {
		var lerr *ledger.LowBalanceError
		if errors.As(err, &lerr) && res != nil {
			fmt.Fprint(out, render.Ledger(render.Reverse(res.Ledger.Rows())))
			fmt.Fprint(out, render.Violation(lerr))
		}
		return nil, nil, err
	}
	return cfg, res, nil
}

// referenceDate resolves the projection start: --now, then $HEADROOM_NOW,
// then the config.
func (a *app) referenceDate(cfg *config.Config, nowFlag string) (time.Time, error) {
	value, source := nowFlag, "--now"
	if value == "" {
		value, source = os.Getenv(EnvNow), EnvNow
	}
	if value == "" {
		return cfg.Now(a.today())
	}
	d, err := calendar.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", source, err)
	}
	return d, nil
}
