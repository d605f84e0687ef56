// Package planner runs a full plan: project the catalog, fit goals in and
// summarise the result per period.
package planner

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/config"
	"github.com/cleared-dev/headroom/internal/goals"
	"github.com/cleared-dev/headroom/internal/item"
	"github.com/cleared-dev/headroom/internal/ledger"
	"github.com/cleared-dev/headroom/internal/report"
)

// Result is the outcome of one planning run.
type Result struct {
	Now      time.Time
	Ledger   *ledger.Ledger
	Outcomes []goals.Outcome
	Report   *report.Report
}

// GoalRows returns the ledger rows of placed goals, newest first.
func (r *Result) GoalRows() []ledger.Row {
	var rows []ledger.Row
	for i := r.Ledger.Len() - 1; i >= 0; i-- {
		if row := r.Ledger.At(i); row.Item.Kind() == item.KindGoal {
			rows = append(rows, row)
		}
	}
	return rows
}

// Unplaced returns the outcomes of goals that did not make it in.
func (r *Result) Unplaced() []goals.Outcome {
	var out []goals.Outcome
	for _, o := range r.Outcomes {
		if !o.Placed() {
			out = append(out, o)
		}
	}
	return out
}

// Planner holds the settings a run is made with.
type Planner struct {
	cfg *config.Config
	log logrus.FieldLogger
}

// New creates a planner. A nil log discards output.
func New(cfg *config.Config, log logrus.FieldLogger) *Planner {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Planner{cfg: cfg, log: log}
}

// Run projects items from now, schedules the goals among them and builds
// the period report.
//
// If projection hits the minimum balance, Run returns a Result holding only
// the partial ledger together with an error wrapping *ledger.LowBalanceError.
func (p *Planner) Run(items []item.Item, now time.Time) (*Result, error) {
	policy, err := p.cfg.Policy()
	if err != nil {
		return nil, err
	}
	now = calendar.Day(now)
	log := p.log.WithField("now", calendar.Format(now))

	projector := &ledger.Projector{Policy: policy, Now: now}
	l, err := projector.Project(items, p.cfg.Planner.HorizonYears, p.cfg.Planner.MaxRows)
	if err != nil {
		var lerr *ledger.LowBalanceError
		if errors.As(err, &lerr) {
			log.WithFields(logrus.Fields{
				"date":    calendar.Format(lerr.Date),
				"item":    lerr.Item,
				"balance": lerr.Balance,
			}).Warn("projection stopped at minimum balance")
			return &Result{Now: now, Ledger: l}, fmt.Errorf("projecting ledger: %w", err)
		}
		return nil, fmt.Errorf("projecting ledger: %w", err)
	}
	log.WithField("rows", l.Len()).Debug("ledger projected")

	scheduler := &goals.Scheduler{
		Policy:           policy,
		SavingWindowDays: p.cfg.Planner.GoalSavingWindowDays,
		Log:              log,
	}
	outcomes := scheduler.Schedule(l, item.Goals(items))

	rep, err := report.Aggregate(l, p.cfg.ReportOptions())
	if err != nil {
		return nil, err
	}

	res := &Result{Now: now, Ledger: l, Outcomes: outcomes, Report: rep}
	log.WithFields(logrus.Fields{
		"rows":     l.Len(),
		"goals":    len(outcomes),
		"unplaced": len(res.Unplaced()),
		"periods":  len(rep.Periods),
	}).Info("plan complete")
	return res, nil
}
