// Package report folds a ledger into per-period summaries.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/ledger"
)

// RollingWindow is the number of trailing periods averaged into
// Period.RollingAverage.
const RollingWindow = 3

// Options controls how rows are grouped into periods.
type Options struct {
	// PeriodStartDay is the day of month a period begins on, typically
	// payday.
	PeriodStartDay int
	// LabelUsesNextMonth names each period after the month it mostly covers.
	LabelUsesNextMonth bool
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.PeriodStartDay < 1 || o.PeriodStartDay > 31 {
		return fmt.Errorf("period start day %d out of range 1-31", o.PeriodStartDay)
	}
	return nil
}

// Period summarises the dated rows between two period starts.
type Period struct {
	Label          string
	Start          time.Time
	Rows           int
	MinimumBalance int64
	TotalIncome    int64
	TotalExpense   int64 // positive magnitude
	NetDifference  int64
	// RollingAverage is the mean NetDifference of this period and up to
	// two before it, rounded to cents.
	RollingAverage decimal.Decimal
}

// Report is an ordered, label-keyed set of periods. It is derived wholesale
// from a ledger and never updated in place.
type Report struct {
	Periods []Period
	byLabel map[string]int
}

// Lookup returns the period with the given label.
func (r *Report) Lookup(label string) (Period, bool) {
	i, ok := r.byLabel[label]
	if !ok {
		return Period{}, false
	}
	return r.Periods[i], true
}

// Labels returns period labels in chronological order.
func (r *Report) Labels() []string {
	labels := make([]string, len(r.Periods))
	for i, p := range r.Periods {
		labels[i] = p.Label
	}
	return labels
}

// TotalNet sums NetDifference over every period.
func (r *Report) TotalNet() int64 {
	var total int64
	for _, p := range r.Periods {
		total += p.NetDifference
	}
	return total
}

// Aggregate groups the dated rows of l into periods. A period begins on the
// first row whose day of month equals opts.PeriodStartDay and whose date
// differs from the current period's start. Rows before the first such row
// form a leading period that nominally starts on the latest period start
// day before them. Undated rows are excluded.
func Aggregate(l *ledger.Ledger, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("aggregating report: %w", err)
	}

	r := &Report{byLabel: make(map[string]int)}
	var cur *Period
	for _, row := range l.Rows() {
		if row.Undated {
			continue
		}
		switch {
		case cur == nil:
			cur = r.open(anchor(row.Date, opts.PeriodStartDay), opts)
		case row.Date.Day() == opts.PeriodStartDay && !row.Date.Equal(cur.Start):
			cur = r.open(row.Date, opts)
		}

		amount := row.Amount()
		if amount > 0 {
			cur.TotalIncome += amount
		} else {
			cur.TotalExpense -= amount
		}
		if cur.Rows == 0 || row.Balance < cur.MinimumBalance {
			cur.MinimumBalance = row.Balance
		}
		cur.Rows++
	}

	for i := range r.Periods {
		p := &r.Periods[i]
		p.NetDifference = p.TotalIncome - p.TotalExpense
		p.RollingAverage = r.rolling(i)
	}
	return r, nil
}

func (r *Report) open(start time.Time, opts Options) *Period {
	label := FormatLabel(start, opts.LabelUsesNextMonth)
	r.Periods = append(r.Periods, Period{Label: label, Start: start})
	r.byLabel[label] = len(r.Periods) - 1
	return &r.Periods[len(r.Periods)-1]
}

// rolling averages the net difference over the window ending at i, using a
// shorter window at the start of history.
func (r *Report) rolling(i int) decimal.Decimal {
	from := max(i-RollingWindow+1, 0)
	sum := decimal.Zero
	for _, p := range r.Periods[from : i+1] {
		sum = sum.Add(decimal.NewFromInt(p.NetDifference))
	}
	return sum.Div(decimal.NewFromInt(int64(i - from + 1))).Round(2)
}

// anchor returns the latest date on or before d whose day is startDay,
// clamped to the length of its month.
func anchor(d time.Time, startDay int) time.Time {
	start := calendar.Date(d.Year(), d.Month(), min(startDay, calendar.DaysIn(d.Month())))
	if start.After(d) {
		prev := calendar.MoveMonths(start, -1)
		start = calendar.Date(prev.Year(), prev.Month(), min(startDay, calendar.DaysIn(prev.Month())))
	}
	return start
}
