// Package goals fits discretionary purchases into a projected ledger.
//
// Scheduling is greedy and priority ordered: goals are taken from highest
// to lowest importance and each one goes to the earliest position where it
// keeps every later balance above the floor. Earlier placements are never
// revisited.
package goals

import (
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/item"
	"github.com/cleared-dev/headroom/internal/ledger"
)

// Status is the result of scheduling one goal.
type Status string

const (
	StatusPlaced Status = "placed"
	// StatusExpired means the search passed the goal's deadline.
	StatusExpired Status = "expired"
	// StatusDidNotFit means no position kept the ledger above the floor.
	StatusDidNotFit Status = "did_not_fit"
)

// Outcome records where a goal went, or why it did not.
type Outcome struct {
	Goal   *item.Goal
	Status Status
	Index  int       // row index of the placed goal, -1 otherwise
	Date   time.Time // date of the placed goal row
}

// Placed reports whether the goal made it into the ledger.
func (o Outcome) Placed() bool { return o.Status == StatusPlaced }

// Scheduler places goals into a ledger.
type Scheduler struct {
	Policy ledger.Policy
	// SavingWindowDays keeps a deadlined goal from being placed earlier
	// than this many days before its deadline.
	SavingWindowDays int
	Log              logrus.FieldLogger
}

// Schedule inserts goals into l in descending importance (ties keep the
// given order) and returns one outcome per goal in processing order.
// Unplaced goals are outcomes, not errors.
func (s *Scheduler) Schedule(l *ledger.Ledger, goals []*item.Goal) []Outcome {
	log := s.logger()

	ordered := make([]*item.Goal, len(goals))
	copy(ordered, goals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Importance > ordered[j].Importance
	})

	outcomes := make([]Outcome, 0, len(ordered))
	for _, g := range ordered {
		o := s.place(l, g)
		outcomes = append(outcomes, o)

		fields := logrus.Fields{"goal": g.Name, "importance": g.Importance, "status": o.Status}
		if o.Placed() {
			fields["date"] = calendar.Format(o.Date)
			log.WithFields(fields).Debug("goal placed")
		} else {
			log.WithFields(fields).Info("goal not placed")
		}
	}
	return outcomes
}

func (s *Scheduler) place(l *ledger.Ledger, g *item.Goal) Outcome {
	deadline, hasDeadline := g.Deadline()
	index := s.searchStart(l, g)

	for ; index < l.Len(); index++ {
		if hasDeadline && l.At(index).Date.After(deadline) {
			return Outcome{Goal: g, Status: StatusExpired, Index: -1}
		}
		if s.Feasible(l, g, index) {
			row := l.At(previous(index))
			l.Insert(index, ledger.Row{Date: row.Date, Item: g, Undated: row.Undated})
			return Outcome{Goal: g, Status: StatusPlaced, Index: index, Date: row.Date}
		}
	}
	return Outcome{Goal: g, Status: StatusDidNotFit, Index: -1}
}

// searchStart skips every row dated on or before the later of the first
// row's date and deadline minus the saving window. Goals without a
// deadline start at 0.
func (s *Scheduler) searchStart(l *ledger.Ledger, g *item.Goal) int {
	deadline, ok := g.Deadline()
	if !ok || l.Len() == 0 {
		return 0
	}
	threshold := calendar.Max(calendar.AddDays(deadline, -s.SavingWindowDays), l.At(0).Date)
	index := 0
	for index < l.Len() && !l.At(index).Date.After(threshold) {
		index++
	}
	return index
}

// Feasible reports whether inserting g before row index keeps the goal's
// own row and every later row acceptable under the policy. It only reads l.
func (s *Scheduler) Feasible(l *ledger.Ledger, g *item.Goal, index int) bool {
	if index < 0 || index >= l.Len() {
		return false
	}
	at := l.At(index)
	amount := g.AmountOn(at.Date)
	balance := l.BalanceBefore(index) + amount
	if !s.Policy.Acceptable(balance, l.At(previous(index)).Date, amount) {
		return false
	}
	for i := index; i < l.Len(); i++ {
		r := l.At(i)
		a := r.Amount()
		balance += a
		if !s.Policy.Acceptable(balance, r.Date, a) {
			return false
		}
	}
	return true
}

func (s *Scheduler) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}

// previous is the row whose date an insertion at index inherits. The first
// row stands in for itself.
func previous(index int) int {
	if index == 0 {
		return 0
	}
	return index - 1
}
