// Package item defines the financial items a ledger is projected from.
//
// The set of variants is closed: OneTime, Recurring, Incremental and Goal.
// Callers switch on Kind rather than type-asserting open-ended interfaces.
package item

import (
	"fmt"
	"time"

	"github.com/cleared-dev/headroom/internal/calendar"
)

// Kind identifies an item variant.
type Kind string

const (
	KindOneTime     Kind = "one_time"
	KindRecurring   Kind = "recurring"
	KindIncremental Kind = "incremental"
	KindGoal        Kind = "goal"
)

// Item is one declared income, expense or goal.
type Item interface {
	Kind() Kind
	// Info returns the fields shared by every variant.
	Info() Base
	// Label is the display text for rows produced by this item.
	Label() string
	// AppliesOn reports whether the item produces a row on day.
	AppliesOn(day time.Time) bool
	// AmountOn is the signed amount the item contributes on day.
	AmountOn(day time.Time) int64

	sealed()
}

// Base holds the fields every variant carries. A zero Start means undated.
type Base struct {
	Name   string
	Amount int64 // negative = expense
	Start  time.Time
}

// Info returns a copy of b.
func (b *Base) Info() Base { return *b }

// Dated reports whether the item has a start date.
func (b Base) Dated() bool { return !b.Start.IsZero() }

// Label returns the item name.
func (b *Base) Label() string { return b.Name }

// AmountOn returns the base amount regardless of day.
func (b *Base) AmountOn(time.Time) int64 { return b.Amount }

func (b *Base) sealed() {}

// OneTime occurs once, on its start date. Without a start date it is applied
// once before the projection horizon begins.
type OneTime struct {
	Base
}

// NewOneTime returns a one-off item. Pass a zero start for an undated item.
func NewOneTime(name string, amount int64, start time.Time) *OneTime {
	return &OneTime{Base: Base{Name: name, Amount: amount, Start: start}}
}

func (o *OneTime) Kind() Kind { return KindOneTime }

func (o *OneTime) AppliesOn(day time.Time) bool {
	return o.Dated() && o.Start.Equal(day)
}

// Recurring repeats every Period months on the start date's day of month,
// clamped to shorter months, up to and including End when set.
type Recurring struct {
	Base
	End    time.Time
	Period int
}

// NewRecurring returns an item repeating every period months from start.
func NewRecurring(name string, amount int64, start, end time.Time, period int) *Recurring {
	return &Recurring{Base: Base{Name: name, Amount: amount, Start: start}, End: end, Period: period}
}

func (r *Recurring) Kind() Kind { return KindRecurring }

// AppliesOn reports whether day is an anniversary of Start. Anniversaries
// are computed from Start itself rather than by chaining month steps, so
// clamping in a short month does not drift: a rule on the 31st lands on the
// 30th in April and back on the 31st in May.
func (r *Recurring) AppliesOn(day time.Time) bool {
	if !r.Dated() || r.Period < 1 {
		return false
	}
	if day.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && day.After(r.End) {
		return false
	}
	months := calendar.MonthsBetween(r.Start, day)
	if months%r.Period != 0 {
		return false
	}
	return calendar.MoveMonths(r.Start, months).Equal(day)
}

// Incremental is a Recurring item whose amount grows by Increase every
// IncreaseEvery months counted from Start. Growth is additive and never
// resets.
type Incremental struct {
	Recurring
	Increase      int64
	IncreaseEvery int
}

// NewIncremental returns a recurring item with a stepped amount.
func NewIncremental(name string, amount int64, start, end time.Time, period int, increase int64, every int) *Incremental {
	return &Incremental{
		Recurring:     *NewRecurring(name, amount, start, end, period),
		Increase:      increase,
		IncreaseEvery: every,
	}
}

func (i *Incremental) Kind() Kind { return KindIncremental }

// AmountOn walks forward from Start one month at a time, adding Increase on
// every IncreaseEvery-th month, and returns the amount reached once the walk
// is on or past day.
func (i *Incremental) AmountOn(day time.Time) int64 {
	amount := i.Amount
	if !i.Dated() || i.IncreaseEvery < 1 {
		return amount
	}
	for months := 1; ; months++ {
		mark := calendar.MoveMonths(i.Start, months)
		if months%i.IncreaseEvery == 0 {
			amount += i.Increase
		}
		if !day.After(mark) {
			return amount
		}
	}
}

// Goal is a discretionary purchase placed by the goal scheduler. A start
// date, when set, is the deadline. Importance only orders scheduling.
type Goal struct {
	Base
	Importance int
}

// NewGoal returns a goal. Pass a zero deadline for an open-ended goal.
func NewGoal(name string, amount int64, deadline time.Time, importance int) *Goal {
	return &Goal{Base: Base{Name: name, Amount: amount, Start: deadline}, Importance: importance}
}

func (g *Goal) Kind() Kind { return KindGoal }

// AppliesOn is always false: goals never occur on their own.
func (g *Goal) AppliesOn(time.Time) bool { return false }

func (g *Goal) Label() string {
	return fmt.Sprintf("Goal (%d): %s", g.Importance, g.Name)
}

// Deadline returns the goal's deadline and whether it has one.
func (g *Goal) Deadline() (time.Time, bool) {
	return g.Start, g.Dated()
}

// Goals returns the goals in items, in catalog order.
func Goals(items []Item) []*Goal {
	var goals []*Goal
	for _, it := range items {
		if g, ok := it.(*Goal); ok {
			goals = append(goals, g)
		}
	}
	return goals
}
