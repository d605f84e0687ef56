package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/headroom/internal/item"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule        int
	Item        string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", e.Rule, e.Item, e.Description)
}

// Validate enforces 7 rules on catalog entries. Entries are identified by
// name, or by position when the name is missing.
func Validate(entries []Entry) []ValidationError {
	var errs []ValidationError
	hundred := decimal.NewFromInt(100)

	for i, e := range entries {
		ref := e.Name
		add := func(rule int, format string, args ...any) {
			errs = append(errs, ValidationError{Rule: rule, Item: ref, Description: fmt.Sprintf(format, args...)})
		}

		// Rule 1: Name required.
		if e.Name == "" {
			ref = fmt.Sprintf("#%d", i+1)
			add(1, "name is required")
		}

		// Rule 2: Known kind.
		recurring := false
		switch e.Kind {
		case item.KindOneTime, item.KindGoal:
		case item.KindRecurring, item.KindIncremental:
			recurring = true
		default:
			add(2, "unknown kind %q", e.Kind)
		}

		// Rule 3: An end date needs a start date.
		if !e.End.IsZero() && e.Start.IsZero() {
			add(3, "end %s without a start date", e.End)
		}

		// Rule 4: End not before start.
		if !e.End.IsZero() && !e.Start.IsZero() && e.End.Before(e.Start.Time) {
			add(4, "end %s is before start %s", e.End, e.Start)
		}

		// Rule 5: Period not negative, 0 means monthly.
		if recurring && e.EveryMonths < 0 {
			add(5, "every_months must not be negative, got %d", e.EveryMonths)
		}

		// Rule 6: Increase interval not negative, 0 means yearly.
		if e.Kind == item.KindIncremental && e.IncreaseEvery < 0 {
			add(6, "increase_every must not be negative, got %d", e.IncreaseEvery)
		}

		// Rule 7: No more than 2 decimal places.
		for _, a := range []Amount{e.Amount, e.IncreaseAmount} {
			if scaled := a.Mul(hundred); !scaled.Equal(scaled.Floor()) {
				add(7, "amount %s has more than 2 decimal places", a)
			}
		}
	}
	return errs
}

func joinValidation(errs []ValidationError) error {
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}
