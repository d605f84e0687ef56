package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/item"
)

// Projector expands items across a bounded horizon into a ledger.
type Projector struct {
	Policy Policy
	// Now is the first projected day. It is injected so projections are
	// reproducible.
	Now time.Time
}

// Project emits undated items first at calendar.Epoch, then walks days from
// Now until horizonYears*12 months have elapsed or maxRows rows exist,
// whichever comes first. maxRows <= 0 means no row limit.
//
// Within the undated group and within each day, items are applied in
// descending amount order so income lands before expenses; ties keep
// catalog order. Goals are skipped.
//
// A floor violation stops the projection with a *LowBalanceError carrying
// the ledger produced so far. The same partial ledger is also returned.
func (p *Projector) Project(items []item.Item, horizonYears, maxRows int) (*Ledger, error) {
	if err := p.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("projecting: %w", err)
	}
	if horizonYears < 0 {
		return nil, fmt.Errorf("projecting: negative horizon %d", horizonYears)
	}

	var undated, dated []item.Item
	for _, it := range items {
		if it.Kind() == item.KindGoal {
			continue
		}
		if it.Info().Dated() {
			dated = append(dated, it)
		} else {
			undated = append(undated, it)
		}
	}

	b := &builder{policy: p.Policy, maxRows: maxRows}

	for _, it := range byAmountDesc(undated, calendar.Epoch) {
		if b.full() {
			return b.ledger(), nil
		}
		if lerr := b.apply(calendar.Epoch, it, true); lerr != nil {
			return lerr.Ledger, lerr
		}
	}

	day := calendar.Day(p.Now)
	until := calendar.MoveMonths(day, horizonYears*12)
	var due []item.Item
	for ; day.Before(until); day = calendar.AddDays(day, 1) {
		due = due[:0]
		for _, it := range dated {
			if it.AppliesOn(day) {
				due = append(due, it)
			}
		}
		for _, it := range byAmountDesc(due, day) {
			if b.full() {
				return b.ledger(), nil
			}
			if lerr := b.apply(day, it, false); lerr != nil {
				return lerr.Ledger, lerr
			}
		}
	}
	return b.ledger(), nil
}

type builder struct {
	policy  Policy
	maxRows int
	rows    []Row
	balance int64
}

func (b *builder) full() bool {
	return b.maxRows > 0 && len(b.rows) >= b.maxRows
}

func (b *builder) ledger() *Ledger {
	return New(b.rows)
}

func (b *builder) apply(day time.Time, it item.Item, undated bool) *LowBalanceError {
	amount := it.AmountOn(day)
	b.balance += amount
	b.rows = append(b.rows, Row{Date: day, Item: it, Balance: b.balance, Undated: undated})

	if b.policy.Acceptable(b.balance, day, amount) {
		return nil
	}
	floor, _ := b.policy.Floor(day)
	return &LowBalanceError{
		Date:    day,
		Item:    it.Info().Name,
		Amount:  amount,
		Balance: b.balance,
		Floor:   floor,
		Ledger:  b.ledger(),
	}
}

// byAmountDesc returns items stably sorted by descending amount on day.
func byAmountDesc(items []item.Item, day time.Time) []item.Item {
	sorted := make([]item.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AmountOn(day) > sorted[j].AmountOn(day)
	})
	return sorted
}
