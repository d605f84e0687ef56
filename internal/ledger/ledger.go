// Package ledger projects financial items into a chronological,
// balance-annotated ledger and enforces the minimum-balance floor.
package ledger

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/item"
)

// bannerWidth is the width section-banner labels are centered in.
const bannerWidth = 80

// Row is one dated, amount-bearing ledger entry.
type Row struct {
	Date    time.Time
	Item    item.Item
	Balance int64
	// Undated rows come from items without a start date. Their Date is
	// calendar.Epoch and they are excluded from period reports.
	Undated bool
}

// Amount is the signed amount the row's item contributes on its date.
func (r Row) Amount() int64 {
	return r.Item.AmountOn(r.Date)
}

// Label renders the item label. Labels starting with "=" are section
// banners: "= Salary =" on a February row becomes "= February Salary ="
// padded with "=" on both sides.
func (r Row) Label() string {
	label := r.Item.Label()
	if !strings.HasPrefix(label, "=") {
		return label
	}
	rest := []rune(strings.TrimSpace(label))
	if len(rest) >= 2 {
		rest = rest[2:]
	} else {
		rest = nil
	}
	text := "= " + r.Date.Month().String() + " " + string(rest)
	pad := (bannerWidth - utf8.RuneCountInString(text)) / 2
	if pad < 0 {
		pad = 0
	}
	fill := strings.Repeat("=", pad)
	return fill + text + fill
}

// String renders the row as "date | label | amount | balance".
func (r Row) String() string {
	return fmt.Sprintf("%s | %-*s | %8d | %8d",
		calendar.Format(r.Date), bannerWidth, r.Label(), r.Amount(), r.Balance)
}

// Ledger is an ordered sequence of rows. The caller owns it exclusively;
// only the goal scheduler mutates it after projection.
type Ledger struct {
	rows []Row
}

// New returns a ledger over rows. Balances are taken as given.
func New(rows []Row) *Ledger {
	return &Ledger{rows: rows}
}

// Len returns the number of rows.
func (l *Ledger) Len() int { return len(l.rows) }

// At returns the row at index i.
func (l *Ledger) At(i int) Row { return l.rows[i] }

// Rows returns a copy of the rows.
func (l *Ledger) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Last returns the final row and whether the ledger is non-empty.
func (l *Ledger) Last() (Row, bool) {
	if len(l.rows) == 0 {
		return Row{}, false
	}
	return l.rows[len(l.rows)-1], true
}

// BalanceBefore is the running balance just before index i: the previous
// row's balance with row i's own contribution removed.
func (l *Ledger) BalanceBefore(i int) int64 {
	if i >= len(l.rows) {
		if last, ok := l.Last(); ok {
			return last.Balance
		}
		return 0
	}
	r := l.rows[i]
	return r.Balance - r.Amount()
}

// Insert places row at index i and re-accumulates the balance of every
// later row. The inserted row's balance is recomputed from BalanceBefore(i).
func (l *Ledger) Insert(i int, row Row) {
	if i < 0 || i > len(l.rows) {
		panic(fmt.Sprintf("ledger: insert index %d out of range [0,%d]", i, len(l.rows)))
	}
	balance := l.BalanceBefore(i) + row.Amount()
	row.Balance = balance

	l.rows = append(l.rows, Row{})
	copy(l.rows[i+1:], l.rows[i:])
	l.rows[i] = row

	for j := i + 1; j < len(l.rows); j++ {
		balance += l.rows[j].Amount()
		l.rows[j].Balance = balance
	}
}

// Verify checks that every balance equals the previous balance plus the
// row's amount, starting from zero. It returns the first offending index,
// or -1.
func (l *Ledger) Verify() int {
	var balance int64
	for i, r := range l.rows {
		balance += r.Amount()
		if r.Balance != balance {
			return i
		}
	}
	return -1
}
