// Package render formats plans for the terminal.
package render

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/headroom/internal/calendar"
	"github.com/cleared-dev/headroom/internal/goals"
	"github.com/cleared-dev/headroom/internal/ledger"
	"github.com/cleared-dev/headroom/internal/report"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	goodStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// Money formats a whole amount with thousands separators.
func Money(v int64) string {
	return humanize.Comma(v)
}

// Decimal formats d with thousands separators and two decimals.
func Decimal(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}
	whole, frac, _ := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + s
	}
	return sign + humanize.BigComma(n) + "." + frac
}

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Ledger renders rows in their fixed-width text form, one per line.
func Ledger(rows []ledger.Row) string {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Reverse returns rows newest first.
func Reverse(rows []ledger.Row) []ledger.Row {
	out := make([]ledger.Row, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}

// Violation describes a failed projection.
func Violation(e *ledger.LowBalanceError) string {
	return errorStyle.Render(fmt.Sprintf("Balance goes under minimum on %s", calendar.Format(e.Date))) + "\n" +
		fmt.Sprintf("    Because of %s (%s) became %s, minimum %s\n",
			e.Item, Money(e.Amount), Money(e.Balance), Money(e.Floor))
}

// Periods renders the period report as a table.
func Periods(r *report.Report) string {
	rows := make([][]string, 0, len(r.Periods))
	for _, p := range r.Periods {
		rows = append(rows, []string{
			p.Label,
			Money(p.MinimumBalance),
			Money(p.TotalIncome),
			Money(p.TotalExpense),
			Money(p.NetDifference),
			Decimal(p.RollingAverage),
		})
	}
	return newTable([]string{"Period", "Min balance", "Income", "Expense", "Net", "3-period avg"}, rows)
}

// YearlyAverages renders the per-year average net difference.
func YearlyAverages(years []report.YearAverage) string {
	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{strconv.Itoa(y.Year), strconv.Itoa(y.Periods), Decimal(y.Average)})
	}
	return newTable([]string{"Year", "Periods", "Avg net"}, rows)
}

// Outcomes renders goal scheduling outcomes.
func Outcomes(outcomes []goals.Outcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		deadline := "-"
		if d, ok := o.Goal.Deadline(); ok {
			deadline = calendar.Format(d)
		}
		placed := "-"
		status := warnStyle.Render(string(o.Status))
		if o.Placed() {
			placed = calendar.Format(o.Date)
			status = goodStyle.Render(string(o.Status))
		}
		rows = append(rows, []string{
			o.Goal.Name,
			strconv.Itoa(o.Goal.Importance),
			Money(o.Goal.Amount),
			deadline,
			status,
			placed,
		})
	}
	return newTable([]string{"Goal", "Importance", "Amount", "Deadline", "Status", "Placed on"}, rows)
}

// newTable renders a rounded table. The first column is left aligned, the
// rest right aligned.
func newTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
	return t.String() + "\n"
}
