package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleared-dev/headroom/internal/report"
)

const (
	barRune      = '█'
	negativeRune = '▒'
)

var (
	barStyle      = lipgloss.NewStyle().Foreground(colorAccent)
	negativeStyle = lipgloss.NewStyle().Foreground(colorRed)
	axisStyle     = lipgloss.NewStyle().Foreground(colorBorder)
)

// BalanceChart draws the minimum balance of the first limit periods as
// horizontal bars scaled to width. Every second period is labelled: the
// even-indexed ones when the first label's month is even, the odd-indexed
// ones otherwise.
func BalanceChart(r *report.Report, limit, width int) string {
	periods := r.Periods
	if limit > 0 && limit < len(periods) {
		periods = periods[:limit]
	}
	if len(periods) == 0 || width < 1 {
		return ""
	}

	var peak int64
	labelWidth := 0
	for _, p := range periods {
		peak = max(peak, abs(p.MinimumBalance))
		labelWidth = max(labelWidth, len(p.Label))
	}
	if peak == 0 {
		peak = 1
	}

	parity := 0
	if _, month, err := report.ParseLabel(periods[0].Label); err == nil {
		parity = month % 2
	}
	var b strings.Builder
	for i, p := range periods {
		label := ""
		if i%2 == parity {
			label = p.Label
		}
		n := int(abs(p.MinimumBalance) * int64(width) / peak)
		bar := barStyle.Render(strings.Repeat(string(barRune), n))
		if p.MinimumBalance < 0 {
			bar = negativeStyle.Render(strings.Repeat(string(negativeRune), n))
		}
		fmt.Fprintf(&b, "%-*s %s%s %s\n", labelWidth, label, axisStyle.Render("│"), bar, Money(p.MinimumBalance))
	}
	return b.String()
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
