package report

import "github.com/shopspring/decimal"

// YearAverage is the mean NetDifference of the periods starting in Year.
type YearAverage struct {
	Year    int
	Periods int
	Average decimal.Decimal
}

// YearlyAverages groups periods by the year they start in, in report order.
func YearlyAverages(r *Report) []YearAverage {
	var out []YearAverage
	var sum int64
	flush := func() {
		last := &out[len(out)-1]
		last.Average = decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(last.Periods))).Round(2)
	}
	for _, p := range r.Periods {
		year := p.Start.Year()
		if len(out) == 0 || out[len(out)-1].Year != year {
			if len(out) > 0 {
				flush()
			}
			out = append(out, YearAverage{Year: year})
			sum = 0
		}
		out[len(out)-1].Periods++
		sum += p.NetDifference
	}
	if len(out) > 0 {
		flush()
	}
	return out
}
