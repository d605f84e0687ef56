// Package calendar provides whole-day date helpers used by the projection.
//
// Dates are time.Time values at midnight UTC. Month lengths follow a fixed
// table in which February always has 28 days.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the date format used in configuration, catalogs and output.
const Layout = "2006-01-02"

// Epoch is the synthetic date given to undated items. It precedes any date
// a projection iterates over.
var Epoch = Date(2000, time.January, 1)

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// DaysIn returns the length of month according to the fixed table.
func DaysIn(month time.Month) int {
	return monthDays[month]
}

// MoveMonths shifts d by delta whole months, one month at a time, and clamps
// the day to the last valid day of the destination month.
// MoveMonths(2023-01-31, 1) is 2023-02-28; MoveMonths(2023-03-31, -1) is too.
func MoveMonths(d time.Time, delta int) time.Time {
	year, month := d.Year(), d.Month()
	for ; delta > 0; delta-- {
		if month == time.December {
			year, month = year+1, time.January
		} else {
			month++
		}
	}
	for ; delta < 0; delta++ {
		if month == time.January {
			year, month = year-1, time.December
		} else {
			month--
		}
	}
	day := d.Day()
	if last := DaysIn(month); day > last {
		day = last
	}
	return Date(year, month, day)
}

// MonthsBetween returns the number of calendar months from a's month to b's
// month, ignoring days. It is negative when b is in an earlier month.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// AddDays shifts d by n days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// Max returns the later of a and b.
func Max(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// ParseDate parses a YYYY-MM-DD date. Surrounding space is ignored;
// anything else around the date is an error.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// Format renders d as YYYY-MM-DD.
func Format(d time.Time) string {
	return d.Format(Layout)
}
