package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/headroom/internal/calendar"
)

// FormatLabel returns a period label like "2023-03" for a period starting
// on start. With nextMonth the label names the month after start, so a
// period running from the 25th of February is reported as March.
func FormatLabel(start time.Time, nextMonth bool) string {
	if nextMonth {
		start = calendar.MoveMonths(start, 1)
	}
	return fmt.Sprintf("%04d-%02d", start.Year(), int(start.Month()))
}

// ParseLabel parses "2023-03" into year and month.
func ParseLabel(label string) (year, month int, err error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid period label format: %q", label)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in period label %q: %w", label, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in period label %q: %w", label, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range in period label %q", label)
	}

	return year, month, nil
}
