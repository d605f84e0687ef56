package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveMonths(t *testing.T) {
	tests := []struct {
		name  string
		from  time.Time
		delta int
		want  time.Time
	}{
		{"clamp into february", Date(2023, 1, 31), 1, Date(2023, 2, 28)},
		{"clamp backwards into february", Date(2023, 3, 31), -1, Date(2023, 2, 28)},
		{"leap year february stays 28", Date(2024, 1, 31), 1, Date(2024, 2, 28)},
		{"thirty day month", Date(2023, 3, 31), 1, Date(2023, 4, 30)},
		{"year rollover", Date(2022, 12, 15), 1, Date(2023, 1, 15)},
		{"year rollback", Date(2023, 1, 15), -1, Date(2022, 12, 15)},
		{"multi year forward", Date(2022, 2, 25), 24, Date(2024, 2, 25)},
		{"multi year backward", Date(2024, 2, 25), -25, Date(2022, 1, 25)},
		{"zero delta", Date(2023, 5, 31), 0, Date(2023, 5, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveMonths(tt.from, tt.delta)
			assert.True(t, tt.want.Equal(got), "MoveMonths(%s, %d) = %s, want %s",
				Format(tt.from), tt.delta, Format(got), Format(tt.want))
		})
	}
}

func TestMoveMonths_Symmetric(t *testing.T) {
	start := Date(2023, 6, 15)
	for delta := -30; delta <= 30; delta++ {
		there := MoveMonths(start, delta)
		back := MoveMonths(there, -delta)
		assert.True(t, start.Equal(back), "delta %d: %s", delta, Format(back))
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(time.January))
	assert.Equal(t, 28, DaysIn(time.February))
	assert.Equal(t, 30, DaysIn(time.April))
	assert.Equal(t, 31, DaysIn(time.December))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 0, MonthsBetween(Date(2023, 1, 1), Date(2023, 1, 31)))
	assert.Equal(t, 13, MonthsBetween(Date(2022, 12, 31), Date(2024, 1, 1)))
	assert.Equal(t, -2, MonthsBetween(Date(2023, 3, 1), Date(2023, 1, 31)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2022-02-25")
	require.NoError(t, err)
	assert.True(t, Date(2022, 2, 25).Equal(d))

	d, err = ParseDate(" 2022-02-25\n")
	require.NoError(t, err)
	assert.True(t, Date(2022, 2, 25).Equal(d))

	for _, bad := range []string{
		"25/02/2022",
		"2023-01-015",
		"2023-01-01garbage",
		"2023-01-01 12",
		"2023-01-01T00:00:00Z",
		"",
	} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "%q should not parse", bad)
	}
}

func TestEpochPrecedesRealDates(t *testing.T) {
	assert.True(t, Epoch.Before(Date(2022, 1, 1)))
	assert.Equal(t, "2000-01-01", Format(Epoch))
}
