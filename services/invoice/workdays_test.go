package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAddWorkingDaysSkipsWeekends(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		days  int
		want  time.Time
	}{
		// Mon 2 Jun 2025 + 7 working days: lands on Wed 11 Jun, one
		// weekend skipped.
		{"from monday", date(2025, time.June, 2), 7, date(2025, time.June, 11)},
		// Fri 6 Jun + 1 working day rolls over the weekend to Monday.
		{"friday rolls to monday", date(2025, time.June, 6), 1, date(2025, time.June, 9)},
		// Starting on a Saturday, the first counted day is Monday.
		{"from saturday", date(2025, time.June, 7), 1, date(2025, time.June, 9)},
		{"from sunday", date(2025, time.June, 8), 5, date(2025, time.June, 13)},
		{"zero days", date(2025, time.June, 2), 0, date(2025, time.June, 2)},
		// Two weekends inside a 10 working-day span.
		{"ten days", date(2025, time.June, 2), 10, date(2025, time.June, 16)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := addWorkingDays(tc.start, tc.days)
			assert.Equal(t, tc.want, got)
			wd := got.Weekday()
			if tc.days > 0 {
				assert.NotEqual(t, time.Saturday, wd)
				assert.NotEqual(t, time.Sunday, wd)
			}
		})
	}
}
