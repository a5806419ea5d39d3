package invoice

import "time"

// addWorkingDays advances t by n working days. Saturdays and Sundays are
// skipped entirely, not counted.
func addWorkingDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		n--
	}
	return t
}
