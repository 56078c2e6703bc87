package domain

import "time"

// TruncateToDate drops the time-of-day, returning midnight UTC of the same calendar day.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextMonthlyOccurrence adds one calendar month to d, clamping the day to the last day
// of the target month. 2024-01-31 becomes 2024-02-29, which then becomes 2024-03-29.
func NextMonthlyOccurrence(d time.Time) time.Time {
	d = TruncateToDate(d)
	year, month := d.Year(), d.Month()+1
	if month > time.December {
		month = time.January
		year++
	}
	day := d.Day()
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
