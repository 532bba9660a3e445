package tracker

import (
	"fmt"
	"time"
)

// Date is a civil calendar date in "YYYY-MM-DD" form. Logging is
// day-bucketed: entries carry a Date, not a timestamp, for reporting.
// The ISO form sorts lexicographically, so Dates compare with <, >.
type Date string

const dateLayout = "2006-01-02"

// DateOf truncates a timestamp to its civil date.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate validates a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

func (d Date) String() string { return string(d) }

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysBetween returns a minus b in whole days.
func DaysBetween(a, b Date) int {
	return int(a.Time().Sub(b.Time()) / (24 * time.Hour))
}
