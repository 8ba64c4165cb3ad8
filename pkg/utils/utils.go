package utils

import (
	"fmt"
	"regexp"
	"time"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// FormatPeriod renders a time as a YYYY-MM billing period label.
func FormatPeriod(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// ParsePeriod parses a YYYY-MM billing period label into the first day of
// that month in UTC.
func ParsePeriod(period string) (time.Time, error) {
	if !ValidPeriod(period) {
		return time.Time{}, fmt.Errorf("invalid period %q: want YYYY-MM", period)
	}
	return time.Parse("2006-01", period)
}

// ValidPeriod reports whether period is a well-formed YYYY-MM label.
func ValidPeriod(period string) bool {
	return periodPattern.MatchString(period)
}

// DueDateInMonth returns the due date for a given due day within the month
// that anchor falls in. Due days are capped at 28 so the result is valid in
// every month.
func DueDateInMonth(anchor time.Time, dueDay int) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), dueDay, 0, 0, 0, 0, time.UTC)
}
