package model

import (
	"strings"
	"time"
)

// DateLayout is the wire and form format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, Invalid(field, "is required")
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Invalid(field, "must be a date in YYYY-MM-DD form")
	}
	return d, nil
}

// DateOf truncates t to the start of its calendar day, expressed in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
