package models

import (
	"math"
	"strconv"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used for every date input.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr renders nil as "-".
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatDate(*t)
}

// DateOf drops the clock part of t, keeping its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// WholeDays rounds a possibly fractional day count up.
func WholeDays(days float64) int {
	return int(math.Ceil(days))
}

func itoa(n int) string { return strconv.Itoa(n) }
