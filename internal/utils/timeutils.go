package utils

import (
	"fmt"
	"math"
	"time"
)

// ParseRFC3339 returns a time from the provided string or an error.
func ParseRFC3339(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time: %w", err)
	}
	return t, nil
}

// MinutesBetween converts a pair of timestamps into whole elapsed minutes.
func MinutesBetween(start, end time.Time) int {
	if end.Before(start) {
		start, end = end, start
	}
	return int(end.Sub(start).Minutes())
}

// WholeDaysBetween converts a pair of timestamps into whole elapsed days,
// truncating partial days the way calendar date-diffs do.
func WholeDaysBetween(start, end time.Time) int {
	if end.Before(start) {
		start, end = end, start
	}
	return int(math.Floor(end.Sub(start).Hours() / 24))
}
