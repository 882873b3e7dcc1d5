package utils

import (
	"testing"
	"time"
)

func TestParseRFC3339(t *testing.T) {
	ts, err := ParseRFC3339("2026-08-01T10:00:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ts.Hour() != 10 {
		t.Fatalf("unexpected time %v", ts)
	}
	if _, err := ParseRFC3339(""); err == nil {
		t.Fatalf("empty value must fail")
	}
	if _, err := ParseRFC3339("yesterday"); err == nil {
		t.Fatalf("junk value must fail")
	}
}

func TestMinutesBetween(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	if got := MinutesBetween(start, start.Add(45*time.Minute+30*time.Second)); got != 45 {
		t.Fatalf("expected 45, got %d", got)
	}
	// Order independent.
	if got := MinutesBetween(start.Add(time.Hour), start); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
}

func TestWholeDaysBetween(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	if got := WholeDaysBetween(start, start.Add(10*24*time.Hour+6*time.Hour)); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := WholeDaysBetween(start, start.Add(23*time.Hour)); got != 0 {
		t.Fatalf("partial days truncate, got %d", got)
	}
}
