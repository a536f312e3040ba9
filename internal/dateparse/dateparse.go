// Package dateparse resolves the date flags of the list commands.
package dateparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

// layouts accepted before falling back to natural language, tried in order.
// Times without a zone are read in the reference location.
var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
}

// Parse parses a date string which can be:
// - RFC 3339: "2025-01-15T09:00:00+09:00"
// - ISO 8601 date or datetime: "2025-01-15", "2025-01-15T09:00:00"
// - the display format used in listings: "2025/01/15", "2025/01/15 09:00"
// - natural language: "today", "tomorrow", "next monday", "in 3 days", "3 days ago"
//
// Relative expressions are resolved against ref, or time.Now() when ref is zero.
// Bare weekday names refer to the coming one.
func Parse(s string, ref time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	if ref.IsZero() {
		ref = time.Now()
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, ref.Location()); err == nil {
			return t, nil
		}
	}

	t, err := naturaldate.Parse(s, ref, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse date %q: %w", s, err)
	}

	return t, nil
}

// Since resolves a --since value to the midnight that starts the listing window.
// An empty value means today.
func Since(s string, ref time.Time) (time.Time, error) {
	if ref.IsZero() {
		ref = time.Now()
	}
	if strings.TrimSpace(s) == "" {
		return StartOfDay(ref), nil
	}

	t, err := Parse(s, ref)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t), nil
}

// StartOfDay returns the start of day (midnight) for the given time.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
