// Package stats is the statistics engine: pure, date-driven functions that
// turn a habit's recurrence rule and its completion dates into streaks,
// completion rates and aggregate reports.
//
// All calculations are frequency-aware:
//   - daily: every calendar day counts
//   - weekly: one completion per week (Monday-start) is expected
//   - custom: only the configured weekdays count
//
// Dates cross the package boundary as "YYYY-MM-DD" strings. A malformed date
// string is a caller bug, not a runtime condition, and panics; callers taking
// untrusted input must validate first (see ValidDay).
package stats

import (
	"fmt"
	"time"
)

// DayFormat is the calendar date layout used throughout.
const DayFormat = "2006-01-02"

// Day parses a "YYYY-MM-DD" string into a time.Time pinned to midday UTC.
// Midday keeps weekday and interval arithmetic clear of DST and UTC-offset
// boundary shifts. Panics on malformed input.
func Day(s string) time.Time {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		panic(fmt.Sprintf("stats: malformed date %q: %v", s, err))
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// ValidDay reports whether s is a well-formed "YYYY-MM-DD" date.
func ValidDay(s string) bool {
	_, err := time.Parse(DayFormat, s)
	return err == nil
}

// FormatDay renders t as "YYYY-MM-DD".
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// DayOf normalizes an arbitrary timestamp to its calendar day at midday UTC.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing t, at day granularity.
func WeekStart(t time.Time) time.Time {
	d := DayOf(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of the week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// WeekKey identifies the ISO week containing t, e.g. "2026-W05". Two dates in
// the same Monday-start week always share a key.
func WeekKey(t time.Time) string {
	year, week := DayOf(t).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DaysBetween enumerates every calendar day from start through end inclusive,
// in chronological order. Empty if start is after end.
func DaysBetween(start, end time.Time) []time.Time {
	s, e := DayOf(start), DayOf(end)
	if s.After(e) {
		return nil
	}
	var days []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeeksBetween enumerates the Monday week-starts of every week overlapping
// [start, end], oldest first. Empty if start is after end.
func WeeksBetween(start, end time.Time) []time.Time {
	s, e := DayOf(start), DayOf(end)
	if s.After(e) {
		return nil
	}
	var weeks []time.Time
	for w := WeekStart(s); !w.After(e); w = w.AddDate(0, 0, 7) {
		weeks = append(weeks, w)
	}
	return weeks
}

func monthStart(t time.Time) time.Time {
	d := DayOf(t)
	return time.Date(d.Year(), d.Month(), 1, 12, 0, 0, 0, time.UTC)
}

func monthEnd(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 1, -1)
}

func minDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
