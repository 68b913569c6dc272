package stats

import (
	"fmt"
	"time"

	"cadence/pkg/habit"
)

// ApplicableDays resolves the ordered set of calendar days in [start, end] on
// which h is expected to be completed. The range is clipped so that no day
// before the habit's creation date (day granularity) is ever applicable.
//
// Weekly habits have no per-day applicability: a week, not a day, is their
// atomic unit, and callers must branch on habit.Weekly before calling. A
// custom habit with no configured weekdays is never applicable.
func ApplicableDays(h habit.Habit, start, end time.Time) []time.Time {
	if !h.CreatedAt.IsZero() {
		start = maxDay(DayOf(start), DayOf(h.CreatedAt))
	}

	switch h.Frequency {
	case habit.Daily:
		return DaysBetween(start, end)
	case habit.Custom:
		if len(h.FrequencyDays) == 0 {
			return nil
		}
		var days []time.Time
		for _, d := range DaysBetween(start, end) {
			if weekdayIn(h.FrequencyDays, d) {
				days = append(days, d)
			}
		}
		return days
	case habit.Weekly:
		panic("stats: weekly habits have no per-day applicability")
	default:
		panic(fmt.Sprintf("stats: unknown frequency %q", h.Frequency))
	}
}

// appliesOn reports whether a single day is an expected day for h. Weekly
// habits never apply to a single day (see ApplicableDays).
func appliesOn(h habit.Habit, day time.Time) bool {
	switch h.Frequency {
	case habit.Daily:
		return true
	case habit.Weekly:
		return false
	case habit.Custom:
		return weekdayIn(h.FrequencyDays, day)
	default:
		panic(fmt.Sprintf("stats: unknown frequency %q", h.Frequency))
	}
}

func weekdayIn(days []int, t time.Time) bool {
	wd := int(t.Weekday()) // 0=Sunday .. 6=Saturday
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
