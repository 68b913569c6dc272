package stats

import (
	"time"

	"cadence/pkg/habit"
)

// completionSetsByHabit indexes a flat completion list into per-habit date
// sets for O(1) "was habit H done on day D" lookups.
func completionSetsByHabit(completions []habit.Completion) map[string]map[string]bool {
	byHabit := make(map[string]map[string]bool)
	for _, c := range completions {
		set := byHabit[c.HabitID]
		if set == nil {
			set = make(map[string]bool)
			byHabit[c.HabitID] = set
		}
		set[c.Date] = true
	}
	return byHabit
}

func anyCompleted(set map[string]bool, days []time.Time) bool {
	for _, d := range days {
		if set[FormatDay(d)] {
			return true
		}
	}
	return false
}

func countCompleted(set map[string]bool, days []time.Time) int {
	n := 0
	for _, d := range days {
		if set[FormatDay(d)] {
			n++
		}
	}
	return n
}
