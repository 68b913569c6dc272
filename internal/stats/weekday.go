package stats

import (
	"fmt"
	"math"
	"time"

	"cadence/pkg/habit"
)

type DayOfWeekData struct {
	Day       string `json:"day"`       // "Mon", "Tue", ...
	DayIndex  int    `json:"day_index"` // 0=Sunday .. 6=Saturday
	Rate      int    `json:"rate"`      // 0..100
	Completed int    `json:"completed"`
	Expected  int    `json:"expected"`
}

var dayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayOfWeekPatterns accumulates expected/completed counts per weekday over
// the trailing numDays window, across all daily and custom habits. Weekly
// habits are excluded: a once-per-week expectation cannot be attributed to a
// particular weekday. Output is ordered Monday through Sunday.
func DayOfWeekPatterns(habits []habit.Habit, completions []habit.Completion, numDays int, today time.Time) []DayOfWeekData {
	if numDays < 1 {
		panic(fmt.Sprintf("stats: invalid day count %d", numDays))
	}
	today = DayOf(today)
	start := today.AddDate(0, 0, -(numDays - 1))
	byHabit := completionSetsByHabit(completions)

	var completed, expected [7]int
	for _, day := range DaysBetween(start, today) {
		wd := int(day.Weekday())
		dayStr := FormatDay(day)

		for _, h := range habits {
			if !h.CreatedAt.IsZero() && DayOf(h.CreatedAt).After(day) {
				continue
			}
			if !appliesOn(h, day) {
				continue
			}
			expected[wd]++
			if byHabit[h.ID][dayStr] {
				completed[wd]++
			}
		}
	}

	out := make([]DayOfWeekData, 0, 7)
	for _, idx := range []int{1, 2, 3, 4, 5, 6, 0} {
		rate := 0
		if expected[idx] > 0 {
			rate = int(math.Round(float64(completed[idx]) / float64(expected[idx]) * 100))
		}
		out = append(out, DayOfWeekData{
			Day:       dayLabels[idx],
			DayIndex:  idx,
			Rate:      rate,
			Completed: completed[idx],
			Expected:  expected[idx],
		})
	}
	return out
}
