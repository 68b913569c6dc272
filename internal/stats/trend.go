package stats

import (
	"fmt"
	"math"
	"time"

	"cadence/pkg/habit"
)

type TrendDataPoint struct {
	Date      string `json:"date"`  // week start, "YYYY-MM-DD"
	Label     string `json:"label"` // "Jan 20"
	Rate      int    `json:"rate"`  // 0..100
	Completed int    `json:"completed"`
	Expected  int    `json:"expected"`
}

// GenerateTrend charts the aggregate weekly completion rate across all habits
// for the last numWeeks weeks, oldest first.
func GenerateTrend(habits []habit.Habit, completions []habit.Completion, numWeeks int, today time.Time) []TrendDataPoint {
	if numWeeks < 1 {
		panic(fmt.Sprintf("stats: invalid week count %d", numWeeks))
	}
	today = DayOf(today)
	byHabit := completionSetsByHabit(completions)

	points := make([]TrendDataPoint, 0, numWeeks)
	for i := numWeeks - 1; i >= 0; i-- {
		ref := today.AddDate(0, 0, -7*i)
		weekStart := WeekStart(ref)
		effectiveEnd := minDay(WeekEnd(ref), today)

		totalCompleted, totalExpected := 0, 0
		for _, h := range habits {
			created := DayOf(h.CreatedAt)
			if !h.CreatedAt.IsZero() && created.After(effectiveEnd) {
				continue
			}
			effectiveStart := weekStart
			if !h.CreatedAt.IsZero() {
				effectiveStart = maxDay(weekStart, created)
			}
			completed, expected := habitWindowCounts(h, byHabit[h.ID], effectiveStart, effectiveEnd)
			totalCompleted += completed
			totalExpected += expected
		}

		rate := 0
		if totalExpected > 0 {
			rate = int(math.Round(float64(totalCompleted) / float64(totalExpected) * 100))
		}
		points = append(points, TrendDataPoint{
			Date:      FormatDay(weekStart),
			Label:     weekStart.Format("Jan 2"),
			Rate:      rate,
			Completed: totalCompleted,
			Expected:  totalExpected,
		})
	}
	return points
}
