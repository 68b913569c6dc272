package stats

import (
	"time"

	"cadence/pkg/habit"
)

type StreakResult struct {
	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`
}

// CalculateStreaks computes the current and best streak for a habit from its
// sorted-ascending completion dates, as of the reference day.
//
// Streaks are frequency-aware: daily habits count consecutive calendar days,
// weekly habits count consecutive weeks with at least one completion, custom
// habits count consecutive applicable weekdays. The current streak walks
// backwards from the reference day; if the most recent expected slot is the
// reference day (or week) itself and it has no completion yet, it is skipped
// rather than breaking the streak.
func CalculateStreaks(h habit.Habit, completionDates []string, today time.Time) StreakResult {
	if len(completionDates) == 0 {
		return StreakResult{}
	}

	today = DayOf(today)
	if h.Frequency == habit.Weekly {
		return weeklyStreaks(completionDates, today)
	}

	done := make(map[string]bool, len(completionDates))
	for _, d := range completionDates {
		done[d] = true
	}

	start := DayOf(h.CreatedAt)
	if h.CreatedAt.IsZero() {
		start = Day(completionDates[0])
	}
	start = minDay(start, today)

	applicable := ApplicableDays(h, start, today)
	if len(applicable) == 0 {
		return StreakResult{}
	}

	todayStr := FormatDay(today)

	// Current streak: most recent applicable day backwards. An incomplete
	// reference day is skipped, not counted as a break.
	current := 0
	for i := len(applicable) - 1; i >= 0; i-- {
		dayStr := FormatDay(applicable[i])
		if dayStr == todayStr && !done[dayStr] {
			continue
		}
		if !done[dayStr] {
			break
		}
		current++
	}

	// Best streak: longest consecutive run, scanning chronologically.
	best, run := 0, 0
	for _, day := range applicable {
		if done[FormatDay(day)] {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}

	return StreakResult{CurrentStreak: current, BestStreak: best}
}

func weeklyStreaks(completionDates []string, today time.Time) StreakResult {
	weeksDone := make(map[string]bool, len(completionDates))
	for _, d := range completionDates {
		weeksDone[WeekKey(Day(d))] = true
	}

	// Current streak walks back week by week. A weekly habit is not broken
	// until its week fully elapses, so an incomplete current week shifts the
	// starting point to the prior week.
	check := today
	if !weeksDone[WeekKey(today)] {
		check = today.AddDate(0, 0, -7)
	}
	current := 0
	for weeksDone[WeekKey(check)] {
		current++
		check = check.AddDate(0, 0, -7)
	}

	best, run := 0, 0
	for _, w := range WeeksBetween(Day(completionDates[0]), today) {
		if weeksDone[WeekKey(w)] {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}

	return StreakResult{CurrentStreak: current, BestStreak: best}
}
