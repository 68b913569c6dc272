package stats

import (
	"fmt"
	"math"
	"time"

	"cadence/pkg/habit"
)

// AllTime selects an open-ended completion-rate window reaching back to the
// habit's creation (or first completion when creation is unknown).
const AllTime = -1

type CompletionRateResult struct {
	Completed  int     `json:"completed"`
	Expected   int     `json:"expected"`
	Rate       float64 `json:"rate"`       // 0..1
	Percentage int     `json:"percentage"` // 0..100
}

// CompletionRate computes completed/expected for a habit over the trailing
// window of `days` calendar days ending at the reference day, or since the
// habit began when days == AllTime. Any other non-positive window is a caller
// bug and panics.
//
// The window never reaches before the habit's creation date, and rate and
// percentage are clamped to 1.0 / 100: completions recorded on days that are
// no longer applicable (e.g. after editing a custom schedule) must not yield
// a rate above 100%.
func CompletionRate(h habit.Habit, completionDates []string, days int, today time.Time) CompletionRateResult {
	if days != AllTime && days < 1 {
		panic(fmt.Sprintf("stats: invalid completion rate window %d", days))
	}

	today = DayOf(today)

	var start time.Time
	if days == AllTime {
		switch {
		case !h.CreatedAt.IsZero():
			start = DayOf(h.CreatedAt)
		case len(completionDates) > 0:
			start = Day(completionDates[0])
		default:
			start = today
		}
	} else {
		start = today.AddDate(0, 0, -(days - 1))
	}

	if start.After(today) {
		return CompletionRateResult{}
	}
	if !h.CreatedAt.IsZero() {
		start = maxDay(start, DayOf(h.CreatedAt))
	}

	startStr, endStr := FormatDay(start), FormatDay(today)
	var inRange []string
	for _, d := range completionDates {
		if d >= startStr && d <= endStr {
			inRange = append(inRange, d)
		}
	}

	if h.Frequency == habit.Weekly {
		expected := len(WeeksBetween(start, today))
		weeksDone := make(map[string]bool)
		for _, d := range inRange {
			weeksDone[WeekKey(Day(d))] = true
		}
		return rateResult(len(weeksDone), expected)
	}

	expected := len(ApplicableDays(h, start, today))
	return rateResult(len(inRange), expected)
}

func rateResult(completed, expected int) CompletionRateResult {
	rate := 0.0
	if expected > 0 {
		rate = float64(completed) / float64(expected)
	}
	rate = math.Min(rate, 1)
	return CompletionRateResult{
		Completed:  completed,
		Expected:   expected,
		Rate:       rate,
		Percentage: int(math.Round(rate * 100)),
	}
}
