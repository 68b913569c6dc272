package stats

import (
	"fmt"
	"math"
	"time"

	"cadence/pkg/habit"
)

// HabitBreakdown is one habit's share of a weekly or monthly summary.
type HabitBreakdown struct {
	HabitID    string  `json:"habit_id"`
	HabitName  string  `json:"habit_name"`
	HabitColor string  `json:"habit_color"`
	Completed  int     `json:"completed"`
	Expected   int     `json:"expected"`
	Rate       float64 `json:"rate"`
}

type WeeklySummary struct {
	WeekStart      string           `json:"week_start"` // Monday
	WeekEnd        string           `json:"week_end"`
	WeekLabel      string           `json:"week_label"` // "Jan 20 - Jan 26"
	TotalCompleted int              `json:"total_completed"`
	TotalExpected  int              `json:"total_expected"`
	Rate           float64          `json:"rate"`
	Percentage     int              `json:"percentage"`
	PerHabit       []HabitBreakdown `json:"per_habit"`
}

type MonthlySummary struct {
	MonthStart     string           `json:"month_start"`
	MonthLabel     string           `json:"month_label"` // "January 2026"
	TotalCompleted int              `json:"total_completed"`
	TotalExpected  int              `json:"total_expected"`
	Rate           float64          `json:"rate"`
	Percentage     int              `json:"percentage"`
	PerHabit       []HabitBreakdown `json:"per_habit"`
}

// GenerateWeeklySummaries reports per-habit and aggregate completion for the
// last numWeeks weeks, most recent week first. The current week is clipped at
// the reference day, and each habit is clipped at its creation date; habits
// created after a week ended are left out of that week entirely.
func GenerateWeeklySummaries(habits []habit.Habit, completions []habit.Completion, numWeeks int, today time.Time) []WeeklySummary {
	if numWeeks < 1 {
		panic(fmt.Sprintf("stats: invalid week count %d", numWeeks))
	}
	today = DayOf(today)
	byHabit := completionSetsByHabit(completions)

	summaries := make([]WeeklySummary, 0, numWeeks)
	for i := 0; i < numWeeks; i++ {
		ref := today.AddDate(0, 0, -7*i)
		weekStart := WeekStart(ref)
		effectiveEnd := minDay(WeekEnd(ref), today)

		totalCompleted, totalExpected := 0, 0
		perHabit := []HabitBreakdown{}

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
			perHabit = append(perHabit, breakdown(h, completed, expected))
			totalCompleted += completed
			totalExpected += expected
		}

		rate := safeRate(totalCompleted, totalExpected)
		summaries = append(summaries, WeeklySummary{
			WeekStart:      FormatDay(weekStart),
			WeekEnd:        FormatDay(effectiveEnd),
			WeekLabel:      fmt.Sprintf("%s - %s", weekStart.Format("Jan 2"), effectiveEnd.Format("Jan 2")),
			TotalCompleted: totalCompleted,
			TotalExpected:  totalExpected,
			Rate:           rate,
			Percentage:     int(math.Round(rate * 100)),
			PerHabit:       perHabit,
		})
	}
	return summaries
}

// GenerateMonthlySummaries is the calendar-month variant, most recent month
// first. Weekly-frequency habits are scored by enumerating the weeks that
// overlap the month and checking each for a completion within the clipped
// month/creation/reference boundaries.
func GenerateMonthlySummaries(habits []habit.Habit, completions []habit.Completion, numMonths int, today time.Time) []MonthlySummary {
	if numMonths < 1 {
		panic(fmt.Sprintf("stats: invalid month count %d", numMonths))
	}
	today = DayOf(today)
	byHabit := completionSetsByHabit(completions)

	summaries := make([]MonthlySummary, 0, numMonths)
	for i := 0; i < numMonths; i++ {
		mStart := monthStart(time.Date(today.Year(), today.Month()-time.Month(i), 1, 12, 0, 0, 0, time.UTC))
		effectiveEnd := minDay(monthEnd(mStart), today)

		totalCompleted, totalExpected := 0, 0
		perHabit := []HabitBreakdown{}

		for _, h := range habits {
			created := DayOf(h.CreatedAt)
			if !h.CreatedAt.IsZero() && created.After(effectiveEnd) {
				continue
			}
			effectiveStart := mStart
			if !h.CreatedAt.IsZero() {
				effectiveStart = maxDay(mStart, created)
			}

			var completed, expected int
			if h.Frequency == habit.Weekly {
				set := byHabit[h.ID]
				weeks := WeeksBetween(effectiveStart, effectiveEnd)
				expected = len(weeks)
				for _, w := range weeks {
					wStart := maxDay(w, effectiveStart)
					wEnd := minDay(WeekEnd(w), effectiveEnd)
					if anyCompleted(set, DaysBetween(wStart, wEnd)) {
						completed++
					}
				}
			} else {
				completed, expected = habitWindowCounts(h, byHabit[h.ID], effectiveStart, effectiveEnd)
			}
			perHabit = append(perHabit, breakdown(h, completed, expected))
			totalCompleted += completed
			totalExpected += expected
		}

		rate := safeRate(totalCompleted, totalExpected)
		summaries = append(summaries, MonthlySummary{
			MonthStart:     FormatDay(mStart),
			MonthLabel:     mStart.Format("January 2006"),
			TotalCompleted: totalCompleted,
			TotalExpected:  totalExpected,
			Rate:           rate,
			Percentage:     int(math.Round(rate * 100)),
			PerHabit:       perHabit,
		})
	}
	return summaries
}

// habitWindowCounts scores one habit over a single clipped window. Weekly
// habits expect exactly one completion somewhere in the window; daily and
// custom habits expect every applicable day.
func habitWindowCounts(h habit.Habit, set map[string]bool, start, end time.Time) (completed, expected int) {
	if h.Frequency == habit.Weekly {
		expected = 1
		if anyCompleted(set, DaysBetween(start, end)) {
			completed = 1
		}
		return completed, expected
	}
	applicable := ApplicableDays(h, start, end)
	return countCompleted(set, applicable), len(applicable)
}

func breakdown(h habit.Habit, completed, expected int) HabitBreakdown {
	return HabitBreakdown{
		HabitID:    h.ID,
		HabitName:  h.Name,
		HabitColor: h.Color,
		Completed:  completed,
		Expected:   expected,
		Rate:       safeRate(completed, expected),
	}
}

func safeRate(completed, expected int) float64 {
	if expected <= 0 {
		return 0
	}
	return float64(completed) / float64(expected)
}
